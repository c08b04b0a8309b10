// Package scoring aggregates per-term comparison results into a session-level
// validation summary. Summarize is deterministic; recomputing over the same
// result set always yields an identical summary.
package scoring

import (
	"fmt"

	"github.com/termsight/termsight/internal/compare"
	"github.com/termsight/termsight/internal/rules"
)

// ComplianceStatus is the session-level aggregate outcome.
type ComplianceStatus string

const (
	Compliant        ComplianceStatus = "compliant"
	PartialCompliant ComplianceStatus = "partial_compliant"
	NonCompliant     ComplianceStatus = "non_compliant"
)

// Summary is the aggregate outcome of a validation run.
type Summary struct {
	TotalTerms            int              `json:"total_terms"`
	ValidTerms            int              `json:"valid_terms"`
	InvalidTerms          int              `json:"invalid_terms"`
	MissingTerms          int              `json:"missing_terms"`
	WarningTerms          int              `json:"warning_terms"`
	CriticalDiscrepancies int              `json:"critical_discrepancies"`
	MinorDiscrepancies    int              `json:"minor_discrepancies"`
	OverallAccuracy       float64          `json:"overall_accuracy"`
	RiskScore             int              `json:"risk_score"`
	ComplianceStatus      ComplianceStatus `json:"compliance_status"`
	Recommendations       []string         `json:"recommendations"`
}

// Summarize computes the validation summary for a result set under the given
// scoring weights. Results with a nil score count as zero in the accuracy
// mean but remain in the denominator.
func Summarize(results []compare.Result, weights rules.Weights) Summary {
	summary := Summary{
		Recommendations: make([]string, 0),
	}

	var scoreSum float64
	risk := 0

	for _, r := range results {
		summary.TotalTerms++

		if r.Score != nil {
			scoreSum += *r.Score
		}

		switch r.Status {
		case compare.Valid:
			summary.ValidTerms++
		case compare.Invalid:
			summary.InvalidTerms++
		case compare.Missing:
			summary.MissingTerms++
		case compare.Warning:
			summary.WarningTerms++
		}

		switch {
		case r.Severity == compare.SeverityCritical:
			summary.CriticalDiscrepancies++
			risk += weights.CriticalDiscrepancy
			summary.Recommendations = append(summary.Recommendations, recommend(r))
		case r.Status == compare.Warning:
			risk += weights.Warning
		case r.Severity == compare.SeverityMinor:
			summary.MinorDiscrepancies++
			risk += weights.MinorDiscrepancy
			summary.Recommendations = append(summary.Recommendations, recommend(r))
		}
	}

	if summary.TotalTerms > 0 {
		summary.OverallAccuracy = scoreSum / float64(summary.TotalTerms)
	}

	summary.RiskScore = clamp(risk, 0, weights.MaxScore)
	summary.ComplianceStatus = complianceStatus(summary)

	return summary
}

func complianceStatus(s Summary) ComplianceStatus {
	switch {
	case s.CriticalDiscrepancies > 0:
		return NonCompliant
	case s.MinorDiscrepancies > 0 || s.WarningTerms > 0:
		return PartialCompliant
	default:
		return Compliant
	}
}

func recommend(r compare.Result) string {
	if r.Severity == compare.SeverityCritical {
		return fmt.Sprintf("Verify %s with counterparty before proceeding", r.Term)
	}
	return fmt.Sprintf("Review %s discrepancy before approval", r.Term)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
