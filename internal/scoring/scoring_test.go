package scoring_test

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/termsight/termsight/internal/compare"
	"github.com/termsight/termsight/internal/rules"
	"github.com/termsight/termsight/internal/scoring"
)

var testWeights = rules.Weights{
	CriticalDiscrepancy: 25,
	MinorDiscrepancy:    10,
	Warning:             5,
	MaxScore:            100,
}

func score(v float64) *float64 {
	return &v
}

func TestSummarizeCounts(t *testing.T) {
	results := []compare.Result{
		{Term: "currency", Status: compare.Valid, Score: score(1.0), Severity: compare.SeverityNone},
		{Term: "counterparty", Status: compare.Warning, Score: score(0.5), Severity: compare.SeverityMinor},
		{Term: "settlement_date", Status: compare.Invalid, Score: score(0.0), Severity: compare.SeverityCritical},
		{Term: "legal_entity", Status: compare.Invalid, Score: score(0.25), Severity: compare.SeverityMinor},
		{Term: "interest_rate", Status: compare.Missing, Score: score(0.0), Severity: compare.SeverityCritical},
	}

	got := scoring.Summarize(results, testWeights)

	if got.TotalTerms != 5 {
		t.Errorf("TotalTerms = %d, want 5", got.TotalTerms)
	}
	if got.ValidTerms != 1 {
		t.Errorf("ValidTerms = %d, want 1", got.ValidTerms)
	}
	if got.InvalidTerms != 2 {
		t.Errorf("InvalidTerms = %d, want 2", got.InvalidTerms)
	}
	if got.MissingTerms != 1 {
		t.Errorf("MissingTerms = %d, want 1", got.MissingTerms)
	}
	if got.WarningTerms != 1 {
		t.Errorf("WarningTerms = %d, want 1", got.WarningTerms)
	}
	if got.CriticalDiscrepancies != 2 {
		t.Errorf("CriticalDiscrepancies = %d, want 2", got.CriticalDiscrepancies)
	}
	if got.MinorDiscrepancies != 1 {
		t.Errorf("MinorDiscrepancies = %d, want 1", got.MinorDiscrepancies)
	}
	if got.RiskScore != 65 {
		t.Errorf("RiskScore = %d, want 65", got.RiskScore)
	}
	if got.OverallAccuracy != 0.35 {
		t.Errorf("OverallAccuracy = %v, want 0.35", got.OverallAccuracy)
	}
	if got.ComplianceStatus != scoring.NonCompliant {
		t.Errorf("ComplianceStatus = %q, want %q", got.ComplianceStatus, scoring.NonCompliant)
	}
	if len(got.Recommendations) != 3 {
		t.Errorf("len(Recommendations) = %d, want 3", len(got.Recommendations))
	}
}

func TestSummarizeComplianceStatus(t *testing.T) {
	tests := []struct {
		name    string
		results []compare.Result
		want    scoring.ComplianceStatus
	}{
		{
			name: "all valid is compliant",
			results: []compare.Result{
				{Term: "currency", Status: compare.Valid, Score: score(1.0), Severity: compare.SeverityNone},
				{Term: "payment_terms", Status: compare.Valid, Score: score(1.0), Severity: compare.SeverityNone},
			},
			want: scoring.Compliant,
		},
		{
			name: "warning only is partial",
			results: []compare.Result{
				{Term: "currency", Status: compare.Valid, Score: score(1.0), Severity: compare.SeverityNone},
				{Term: "counterparty", Status: compare.Warning, Score: score(0.5), Severity: compare.SeverityMinor},
			},
			want: scoring.PartialCompliant,
		},
		{
			name: "minor discrepancy is partial",
			results: []compare.Result{
				{Term: "legal_entity", Status: compare.Invalid, Score: score(0.0), Severity: compare.SeverityMinor},
			},
			want: scoring.PartialCompliant,
		},
		{
			name: "any critical is non compliant",
			results: []compare.Result{
				{Term: "currency", Status: compare.Valid, Score: score(1.0), Severity: compare.SeverityNone},
				{Term: "notional_amount", Status: compare.Invalid, Score: score(0.0), Severity: compare.SeverityCritical},
			},
			want: scoring.NonCompliant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoring.Summarize(tt.results, testWeights)
			if got.ComplianceStatus != tt.want {
				t.Errorf("ComplianceStatus = %q, want %q", got.ComplianceStatus, tt.want)
			}
		})
	}
}

func TestSummarizeRiskScoreClamped(t *testing.T) {
	results := make([]compare.Result, 0, 6)
	for _, term := range []string{
		"counterparty", "notional_amount", "settlement_date",
		"interest_rate", "currency", "payment_terms",
	} {
		results = append(results, compare.Result{
			Term:     term,
			Status:   compare.Invalid,
			Score:    score(0.0),
			Severity: compare.SeverityCritical,
		})
	}

	got := scoring.Summarize(results, testWeights)
	if got.RiskScore != testWeights.MaxScore {
		t.Errorf("RiskScore = %d, want clamped to %d", got.RiskScore, testWeights.MaxScore)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	got := scoring.Summarize(nil, testWeights)

	if got.TotalTerms != 0 {
		t.Errorf("TotalTerms = %d, want 0", got.TotalTerms)
	}
	if got.OverallAccuracy != 0 {
		t.Errorf("OverallAccuracy = %v, want 0", got.OverallAccuracy)
	}
	if got.RiskScore != 0 {
		t.Errorf("RiskScore = %d, want 0", got.RiskScore)
	}
	if got.ComplianceStatus != scoring.Compliant {
		t.Errorf("ComplianceStatus = %q, want %q", got.ComplianceStatus, scoring.Compliant)
	}
	if got.Recommendations == nil {
		t.Error("Recommendations should be an empty slice, not nil")
	}
}

func TestSummarizeNilScoreStaysInDenominator(t *testing.T) {
	results := []compare.Result{
		{Term: "currency", Status: compare.Valid, Score: score(1.0), Severity: compare.SeverityNone},
		{Term: "legal_entity", Status: compare.Warning, Severity: compare.SeverityMinor},
	}

	got := scoring.Summarize(results, testWeights)
	if got.OverallAccuracy != 0.5 {
		t.Errorf("OverallAccuracy = %v, want 0.5", got.OverallAccuracy)
	}
}

func TestSummarizeGolden(t *testing.T) {
	results := []compare.Result{
		{Term: "currency", Status: compare.Valid, Score: score(1.0), Severity: compare.SeverityNone},
		{Term: "counterparty", Status: compare.Warning, Score: score(0.5), Severity: compare.SeverityMinor},
		{Term: "settlement_date", Status: compare.Invalid, Score: score(0.0), Severity: compare.SeverityCritical},
		{Term: "legal_entity", Status: compare.Invalid, Score: score(0.25), Severity: compare.SeverityMinor},
		{Term: "interest_rate", Status: compare.Missing, Score: score(0.0), Severity: compare.SeverityCritical},
	}

	summary := scoring.Summarize(results, testWeights)

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent() error = %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "summary", data)
}

func TestSummarizeDeterministic(t *testing.T) {
	results := []compare.Result{
		{Term: "currency", Status: compare.Valid, Score: score(1.0), Severity: compare.SeverityNone},
		{Term: "counterparty", Status: compare.Warning, Score: score(0.5), Severity: compare.SeverityMinor},
		{Term: "settlement_date", Status: compare.Invalid, Score: score(0.0), Severity: compare.SeverityCritical},
		{Term: "legal_entity", Status: compare.Invalid, Score: score(0.25), Severity: compare.SeverityMinor},
		{Term: "interest_rate", Status: compare.Missing, Score: score(0.0), Severity: compare.SeverityCritical},
	}

	first := scoring.Summarize(results, testWeights)
	second := scoring.Summarize(results, testWeights)

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	if string(a) != string(b) {
		t.Errorf("summaries differ across runs:\n%s\n%s", a, b)
	}
}
