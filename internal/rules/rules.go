// Package rules loads and validates the term comparison rule set that drives
// the validation engine. The rule document is read once at startup and held
// as an immutable snapshot.
package rules

import (
	"regexp"
)

// ComparisonType identifies the comparison strategy for a term.
type ComparisonType string

const (
	ExactMatch       ComparisonType = "exact_match"
	FuzzyMatch       ComparisonType = "fuzzy_match"
	NumericTolerance ComparisonType = "numeric_tolerance"
	DateTolerance    ComparisonType = "date_tolerance"
	Categorical      ComparisonType = "categorical"
	PatternMatch     ComparisonType = "pattern_match"
	RangeCheck       ComparisonType = "range_check"
)

var comparisonTypes = map[ComparisonType]bool{
	ExactMatch:       true,
	FuzzyMatch:       true,
	NumericTolerance: true,
	DateTolerance:    true,
	Categorical:      true,
	PatternMatch:     true,
	RangeCheck:       true,
}

// DeviationMode controls how numeric deviation is measured.
type DeviationMode string

const (
	// Relative measures deviation as a fraction of the expected value.
	Relative DeviationMode = "relative"
	// Absolute measures deviation in the term's own units, e.g. percentage
	// points for interest rates.
	Absolute DeviationMode = "absolute"
)

// Rule defines how a single term is compared against its trade record value.
type Rule struct {
	Term              string            `json:"-"`
	Type              ComparisonType    `json:"comparison_type"`
	Tolerance         float64           `json:"tolerance"`
	CriticalThreshold float64           `json:"critical_threshold"`
	Deviation         DeviationMode     `json:"deviation,omitempty"`
	Required          bool              `json:"required"`
	AllowedValues     []string          `json:"allowed_values,omitempty"`
	Synonyms          map[string]string `json:"synonyms,omitempty"`
	Pattern           string            `json:"pattern,omitempty"`

	compiled *regexp.Regexp
}

// MatchPattern reports whether value matches the rule's compiled pattern.
// Only meaningful for pattern_match rules.
func (r *Rule) MatchPattern(value string) bool {
	if r.compiled == nil {
		return false
	}
	return r.compiled.MatchString(value)
}

// Weights holds the discrepancy scoring weights.
type Weights struct {
	CriticalDiscrepancy int `json:"critical_discrepancy"`
	MinorDiscrepancy    int `json:"minor_discrepancy"`
	Warning             int `json:"warning"`
	MaxScore            int `json:"max_score"`
}
