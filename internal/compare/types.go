// Package compare evaluates extracted term-sheet values against trade record
// values under the configured comparison rules. All functions are pure; data
// problems surface as verdicts, never as errors.
package compare

// Verdict is the outcome of comparing one term pair.
type Verdict string

const (
	Valid   Verdict = "valid"
	Invalid Verdict = "invalid"
	Missing Verdict = "missing"
	Warning Verdict = "warning"
)

// Severity is the discrepancy impact tier derived from a verdict and rule.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityMinor    Severity = "minor"
	SeverityCritical Severity = "critical"
)

// Pair holds one term's extracted document value and expected trade record
// value. An empty string means the value is absent.
type Pair struct {
	Term      string
	Extracted string
	Expected  string
}

// Result is the evaluated outcome for a single term pair. Score is nil when
// the pair was not comparable (absent values with no reference to measure
// against).
type Result struct {
	Term        string   `json:"term_name"`
	Extracted   string   `json:"extracted_value,omitempty"`
	Expected    string   `json:"expected_value,omitempty"`
	Status      Verdict  `json:"status"`
	Score       *float64 `json:"match_score"`
	Method      string   `json:"method"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description,omitempty"`
}

func score(v float64) *float64 {
	return &v
}
