package rules

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
)

//go:embed validation_rules.json
var defaultRules []byte

type document struct {
	ValidationRules map[string]Rule `json:"validation_rules"`
	RiskScoring     Weights         `json:"risk_scoring"`
}

// Registry is an immutable snapshot of the active rule set.
type Registry struct {
	rules   map[string]Rule
	weights Weights
}

// Load reads and validates the rule document at path. If the file does not
// exist, the embedded default rule set is used.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		data = defaultRules
	} else if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrConfiguration, path, err)
	}

	return Parse(data)
}

// Parse validates a rule document and returns its registry snapshot.
func Parse(data []byte) (*Registry, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	if len(doc.ValidationRules) == 0 {
		return nil, fmt.Errorf("%w: no validation rules defined", ErrConfiguration)
	}

	rules := make(map[string]Rule, len(doc.ValidationRules))
	for term, rule := range doc.ValidationRules {
		rule.Term = term
		if err := finalizeRule(&rule); err != nil {
			return nil, fmt.Errorf("%w: rule %s: %v", ErrConfiguration, term, err)
		}
		rules[term] = rule
	}

	if err := validateWeights(doc.RiskScoring); err != nil {
		return nil, fmt.Errorf("%w: risk_scoring: %v", ErrConfiguration, err)
	}

	return &Registry{rules: rules, weights: doc.RiskScoring}, nil
}

// Get returns the rule for a term, reporting whether one exists.
func (r *Registry) Get(term string) (Rule, bool) {
	rule, ok := r.rules[term]
	return rule, ok
}

// Active returns all rules sorted by term name.
func (r *Registry) Active() []Rule {
	out := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Term < out[j].Term })
	return out
}

// Weights returns the discrepancy scoring weights.
func (r *Registry) Weights() Weights {
	return r.weights
}

func finalizeRule(rule *Rule) error {
	if !comparisonTypes[rule.Type] {
		return fmt.Errorf("unknown comparison type %q", rule.Type)
	}

	switch rule.Type {
	case NumericTolerance, DateTolerance:
		if rule.Tolerance < 0 {
			return fmt.Errorf("tolerance must not be negative")
		}
		if rule.CriticalThreshold < rule.Tolerance {
			return fmt.Errorf(
				"critical_threshold %v below tolerance %v",
				rule.CriticalThreshold, rule.Tolerance,
			)
		}
		if rule.Deviation == "" {
			rule.Deviation = Relative
		}
		if rule.Deviation != Relative && rule.Deviation != Absolute {
			return fmt.Errorf("unknown deviation mode %q", rule.Deviation)
		}
	case FuzzyMatch:
		if rule.Tolerance <= 0 || rule.Tolerance > 1 {
			return fmt.Errorf("fuzzy tolerance must be in (0, 1]")
		}
	case Categorical:
		if len(rule.AllowedValues) == 0 {
			return fmt.Errorf("categorical rule requires allowed_values")
		}
	case PatternMatch:
		if rule.Pattern == "" {
			return fmt.Errorf("pattern_match rule requires a pattern")
		}
		compiled, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern: %v", err)
		}
		rule.compiled = compiled
	}

	return nil
}

func validateWeights(w Weights) error {
	if w.CriticalDiscrepancy < 0 || w.MinorDiscrepancy < 0 || w.Warning < 0 {
		return fmt.Errorf("weights must not be negative")
	}
	if w.MaxScore <= 0 {
		return fmt.Errorf("max_score must be positive")
	}
	return nil
}
