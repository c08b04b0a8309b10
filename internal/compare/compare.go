package compare

import (
	"fmt"
	"math"
	"strings"

	"github.com/termsight/termsight/internal/rules"
	"github.com/termsight/termsight/pkg/formatting"
)

const epsilon = 1e-9

// MethodUnvalidated marks results for terms with no applicable rule.
const MethodUnvalidated = "unvalidated"

// EvaluateAll evaluates every pair against the registry and classifies each
// result. Results are returned in pair order.
func EvaluateAll(reg *rules.Registry, pairs []Pair) []Result {
	results := make([]Result, 0, len(pairs))
	for _, pair := range pairs {
		results = append(results, Evaluate(reg, pair))
	}
	return results
}

// Evaluate produces a classified result for a single term pair.
func Evaluate(reg *rules.Registry, pair Pair) Result {
	result := evaluate(reg, pair)
	rule, found := reg.Get(pair.Term)
	result.Severity = classify(result.Status, found && rule.Required)
	return result
}

func evaluate(reg *rules.Registry, pair Pair) Result {
	base := Result{
		Term:      pair.Term,
		Extracted: strings.TrimSpace(pair.Extracted),
		Expected:  strings.TrimSpace(pair.Expected),
	}

	rule, found := reg.Get(pair.Term)
	if !found {
		base.Status = Valid
		base.Score = score(1.0)
		base.Method = MethodUnvalidated
		base.Description = fmt.Sprintf("no validation rule for %s", pair.Term)
		return base
	}

	base.Method = string(rule.Type)

	if base.Extracted == "" {
		if rule.Required {
			base.Status = Missing
			base.Score = score(0.0)
			base.Description = fmt.Sprintf("required term %s not found in document", pair.Term)
		} else {
			base.Status = Warning
			base.Description = fmt.Sprintf("%s not found in document", pair.Term)
		}
		return base
	}

	if base.Expected == "" {
		base.Status = Warning
		base.Description = fmt.Sprintf("no internal reference value for %s", pair.Term)
		return base
	}

	switch rule.Type {
	case rules.ExactMatch:
		return exactMatch(base)
	case rules.FuzzyMatch:
		return fuzzyMatch(base, rule)
	case rules.NumericTolerance:
		return numericTolerance(base, rule)
	case rules.DateTolerance:
		return dateTolerance(base, rule)
	case rules.Categorical:
		return categorical(base, rule)
	case rules.PatternMatch:
		return patternMatch(base, rule)
	case rules.RangeCheck:
		return rangeCheck(base)
	}

	// registry validation guarantees a known type; treat anything else as
	// non-comparable
	base.Status = Invalid
	base.Score = score(0.0)
	base.Description = fmt.Sprintf("unsupported comparison for %s", pair.Term)
	return base
}

func exactMatch(r Result) Result {
	if normalize(r.Extracted) == normalize(r.Expected) {
		r.Status = Valid
		r.Score = score(1.0)
		return r
	}

	r.Status = Invalid
	r.Score = score(0.0)
	r.Description = fmt.Sprintf(
		"%s mismatch (expected %q, found %q)",
		r.Term, r.Expected, r.Extracted,
	)
	return r
}

func fuzzyMatch(r Result, rule rules.Rule) Result {
	sim := Similarity(r.Extracted, r.Expected)
	r.Score = score(sim)

	switch {
	case sim >= rule.Tolerance:
		r.Status = Valid
	case sim >= rule.Tolerance/2:
		r.Status = Warning
		r.Description = fmt.Sprintf(
			"%s name format inconsistency (similarity %.2f)", r.Term, sim,
		)
	default:
		r.Status = Invalid
		r.Description = fmt.Sprintf(
			"%s mismatch (similarity %.2f below threshold %.2f)",
			r.Term, sim, rule.Tolerance,
		)
	}
	return r
}

func numericTolerance(r Result, rule rules.Rule) Result {
	expected, err := formatting.ParseAmount(r.Expected)
	if err != nil {
		return nonNumeric(r, r.Expected)
	}
	extracted, err := formatting.ParseAmount(r.Extracted)
	if err != nil {
		return nonNumeric(r, r.Extracted)
	}

	var deviation, matchScore float64
	if rule.Deviation == rules.Absolute {
		deviation = math.Abs(expected - extracted)
		matchScore = math.Max(0, 1-deviation/rule.CriticalThreshold)
	} else {
		deviation = math.Abs(expected-extracted) / math.Max(math.Abs(expected), epsilon)
		matchScore = math.Max(0, 1-deviation)
	}

	r.Score = score(matchScore)

	switch {
	case deviation <= rule.Tolerance:
		r.Status = Valid
	case deviation <= rule.CriticalThreshold:
		r.Status = Warning
		r.Description = describeDeviation(r.Term, deviation, rule)
	default:
		r.Status = Invalid
		r.Description = describeDeviation(r.Term, deviation, rule)
	}
	return r
}

func dateTolerance(r Result, rule rules.Rule) Result {
	expected, err := formatting.ParseDate(r.Expected)
	if err != nil {
		return nonComparable(r, fmt.Sprintf("unparseable date %q", r.Expected))
	}
	extracted, err := formatting.ParseDate(r.Extracted)
	if err != nil {
		return nonComparable(r, fmt.Sprintf("unparseable date %q", r.Extracted))
	}

	dayDiff := math.Abs(extracted.Sub(expected).Hours() / 24)
	r.Score = score(math.Max(0, 1-dayDiff/rule.CriticalThreshold))

	switch {
	case dayDiff <= rule.Tolerance:
		r.Status = Valid
	case dayDiff <= rule.CriticalThreshold:
		r.Status = Warning
		r.Description = fmt.Sprintf("%s mismatch (%.0f days difference)", r.Term, dayDiff)
	default:
		r.Status = Invalid
		r.Description = fmt.Sprintf("%s mismatch (%.0f days difference)", r.Term, dayDiff)
	}
	return r
}

func categorical(r Result, rule rules.Rule) Result {
	extracted := normalize(r.Extracted)

	for _, allowed := range rule.AllowedValues {
		if normalize(allowed) == extracted {
			r.Status = Valid
			r.Score = score(1.0)
			return r
		}
	}

	for synonym, canonical := range rule.Synonyms {
		if normalize(synonym) == extracted {
			r.Status = Warning
			r.Score = score(0.9)
			r.Description = fmt.Sprintf(
				"%s value %q is a synonym of allowed value %q",
				r.Term, r.Extracted, canonical,
			)
			return r
		}
	}

	r.Status = Invalid
	r.Score = score(0.0)
	r.Description = fmt.Sprintf(
		"%s value %q not in allowed set %v",
		r.Term, r.Extracted, rule.AllowedValues,
	)
	return r
}

func patternMatch(r Result, rule rules.Rule) Result {
	if rule.MatchPattern(r.Extracted) {
		r.Status = Valid
		r.Score = score(1.0)
		return r
	}

	r.Status = Invalid
	r.Score = score(0.0)
	r.Description = fmt.Sprintf("%s value %q does not match expected format", r.Term, r.Extracted)
	return r
}

func rangeCheck(r Result) Result {
	extracted, err := formatting.ParseAmount(r.Extracted)
	if err != nil {
		return nonNumeric(r, r.Extracted)
	}

	ok, err := inRange(r.Expected, extracted)
	if err != nil {
		return nonComparable(r, err.Error())
	}

	if ok {
		r.Status = Valid
		r.Score = score(1.0)
		return r
	}

	r.Status = Invalid
	r.Score = score(0.0)
	r.Description = fmt.Sprintf("%s value %v outside expected range %s", r.Term, extracted, r.Expected)
	return r
}

// inRange evaluates a range expression against a value. Supported forms:
// "a-b", ">=x", "<=x", ">x", "<x", or a bare number (equality within epsilon).
func inRange(expr string, value float64) (bool, error) {
	expr = strings.TrimSpace(expr)

	switch {
	case strings.HasPrefix(expr, ">="):
		bound, err := formatting.ParseAmount(expr[2:])
		if err != nil {
			return false, fmt.Errorf("invalid range expression %q", expr)
		}
		return value >= bound, nil
	case strings.HasPrefix(expr, "<="):
		bound, err := formatting.ParseAmount(expr[2:])
		if err != nil {
			return false, fmt.Errorf("invalid range expression %q", expr)
		}
		return value <= bound, nil
	case strings.HasPrefix(expr, ">"):
		bound, err := formatting.ParseAmount(expr[1:])
		if err != nil {
			return false, fmt.Errorf("invalid range expression %q", expr)
		}
		return value > bound, nil
	case strings.HasPrefix(expr, "<"):
		bound, err := formatting.ParseAmount(expr[1:])
		if err != nil {
			return false, fmt.Errorf("invalid range expression %q", expr)
		}
		return value < bound, nil
	}

	if lo, hi, ok := strings.Cut(expr, "-"); ok && lo != "" {
		low, errLo := formatting.ParseAmount(lo)
		high, errHi := formatting.ParseAmount(hi)
		if errLo != nil || errHi != nil {
			return false, fmt.Errorf("invalid range expression %q", expr)
		}
		return value >= low && value <= high, nil
	}

	bound, err := formatting.ParseAmount(expr)
	if err != nil {
		return false, fmt.Errorf("invalid range expression %q", expr)
	}
	return math.Abs(value-bound) < epsilon, nil
}

func describeDeviation(term string, deviation float64, rule rules.Rule) string {
	if rule.Deviation == rules.Absolute {
		return fmt.Sprintf("%s deviation of %.2f exceeds tolerance %.2f", term, deviation, rule.Tolerance)
	}
	return fmt.Sprintf(
		"%s deviation of %.1f%% exceeds tolerance %.1f%%",
		term, deviation*100, rule.Tolerance*100,
	)
}

func nonNumeric(r Result, value string) Result {
	return nonComparable(r, fmt.Sprintf("non-numeric value %q", value))
}

// nonComparable reports a type mismatch as an invalid verdict rather than an
// error.
func nonComparable(r Result, detail string) Result {
	r.Status = Invalid
	r.Score = score(0.0)
	r.Description = fmt.Sprintf("%s not comparable: %s", r.Term, detail)
	return r
}
