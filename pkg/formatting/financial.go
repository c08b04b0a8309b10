package formatting

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	amountPattern = regexp.MustCompile(`-?\d[\d,]*\.?\d*`)

	multipliers = map[string]float64{
		"k":        1e3,
		"thousand": 1e3,
		"m":        1e6,
		"mm":       1e6,
		"million":  1e6,
		"b":        1e9,
		"bn":       1e9,
		"billion":  1e9,
	}
)

// ParseAmount parses a numeric value from financial text. It tolerates
// currency symbols, thousands separators, percent signs, trailing currency
// codes, and scale words ("$30,000,000 USD", "2.5 million", "4.40%").
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	match := amountPattern.FindString(s)
	if match == "" {
		return 0, fmt.Errorf("no numeric value in %q", s)
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	rest := strings.ToLower(strings.TrimSpace(s[strings.Index(s, match)+len(match):]))
	for word, mult := range multipliers {
		if rest == word || strings.HasPrefix(rest, word+" ") {
			return value * mult, nil
		}
	}

	return value, nil
}

// dateLayouts covers the formats seen in term-sheet documents and trade
// records, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"01/02/2006",
	"2006/01/02",
	"02-Jan-2006",
}

// ParseDate parses a date from any of the supported term-sheet layouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}
