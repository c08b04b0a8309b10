// Package extraction pulls canonical term-sheet fields out of plain document
// text using ordered pattern lists. Each field records the confidence and
// source pattern of its match for downstream display.
package extraction

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoText indicates the document has no extractable text layer.
var ErrNoText = errors.New("document contains no extractable text")

// Term is a single extracted term-sheet field.
type Term struct {
	Name       string  `json:"term_name"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

type field struct {
	name       string
	confidence float64
	minLength  int
	patterns   []*regexp.Regexp
}

var stopwords = map[string]bool{"the": true, "and": true, "for": true}

// fields are tried in order; within a field the first matching pattern wins.
var fields = []field{
	{
		name:       "trade_id",
		confidence: 0.9,
		patterns: compile(
			`(?i)trade\s*id[:\s]+([A-Z0-9\-]+)`,
			`(?i)reference[:\s]+([A-Z0-9\-]+)`,
			`(?i)deal\s*id[:\s]+([A-Z0-9\-]+)`,
		),
	},
	{
		name:       "counterparty",
		confidence: 0.85,
		minLength:  6,
		patterns: compile(
			`(?i)counterparty[:\s]+([A-Za-z\s&\.,]+?)(?:\n|$|[;:])`,
			`(?i)client[:\s]+([A-Za-z\s&\.,]+?)(?:\n|$|[;:])`,
			`(?i)with[:\s]+([A-Z][A-Za-z\s&\.,]+?)(?:\n|$|[;:])`,
		),
	},
	{
		name:       "notional_amount",
		confidence: 0.9,
		patterns: compile(
			`(?i)notional[:\s]+((?:USD|EUR|GBP)?\s*\$?[\d,\.]+(?:\s*(?:million|billion|bn|m|k))?)`,
			`(?i)principal[:\s]+((?:USD|EUR|GBP)?\s*\$?[\d,\.]+(?:\s*(?:million|billion|bn|m|k))?)`,
			`(?i)amount[:\s]+((?:USD|EUR|GBP)?\s*\$?[\d,\.]+(?:\s*(?:million|billion|bn|m|k))?)`,
		),
	},
	{
		name:       "settlement_date",
		confidence: 0.8,
		patterns: compile(
			`(?i)settlement(?:\s+date)?[:\s]+(\d{4}-\d{2}-\d{2})`,
			`(?i)settlement(?:\s+date)?[:\s]+(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`,
			`(?i)settlement(?:\s+date)?[:\s]+(\d{1,2}\s+\w+\s+\d{2,4})`,
			`(?i)maturity[:\s]+(\d{4}-\d{2}-\d{2})`,
			`(?i)maturity[:\s]+(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`,
		),
	},
	{
		name:       "interest_rate",
		confidence: 0.85,
		patterns: compile(
			`(?i)interest\s+rate[:\s]+([\d\.]+%?)`,
			`(?i)rate[:\s]+([\d\.]+%)`,
			`(?i)coupon[:\s]+([\d\.]+%?)`,
		),
	},
	{
		name:       "currency",
		confidence: 0.9,
		patterns: compile(
			`(?i)currency[:\s]+([A-Z]{3})`,
			`\b(USD|EUR|GBP|JPY|CHF)\b`,
		),
	},
	{
		name:       "payment_terms",
		confidence: 0.7,
		minLength:  4,
		patterns: compile(
			`(?i)payment(?:\s+terms)?[:\s]+([A-Za-z\s\-]+?)(?:\n|$|[;:])`,
			`(?i)frequency[:\s]+([A-Za-z\s\-]+?)(?:\n|$|[;:])`,
		),
	},
	{
		name:       "legal_entity",
		confidence: 0.8,
		minLength:  6,
		patterns: compile(
			`(?i)legal\s+entity[:\s]+([A-Za-z\s&\.,]+?)(?:\n|$|[;:])`,
			`(?i)entity[:\s]+([A-Za-z\s&\.,]+?)(?:\n|$|[;:])`,
		),
	},
}

// ExtractTerms extracts all recognizable term-sheet fields from text.
// Fields with no matching pattern are omitted from the result.
func ExtractTerms(text string) ([]Term, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoText
	}

	terms := make([]Term, 0, len(fields))
	for _, f := range fields {
		if term, ok := f.extract(text); ok {
			terms = append(terms, term)
		}
	}

	return terms, nil
}

func (f field) extract(text string) (Term, bool) {
	for _, pattern := range f.patterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		value := strings.TrimSpace(match[1])
		if len(value) < f.minLength || stopwords[strings.ToLower(value)] {
			continue
		}

		return Term{
			Name:       f.name,
			Value:      value,
			Confidence: f.confidence,
			Source:     "pattern: " + truncate(pattern.String(), 24),
		}, true
	}

	return Term{}, false
}

func compile(exprs ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		patterns[i] = regexp.MustCompile(expr)
	}
	return patterns
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
