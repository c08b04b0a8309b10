package compare

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// normalize lowercases via Unicode case folding and collapses runs of
// whitespace to single spaces.
func normalize(s string) string {
	return strings.Join(strings.Fields(folder.String(s)), " ")
}

// Similarity returns a normalized edit-distance ratio in [0,1] between the
// two strings after normalization. Identical strings score 1.0; strings with
// nothing in common approach 0.0.
func Similarity(a, b string) float64 {
	a = normalize(a)
	b = normalize(b)

	if a == b {
		return 1.0
	}

	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1.0
	}

	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}
