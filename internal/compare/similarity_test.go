package compare_test

import (
	"math"
	"testing"

	"github.com/termsight/termsight/internal/compare"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{
			name: "identical",
			a:    "Goldman Sachs International",
			b:    "Goldman Sachs International",
			want: 1.0,
		},
		{
			name: "case and whitespace fold away",
			a:    "  GOLDMAN   SACHS  ",
			b:    "goldman sachs",
			want: 1.0,
		},
		{
			name: "single character deletion",
			a:    "quarterly",
			b:    "quartely",
			want: 0.8889,
		},
		{
			name: "abbreviated legal form",
			a:    "Deutsche Bank AG",
			b:    "Deutsche Bank Aktiengesellschaft",
			want: 0.5,
		},
		{
			name: "both empty",
			a:    "",
			b:    "",
			want: 1.0,
		},
		{
			name: "one empty",
			a:    "Deutsche Bank",
			b:    "",
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compare.Similarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-4 {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			rev := compare.Similarity(tt.b, tt.a)
			if math.Abs(got-rev) > 1e-9 {
				t.Errorf("Similarity is not symmetric: %v vs %v", got, rev)
			}
		})
	}
}
