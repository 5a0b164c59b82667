package media

import (
	"github.com/pmezard/go-difflib/difflib"
)

// SimilarityRatio returns the matching-block ratio of two strings, compared
// character by character: 2*M/T where M is the number of matched
// characters and T the combined length. Equal strings score 1.0.
func SimilarityRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	return difflib.NewMatcher(chars(a), chars(b)).Ratio()
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
