package search

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Similarity scores how well text matches query, in [0, 1].
//
// Three signals are combined by taking their maximum:
//   - sequence ratio of the normalized forms
//   - sequence ratio of the compact forms, which tolerates spacing and
//     concatenation differences ("deltadm" vs "delta dm")
//   - fraction of the query's distinct words present in the text
//
// Empty or whitespace-only inputs score 0.
func Similarity(query, text string) float64 {
	if query == "" || text == "" {
		return 0
	}
	qNorm := normalize(query)
	tNorm := normalize(text)
	if qNorm == "" || tNorm == "" {
		return 0
	}

	best := ratio(qNorm, tNorm)
	if r := ratio(compact(query), compact(text)); r > best {
		best = r
	}

	qTokens := tokenSet(qNorm)
	tTokens := tokenSet(tNorm)
	shared := 0
	for w := range qTokens {
		if _, ok := tTokens[w]; ok {
			shared++
		}
	}
	if overlap := float64(shared) / float64(max(1, len(qTokens))); overlap > best {
		best = overlap
	}
	return best
}

// ratio is the character-level matching-block ratio 2*M/T.
func ratio(a, b string) float64 {
	return difflib.NewMatcher(chars(a), chars(b)).Ratio()
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
