// Package suggest offers "did you mean" matching for group/permission names,
// grounded on pkg/internal/suggest's levenshtein-based scorer.
package suggest

import (
	"sort"

	"github.com/agext/levenshtein"
)

const minScore = 0.2

type candidate struct {
	text  string
	score float64
}

// Score rates how close given is to other, in [0,1], truncating other to
// given's length when other is longer before comparing so a short typo
// against a long name still scores well. given itself is never truncated.
func Score(given, other string) float64 {
	n := len(given)
	if len(other) < n {
		n = len(other)
	}
	return levenshtein.Similarity(given, other[:n], nil)
}

// Suggest ranks candidates by closeness to given, dropping anything below
// minScore, most similar first. Used when a lookup for a group name fails
// and the caller wants a hint at what was probably meant.
func Suggest(given string, candidates []string) []string {
	var scored []candidate
	for _, c := range candidates {
		s := Score(given, c)
		if s < minScore {
			continue
		}
		scored = append(scored, candidate{text: c, score: s})
	}
	sort.Slice(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	out := make([]string, len(scored))
	for i, c := range scored {
		out[i] = c.text
	}
	return out
}
