// Package solver narrows a vocabulary to the words consistent with every
// reported guess similarity.
package solver

import (
	"math"

	"github.com/headlands-org/go-semantle/similarity"
	"github.com/headlands-org/go-semantle/vocab"
)

// Tolerance is the largest accepted gap, in percentage points, between a
// reported similarity and the computed one. It must match the precision of
// whatever produced the reported scores.
const Tolerance = 0.005

// Guess is one validated round of input: a guessed word and the similarity
// the game reported for it.
type Guess struct {
	Word     string
	Reported float64
}

// Filter returns the candidates whose similarity to g.Word lies within
// Tolerance of g.Reported. An empty candidate set yields an empty result.
func Filter(s similarity.Scorer, g Guess, candidates vocab.Set) (vocab.Set, error) {
	if candidates.Len() == 0 {
		return vocab.Set{}, nil
	}
	ids := candidates.IDs()
	scores, err := s.Scores(g.Word, ids)
	if err != nil {
		return nil, err
	}
	out := make(vocab.Set)
	for i, id := range ids {
		if within(scores[i], g.Reported) {
			out[id] = struct{}{}
		}
	}
	return out, nil
}

// within reports |score - reported| <= Tolerance. NaN never matches.
func within(score, reported float64) bool {
	return math.Abs(score-reported) <= Tolerance
}
