// Package similarity computes word-embedding cosine similarities on the
// 0–100 scale the game reports.
package similarity

import "github.com/headlands-org/go-semantle/vocab"

// Scale converts a raw cosine into the reported percentage.
const Scale = 100

// Scorer computes the similarity of one guess against a batch of vocabulary
// words.
type Scorer interface {
	// Vocabulary returns the vocabulary ids refer to.
	Vocabulary() *vocab.Vocabulary

	// Scores returns, for each id, cos(guess, word(id)) × Scale, aligned
	// with ids. A zero vector on either side yields NaN.
	Scores(guess string, ids []int32) ([]float64, error)
}
