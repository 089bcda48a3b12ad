package similarity

import (
	"math"

	"github.com/headlands-org/go-semantle/embedding"
	"github.com/headlands-org/go-semantle/vocab"
)

// Reference is the one-word-at-a-time Scorer: every candidate pays its own
// store lookups and norm computations. It is the behavioural baseline the
// batched Engine must agree with.
type Reference struct {
	vocab *vocab.Vocabulary
	store embedding.Store
}

// NewReference returns a scalar scorer over v backed by store.
func NewReference(v *vocab.Vocabulary, store embedding.Store) *Reference {
	return &Reference{vocab: v, store: store}
}

// Vocabulary returns the vocabulary ids refer to.
func (r *Reference) Vocabulary() *vocab.Vocabulary { return r.vocab }

// Scores computes each similarity independently.
func (r *Reference) Scores(guess string, ids []int32) ([]float64, error) {
	out := make([]float64, len(ids))
	for i, id := range ids {
		sim, err := r.Similarity(guess, r.vocab.Word(id))
		if err != nil {
			return nil, err
		}
		out[i] = sim
	}
	return out, nil
}

// Similarity returns cos(a, b) × Scale for two words.
func (r *Reference) Similarity(a, b string) (float64, error) {
	va, err := r.store.Lookup(a)
	if err != nil {
		return 0, err
	}
	vb, err := r.store.Lookup(b)
	if err != nil {
		return 0, err
	}
	return Cosine(va, vb) * Scale, nil
}

// Cosine returns the cosine similarity of two vectors in [-1, 1]. Vectors of
// different lengths, or a zero vector on either side, yield NaN.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return math.NaN()
	}
	var dot, na, nb float64
	for i := range a {
		fa, fb := float64(a[i]), float64(b[i])
		dot += fa * fb
		na += fa * fa
		nb += fb * fb
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
