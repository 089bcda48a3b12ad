package similarity

import (
	"fmt"

	"github.com/headlands-org/go-semantle/embedding"
	"github.com/headlands-org/go-semantle/internal/kernels"
	"github.com/headlands-org/go-semantle/vocab"
)

// Engine is the batched Scorer. At construction it gathers every vocabulary
// word's vector into one row-major arena indexed by vocabulary id and caches
// the row norms, so a round costs one matrix–vector product over the
// candidate rows plus one norm for the guess.
//
// An Engine is immutable once built and may be shared by concurrent runs.
type Engine struct {
	vocab   *vocab.Vocabulary
	store   embedding.Store
	dim     int
	arena   []float32
	norms   []float64
	workers int
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers splits large batches across n goroutines. The call remains
// synchronous and yields the same values as a serial pass. Values below 2
// keep the serial path.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// NewEngine builds an engine over v backed by store. Every vocabulary word
// must have an embedding; the first missing one is reported as a
// *embedding.WordNotFoundError.
func NewEngine(v *vocab.Vocabulary, store embedding.Store, opts ...Option) (*Engine, error) {
	dim := store.Dimension()
	if dim <= 0 {
		return nil, fmt.Errorf("similarity: store has invalid dimension %d", dim)
	}
	e := &Engine{
		vocab:   v,
		store:   store,
		dim:     dim,
		arena:   make([]float32, v.Len()*dim),
		norms:   make([]float64, v.Len()),
		workers: 1,
	}
	for _, opt := range opts {
		opt(e)
	}

	for i := 0; i < v.Len(); i++ {
		vec, err := store.Lookup(v.Word(int32(i)))
		if err != nil {
			return nil, fmt.Errorf("similarity: vocabulary word %d: %w", i, err)
		}
		if len(vec) != dim {
			return nil, fmt.Errorf("similarity: vector for %q has dimension %d, want %d", v.Word(int32(i)), len(vec), dim)
		}
		copy(e.arena[i*dim:(i+1)*dim], vec)
	}
	kernels.RowNorms(e.norms, e.arena, dim)
	return e, nil
}

// Vocabulary returns the vocabulary the engine was built over.
func (e *Engine) Vocabulary() *vocab.Vocabulary { return e.vocab }

// Dimension returns the embedding dimensionality.
func (e *Engine) Dimension() int { return e.dim }

// Scores computes the similarity of guess to each vocabulary id in one
// batched pass. guess may be any word the store knows, inside the vocabulary
// or not.
func (e *Engine) Scores(guess string, ids []int32) ([]float64, error) {
	g, err := e.store.Lookup(guess)
	if err != nil {
		return nil, err
	}
	if len(g) != e.dim {
		return nil, fmt.Errorf("similarity: vector for %q has dimension %d, want %d", guess, len(g), e.dim)
	}
	for _, id := range ids {
		if id < 0 || int(id) >= len(e.norms) {
			return nil, fmt.Errorf("similarity: id %d outside vocabulary of %d words", id, len(e.norms))
		}
	}

	out := make([]float64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	kernels.MatVecParallel(out, e.arena, ids, g, e.workers)

	gNorm := kernels.L2Norm(g)
	for i, id := range ids {
		out[i] = out[i] / (gNorm * e.norms[id]) * Scale
	}
	return out, nil
}
