package embedding

import (
	"context"
	"errors"
	"fmt"

	"github.com/headlands-org/go-semantle/vocab"
)

var errBuilderFinalised = errors.New("embedding: builder already built")

// Builder accumulates word vectors and produces an immutable Table.
type Builder struct {
	dimension int

	words   []string
	vectors []float32
	wordSet map[string]struct{}

	built bool
}

// BuilderOption configures the builder.
type BuilderOption func(*Builder)

// WithDimension sets the vector dimension up front.
func WithDimension(dim int) BuilderOption {
	return func(b *Builder) { b.dimension = dim }
}

// WithCapacity preallocates room for n vectors.
func WithCapacity(n int) BuilderOption {
	return func(b *Builder) {
		b.words = make([]string, 0, n)
		b.wordSet = make(map[string]struct{}, n)
		if b.dimension > 0 {
			b.vectors = make([]float32, 0, n*b.dimension)
		}
	}
}

// NewBuilder returns an empty Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{wordSet: make(map[string]struct{})}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Len reports how many vectors have been added.
func (b *Builder) Len() int { return len(b.words) }

// Add inserts the vector for word. The vector is copied.
func (b *Builder) Add(word string, vec []float32) error {
	if b.built {
		return errBuilderFinalised
	}
	word = vocab.Normalize(word)
	if word == "" {
		return errors.New("embedding: empty word")
	}
	if len(word) > maxWordBytes {
		return fmt.Errorf("embedding: word too long (%d bytes)", len(word))
	}
	if _, exists := b.wordSet[word]; exists {
		return fmt.Errorf("embedding: duplicate word %q", word)
	}
	if b.dimension == 0 {
		b.dimension = len(vec)
	}
	if len(vec) == 0 || len(vec) != b.dimension {
		return fmt.Errorf("embedding: vector dimension mismatch for %q: got %d want %d", word, len(vec), b.dimension)
	}

	b.words = append(b.words, word)
	b.vectors = append(b.vectors, vec...)
	b.wordSet[word] = struct{}{}
	return nil
}

// Has reports whether word was already added.
func (b *Builder) Has(word string) bool {
	_, ok := b.wordSet[vocab.Normalize(word)]
	return ok
}

// Build materialises the read-only table.
func (b *Builder) Build(ctx context.Context) (*Table, error) {
	if b.built {
		return nil, errBuilderFinalised
	}
	if len(b.words) == 0 {
		return nil, errors.New("embedding: no vectors added")
	}
	if b.dimension > maxDimension {
		return nil, fmt.Errorf("embedding: dimension %d exceeds %d", b.dimension, maxDimension)
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	t := &Table{
		dimension: b.dimension,
		words:     b.words,
		wordID:    make(map[string]int32, len(b.words)),
		data:      b.vectors,
	}
	for i, w := range t.words {
		t.wordID[w] = int32(i)
	}

	b.built = true
	b.words, b.vectors, b.wordSet = nil, nil, nil
	return t, nil
}
