// Package embedding provides word-vector storage: the Store contract the
// similarity code consumes, a compact on-disk Table, and importers for
// word2vec files.
package embedding

import (
	"errors"
	"fmt"
)

// ErrWordNotFound reports a word with no embedding.
var ErrWordNotFound = errors.New("embedding: word not found")

// WordNotFoundError names the missing word. It matches ErrWordNotFound with
// errors.Is.
type WordNotFoundError struct {
	Word string
}

func (e *WordNotFoundError) Error() string {
	return fmt.Sprintf("embedding: word not found: %q", e.Word)
}

// Is reports whether target is ErrWordNotFound.
func (e *WordNotFoundError) Is(target error) bool { return target == ErrWordNotFound }

// Store maps a word to its fixed-dimension embedding.
type Store interface {
	// Dimension returns the embedding dimensionality.
	Dimension() int

	// Lookup returns the vector for word, or a *WordNotFoundError. The
	// returned slice is owned by the store and must not be mutated.
	Lookup(word string) ([]float32, error)
}
