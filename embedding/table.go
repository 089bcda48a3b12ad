package embedding

import (
	"io"

	"github.com/headlands-org/go-semantle/vocab"
)

// Table is an immutable word-vector table stored as one row-major float32
// arena. It implements Store.
type Table struct {
	dimension int

	words  []string
	wordID map[string]int32

	data []float32
	base []byte    // backing bytes when data aliases a decoded buffer
	src  io.Closer // memory mapping, nil for RAM tables
}

// Dimension returns the vector dimensionality.
func (t *Table) Dimension() int { return t.dimension }

// Count reports the number of stored vectors.
func (t *Table) Count() int { return len(t.words) }

// Word returns the word stored at row i.
func (t *Table) Word(i int) string { return t.words[i] }

// Words returns a copy of the stored words in row order.
func (t *Table) Words() []string { return append([]string(nil), t.words...) }

// Mapped reports whether the vectors are served from a memory mapping.
func (t *Table) Mapped() bool { return t.src != nil }

// Lookup returns the stored vector for word. The returned slice aliases the
// table and must not be mutated.
func (t *Table) Lookup(word string) ([]float32, error) {
	pos, ok := t.wordID[word]
	if !ok {
		pos, ok = t.wordID[vocab.Normalize(word)]
	}
	if !ok {
		return nil, &WordNotFoundError{Word: word}
	}
	return t.row(int(pos)), nil
}

// Vector returns a copy of the stored vector for word.
func (t *Table) Vector(word string) ([]float32, bool) {
	vec, err := t.Lookup(word)
	if err != nil {
		return nil, false
	}
	return append([]float32(nil), vec...), true
}

// ForEach iterates over all stored vectors in row order. The provided slice
// must not be mutated.
func (t *Table) ForEach(fn func(word string, vec []float32)) {
	for i, w := range t.words {
		fn(w, t.row(i))
	}
}

// Close releases the memory mapping backing a mapped table. Vectors obtained
// from the table must not be used afterwards.
func (t *Table) Close() error {
	if t.src == nil {
		return nil
	}
	err := t.src.Close()
	t.src = nil
	t.data = nil
	t.base = nil
	return err
}

func (t *Table) row(i int) []float32 {
	return t.data[i*t.dimension : (i+1)*t.dimension : (i+1)*t.dimension]
}
