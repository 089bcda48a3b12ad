// Package vocab holds the ordered word list a solver narrows down, and the
// candidate sets drawn from it.
package vocab

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrUnknownWord is returned when a word is not part of the vocabulary.
var ErrUnknownWord = errors.New("vocab: unknown word")

// Vocabulary is an immutable ordered sequence of distinct words. A word's id
// is its position.
type Vocabulary struct {
	words []string
	ids   map[string]int32
}

// New builds a vocabulary from words in order. Words are normalized; empty
// words and duplicates are rejected.
func New(words []string) (*Vocabulary, error) {
	v := &Vocabulary{
		words: make([]string, 0, len(words)),
		ids:   make(map[string]int32, len(words)),
	}
	for i, w := range words {
		n := Normalize(w)
		if n == "" {
			return nil, fmt.Errorf("vocab: empty word at position %d", i)
		}
		if _, exists := v.ids[n]; exists {
			return nil, fmt.Errorf("vocab: duplicate word %q", n)
		}
		v.ids[n] = int32(len(v.words))
		v.words = append(v.words, n)
	}
	return v, nil
}

// Read parses a newline-separated word list. Blank lines are skipped.
func Read(r io.Reader) (*Vocabulary, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := Normalize(sc.Text())
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("vocab: read word list: %w", err)
	}
	return New(words)
}

// Load reads a word list from disk.
func Load(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vocab: open word list: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Len returns the number of words.
func (v *Vocabulary) Len() int { return len(v.words) }

// Word returns the word with the given id. It panics if id is out of range.
func (v *Vocabulary) Word(id int32) string { return v.words[id] }

// ID returns the id of word.
func (v *Vocabulary) ID(word string) (int32, bool) {
	if id, ok := v.ids[word]; ok {
		return id, true
	}
	id, ok := v.ids[Normalize(word)]
	return id, ok
}

// Words returns a copy of the words in id order.
func (v *Vocabulary) Words() []string {
	return append([]string(nil), v.words...)
}

// All returns a set holding every word of the vocabulary.
func (v *Vocabulary) All() Set {
	s := make(Set, len(v.words))
	for i := range v.words {
		s[int32(i)] = struct{}{}
	}
	return s
}

// SetOf returns the set of the given words.
func (v *Vocabulary) SetOf(words ...string) (Set, error) {
	s := make(Set, len(words))
	for _, w := range words {
		id, ok := v.ID(w)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownWord, w)
		}
		s[id] = struct{}{}
	}
	return s, nil
}

// WordsOf maps a set back to words, in id order.
func (v *Vocabulary) WordsOf(s Set) []string {
	ids := s.IDs()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = v.words[id]
	}
	return out
}
