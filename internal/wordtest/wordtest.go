// Package wordtest builds small deterministic vocabularies and embedding
// tables for tests.
package wordtest

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/headlands-org/go-semantle/embedding"
	"github.com/headlands-org/go-semantle/vocab"
)

// House returns the four-word example: relative to "house", "home" scores
// 85, "cabin" 60 and "car" 20.
func House() (*vocab.Vocabulary, *embedding.Table) {
	words := []string{"house", "home", "cabin", "car"}
	vecs := [][]float32{
		{1, 0, 0},
		{0.85, float32(math.Sqrt(1 - 0.85*0.85)), 0},
		{0.6, 0.8, 0},
		{0.2, 0, float32(math.Sqrt(1 - 0.2*0.2))},
	}
	return mustVocab(words), buildTable(words, vecs)
}

// Random returns a vocabulary of n words ("w0", "w1", ...) with random
// vectors of the given dimension, plus extra out-of-vocabulary words
// ("x0", ...) that exist only in the table.
func Random(n, extra, dim int, seed int64) (*vocab.Vocabulary, *embedding.Table) {
	rng := rand.New(rand.NewSource(seed))
	words := make([]string, 0, n+extra)
	vecs := make([][]float32, 0, n+extra)
	for i := 0; i < n+extra; i++ {
		name := fmt.Sprintf("w%d", i)
		if i >= n {
			name = fmt.Sprintf("x%d", i-n)
		}
		vec := make([]float32, dim)
		for j := range vec {
			vec[j] = float32(rng.NormFloat64())
		}
		words = append(words, name)
		vecs = append(vecs, vec)
	}
	return mustVocab(words[:n]), buildTable(words, vecs)
}

func buildTable(words []string, vecs [][]float32) *embedding.Table {
	b := embedding.NewBuilder(embedding.WithDimension(len(vecs[0])))
	for i, w := range words {
		if err := b.Add(w, vecs[i]); err != nil {
			panic(err)
		}
	}
	t, err := b.Build(context.Background())
	if err != nil {
		panic(err)
	}
	return t
}

func mustVocab(words []string) *vocab.Vocabulary {
	v, err := vocab.New(words)
	if err != nil {
		panic(err)
	}
	return v
}
