package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/headlands-org/go-semantle/embedding"
	"github.com/headlands-org/go-semantle/internal/wordtest"
	"github.com/headlands-org/go-semantle/similarity"
	"github.com/headlands-org/go-semantle/vocab"
)

func houseEngine(t *testing.T) *similarity.Engine {
	t.Helper()
	v, table := wordtest.House()
	e, err := similarity.NewEngine(v, table)
	require.NoError(t, err)
	return e
}

func TestFilterHouseExample(t *testing.T) {
	e := houseEngine(t)
	v := e.Vocabulary()

	got, err := Filter(e, Guess{Word: "house", Reported: 85.003}, v.All())
	require.NoError(t, err)
	assert.Equal(t, []string{"home"}, v.WordsOf(got))

	got, err = Filter(e, Guess{Word: "house", Reported: 100}, v.All())
	require.NoError(t, err)
	assert.Equal(t, []string{"house"}, v.WordsOf(got))

	got, err = Filter(e, Guess{Word: "house", Reported: 999}, v.All())
	require.NoError(t, err)
	assert.Zero(t, got.Len())
}

func TestFilterToleranceBoundary(t *testing.T) {
	e := houseEngine(t)
	v := e.Vocabulary()

	tests := []struct {
		reported float64
		want     []string
	}{
		{reported: 60.004, want: []string{"cabin"}},
		{reported: 59.996, want: []string{"cabin"}},
		{reported: 60.006, want: []string{}},
		{reported: 19.99, want: []string{}},
	}
	for _, tt := range tests {
		got, err := Filter(e, Guess{Word: "house", Reported: tt.reported}, v.All())
		require.NoError(t, err)
		assert.Equal(t, tt.want, v.WordsOf(got), "reported=%v", tt.reported)
	}
}

func TestFilterEmptyCandidates(t *testing.T) {
	e := houseEngine(t)

	got, err := Filter(e, Guess{Word: "boat", Reported: 50}, vocab.Set{})
	require.NoError(t, err, "empty input never reaches the scorer")
	assert.Zero(t, got.Len())
}

func TestFilterWordNotFound(t *testing.T) {
	e := houseEngine(t)

	_, err := Filter(e, Guess{Word: "boat", Reported: 50}, e.Vocabulary().All())
	assert.ErrorIs(t, err, embedding.ErrWordNotFound)
}

func TestFilterOnlyReturnsSubset(t *testing.T) {
	e := houseEngine(t)
	v := e.Vocabulary()

	subset, err := v.SetOf("cabin", "car")
	require.NoError(t, err)
	got, err := Filter(e, Guess{Word: "house", Reported: 85}, subset)
	require.NoError(t, err)
	assert.Zero(t, got.Len(), "home is not a candidate")
}

func TestFilterBatchedEqualsReference(t *testing.T) {
	v, table := wordtest.Random(2000, 10, 50, 11)
	engine, err := similarity.NewEngine(v, table)
	require.NoError(t, err)
	ref := similarity.NewReference(v, table)

	all := v.All()
	for _, hidden := range []string{"w3", "w500", "w1999"} {
		for _, guess := range []string{"w0", "w42", "x1"} {
			truth, err := ref.Similarity(guess, hidden)
			require.NoError(t, err)

			for _, reported := range []float64{truth, truth + 0.004, math.Round(truth*100) / 100, 0, 12.5} {
				g := Guess{Word: guess, Reported: reported}
				batched, err := Filter(engine, g, all)
				require.NoError(t, err)
				scalar, err := Filter(ref, g, all)
				require.NoError(t, err)
				assert.True(t, batched.Equal(scalar), "guess=%s reported=%v: batched %v scalar %v",
					guess, reported, v.WordsOf(batched), v.WordsOf(scalar))
			}
		}
	}
}
