package solver

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/headlands-org/go-semantle/embedding"
	"github.com/headlands-org/go-semantle/internal/wordtest"
	"github.com/headlands-org/go-semantle/similarity"
)

func TestRunSolvesHouseExample(t *testing.T) {
	r := NewRun(houseEngine(t))
	require.Equal(t, Active, r.State())
	require.Equal(t, 4, r.Len())

	state, err := r.Apply(Guess{Word: "house", Reported: 85.003})
	require.NoError(t, err)
	assert.Equal(t, Solved, state)
	assert.NoError(t, r.Err())

	answer, ok := r.Answer()
	require.True(t, ok)
	assert.Equal(t, "home", answer)
	assert.Equal(t, 1, r.Round())
}

func TestRunExhausts(t *testing.T) {
	r := NewRun(houseEngine(t))

	state, err := r.Apply(Guess{Word: "house", Reported: 999})
	require.NoError(t, err)
	assert.Equal(t, Exhausted, state)
	assert.ErrorIs(t, r.Err(), ErrExhausted)
	_, ok := r.Answer()
	assert.False(t, ok)

	state, err = r.Apply(Guess{Word: "house", Reported: 85})
	assert.ErrorIs(t, err, ErrTerminal)
	assert.Equal(t, Exhausted, state)
}

func TestRunReset(t *testing.T) {
	r := NewRun(houseEngine(t))
	firstID := r.ID()

	_, err := r.Apply(Guess{Word: "house", Reported: 85})
	require.NoError(t, err)
	require.Equal(t, Solved, r.State())

	r.Reset()
	assert.Equal(t, Active, r.State())
	assert.Equal(t, 4, r.Len())
	assert.Zero(t, r.Round())
	assert.NotEqual(t, firstID, r.ID())
}

func TestRunErrorLeavesStateUnchanged(t *testing.T) {
	r := NewRun(houseEngine(t))

	_, err := r.Apply(Guess{Word: "boat", Reported: 50})
	require.ErrorIs(t, err, embedding.ErrWordNotFound)
	assert.Equal(t, Active, r.State())
	assert.Equal(t, 4, r.Len())
	assert.Zero(t, r.Round())
}

// playRandomGame reports the true similarity of each guess to hidden and
// checks the run invariants after every round.
func playRandomGame(t *testing.T, seed int64) {
	t.Helper()
	v, table := wordtest.Random(800, 50, 32, seed)
	engine, err := similarity.NewEngine(v, table)
	require.NoError(t, err)
	ref := similarity.NewReference(v, table)

	rng := rand.New(rand.NewSource(seed))
	hidden := v.Word(int32(rng.Intn(v.Len())))
	hiddenID, _ := v.ID(hidden)

	r := NewRun(engine)
	prev := r.Len()
	for r.State() == Active {
		require.LessOrEqual(t, r.Round(), v.Len(), "run must terminate")

		guess := v.Word(int32(rng.Intn(v.Len())))
		if rng.Intn(3) == 0 {
			guess = "x" + string(rune('0'+rng.Intn(10)))
		}
		truth, err := ref.Similarity(guess, hidden)
		require.NoError(t, err)

		g := Guess{Word: guess, Reported: truth}
		_, err = r.Apply(g)
		require.NoError(t, err)

		// Monotonicity.
		require.LessOrEqual(t, r.Len(), prev)
		prev = r.Len()

		// Self-consistency.
		require.True(t, r.Candidates().Contains(hiddenID), "hidden word evicted by guess %q", guess)

		// Idempotence of a repeated guess.
		again, err := Filter(engine, g, r.Candidates())
		require.NoError(t, err)
		require.True(t, again.Equal(r.Candidates()))
	}

	require.Equal(t, Solved, r.State())
	answer, ok := r.Answer()
	require.True(t, ok)
	assert.Equal(t, hidden, answer)
}

func TestRunInvariants(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		playRandomGame(t, seed)
	}
}

func TestRunSample(t *testing.T) {
	r := NewRun(houseEngine(t))
	rng := rand.New(rand.NewSource(1))

	sample := r.Sample(3, rng)
	assert.Len(t, sample, 3)
	for _, w := range sample {
		assert.Contains(t, []string{"house", "home", "cabin", "car"}, w)
	}
	assert.Len(t, r.Sample(10, rng), 4)
	assert.Equal(t, []string{"house", "home", "cabin", "car"}, r.Words(), "sampling must not reorder the run")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "active", Active.String())
	assert.Equal(t, "solved", Solved.String())
	assert.Equal(t, "exhausted", Exhausted.String())
	assert.True(t, Solved.Terminal())
	assert.False(t, Active.Terminal())
}
