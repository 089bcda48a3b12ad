package semantle

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/headlands-org/go-semantle/internal/wordtest"
)

func writeFixture(t *testing.T) (vectorsPath, wordsPath string) {
	t.Helper()
	_, table := wordtest.House()
	dir := t.TempDir()

	vectorsPath = filepath.Join(dir, "vectors.smtl")
	f, err := os.Create(vectorsPath)
	require.NoError(t, err)
	_, err = table.WriteTo(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	wordsPath = filepath.Join(dir, "secret-words.txt")
	require.NoError(t, os.WriteFile(wordsPath, []byte("house\nhome\ncabin\ncar\n"), 0o644))
	return vectorsPath, wordsPath
}

func TestOpenAndSolve(t *testing.T) {
	vectorsPath, wordsPath := writeFixture(t)

	for _, mapped := range []bool{false, true} {
		var logs bytes.Buffer
		s, err := Open(vectorsPath, wordsPath, WithMmap(mapped), WithVerbose(true), WithLogOutput(&logs))
		require.NoError(t, err)

		run := s.NewRun()
		state, err := run.Apply(Guess{Word: "house", Reported: 85.003})
		require.NoError(t, err)
		assert.Equal(t, Solved, state)
		answer, ok := run.Answer()
		require.True(t, ok)
		assert.Equal(t, "home", answer)
		assert.Contains(t, logs.String(), "round 1")

		sim, err := s.Similarity("house", "cabin")
		require.NoError(t, err)
		assert.InDelta(t, 60, sim, 1e-4)

		require.NoError(t, s.Close())
	}
}

func TestOpenMissingWordInVectors(t *testing.T) {
	vectorsPath, wordsPath := writeFixture(t)
	require.NoError(t, os.WriteFile(wordsPath, []byte("house\nboat\n"), 0o644))

	_, err := Open(vectorsPath, wordsPath)
	assert.ErrorIs(t, err, ErrWordNotFound)
}

func TestOpenMissingFiles(t *testing.T) {
	vectorsPath, wordsPath := writeFixture(t)

	_, err := Open(filepath.Join(t.TempDir(), "none.smtl"), wordsPath)
	assert.ErrorContains(t, err, "load vectors")

	_, err = Open(vectorsPath, filepath.Join(t.TempDir(), "none.txt"))
	assert.ErrorContains(t, err, "load words")
}

func TestNewWithStore(t *testing.T) {
	v, table := wordtest.House()
	s, err := New(v, table, WithWorkers(2))
	require.NoError(t, err)
	defer s.Close()

	run := s.NewRun()
	state, err := run.Apply(Guess{Word: "house", Reported: 999})
	require.NoError(t, err)
	assert.Equal(t, Exhausted, state)
	assert.ErrorIs(t, run.Err(), ErrExhausted)
}
