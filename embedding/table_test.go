package embedding

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestTable(t *testing.T) *Table {
	t.Helper()
	builder := NewBuilder(WithDimension(3))
	input := []struct {
		word string
		vec  []float32
	}{
		{"house", []float32{1, 0, 0}},
		{"home", []float32{0.8, 0.6, 0}},
		{"car", []float32{0, 0, 2}},
	}
	for _, in := range input {
		require.NoError(t, builder.Add(in.word, in.vec), in.word)
	}
	table, err := builder.Build(context.Background())
	require.NoError(t, err)
	return table
}

func TestBuilderLookup(t *testing.T) {
	table := buildTestTable(t)

	assert.Equal(t, 3, table.Dimension())
	assert.Equal(t, 3, table.Count())

	vec, err := table.Lookup("home")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.8, 0.6, 0}, vec)

	_, err = table.Lookup("boat")
	require.ErrorIs(t, err, ErrWordNotFound)
	var nf *WordNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "boat", nf.Word)

	copied, ok := table.Vector("car")
	require.True(t, ok)
	copied[2] = 99
	again, _ := table.Lookup("car")
	assert.Equal(t, float32(2), again[2], "Vector must return a copy")
}

func TestBuilderRejectsBadInput(t *testing.T) {
	builder := NewBuilder()
	require.NoError(t, builder.Add("house", []float32{1, 2}))

	assert.ErrorContains(t, builder.Add("house", []float32{1, 2}), "duplicate")
	assert.ErrorContains(t, builder.Add("home", []float32{1, 2, 3}), "dimension mismatch")
	assert.ErrorContains(t, builder.Add(" ", []float32{1, 2}), "empty word")

	_, err := builder.Build(context.Background())
	require.NoError(t, err)
	_, err = builder.Build(context.Background())
	assert.ErrorIs(t, err, errBuilderFinalised)

	_, err = NewBuilder().Build(context.Background())
	assert.ErrorContains(t, err, "no vectors")
}

func TestBuildHonoursCancelledContext(t *testing.T) {
	builder := NewBuilder()
	require.NoError(t, builder.Add("house", []float32{1}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := builder.Build(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMarshalRoundTrip(t *testing.T) {
	table := buildTestTable(t)

	data, err := table.Marshal()
	require.NoError(t, err)

	loaded, err := Unmarshal(data)
	require.NoError(t, err)
	assertSameTable(t, table, loaded)
}

func TestOpenRoundTrip(t *testing.T) {
	table := buildTestTable(t)
	path := filepath.Join(t.TempDir(), "vectors.smtl")

	f, err := os.Create(path)
	require.NoError(t, err)
	_, err = table.WriteTo(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	for _, mapped := range []bool{false, true} {
		loaded, err := Open(path, WithMmap(mapped))
		require.NoError(t, err)
		assert.Equal(t, mapped, loaded.Mapped())
		assertSameTable(t, table, loaded)
		require.NoError(t, loaded.Close())
	}

	hdr, err := ReadHeader(path)
	require.NoError(t, err)
	assert.Equal(t, Header{Version: tableVersion, Dimension: 3, Count: 3}, hdr)
}

func TestUnmarshalRejectsCorruptData(t *testing.T) {
	table := buildTestTable(t)
	data, err := table.Marshal()
	require.NoError(t, err)

	_, err = Unmarshal(data[:10])
	assert.ErrorContains(t, err, "too small")

	_, err = Unmarshal(data[:len(data)-1])
	assert.ErrorContains(t, err, "truncated")

	bad := append([]byte(nil), data...)
	bad[0] = 'X'
	_, err = Unmarshal(bad)
	assert.ErrorContains(t, err, "invalid magic")
}

func assertSameTable(t *testing.T, want, got *Table) {
	t.Helper()
	require.Equal(t, want.Dimension(), got.Dimension())
	require.Equal(t, want.Count(), got.Count())
	assert.Equal(t, want.Words(), got.Words())
	want.ForEach(func(word string, vec []float32) {
		other, err := got.Lookup(word)
		require.NoError(t, err, word)
		assert.Equal(t, vec, other, word)
	})
}
