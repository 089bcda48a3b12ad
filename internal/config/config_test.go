package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SEMANTLE_VECTORS", "SEMANTLE_WORDS", "SEMANTLE_MMAP",
		"SEMANTLE_WORKERS", "SEMANTLE_SAMPLE", "SEMANTLE_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "word2vec.smtl", cfg.VectorsPath)
	assert.Equal(t, "secret-words.txt", cfg.WordsPath)
	assert.False(t, cfg.Mmap)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 3, cfg.SampleSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SEMANTLE_VECTORS", "/data/gnews.smtl")
	t.Setenv("SEMANTLE_MMAP", "true")
	t.Setenv("SEMANTLE_WORKERS", "2")
	t.Setenv("SEMANTLE_SAMPLE", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/data/gnews.smtl", cfg.VectorsPath)
	assert.True(t, cfg.Mmap)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 3, cfg.SampleSize, "unparsable values fall back to the default")
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "solver.env")
	require.NoError(t, os.WriteFile(path, []byte("SEMANTLE_WORDS=custom.txt\nSEMANTLE_LOG_LEVEL=debug\n"), 0o644))

	// godotenv does not override variables that are already set, so drop
	// the empty placeholders first.
	os.Unsetenv("SEMANTLE_WORDS")
	os.Unsetenv("SEMANTLE_LOG_LEVEL")
	t.Cleanup(func() {
		os.Unsetenv("SEMANTLE_WORDS")
		os.Unsetenv("SEMANTLE_LOG_LEVEL")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom.txt", cfg.WordsPath)
	assert.Equal(t, "debug", cfg.LogLevel)

	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{VectorsPath: "v", WordsPath: "w", Workers: 1, SampleSize: 3}
	require.NoError(t, base.Validate())

	bad := base
	bad.Workers = 0
	assert.ErrorContains(t, bad.Validate(), "SEMANTLE_WORKERS")

	bad = base
	bad.VectorsPath = ""
	assert.ErrorContains(t, bad.Validate(), "SEMANTLE_VECTORS")

	bad = base
	bad.SampleSize = -1
	assert.ErrorContains(t, bad.Validate(), "SEMANTLE_SAMPLE")
}
