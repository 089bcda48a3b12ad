// Package config loads solver settings from the environment and an optional
// .env file.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// VectorsPath is the embedding table written by `semantle convert`.
	VectorsPath string
	// WordsPath is the list of possible hidden words, one per line.
	WordsPath string
	// Mmap serves the table from a memory mapping instead of the heap.
	Mmap bool
	// Workers splits each round's batch across goroutines; 1 is serial.
	Workers int
	// SampleSize is how many remaining words are shown after each guess.
	SampleSize int
	LogLevel   string
}

// Load reads .env (if present) and the SEMANTLE_* environment variables.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && len(envFiles) > 0 {
		return nil, fmt.Errorf("config: load env file: %w", err)
	}

	return &Config{
		VectorsPath: getEnv("SEMANTLE_VECTORS", "word2vec.smtl"),
		WordsPath:   getEnv("SEMANTLE_WORDS", "secret-words.txt"),
		Mmap:        getEnvBool("SEMANTLE_MMAP", false),
		Workers:     getEnvInt("SEMANTLE_WORKERS", 1),
		SampleSize:  getEnvInt("SEMANTLE_SAMPLE", 3),
		LogLevel:    getEnv("SEMANTLE_LOG_LEVEL", "info"),
	}, nil
}

// Validate checks the settings for obvious mistakes.
func (c *Config) Validate() error {
	if c.VectorsPath == "" {
		return fmt.Errorf("SEMANTLE_VECTORS is required")
	}
	if c.WordsPath == "" {
		return fmt.Errorf("SEMANTLE_WORDS is required")
	}
	if c.Workers < 1 {
		return fmt.Errorf("SEMANTLE_WORKERS must be at least 1, got %d", c.Workers)
	}
	if c.Workers > 4*runtime.NumCPU() {
		return fmt.Errorf("SEMANTLE_WORKERS=%d exceeds 4x the %d available CPUs", c.Workers, runtime.NumCPU())
	}
	if c.SampleSize < 0 {
		return fmt.Errorf("SEMANTLE_SAMPLE must not be negative, got %d", c.SampleSize)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}
