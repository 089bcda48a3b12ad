// Package semantle solves the word-similarity deduction game: it narrows a
// vocabulary to the words consistent with every (guess, similarity) report.
package semantle

import (
	"fmt"
	"io"
	"os"

	"github.com/headlands-org/go-semantle/embedding"
	"github.com/headlands-org/go-semantle/internal/logging"
	"github.com/headlands-org/go-semantle/similarity"
	"github.com/headlands-org/go-semantle/solver"
	"github.com/headlands-org/go-semantle/vocab"
)

// Guess is one round of input.
type Guess = solver.Guess

// State is the phase of a run.
type State = solver.State

const (
	Active    = solver.Active
	Solved    = solver.Solved
	Exhausted = solver.Exhausted

	// Tolerance is the accepted gap between reported and computed
	// similarity, in percentage points.
	Tolerance = solver.Tolerance
)

// Run is one game in progress.
type Run = solver.Run

// Errors re-exported for callers of this package.
var (
	ErrWordNotFound = embedding.ErrWordNotFound
	ErrExhausted    = solver.ErrExhausted
	ErrTerminal     = solver.ErrTerminal
)

// Options configures a Solver.
type Options struct {
	// Mmap serves the embedding table from a read-only memory mapping.
	Mmap bool

	// Workers splits each round's batch across goroutines (default 1).
	Workers int

	// Verbose logs every round to LogOutput.
	Verbose bool

	// LogOutput receives verbose logs (default os.Stderr).
	LogOutput io.Writer
}

// Option is a functional option for configuring the solver.
type Option func(*Options)

// WithMmap selects the memory-mapped table loader.
func WithMmap(enabled bool) Option {
	return func(o *Options) { o.Mmap = enabled }
}

// WithWorkers sets the number of goroutines a round's batch is split across.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithVerbose enables per-round debug logging.
func WithVerbose(v bool) Option {
	return func(o *Options) { o.Verbose = v }
}

// WithLogOutput redirects verbose logging.
func WithLogOutput(w io.Writer) Option {
	return func(o *Options) { o.LogOutput = w }
}

// Solver holds the read-only state shared by every run: the vocabulary, the
// embedding store and the similarity engine built over them.
type Solver struct {
	vocab  *vocab.Vocabulary
	store  embedding.Store
	table  *embedding.Table
	engine *similarity.Engine
	logger *logging.Logger
}

// Open loads the embedding table at vectorsPath and the hidden-word list at
// wordsPath.
func Open(vectorsPath, wordsPath string, opts ...Option) (*Solver, error) {
	options := resolveOptions(opts)

	table, err := embedding.Open(vectorsPath, embedding.WithMmap(options.Mmap))
	if err != nil {
		return nil, fmt.Errorf("load vectors: %w", err)
	}
	v, err := vocab.Load(wordsPath)
	if err != nil {
		table.Close()
		return nil, fmt.Errorf("load words: %w", err)
	}

	s, err := newSolver(v, table, options)
	if err != nil {
		table.Close()
		return nil, err
	}
	s.table = table
	return s, nil
}

// New builds a solver over an already loaded vocabulary and store.
func New(v *vocab.Vocabulary, store embedding.Store, opts ...Option) (*Solver, error) {
	return newSolver(v, store, resolveOptions(opts))
}

func resolveOptions(opts []Option) Options {
	options := Options{
		Workers:   1,
		LogOutput: os.Stderr,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

func newSolver(v *vocab.Vocabulary, store embedding.Store, options Options) (*Solver, error) {
	engine, err := similarity.NewEngine(v, store, similarity.WithWorkers(options.Workers))
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}
	logger := logging.NewDiscardLogger()
	if options.Verbose {
		logger = logging.NewWithWriters("debug", options.LogOutput, options.LogOutput)
	}
	return &Solver{vocab: v, store: store, engine: engine, logger: logger}, nil
}

// NewRun starts a game with every vocabulary word as a candidate.
func (s *Solver) NewRun() *Run {
	return solver.NewRun(s.engine, solver.WithLogger(s.logger))
}

// Vocabulary returns the hidden-word vocabulary.
func (s *Solver) Vocabulary() *vocab.Vocabulary { return s.vocab }

// Engine returns the batched similarity engine.
func (s *Solver) Engine() *similarity.Engine { return s.engine }

// Reference returns a one-word-at-a-time scorer over the same data.
func (s *Solver) Reference() *similarity.Reference {
	return similarity.NewReference(s.vocab, s.store)
}

// Similarity returns the similarity of two words on the 0–100 scale.
func (s *Solver) Similarity(a, b string) (float64, error) {
	return s.Reference().Similarity(a, b)
}

// Close releases the table opened by Open.
func (s *Solver) Close() error {
	if s.table == nil {
		return nil
	}
	return s.table.Close()
}
