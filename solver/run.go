package solver

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/headlands-org/go-semantle/internal/logging"
	"github.com/headlands-org/go-semantle/similarity"
	"github.com/headlands-org/go-semantle/vocab"
)

// State is the phase of a Run.
type State int

const (
	// Active means more than one candidate remains.
	Active State = iota
	// Solved means exactly one candidate remains.
	Solved
	// Exhausted means no candidate remains: some reported similarity was
	// inconsistent with every word still in play.
	Exhausted
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Solved:
		return "solved"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether no further guesses are accepted.
func (s State) Terminal() bool { return s != Active }

var (
	// ErrExhausted describes an Exhausted run.
	ErrExhausted = errors.New("solver: no candidates remain")
	// ErrTerminal is returned when a guess is applied to a finished run.
	ErrTerminal = errors.New("solver: run already finished")
)

// Run owns the candidate set of one game. It is not safe for concurrent use;
// independent runs may share a Scorer.
type Run struct {
	id         uuid.UUID
	scorer     similarity.Scorer
	candidates vocab.Set
	state      State
	round      int
	logger     *logging.Logger
}

// RunOption configures a Run.
type RunOption func(*Run)

// WithLogger sets the logger rounds are reported to.
func WithLogger(l *logging.Logger) RunOption {
	return func(r *Run) { r.logger = l }
}

// NewRun starts a run with every vocabulary word as a candidate.
func NewRun(s similarity.Scorer, opts ...RunOption) *Run {
	r := &Run{
		scorer: s,
		logger: logging.NewDiscardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Reset()
	return r
}

// Reset starts over with the full vocabulary and a fresh run ID.
func (r *Run) Reset() {
	r.id = uuid.New()
	r.candidates = r.scorer.Vocabulary().All()
	r.round = 0
	r.state = stateFor(r.candidates.Len())
	r.logger.Debug("run %s: started with %d candidates", r.id, r.candidates.Len())
}

// Apply narrows the candidates with one guess and returns the new state.
// On error the run is left unchanged.
func (r *Run) Apply(g Guess) (State, error) {
	if r.state.Terminal() {
		return r.state, ErrTerminal
	}
	matched, err := Filter(r.scorer, g, r.candidates)
	if err != nil {
		return r.state, fmt.Errorf("solver: round %d: %w", r.round+1, err)
	}

	before := r.candidates.Len()
	r.candidates = r.candidates.Intersect(matched)
	r.round++
	r.state = stateFor(r.candidates.Len())

	r.logger.Debug("run %s: round %d guess=%q reported=%v: %d -> %d candidates (%s)",
		r.id, r.round, g.Word, g.Reported, before, r.candidates.Len(), r.state)
	if r.state == Exhausted {
		r.logger.Error("run %s: %v after guess %q", r.id, ErrExhausted, g.Word)
	}
	return r.state, nil
}

// Err returns ErrExhausted for an exhausted run and nil otherwise.
func (r *Run) Err() error {
	if r.state == Exhausted {
		return ErrExhausted
	}
	return nil
}

// ID identifies the run in logs.
func (r *Run) ID() uuid.UUID { return r.id }

// State returns the current state.
func (r *Run) State() State { return r.state }

// Round returns the number of guesses applied.
func (r *Run) Round() int { return r.round }

// Len returns the number of remaining candidates.
func (r *Run) Len() int { return r.candidates.Len() }

// Candidates returns a copy of the remaining candidate set.
func (r *Run) Candidates() vocab.Set { return r.candidates.Clone() }

// Words returns the remaining candidates in vocabulary order.
func (r *Run) Words() []string {
	return r.scorer.Vocabulary().WordsOf(r.candidates)
}

// Answer returns the hidden word once the run is solved.
func (r *Run) Answer() (string, bool) {
	if r.state != Solved {
		return "", false
	}
	for id := range r.candidates {
		return r.scorer.Vocabulary().Word(id), true
	}
	return "", false
}

// Sample draws up to n distinct remaining words at random.
func (r *Run) Sample(n int, rng *rand.Rand) []string {
	words := r.Words()
	n = max(0, min(n, len(words)))
	rng.Shuffle(len(words), func(i, j int) { words[i], words[j] = words[j], words[i] })
	return words[:n]
}

func stateFor(n int) State {
	switch {
	case n == 0:
		return Exhausted
	case n == 1:
		return Solved
	default:
		return Active
	}
}
