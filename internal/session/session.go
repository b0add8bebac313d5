// Package session composes the dictionary, grid, solution placer, and
// filler into the single entry point a caller drives: give it a grid shape,
// a solution phrase, and a dictionary, get back a filled grid or a typed
// failure.
package session

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/wordsearch/solver/internal/dictionary"
	"github.com/wordsearch/solver/internal/fill"
	"github.com/wordsearch/solver/internal/grid"
	"github.com/wordsearch/solver/internal/solution"
)

// Config configures a single generation Session.
type Config struct {
	Solution string
	Rows     int
	Cols     int
	Words    []string // pre-normalized candidate dictionary words

	// MaxAttempts bounds how many times the whole session (fresh solution
	// placement, fresh grid, fresh filler) is retried before giving up.
	// A single attempt gives no solvability guarantee; MaxAttempts=1 (the
	// default) reproduces that baseline exactly.
	MaxAttempts int

	// Rand seeds the session's PRNG. Nil uses a time-seeded source.
	Rand *rand.Rand

	// Hooks observes the filler's progress, attempt by attempt. Nil runs
	// silently.
	Hooks fill.Hooks
}

// Result is a completed session's output.
type Result struct {
	Grid      *grid.Grid
	Solution  *solution.Solution
	History   []grid.Word
	Attempts  int
	ElapsedMS int64
}

// Propagation policy: constructor failures (ErrBoardTooSmall,
// ErrEmptySolution, ErrSolutionTooLong) and ErrInfeasible abort session
// creation/run before any filling starts. ErrFillInfeasible is a normal
// terminal state: Run returns it, and the caller must not use the
// partially filled grid.
var (
	ErrNoDictionaryWords = errors.New("session: dictionary produced no usable words")
)

// Run builds the Trie, Grid, and Solution from cfg and drives the filler,
// retrying up to cfg.MaxAttempts times on FillInfeasible.
func Run(cfg Config) (*Result, error) {
	if len(cfg.Words) == 0 {
		return nil, ErrNoDictionaryWords
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	trie := dictionary.NewTrie()
	for _, w := range cfg.Words {
		if err := trie.Insert(w); err != nil && !errors.Is(err, dictionary.ErrTooShort) {
			return nil, fmt.Errorf("session: %w", err)
		}
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	start := time.Now()
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		g, err := grid.New(cfg.Rows, cfg.Cols)
		if err != nil {
			return nil, err
		}

		sol, err := solution.New(cfg.Solution, cfg.Rows, cfg.Cols, rng)
		if err != nil {
			return nil, err
		}
		if !sol.Compute() {
			return nil, solution.ErrInfeasible
		}
		g.MarkSolution(sol.Positions())

		filler := fill.New(g, trie, rng)
		filler.SetHooks(cfg.Hooks)
		if err := filler.Run(); err != nil {
			lastErr = err
			continue
		}

		return &Result{
			Grid:      g,
			Solution:  sol,
			History:   filler.History(),
			Attempts:  attempt,
			ElapsedMS: time.Since(start).Milliseconds(),
		}, nil
	}

	return nil, lastErr
}
