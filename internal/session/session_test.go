package session

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/wordsearch/solver/internal/fill"
	"github.com/wordsearch/solver/internal/grid"
	"github.com/wordsearch/solver/internal/solution"
)

func TestRunProducesACompleteGridWithTheHiddenSolution(t *testing.T) {
	cfg := Config{
		Solution: "owl",
		Rows:     6,
		Cols:     6,
		Words: []string{
			"cats", "dogs", "frog", "lion", "bear", "wolf", "lynx", "puma",
			"clad", "dola", "tong", "sogr", "cdlp", "aeib", "tgnw", "slou",
			"mare", "seal", "newt", "crab", "hawk", "goat", "fawn", "mole",
			"toad", "mink", "stag", "colt", "hare", "swan", "wren", "lark",
		},
		MaxAttempts: 5,
		Rand:        rand.New(rand.NewSource(11)),
	}

	res, err := Run(cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !res.Grid.IsComplete() {
		t.Fatalf("Run() returned an incomplete grid")
	}
	if len(res.Solution.Positions()) != len([]rune(res.Solution.Processed())) {
		t.Fatalf("Positions() has %d entries, want %d", len(res.Solution.Positions()), len([]rune(res.Solution.Processed())))
	}
	if res.Attempts < 1 {
		t.Errorf("Attempts = %d, want >= 1", res.Attempts)
	}
}

func TestRunRejectsEmptyDictionary(t *testing.T) {
	cfg := Config{Solution: "owl", Rows: 6, Cols: 6}
	if _, err := Run(cfg); !errors.Is(err, ErrNoDictionaryWords) {
		t.Fatalf("Run() error = %v, want ErrNoDictionaryWords", err)
	}
}

func TestRunPropagatesGridConstructionFailure(t *testing.T) {
	cfg := Config{Solution: "owl", Rows: 2, Cols: 2, Words: []string{"cats"}}
	if _, err := Run(cfg); !errors.Is(err, grid.ErrBoardTooSmall) {
		t.Fatalf("Run() error = %v, want ErrBoardTooSmall", err)
	}
}

func TestRunPropagatesSolutionConstructionFailure(t *testing.T) {
	cfg := Config{Solution: "", Rows: 6, Cols: 6, Words: []string{"cats"}}
	if _, err := Run(cfg); !errors.Is(err, solution.ErrEmptySolution) {
		t.Fatalf("Run() error = %v, want ErrEmptySolution", err)
	}
}

func TestRunReturnsFillInfeasibleAfterExhaustingAttempts(t *testing.T) {
	// A tiny, nearly empty dictionary over a larger grid cannot possibly
	// fill every non-solution cell: Run should exhaust MaxAttempts and
	// surface the filler's own terminal error.
	cfg := Config{
		Solution:    "x",
		Rows:        10,
		Cols:        10,
		Words:       []string{"cat"},
		MaxAttempts: 2,
		Rand:        rand.New(rand.NewSource(5)),
	}

	_, err := Run(cfg)
	if err == nil {
		t.Fatalf("Run() with a near-empty dictionary over a 10x10 grid unexpectedly succeeded")
	}
	if !errors.Is(err, fill.ErrFillInfeasible) && !errors.Is(err, solution.ErrInfeasible) {
		t.Fatalf("Run() error = %v, want ErrFillInfeasible or solution.ErrInfeasible", err)
	}
}

func TestRunToleratesTooShortDictionaryWords(t *testing.T) {
	// Words shorter than MinWordLength are rejected by the Trie with
	// ErrTooShort; Run must skip those silently rather than aborting.
	cfg := Config{
		Solution:    "owl",
		Rows:        6,
		Cols:        6,
		Words:       []string{"ab", "cats", "dogs", "frog", "lion", "bear", "wolf", "lynx"},
		MaxAttempts: 3,
		Rand:        rand.New(rand.NewSource(19)),
	}
	if _, err := Run(cfg); err != nil {
		if !errors.Is(err, fill.ErrFillInfeasible) {
			t.Fatalf("Run() error = %v, want nil or ErrFillInfeasible", err)
		}
	}
}
