// Package fill implements the lowest-entropy backtracking filler: the
// discrete wave-function-collapse variant that places dictionary words into
// the grid until every non-solution cell carries a letter, or gives up.
package fill

import (
	"errors"
	"math/rand"

	"github.com/wordsearch/solver/internal/candidate"
	"github.com/wordsearch/solver/internal/dictionary"
	"github.com/wordsearch/solver/internal/grid"
)

// ErrFillInfeasible is returned by Run when backtracking exhausts every
// branch without completing the grid.
var ErrFillInfeasible = errors.New("fill: backtracking exhausted without completing the grid")

// State is the filler's lifecycle stage.
type State int

const (
	Initialized State = iota
	Playing
	Finished
	Failed
)

// Hooks lets a caller observe the filler's progress without coupling the
// core algorithm to any particular transport. Each callback may be nil.
type Hooks struct {
	OnPlace     func(w grid.Word)
	OnBacktrack func(w grid.Word)
	OnEntropy   func(row, col, candidates int)
}

// Filler orchestrates placement: selects the lowest-entropy cell, places a
// candidate, recurses, and unplaces on failure.
type Filler struct {
	grid  *grid.Grid
	gen   *candidate.Generator
	rng   *rand.Rand
	used  map[string]bool
	state State
	hooks Hooks

	history []grid.Word
}

// SetHooks installs progress callbacks. Call before Run.
func (f *Filler) SetHooks(h Hooks) {
	f.hooks = h
}

// New returns a Filler that will write into g using words from trie, drawing
// tie-breaking randomness from rng.
func New(g *grid.Grid, trie *dictionary.Trie, rng *rand.Rand) *Filler {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Filler{
		grid: g,
		gen:  candidate.New(g, trie),
		rng:  rng,
		used: make(map[string]bool),
	}
}

// State reports the filler's current lifecycle stage.
func (f *Filler) State() State {
	return f.state
}

// History returns the words placed, in placement order. Valid once Run
// returns nil.
func (f *Filler) History() []grid.Word {
	out := make([]grid.Word, len(f.history))
	copy(out, f.history)
	return out
}

// Run drives the recursive backtracker to completion or exhaustion.
func (f *Filler) Run() error {
	f.state = Playing
	if f.solve() {
		f.state = Finished
		return nil
	}
	f.state = Failed
	return ErrFillInfeasible
}

// cellCandidates pairs a non-solution cell with its current candidate list.
type cellCandidates struct {
	row, col int
	words    []grid.Word
}

// solve recomputes every cell's candidate set from scratch each call. A more
// aggressive policy would discard only the rays a placement actually
// touched; recomputing wholesale is simpler and provably correct, and the
// sequence cache inside candidate.Generator already absorbs the repeated
// Trie lookups across calls.
func (f *Filler) solve() bool {
	if f.grid.IsComplete() {
		return true
	}

	var perCell []cellCandidates
	minEntropy := 0
	for r := 0; r < f.grid.Rows(); r++ {
		for c := 0; c < f.grid.Cols(); c++ {
			if f.grid.State(r, c) == grid.Solution {
				continue
			}
			words := f.gen.At(r, c, f.used)
			if len(words) == 0 {
				continue
			}
			if minEntropy == 0 || len(words) < minEntropy {
				minEntropy = len(words)
			}
			perCell = append(perCell, cellCandidates{row: r, col: c, words: words})
			if f.hooks.OnEntropy != nil {
				f.hooks.OnEntropy(r, c, len(words))
			}
		}
	}

	if minEntropy == 0 {
		return false // contradiction: some unknown cell remains but nothing can fill it
	}

	var pool []grid.Word
	for _, cc := range perCell {
		if len(cc.words) == minEntropy {
			pool = append(pool, cc.words...)
		}
	}
	f.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	for _, w := range pool {
		if f.used[w.Text] {
			continue
		}
		if !f.grid.Admissible(w) {
			continue
		}

		if err := f.grid.Place(w); err != nil {
			continue
		}
		f.history = append(f.history, w)
		f.used[w.Text] = true
		if f.hooks.OnPlace != nil {
			f.hooks.OnPlace(w)
		}

		if f.grid.IsComplete() || f.solve() {
			return true
		}

		f.used[w.Text] = false
		f.history = f.history[:len(f.history)-1]
		_ = f.grid.Unplace(w)
		if f.hooks.OnBacktrack != nil {
			f.hooks.OnBacktrack(w)
		}
	}

	return false
}
