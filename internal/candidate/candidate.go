// Package candidate extracts, for a grid cell, the dictionary-word
// placements that could legally start there — the "entropy" source the
// filler uses to pick its next move.
package candidate

import (
	"strings"

	"github.com/wordsearch/solver/internal/dictionary"
	"github.com/wordsearch/solver/internal/direction"
	"github.com/wordsearch/solver/internal/grid"
)

// Generator produces candidate Word placements anchored at a cell, backed by
// a session-scoped sequence cache that is a pure function of the dictionary
// and therefore never invalidated.
type Generator struct {
	grid          *grid.Grid
	trie          *dictionary.Trie
	sequenceCache map[string]map[string]struct{}
}

// New returns a Generator reading from g and querying trie.
func New(g *grid.Grid, trie *dictionary.Trie) *Generator {
	return &Generator{grid: g, trie: trie, sequenceCache: make(map[string]map[string]struct{})}
}

// At returns every admissible, unused candidate placement anchored at
// (row, col), concatenated across the 8 compass directions in ordinal order.
// used is the set of dictionary words already in the filler's history.
func (g *Generator) At(row, col int, used map[string]bool) []grid.Word {
	if g.grid.State(row, col) == grid.Solution {
		return nil
	}

	var out []grid.Word
	for _, d := range direction.Placement() {
		query, ok := g.query(row, col, d)
		if !ok {
			continue
		}

		for word := range g.lookup(query) {
			if used[word] {
				continue
			}
			out = append(out, grid.Word{Text: word, Direction: d, Row: row, Col: col})
		}
	}
	return out
}

// query builds the ray-derived wildcard pattern for (row, col) in direction
// d, and reports whether it's a query at all: it must contain at least one
// unknown marker and be at least MinWordLength long. An all-Letter ray is
// already pinned to at most one dictionary word and is deliberately treated
// as uninteresting.
func (g *Generator) query(row, col int, d direction.Direction) (string, bool) {
	ray := g.grid.Ray(row, col, d)
	if len(ray) < dictionary.MinWordLength {
		return "", false
	}

	var b strings.Builder
	hasUnknown := false
	for _, rc := range ray {
		switch rc.State {
		case grid.Unknown:
			hasUnknown = true
			b.WriteByte('?')
		case grid.Letter:
			b.WriteRune(rc.Rune)
		}
	}
	if !hasUnknown {
		return "", false
	}
	return b.String(), true
}

func (g *Generator) lookup(pattern string) map[string]struct{} {
	if words, ok := g.sequenceCache[pattern]; ok {
		return words
	}
	words := g.trie.Search(pattern)
	g.sequenceCache[pattern] = words
	return words
}
