// Package render turns a finished session.Result into the output formats
// the CLI and HTTP service hand back to callers: plain text, JSON, and PNG.
package render

import (
	"strings"

	"github.com/wordsearch/solver/internal/grid"
	"github.com/wordsearch/solver/internal/session"
)

// Text renders res.Grid as rows lines of space-separated characters.
// Solution cells print the hidden phrase's letter so a human reader can spot
// it; Letter cells print their placed letter uppercased, matching the
// convention of the worked examples.
func Text(res *session.Result) string {
	g := res.Grid
	positions := res.Solution.Positions()

	var b strings.Builder
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(cellRune(g, positions, r, c))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func cellRune(g *grid.Grid, positions map[int]rune, row, col int) rune {
	switch g.State(row, col) {
	case grid.Solution:
		if ch, ok := positions[row*g.Cols()+col]; ok {
			return upper(ch)
		}
		return '*'
	case grid.Letter:
		return upper(g.Rune(row, col))
	default:
		return '.'
	}
}

func upper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
