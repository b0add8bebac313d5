// Package grid implements the character plane the filler writes into: a
// rows×cols board of cells that are either unfilled, reserved for the hidden
// solution, or carrying a placed letter, plus the contribution (epoch) plane
// that makes word removal safe under overlapping placements.
package grid

import (
	"errors"
	"fmt"

	"github.com/wordsearch/solver/internal/direction"
)

// MinDimension is the smallest allowed grid row or column count.
const MinDimension = 4

// ErrBoardTooSmall is returned by New when rows or cols is below MinDimension.
var ErrBoardTooSmall = errors.New("grid: rows and cols must each be at least 4")

// State identifies what a cell currently holds.
type State int

const (
	// Unknown is an unfilled blank cell, rendered internally as '?'.
	Unknown State = iota
	// Solution is a cell reserved for a hidden-solution letter, rendered as '*'.
	Solution
	// Letter is a cell carrying a placed dictionary-word character.
	Letter
)

type cell struct {
	state State
	ch    rune // valid only when state == Letter
}

// Word is a dictionary word placed at (Row, Col) running along Direction.
type Word struct {
	Text      string
	Direction direction.Direction
	Row, Col  int
}

// Len returns the number of cells the word occupies.
func (w Word) Len() int {
	return len([]rune(w.Text))
}

// Grid is a rows×cols character plane plus a parallel contribution plane
// that tracks, for every Letter cell, the placement epoch that first wrote
// it.
type Grid struct {
	rows, cols   int
	cells        [][]cell
	contribution [][]int // -1 means "no contribution recorded"
	epoch        int
}

// New creates a rows×cols grid with every cell Unknown.
func New(rows, cols int) (*Grid, error) {
	if rows < MinDimension || cols < MinDimension {
		return nil, ErrBoardTooSmall
	}

	cells := make([][]cell, rows)
	contribution := make([][]int, rows)
	for r := 0; r < rows; r++ {
		cells[r] = make([]cell, cols)
		contribution[r] = make([]int, cols)
		for c := 0; c < cols; c++ {
			contribution[r][c] = -1
		}
	}

	return &Grid{rows: rows, cols: cols, cells: cells, contribution: contribution}, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// State returns the state of the cell at (row, col).
func (g *Grid) State(row, col int) State {
	return g.cells[row][col].state
}

// Rune returns the letter at (row, col); valid only when State is Letter.
func (g *Grid) Rune(row, col int) rune {
	return g.cells[row][col].ch
}

// MarkSolution sets every listed cell to Solution. Idempotent; only the mark
// matters to the filler, not any particular letter. Solution cells never
// carry their letter on the Grid itself — the hidden phrase lives in the
// Solution value, not here.
func (g *Grid) MarkSolution(positions map[int]rune) {
	for pos := range positions {
		row, col := pos/g.cols, pos%g.cols
		g.cells[row][col] = cell{state: Solution}
	}
}

// admissible reports whether placing word at its anchor is legal: every
// occupied cell must be in-grid and either Unknown or Letter(word[i]).
func (g *Grid) admissible(w Word) bool {
	dr, dc := w.Direction.Offset()
	runes := []rune(w.Text)
	for i, r := range runes {
		row := w.Row + i*dr
		col := w.Col + i*dc
		if !g.inBounds(row, col) {
			return false
		}
		c := g.cells[row][col]
		switch c.state {
		case Unknown:
			// ok
		case Letter:
			if c.ch != r {
				return false
			}
		case Solution:
			return false
		}
	}
	return true
}

// Admissible reports whether w could legally be placed right now.
func (g *Grid) Admissible(w Word) bool {
	return g.admissible(w)
}

// ErrInadmissible is returned by Place when the word cannot be legally placed.
var ErrInadmissible = errors.New("grid: word placement is not admissible")

// Place writes w's letters into the grid. Preconditions: w is admissible and
// crosses no Solution cell. Cells that were Unknown are stamped with the
// current placement epoch in the contribution plane; cells that were already
// Letter (an overlapping crossing) keep their earlier epoch. The epoch
// counter is then incremented.
func (g *Grid) Place(w Word) error {
	if !g.admissible(w) {
		return fmt.Errorf("%w: %q at (%d,%d) %s", ErrInadmissible, w.Text, w.Row, w.Col, w.Direction)
	}

	dr, dc := w.Direction.Offset()
	runes := []rune(w.Text)
	epoch := g.epoch
	for i, r := range runes {
		row := w.Row + i*dr
		col := w.Col + i*dc
		if g.cells[row][col].state == Unknown {
			g.contribution[row][col] = epoch
		}
		g.cells[row][col] = cell{state: Letter, ch: r}
	}
	g.epoch++
	return nil
}

// ErrUnplaceOutOfOrder is returned by Unplace when there is no placement left
// to undo. Unplace does not check that w is the most recently placed word.
var ErrUnplaceOutOfOrder = errors.New("grid: unplace called out of LIFO order")

// Unplace reverses the most recent Place of w. For each of w's cells, if its
// contribution equals the about-to-be-current epoch, the cell reverts to
// Unknown; cells it did not originate are left untouched, which is what lets
// overlapping placements unwind cleanly.
func (g *Grid) Unplace(w Word) error {
	if g.epoch == 0 {
		return fmt.Errorf("%w: no placement to undo", ErrUnplaceOutOfOrder)
	}
	g.epoch--
	epoch := g.epoch

	dr, dc := w.Direction.Offset()
	runes := []rune(w.Text)
	for i := range runes {
		row := w.Row + i*dr
		col := w.Col + i*dc
		if g.contribution[row][col] == epoch {
			g.cells[row][col] = cell{}
			g.contribution[row][col] = -1
		}
	}
	return nil
}

// IsComplete reports whether every cell has left the Unknown state.
func (g *Grid) IsComplete() bool {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.cells[r][c].state == Unknown {
				return false
			}
		}
	}
	return true
}

// RayCell is one cell along a ray walked by Ray.
type RayCell struct {
	Row, Col int
	State    State
	Rune     rune
}

// Ray returns the maximal run of cells starting at (row, col) and stepping by
// d's offset, halting at the grid boundary or the first Solution cell
// encountered (exclusive of that cell). d == CENTER yields an empty ray.
func (g *Grid) Ray(row, col int, d direction.Direction) []RayCell {
	dr, dc := d.Offset()
	if dr == 0 && dc == 0 {
		return nil
	}

	var out []RayCell
	r, c := row, col
	for g.inBounds(r, c) {
		cur := g.cells[r][c]
		if cur.state == Solution {
			break
		}
		out = append(out, RayCell{r, c, cur.state, cur.ch})
		r += dr
		c += dc
	}
	return out
}
