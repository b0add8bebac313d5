package render

import (
	"encoding/json"
	"sort"

	"github.com/wordsearch/solver/internal/grid"
	"github.com/wordsearch/solver/internal/session"
)

// Document is the JSON export shape: metadata, the raw grid, the solution
// cell list, and the legend of words actually placed during the fill.
type Document struct {
	Rows     int        `json:"rows"`
	Cols     int        `json:"cols"`
	Attempts int        `json:"attempts"`
	Grid     [][]string `json:"grid"`
	Solution []Cell     `json:"solution"`
	Words    []Placed   `json:"words"`
}

// Cell is a single hidden-solution position in reading order.
type Cell struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Letter string `json:"letter"`
}

// Placed is one dictionary word the filler actually wrote into the grid.
type Placed struct {
	Word      string `json:"word"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Direction string `json:"direction"`
}

// JSON renders res as a Document and marshals it.
func JSON(res *session.Result) ([]byte, error) {
	return json.Marshal(ToDocument(res))
}

// ToDocument builds the JSON export structure from a completed Result.
func ToDocument(res *session.Result) Document {
	g := res.Grid
	doc := Document{
		Rows:     g.Rows(),
		Cols:     g.Cols(),
		Attempts: res.Attempts,
		Grid:     make([][]string, g.Rows()),
	}

	for r := 0; r < g.Rows(); r++ {
		row := make([]string, g.Cols())
		for c := 0; c < g.Cols(); c++ {
			row[c] = cellString(g, r, c)
		}
		doc.Grid[r] = row
	}

	positions := res.Solution.Positions()
	indices := make([]int, 0, len(positions))
	for pos := range positions {
		indices = append(indices, pos)
	}
	sort.Ints(indices)
	for _, pos := range indices {
		row, col := pos/g.Cols(), pos%g.Cols()
		doc.Solution = append(doc.Solution, Cell{Row: row, Col: col, Letter: string(positions[pos])})
	}

	for _, w := range res.History {
		doc.Words = append(doc.Words, Placed{
			Word:      w.Text,
			Row:       w.Row,
			Col:       w.Col,
			Direction: w.Direction.String(),
		})
	}

	return doc
}

func cellString(g *grid.Grid, row, col int) string {
	switch g.State(row, col) {
	case grid.Solution:
		return "*"
	case grid.Letter:
		return string(g.Rune(row, col))
	default:
		return "?"
	}
}
