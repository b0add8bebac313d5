package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/wordsearch/solver/internal/grid"
	"github.com/wordsearch/solver/internal/session"
)

const (
	pngCellSize     = 32
	pngTitleHeight  = 22
	pngLegendRow    = 16
	pngLegendPerRow = 5
	pngLegendGapX   = 90
)

var (
	bgWhite    = color.RGBA{255, 255, 255, 255}
	bgSolution = color.RGBA{255, 235, 180, 255}
	fgBlack    = color.RGBA{0, 0, 0, 255}
)

// PNG rasterizes res into an image: a legend of placed words above a
// fixed-cell grid, one glyph centered per cell, with solution cells tinted
// a distinct background so the hidden phrase stands out once revealed.
func PNG(res *session.Result) (image.Image, error) {
	g := res.Grid
	legendRows := (len(res.History) + pngLegendPerRow - 1) / pngLegendPerRow
	if legendRows == 0 {
		legendRows = 1
	}
	headerHeight := pngTitleHeight + legendRows*pngLegendRow + pngLegendRow/2

	width := g.Cols() * pngCellSize
	height := headerHeight + g.Rows()*pngCellSize

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bgWhite}, image.Point{}, draw.Src)

	drawLegend(img, res.History, headerHeight)
	drawGrid(img, g, res.Solution.Positions(), headerHeight)

	return img, nil
}

func drawLegend(img *image.RGBA, words []grid.Word, headerHeight int) {
	face := basicfont.Face7x13
	drawer := &font.Drawer{Dst: img, Src: image.NewUniform(fgBlack), Face: face}

	drawer.Dot = fixed.Point26_6{X: fixed.I(8), Y: fixed.I(pngTitleHeight - 6)}
	drawer.DrawString("Words:")

	startY := pngTitleHeight + pngLegendRow
	for i, w := range words {
		row := i / pngLegendPerRow
		col := i % pngLegendPerRow
		x := 8 + col*pngLegendGapX
		y := startY + row*pngLegendRow
		if y >= headerHeight {
			break
		}
		drawer.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
		drawer.DrawString(w.Text)
	}
}

func drawGrid(img *image.RGBA, g *grid.Grid, positions map[int]rune, headerHeight int) {
	face := basicfont.Face7x13
	const letterWidth, letterHeight = 7, 13

	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			cellX := c * pngCellSize
			cellY := headerHeight + r*pngCellSize

			if g.State(r, c) == grid.Solution {
				tile := image.Rect(cellX, cellY, cellX+pngCellSize, cellY+pngCellSize)
				draw.Draw(img, tile, &image.Uniform{C: bgSolution}, image.Point{}, draw.Src)
			}

			ch := glyphAt(g, positions, r, c)
			x := cellX + (pngCellSize-letterWidth)/2
			y := cellY + (pngCellSize-letterHeight)/2 + letterHeight - 2

			drawer := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(fgBlack),
				Face: face,
				Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
			}
			drawer.DrawString(string(ch))
		}
	}
}

func glyphAt(g *grid.Grid, positions map[int]rune, row, col int) rune {
	switch g.State(row, col) {
	case grid.Solution:
		if ch, ok := positions[row*g.Cols()+col]; ok {
			return upper(ch)
		}
		return '*'
	case grid.Letter:
		return upper(g.Rune(row, col))
	default:
		return ' '
	}
}
