package render

import (
	"encoding/json"
	"image"
	"math/rand"
	"strings"
	"testing"

	"github.com/wordsearch/solver/internal/session"
)

func buildResult(t *testing.T) *session.Result {
	t.Helper()
	cfg := session.Config{
		Solution: "owl",
		Rows:     6,
		Cols:     6,
		Words: []string{
			"cats", "dogs", "frog", "lion", "bear", "wolf", "lynx", "puma",
			"mare", "seal", "newt", "crab", "hawk", "goat", "fawn", "mole",
			"toad", "mink", "stag", "colt", "hare", "swan", "wren", "lark",
		},
		MaxAttempts: 5,
		Rand:        rand.New(rand.NewSource(3)),
	}
	res, err := session.Run(cfg)
	if err != nil {
		t.Fatalf("session.Run() error = %v", err)
	}
	return res
}

func TestTextProducesOneLinePerRow(t *testing.T) {
	res := buildResult(t)
	out := Text(res)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != res.Grid.Rows() {
		t.Fatalf("Text() produced %d lines, want %d", len(lines), res.Grid.Rows())
	}
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != res.Grid.Cols() {
			t.Errorf("line %q has %d fields, want %d", line, len(fields), res.Grid.Cols())
		}
	}
}

func TestJSONRoundTripsGridDimensions(t *testing.T) {
	res := buildResult(t)
	data, err := JSON(res)
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if doc.Rows != res.Grid.Rows() || doc.Cols != res.Grid.Cols() {
		t.Fatalf("Document dims = (%d,%d), want (%d,%d)", doc.Rows, doc.Cols, res.Grid.Rows(), res.Grid.Cols())
	}
	if len(doc.Solution) != len([]rune(res.Solution.Processed())) {
		t.Errorf("Document.Solution has %d cells, want %d", len(doc.Solution), len([]rune(res.Solution.Processed())))
	}
	if len(doc.Words) != len(res.History) {
		t.Errorf("Document.Words has %d entries, want %d", len(doc.Words), len(res.History))
	}
}

func TestPNGProducesANonEmptyImageSizedToTheGrid(t *testing.T) {
	res := buildResult(t)
	img, err := PNG(res)
	if err != nil {
		t.Fatalf("PNG() error = %v", err)
	}

	bounds := img.Bounds()
	wantWidth := res.Grid.Cols() * pngCellSize
	if bounds.Dx() != wantWidth {
		t.Errorf("image width = %d, want %d", bounds.Dx(), wantWidth)
	}
	if bounds.Dy() <= res.Grid.Rows()*pngCellSize {
		t.Errorf("image height = %d, want > %d (grid plus header)", bounds.Dy(), res.Grid.Rows()*pngCellSize)
	}

	if _, ok := img.(*image.RGBA); !ok {
		t.Errorf("PNG() returned %T, want *image.RGBA", img)
	}
}
