// Package solution implements the cluster-partition placer that chooses
// positions for the hidden solution phrase's letters, subject to a spacing
// invariant guaranteeing a fillable gap between them.
package solution

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/wordsearch/solver/internal/dictionary"
	"github.com/wordsearch/solver/internal/direction"
)

// ErrEmptySolution is returned by New when the normalized input has no
// alphabetic characters left.
var ErrEmptySolution = errors.New("solution: normalized text is empty")

// ErrSolutionTooLong is returned by New when the normalized text is longer
// than half the grid's cell count.
var ErrSolutionTooLong = errors.New("solution: text exceeds rows*cols/2")

// ErrInfeasible is returned by Compute when no admissible layout exists.
var ErrInfeasible = errors.New("solution: no admissible layout found")

// Solution holds the processed solution text and, once Compute succeeds, the
// chosen position → character mapping (flat index row*cols+col).
type Solution struct {
	rows, cols int
	processed  string
	positions  map[int]rune
	rng        *rand.Rand
}

// New preprocesses input (lowercasing, keeping only alphabetic characters,
// Unicode letters included) and validates it against the grid dimensions.
func New(input string, rows, cols int, rng *rand.Rand) (*Solution, error) {
	processed := dictionary.Normalize(input)
	if processed == "" {
		return nil, ErrEmptySolution
	}

	maxLen := (rows * cols) / 2
	if len([]rune(processed)) > maxLen {
		return nil, fmt.Errorf("%w: %d runes exceeds limit of %d", ErrSolutionTooLong, len([]rune(processed)), maxLen)
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	return &Solution{rows: rows, cols: cols, processed: processed, positions: make(map[int]rune), rng: rng}, nil
}

// Processed returns the normalized solution text.
func (s *Solution) Processed() string {
	return s.processed
}

// Positions returns the flat-index → character mapping chosen by Compute.
// Empty until Compute succeeds.
func (s *Solution) Positions() map[int]rune {
	out := make(map[int]rune, len(s.positions))
	for k, v := range s.positions {
		out[k] = v
	}
	return out
}

// cluster is a contiguous half-open range of flat indices [Start, End).
type cluster struct {
	start, end int
}

// clusters partitions [0, n) into l contiguous pieces such that the last
// (n mod l) pieces are one cell larger than the first l-(n mod l).
func clusters(n, l int) []cluster {
	size := n / l
	rem := n % l
	out := make([]cluster, l)
	for k := 0; k < l; k++ {
		shift := k + rem - l + 1
		if shift <= 0 {
			out[k] = cluster{start: k * size, end: (k + 1) * size}
		} else {
			out[k] = cluster{start: k*size + shift - 1, end: (k+1)*size + shift}
		}
	}
	return out
}

// Compute runs the cluster-partition placement algorithm and populates
// Positions on success.
func (s *Solution) Compute() bool {
	runes := []rune(s.processed)
	n := s.rows * s.cols
	cs := clusters(n, len(runes))

	for k, cl := range cs {
		if !s.placeInCluster(cl, runes[k]) {
			return false
		}
	}
	return true
}

func (s *Solution) placeInCluster(cl cluster, ch rune) bool {
	cells := make([]int, 0, cl.end-cl.start)
	for i := cl.start; i < cl.end; i++ {
		cells = append(cells, i)
	}
	s.rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })

	for _, pos := range cells {
		row, col := pos/s.cols, pos%s.cols
		if !s.isValidPlacement(row, col) {
			continue
		}

		s.positions[pos] = ch
		if s.revalidate() {
			return true
		}
		delete(s.positions, pos)
	}
	return false
}

// isValidPlacement reports whether there is at least one compass direction
// along which the next MinWordLength-1 cells are in-grid and not already
// chosen solution positions.
func (s *Solution) isValidPlacement(row, col int) bool {
	for _, d := range direction.Placement() {
		if s.validInLine(d, row, col) {
			return true
		}
	}
	return false
}

func (s *Solution) validInLine(d direction.Direction, row, col int) bool {
	dr, dc := d.Offset()
	for depth := 1; depth < dictionary.MinWordLength; depth++ {
		r := row + dr*depth
		c := col + dc*depth
		if r < 0 || c < 0 || r >= s.rows || c >= s.cols {
			return false
		}
		if _, taken := s.positions[r*s.cols+c]; taken {
			return false
		}
	}
	return true
}

func (s *Solution) revalidate() bool {
	for pos := range s.positions {
		row, col := pos/s.cols, pos%s.cols
		if !s.isValidPlacement(row, col) {
			return false
		}
	}
	return true
}
