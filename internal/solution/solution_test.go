package solution

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewNormalizesText(t *testing.T) {
	cases := map[string]string{
		"bike": "bike",
		"BIKE": "bike",
		"I was driving my bike down the road":                      "iwasdrivingmybikedowntheroad",
		"I was driving my 2 bikes down the 14 road":                "iwasdrivingmybikesdowntheroad",
		"I was driving my bike, which is blue, down the road!":     "iwasdrivingmybikewhichisbluedowntheroad",
		"I was driving my Škoda bike, which is blue, down the road!": "iwasdrivingmyskodabikewhichisbluedowntheroad",
	}
	for input, want := range cases {
		s, err := New(input, 100, 100, nil)
		if err != nil {
			t.Fatalf("New(%q) error = %v", input, err)
		}
		if s.Processed() != want {
			t.Errorf("New(%q).Processed() = %q, want %q", input, s.Processed(), want)
		}
	}
}

func TestNewEmpty(t *testing.T) {
	for _, input := range []string{"", "      ", "123"} {
		if _, err := New(input, 5, 5, nil); !errors.Is(err, ErrEmptySolution) {
			t.Errorf("New(%q) error = %v, want ErrEmptySolution", input, err)
		}
	}
}

func TestNewTooLong(t *testing.T) {
	if _, err := New("abcdefghij", 4, 4, nil); !errors.Is(err, ErrSolutionTooLong) {
		t.Fatalf("New(10 chars, 4x4) error = %v, want ErrSolutionTooLong", err)
	}
}

func TestComputeSatisfiesSpacingInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s, err := New("testtesttest", 4, 6, rng)
	if err != nil {
		t.Fatal(err)
	}

	if !s.Compute() {
		t.Fatalf("Compute() = false, want true for a 4x6 grid and a 12-rune solution")
	}

	positions := s.Positions()
	if len(positions) != len([]rune(s.Processed())) {
		t.Fatalf("Positions() has %d entries, want %d", len(positions), len([]rune(s.Processed())))
	}

	for pos := range positions {
		row, col := pos/6, pos%6
		if !s.isValidPlacement(row, col) {
			t.Errorf("position %d (%d,%d) violates the spacing invariant after Compute", pos, row, col)
		}
	}
}

func TestClustersPartitionContiguouslyAndCoverAllIndices(t *testing.T) {
	n, l := 26, 7
	cs := clusters(n, l)
	if len(cs) != l {
		t.Fatalf("clusters() returned %d clusters, want %d", len(cs), l)
	}

	seen := make(map[int]bool)
	prevEnd := 0
	for i, cl := range cs {
		if cl.start != prevEnd {
			t.Fatalf("cluster %d starts at %d, want contiguous with previous end %d", i, cl.start, prevEnd)
		}
		for p := cl.start; p < cl.end; p++ {
			if seen[p] {
				t.Fatalf("index %d covered by more than one cluster", p)
			}
			seen[p] = true
		}
		prevEnd = cl.end
	}
	if prevEnd != n {
		t.Fatalf("clusters() cover up to %d, want %d", prevEnd, n)
	}
}
