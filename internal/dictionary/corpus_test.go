package dictionary

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeFoldsDiacriticsAndLowercases(t *testing.T) {
	cases := map[string]string{
		"Škoda":  "skoda",
		"BIKE":   "bike",
		"café's": "cafes",
		"1 bike": "bike",
	}
	for input, want := range cases {
		if got := Normalize(input); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestLoadSplitsOnTabAndFiltersShortEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.txt")
	content := "space\tscore1\nplace\ta\nox\nŠkoda\t99\ncar\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	corpus, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	words := corpus.Words()
	want := map[string]bool{"space": true, "place": true, "skoda": true, "car": true}
	if len(words) != len(want) {
		t.Fatalf("Load() returned %v, want %d entries matching %v", words, len(want), want)
	}
	for _, w := range words {
		if !want[w] {
			t.Errorf("unexpected word %q in corpus", w)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/to/dict.txt"); err == nil {
		t.Fatal("Load() on missing file returned nil error")
	}
}
