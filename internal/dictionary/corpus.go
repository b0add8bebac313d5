package dictionary

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Corpus is a normalized set of candidate words read from a dictionary file.
type Corpus struct {
	words []string
}

// Words returns the normalized, length-filtered word list. The caller owns
// the returned slice.
func (c *Corpus) Words() []string {
	out := make([]string, len(c.words))
	copy(out, c.words)
	return out
}

// Load reads a dictionary file: UTF-8 text, one entry per line, first
// tab-separated field is the candidate word. Each entry is normalized
// (lowercased, diacritic-folded) and entries shorter than MinWordLength
// after normalization are dropped.
func Load(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: failed to open %s: %w", path, err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		field := line
		if idx := strings.IndexByte(line, '\t'); idx >= 0 {
			field = line[:idx]
		}
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		normalized := Normalize(field)
		if len([]rune(normalized)) < MinWordLength {
			continue
		}
		words = append(words, normalized)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dictionary: error reading %s: %w", path, err)
	}

	return &Corpus{words: words}, nil
}

// Normalize lowercases s and folds diacritics to their base letter (e.g.
// š → s), keeping only the resulting alphabetic runes. It is used both for
// dictionary entries and for the solution placer's input text.
//
// Diacritic folding uses NFD decomposition to separate base characters from
// combining marks, then drops the marks — the same technique
// anaselmhamdi-lesmotsdatche's NormalizeFR uses for French crossword input.
func Normalize(s string) string {
	decomposed := norm.NFD.String(strings.ToLower(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
