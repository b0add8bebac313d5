package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wordsearch/solver/internal/dictionary"
)

var validateDictionary string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a dictionary file without running a generation session",
	Long: `Load a dictionary file and report how many entries normalize and
survive the minimum-length filter. Useful for sanity-checking a word list
before handing it to "solver generate".

Examples:
  solver validate --dictionary words.txt`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateDictionary, "dictionary", "", "path to dictionary file (required)")
	validateCmd.MarkFlagRequired("dictionary")
}

func runValidate(cmd *cobra.Command, args []string) error {
	raw, err := countRawEntries(validateDictionary)
	if err != nil {
		return fmt.Errorf("failed to scan dictionary: %w", err)
	}

	corpus, err := dictionary.Load(validateDictionary)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}
	kept := corpus.Words()

	dropped := raw - len(kept)

	fmt.Printf("Dictionary:      %s\n", validateDictionary)
	fmt.Printf("Raw entries:     %d\n", raw)
	fmt.Printf("Kept entries:    %d\n", len(kept))
	fmt.Printf("Dropped:         %d (shorter than %d letters after normalization)\n", dropped, dictionary.MinWordLength)

	if verbosity > 0 {
		fmt.Println("\nSample of kept entries:")
		for i, w := range kept {
			if i >= 10 {
				fmt.Printf("  ... and %d more\n", len(kept)-10)
				break
			}
			fmt.Printf("  %s\n", w)
		}
	}

	if len(kept) == 0 {
		return fmt.Errorf("dictionary has no usable entries")
	}
	return nil
}

// countRawEntries counts non-blank lines in the dictionary file, the same
// way Load does before normalization and length filtering, so validate can
// report how many entries were dropped and why.
func countRawEntries(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		field := line
		if idx := strings.IndexByte(line, '\t'); idx >= 0 {
			field = line[:idx]
		}
		if strings.TrimSpace(field) == "" {
			continue
		}
		count++
	}
	return count, scanner.Err()
}
