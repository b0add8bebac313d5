package cmd

import (
	"fmt"
	"image/png"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wordsearch/solver/internal/dictionary"
	"github.com/wordsearch/solver/internal/render"
	"github.com/wordsearch/solver/internal/session"
)

var (
	genSolution    string
	genRows        int
	genCols        int
	genDictionary  string
	genFormat      string
	genOutput      string
	genMaxAttempts int
	genSeed        int64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a word-search grid",
	Long: `Generate a single word-search grid with a hidden solution phrase.

Examples:
  # Generate a 20x20 grid hiding "HAPPY BIRTHDAY" as plain text
  solver generate --solution "HAPPY BIRTHDAY" --rows 20 --cols 20 \
    --dictionary words.txt --format text

  # Generate the same grid as a PNG
  solver generate --solution "HAPPY BIRTHDAY" --rows 20 --cols 20 \
    --dictionary words.txt --format png --output grid.png`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&genSolution, "solution", "", "phrase to hide in the grid (required)")
	generateCmd.Flags().IntVar(&genRows, "rows", 15, "grid row count")
	generateCmd.Flags().IntVar(&genCols, "cols", 15, "grid column count")
	generateCmd.Flags().StringVar(&genDictionary, "dictionary", "", "path to dictionary file (required)")
	generateCmd.Flags().StringVar(&genFormat, "format", "text", "output format: text, json, png")
	generateCmd.Flags().StringVar(&genOutput, "output", "", "output file path (defaults to stdout for text/json)")
	generateCmd.Flags().IntVar(&genMaxAttempts, "max-attempts", 1, "number of whole-session retries before giving up")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "PRNG seed (0 picks a time-based seed)")

	generateCmd.MarkFlagRequired("solution")
	generateCmd.MarkFlagRequired("dictionary")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if verbosity > 0 {
		fmt.Printf("Loading dictionary from: %s\n", genDictionary)
	}

	corpus, err := dictionary.Load(genDictionary)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}

	words := corpus.Words()
	if verbosity > 0 {
		fmt.Printf("Loaded %d usable words\n", len(words))
	}

	rng := rand.New(rand.NewSource(genSeed))
	if genSeed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	start := time.Now()
	res, err := session.Run(session.Config{
		Solution:    genSolution,
		Rows:        genRows,
		Cols:        genCols,
		Words:       words,
		MaxAttempts: genMaxAttempts,
		Rand:        rng,
	})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	if verbosity > 0 {
		fmt.Printf("Completed in %s (%d attempt(s))\n", time.Since(start), res.Attempts)
	}

	return writeResult(res)
}

func writeResult(res *session.Result) error {
	switch strings.ToLower(genFormat) {
	case "text":
		out := render.Text(res)
		return writeOrPrint([]byte(out))

	case "json":
		data, err := render.JSON(res)
		if err != nil {
			return fmt.Errorf("failed to render JSON: %w", err)
		}
		return writeOrPrint(data)

	case "png":
		img, err := render.PNG(res)
		if err != nil {
			return fmt.Errorf("failed to render PNG: %w", err)
		}
		if genOutput == "" {
			return fmt.Errorf("--output is required for png format")
		}
		f, err := os.Create(genOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		if err := png.Encode(f, img); err != nil {
			return fmt.Errorf("failed to encode PNG: %w", err)
		}
		fmt.Printf("Wrote %s\n", genOutput)
		return nil

	default:
		return fmt.Errorf("invalid format: %s (must be text, json, or png)", genFormat)
	}
}

func writeOrPrint(data []byte) error {
	if genOutput == "" {
		fmt.Print(string(data))
		if len(data) == 0 || data[len(data)-1] != '\n' {
			fmt.Println()
		}
		return nil
	}
	if err := os.WriteFile(genOutput, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", genOutput, err)
	}
	fmt.Printf("Wrote %s\n", genOutput)
	return nil
}
