package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordsearch/internal/grid"
)

var (
	flagGenSize     int
	flagGenSeed     int64
	flagGenAttempts int
	flagGenJSON     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate WORD...",
	Short: "Print a grid for the given words",
	Long: `Place the given words into a size×size grid and print it.

Words are upper-cased; duplicates and words longer than the grid are
skipped. The same --seed always prints the same grid.

Examples:
  wordsearch generate --size 6 cat dog bird
  wordsearch generate --size 10 --seed 42 --json maçã pão`,
	Args: cobra.MinimumNArgs(1),
	Run:  runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&flagGenSize, "size", 8, "Grid width and height")
	generateCmd.Flags().Int64Var(&flagGenSeed, "seed", 0, "RNG seed (0 = random based on time)")
	generateCmd.Flags().IntVar(&flagGenAttempts, "attempts", envInt("GRID_ATTEMPTS", grid.DefaultAttempts), "Placement attempts per word")
	generateCmd.Flags().BoolVar(&flagGenJSON, "json", false, "Print JSON instead of text")
}

func runGenerate(_ *cobra.Command, args []string) {
	if flagGenSize < 1 {
		fmt.Fprintf(os.Stderr, "Error: --size must be at least 1\n")
		os.Exit(1)
	}
	gen := grid.New(grid.Options{Attempts: flagGenAttempts})
	res := gen.Generate(args, flagGenSize, grid.NewSeededSource(flagGenSeed))

	if flagGenJSON {
		printJSON(struct {
			Size       int              `json:"size"`
			Grid       []string         `json:"grid"`
			Words      []string         `json:"words"`
			Placements []grid.Placement `json:"placements"`
		}{res.Size, res.Rows(), res.Words, res.Placements})
		return
	}
	printBoard(res)

	if skipped := skippedWords(args, res.Words); len(skipped) > 0 {
		fmt.Printf("Skipped: %s\n", strings.Join(skipped, ", "))
	}
}

// printBoard writes the grid with spaced letters followed by the placements.
func printBoard(res grid.Result) {
	for _, row := range res.Rows() {
		fmt.Println("  " + strings.Join(strings.Split(row, ""), " "))
	}
	fmt.Println()
	for _, p := range res.Placements {
		fmt.Printf("  %-10s row %-2d col %-2d %s\n", p.Word, p.Row, p.Col, p.Direction)
	}
	fmt.Println()
}

// skippedWords lists normalized inputs that did not make it onto the board.
func skippedWords(in, placed []string) []string {
	seen := make(map[string]bool, len(placed))
	for _, w := range placed {
		seen[w] = true
	}
	var out []string
	for _, w := range in {
		n := grid.Normalize(w)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
