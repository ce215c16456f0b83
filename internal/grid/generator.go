// internal/grid/generator.go
//
// Word-search grid generator.
// Responsibilities:
//   - Normalize requested words and drop the ones that can never fit.
//   - Place words longest-first along forward-reading straight lines,
//     allowing overlaps only where letters agree.
//   - Fill the remaining cells with random Latin letters.
//   - Record exact placement geometry for hints and win checks.
//
// Notes:
//   - Every random choice goes through a Source, so runs are reproducible.
//   - Words that cannot be placed within the attempt budget are skipped;
//     callers see them as absent from Result.Words.

package grid

import (
	"slices"
	"sort"
	"unicode/utf8"
)

// DefaultAttempts is the per-word placement budget.
const DefaultAttempts = 150

// Options tunes the generator.
type Options struct {
	Attempts int    // random placement attempts per word before skipping it
	Filler   string // letters used for noise cells
}

// DefaultOptions returns the standard generator settings.
func DefaultOptions() Options {
	return Options{
		Attempts: DefaultAttempts,
		Filler:   FillerAlphabet,
	}
}

// Generator places words into square letter grids. It holds no mutable
// state and can be shared between goroutines.
type Generator struct {
	attempts int
	filler   []rune
}

// New builds a Generator. Zero-valued fields fall back to DefaultOptions.
func New(opts Options) *Generator {
	def := DefaultOptions()
	if opts.Attempts <= 0 {
		opts.Attempts = def.Attempts
	}
	if opts.Filler == "" {
		opts.Filler = def.Filler
	}
	return &Generator{attempts: opts.Attempts, filler: []rune(opts.Filler)}
}

// Attempts reports the per-word placement budget.
func (g *Generator) Attempts() int { return g.attempts }

// Generate runs a generator with DefaultOptions.
func Generate(words []string, size int, src Source) Result {
	return New(DefaultOptions()).Generate(words, size, src)
}

// Generate places as many of words as it can into a size×size grid.
// A non-positive size yields an empty result.
func (g *Generator) Generate(words []string, size int, src Source) Result {
	if size <= 0 {
		return Result{Words: []string{}, Placements: []Placement{}}
	}

	cells := make([][]rune, size)
	for i := range cells {
		cells[i] = make([]rune, size)
	}

	placed := make([]string, 0, len(words))
	placements := make([]Placement, 0, len(words))

	for _, w := range prepare(words, size) {
		letters := []rune(w)
		for range g.attempts {
			dir := src.Direction(Directions[:])
			start := src.Cell(size)
			if !start.Step(dir, len(letters)-1).In(size) {
				continue
			}
			if !fits(cells, letters, start, dir) {
				continue
			}
			for i, r := range letters {
				c := start.Step(dir, i)
				cells[c.Row][c.Col] = r
			}
			placed = append(placed, w)
			placements = append(placements, Placement{Word: w, Row: start.Row, Col: start.Col, Direction: dir})
			break
		}
	}

	for _, row := range cells {
		for col := range row {
			if row[col] == 0 {
				row[col] = src.Letter(g.filler)
			}
		}
	}

	sort.Strings(placed)
	return Result{Size: size, Grid: cells, Words: placed, Placements: placements}
}

// fits reports whether every target cell is empty or already holds the same letter.
func fits(cells [][]rune, letters []rune, start Cell, dir Direction) bool {
	for i, r := range letters {
		c := start.Step(dir, i)
		if cur := cells[c.Row][c.Col]; cur != 0 && cur != r {
			return false
		}
	}
	return true
}

// prepare normalizes, de-duplicates, drops empty and oversize words,
// and orders the rest longest first (stable among equal lengths).
func prepare(words []string, size int) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, raw := range words {
		w := Normalize(raw)
		n := utf8.RuneCountInString(w)
		if n == 0 || n > size {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	slices.SortStableFunc(out, func(a, b string) int {
		return utf8.RuneCountInString(b) - utf8.RuneCountInString(a)
	})
	return out
}
