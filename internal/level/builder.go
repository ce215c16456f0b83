// internal/level/builder.go
//
// Level builder: turns a level number into a playable board.
// Responsibilities:
//   - Pick the catalog entry for the level ((level-1) mod catalog length).
//   - Derive the board size from level progression.
//   - Run the grid generator once per build.
//   - Fall back to the language's built-in list when the catalog fails or
//     nothing could be placed, so a level is always playable.
//
// Notes:
//   - Levels are 1-based. The catalog index is 0-based.
//   - Builders are safe for concurrent use as long as each call gets its
//     own grid.Source.

package level

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/catalog"
	"github.com/robalobadob/wordsearch/internal/grid"
)

const (
	BaseSize     = 8
	MaxSize      = 12
	GrowEvery    = 5
	FallbackSize = 8
)

var (
	ErrInvalidLevel = errors.New("level must be >= 1")
	ErrNoWords      = errors.New("no words could be placed")
)

// SizeFor is the board dimension for a level: one row/column more every
// GrowEvery levels, capped at MaxSize.
func SizeFor(level int) int {
	return min(BaseSize+level/GrowEvery, MaxSize)
}

// Level is a generated board plus the metadata needed to play it.
type Level struct {
	Number   int
	Lang     catalog.Lang
	Theme    string
	Fallback bool // board came from the built-in fallback list
	Board    grid.Result
}

// Builder assembles levels from a catalog source.
type Builder struct {
	src catalog.Source
	gen *grid.Generator
}

// NewBuilder wires a catalog source and generator. A nil generator uses
// grid.DefaultOptions.
func NewBuilder(src catalog.Source, gen *grid.Generator) *Builder {
	if gen == nil {
		gen = grid.New(grid.DefaultOptions())
	}
	return &Builder{src: src, gen: gen}
}

// Build generates level number in lang using rnd for every random choice.
func (b *Builder) Build(ctx context.Context, number int, lang catalog.Lang, rnd grid.Source) (Level, error) {
	if number < 1 {
		return Level{}, fmt.Errorf("%w: got %d", ErrInvalidLevel, number)
	}
	if _, err := catalog.ParseLang(string(lang)); err != nil {
		return Level{}, err
	}
	if err := ctx.Err(); err != nil {
		return Level{}, err
	}

	lvl := Level{Number: number, Lang: lang}

	entry, err := b.src.Entry(ctx, lang, number-1)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Level{}, ctxErr
		}
		log.Warn().Err(err).Int("level", number).Str("lang", string(lang)).Msg("catalog lookup failed, using fallback words")
		return b.fallback(lvl, rnd)
	}

	lvl.Theme = entry.Theme
	lvl.Board = b.gen.Generate(entry.Words, SizeFor(number), rnd)
	if len(lvl.Board.Words) == 0 {
		log.Warn().Int("level", number).Str("lang", string(lang)).Str("theme", entry.Theme).Msg("no words placed, using fallback words")
		return b.fallback(lvl, rnd)
	}
	return lvl, nil
}

func (b *Builder) fallback(lvl Level, rnd grid.Source) (Level, error) {
	fb := lvl.Lang.FallbackEntry()
	lvl.Theme = fb.Theme
	lvl.Fallback = true
	lvl.Board = b.gen.Generate(fb.Words, FallbackSize, rnd)
	if len(lvl.Board.Words) == 0 {
		return Level{}, ErrNoWords
	}
	return lvl, nil
}
