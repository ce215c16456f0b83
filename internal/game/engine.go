// internal/game/engine.go
//
// Core game engine for a single word-search session.
// Responsibilities:
//   - Create sessions at level 1 with the starting hint allowance.
//   - Validate tile selections (adjacency, no revisits, straight lines).
//   - Match selections against unfound words; score and record finds.
//   - Hints, level advancement and giving up.
//
// Notes:
//   - Pure logic, no I/O. Boards come from the level package.
//   - A Game is not safe for concurrent use; the store serializes access.
//   - NewID() is a compact hex identifier for correlating server state.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/robalobadob/wordsearch/internal/catalog"
	"github.com/robalobadob/wordsearch/internal/grid"
	"github.com/robalobadob/wordsearch/internal/level"
)

const (
	StartHints     = 3
	PointsPerRune  = 10
	BonusHintEvery = 5
)

var (
	ErrFinished      = errors.New("board is not in play")
	ErrNotComplete   = errors.New("level not complete")
	ErrOutOfBounds   = errors.New("tile outside the grid")
	ErrNoHints       = errors.New("no hints left")
	ErrNothingToHint = errors.New("every word already found")
)

// New starts a session on lvl (normally level 1).
func New(id, nickname string, lang catalog.Lang, lvl level.Level) *Game {
	now := time.Now().UTC()
	g := &Game{
		ID:        id,
		Nickname:  nickname,
		Lang:      lang,
		Hints:     StartHints,
		StartedAt: now,
		UpdatedAt: now,
	}
	g.load(lvl)
	return g
}

// load swaps in a board and resets per-board progress.
func (g *Game) load(lvl level.Level) {
	g.Level = lvl
	g.Found = []FoundWord{}
	g.Selection = []grid.Cell{}
	g.State = StatePlaying
	// A board with nothing to find would otherwise never complete.
	if len(lvl.Board.Words) == 0 {
		g.State = StateLevelComplete
	}
}

// Select applies one tile click.
//
// Validation rules (with a non-empty selection):
//   - The tile must touch the last selected tile (8-neighbourhood).
//   - The tile must not already be part of the selection.
//   - From the third tile on, the step must repeat the previous step.
//
// A rule violation clears the selection and reports OutcomeRejected.
func (g *Game) Select(c grid.Cell) (Outcome, error) {
	if g.State != StatePlaying {
		return "", ErrFinished
	}
	if !c.In(g.Level.Board.Size) {
		return "", ErrOutOfBounds
	}
	g.touch()

	if !g.validStep(c) {
		g.Selection = []grid.Cell{}
		return OutcomeRejected, nil
	}

	g.Selection = append(g.Selection, c)
	word := g.Level.Board.Read(g.Selection)
	missing := g.Missing()

	if slices.Contains(missing, word) {
		g.Score += PointsPerRune * utf8.RuneCountInString(word)
		g.Found = append(g.Found, FoundWord{Word: word, Cells: g.Selection})
		g.Selection = []grid.Cell{}
		if len(missing) == 1 {
			g.State = StateLevelComplete
		}
		return OutcomeFound, nil
	}

	for _, w := range missing {
		if strings.HasPrefix(w, word) {
			return OutcomeSelected, nil
		}
	}
	g.Selection = []grid.Cell{}
	return OutcomeRejected, nil
}

func (g *Game) validStep(c grid.Cell) bool {
	n := len(g.Selection)
	if n == 0 {
		return true
	}
	last := g.Selection[n-1]
	dx, dy := c.Col-last.Col, c.Row-last.Row
	if abs(dx) > 1 || abs(dy) > 1 || (dx == 0 && dy == 0) {
		return false
	}
	if slices.Contains(g.Selection, c) {
		return false
	}
	if n >= 2 {
		prev := g.Selection[n-2]
		if dx != last.Col-prev.Col || dy != last.Row-prev.Row {
			return false
		}
	}
	return true
}

// ClearSelection drops any partial selection.
func (g *Game) ClearSelection() {
	g.Selection = []grid.Cell{}
	g.touch()
}

// Missing lists the placed words not yet found, in sorted order.
func (g *Game) Missing() []string {
	out := make([]string, 0, len(g.Level.Board.Words))
	for _, w := range g.Level.Board.Words {
		if !g.isFound(w) {
			out = append(out, w)
		}
	}
	return out
}

func (g *Game) isFound(w string) bool {
	for _, f := range g.Found {
		if f.Word == w {
			return true
		}
	}
	return false
}

// UseHint spends a hint and returns the first cell of the first unfound word.
// The hint is kept when there is nothing left to reveal.
func (g *Game) UseHint() (grid.Cell, error) {
	if g.State == StateGameOver {
		return grid.Cell{}, ErrFinished
	}
	if g.Hints <= 0 {
		return grid.Cell{}, ErrNoHints
	}
	missing := g.Missing()
	if len(missing) == 0 {
		return grid.Cell{}, ErrNothingToHint
	}
	p, ok := g.Level.Board.Placement(missing[0])
	if !ok {
		return grid.Cell{}, ErrNothingToHint
	}
	g.Hints--
	g.touch()
	return p.Start(), nil
}

// GrantHint adds one hint, e.g. after a rewarded ad.
func (g *Game) GrantHint() error {
	if g.State == StateGameOver {
		return ErrFinished
	}
	g.Hints++
	g.touch()
	return nil
}

// NextNumber is the level number Advance expects next.
func (g *Game) NextNumber() int { return g.Level.Number + 1 }

// Advance moves a completed session onto next. Reaching a multiple of
// BonusHintEvery grants one extra hint.
func (g *Game) Advance(next level.Level) error {
	if g.State != StateLevelComplete {
		return ErrNotComplete
	}
	if next.Number%BonusHintEvery == 0 {
		g.Hints++
	}
	g.load(next)
	g.touch()
	return nil
}

// GiveUp ends the session and returns the words that were never found.
func (g *Game) GiveUp() ([]string, error) {
	if g.State == StateGameOver {
		return nil, ErrFinished
	}
	missing := g.Missing()
	g.State = StateGameOver
	g.Selection = []grid.Cell{}
	g.touch()
	return missing, nil
}

// View builds the client snapshot. Placement geometry stays hidden.
func (g *Game) View() View {
	found := make([]FoundWord, len(g.Found))
	for i, f := range g.Found {
		found[i] = FoundWord{Word: f.Word, Cells: slices.Clone(f.Cells)}
	}
	return View{
		ID:        g.ID,
		Nickname:  g.Nickname,
		Lang:      string(g.Lang),
		Level:     g.Level.Number,
		Theme:     g.Level.Theme,
		Size:      g.Level.Board.Size,
		Grid:      g.Level.Board.Rows(),
		Words:     slices.Clone(g.Level.Board.Words),
		Found:     found,
		Selection: slices.Clone(g.Selection),
		Score:     g.Score,
		Hints:     g.Hints,
		State:     g.State,
	}
}

// Clone returns a deep copy. The board itself is immutable and shared.
func (g *Game) Clone() *Game {
	cp := *g
	cp.Found = make([]FoundWord, len(g.Found))
	for i, f := range g.Found {
		cp.Found[i] = FoundWord{Word: f.Word, Cells: slices.Clone(f.Cells)}
	}
	cp.Selection = slices.Clone(g.Selection)
	return &cp
}

func (g *Game) touch() { g.UpdatedAt = time.Now().UTC() }

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// NewID returns a random 16-char hex identifier.
func NewID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
