// internal/game/types.go
//
// Core type definitions for the word-search session engine.
// Defines:
//   - State: lifecycle of a session (playing, level complete, game over).
//   - Outcome: result of selecting one tile.
//   - FoundWord: a discovered word and the tiles that spelled it.
//   - Game: state for a single play session across levels.
//   - View: what a client is allowed to see (no placement geometry).

package game

import (
	"time"

	"github.com/robalobadob/wordsearch/internal/catalog"
	"github.com/robalobadob/wordsearch/internal/grid"
	"github.com/robalobadob/wordsearch/internal/level"
)

// State is the session lifecycle.
type State string

const (
	StatePlaying       State = "playing"
	StateLevelComplete State = "level_complete"
	StateGameOver      State = "game_over"
)

// Outcome is the result of a single tile selection.
//   - "selected": tile accepted, selection is a prefix of an unfound word.
//   - "found":    selection spelled an unfound word; selection cleared.
//   - "rejected": illegal step or dead-end prefix; selection cleared.
type Outcome string

const (
	OutcomeSelected Outcome = "selected"
	OutcomeFound    Outcome = "found"
	OutcomeRejected Outcome = "rejected"
)

// FoundWord records a word the player traced.
type FoundWord struct {
	Word  string      `json:"word"`
	Cells []grid.Cell `json:"cells"`
}

// Game holds the state of a single session.
type Game struct {
	ID        string       // Unique game identifier (random hex string).
	Nickname  string       // Player name used for leaderboard submission.
	Lang      catalog.Lang // Catalog language.
	Level     level.Level  // Current board.
	Score     int          // 10 points per letter of every found word.
	Hints     int          // Hints left.
	State     State
	Found     []FoundWord // Words found on the current board, in discovery order.
	Selection []grid.Cell // Tiles picked toward the next word.
	StartedAt time.Time
	UpdatedAt time.Time
}

// View is the client-facing snapshot of a Game.
type View struct {
	ID        string      `json:"id"`
	Nickname  string      `json:"nickname"`
	Lang      string      `json:"lang"`
	Level     int         `json:"level"`
	Theme     string      `json:"theme"`
	Size      int         `json:"size"`
	Grid      []string    `json:"grid"`
	Words     []string    `json:"words"`
	Found     []FoundWord `json:"found"`
	Selection []grid.Cell `json:"selection"`
	Score     int         `json:"score"`
	Hints     int         `json:"hints"`
	State     State       `json:"state"`
}
