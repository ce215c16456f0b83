// internal/leaderboard/leaderboard.go
//
// Global score board backed by SQLite.
// Responsibilities:
//   - Validate and persist finished runs (nickname, score, level, country).
//   - Rank the top N entries by score, earliest submission first on ties.
//   - Flag a given player's rows for the client.
//
// Notes:
//   - Nicknames are free-form; there are no accounts.
//   - Expects the leaderboard table from assets/sql to exist.

package leaderboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxNickname  = 50
	MaxCountry   = 10
	DefaultLimit = 50
	MaxLimit     = 100
	WorldTag     = "🌍"
)

var (
	ErrNicknameRequired = errors.New("nickname required")
	ErrInvalidScore     = errors.New("score must be >= 0")
)

// Submission is an incoming score.
type Submission struct {
	Nickname string `json:"nickname"`
	Score    int    `json:"score"`
	Level    int    `json:"level"`
	Country  string `json:"country"`
}

// Entry is a ranked row.
type Entry struct {
	Rank      int       `json:"rank"`
	ID        int64     `json:"id"`
	Nickname  string    `json:"nickname"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"createdAt"`
	IsPlayer  bool      `json:"isPlayer"`
}

// Store wraps the leaderboard table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Normalize validates s and applies the defaults described on Submission.
func Normalize(s Submission) (Submission, error) {
	s.Nickname = truncate(strings.TrimSpace(s.Nickname), MaxNickname)
	if s.Nickname == "" {
		return s, ErrNicknameRequired
	}
	if s.Score < 0 {
		return s, ErrInvalidScore
	}
	if s.Level < 1 {
		s.Level = 1
	}
	s.Country = truncate(strings.TrimSpace(s.Country), MaxCountry)
	if s.Country == "" {
		s.Country = WorldTag
	}
	return s, nil
}

// Submit validates and stores a score, returning the new row ID.
func (s *Store) Submit(ctx context.Context, sub Submission) (int64, error) {
	sub, err := Normalize(sub)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO leaderboard (nickname, score, level, country) VALUES (?, ?, ?, ?)`,
		sub.Nickname, sub.Score, sub.Level, sub.Country,
	)
	if err != nil {
		return 0, fmt.Errorf("insert score: %w", err)
	}
	return res.LastInsertId()
}

// Top returns up to limit entries ranked from 1.
// limit <= 0 means DefaultLimit; it is capped at MaxLimit.
func (s *Store) Top(ctx context.Context, limit int) ([]Entry, error) {
	limit = ClampLimit(limit)
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, nickname, score, level, country, created_at
        FROM leaderboard
        ORDER BY score DESC, created_at ASC, id ASC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	out := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.Nickname, &e.Score, &e.Level, &e.Country, &created); err != nil {
			return nil, err
		}
		e.CreatedAt = parseTime(created)
		e.Rank = len(out) + 1
		out = append(out, e)
	}
	return out, rows.Err()
}

// ClampLimit applies the default and maximum page sizes.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return min(limit, MaxLimit)
}

// MarkPlayer flags rows whose nickname is exactly me.
func MarkPlayer(entries []Entry, me string) []Entry {
	me = strings.TrimSpace(me)
	if me == "" {
		return entries
	}
	for i := range entries {
		entries[i].IsPlayer = entries[i].Nickname == me
	}
	return entries
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// parseTime reads the strftime format written by the schema default.
func parseTime(s string) time.Time {
	for _, layout := range []string{"2006-01-02T15:04:05.000Z", time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
