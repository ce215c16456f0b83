package daily

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// ErrInvalidResult is returned for results that fail validation.
var ErrInvalidResult = errors.New("invalid daily result")

// Result is one player's finished daily puzzle.
type Result struct {
	Nickname     string `json:"nickname"`
	Date         string `json:"date"`
	Lang         string `json:"lang"`
	CatalogIndex int    `json:"catalogIndex"`
	Found        int    `json:"found"`
	Total        int    `json:"total"`
	ElapsedMs    int64  `json:"elapsedMs"`
}

// Validate checks field ranges and trims the nickname.
func (r *Result) Validate() error {
	r.Nickname = strings.TrimSpace(r.Nickname)
	switch {
	case r.Nickname == "":
		return errors.Join(ErrInvalidResult, errors.New("nickname required"))
	case r.Total < 0 || r.Found < 0 || r.Found > r.Total:
		return errors.Join(ErrInvalidResult, errors.New("found must be between 0 and total"))
	case r.ElapsedMs < 0:
		return errors.Join(ErrInvalidResult, errors.New("elapsedMs must be >= 0"))
	}
	return nil
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether nickname has a result for date and lang.
func (s *Store) AlreadyPlayed(ctx context.Context, nickname, date, lang string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE nickname=? AND date=? AND lang=?`,
		strings.TrimSpace(nickname), date, lang,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult stores r once per (nickname, date, lang). It reports false
// when a result already existed; the first result is kept.
func (s *Store) InsertResult(ctx context.Context, r Result) (bool, error) {
	if err := r.Validate(); err != nil {
		return false, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(nickname, date, lang, catalog_index, found, total, elapsed_ms)
		VALUES(?,?,?,?,?,?,?)`,
		r.Nickname, r.Date, r.Lang, r.CatalogIndex, r.Found, r.Total, r.ElapsedMs,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

type LBRow struct {
	Rank      int    `json:"rank"`
	Nickname  string `json:"nickname"`
	Found     int    `json:"found"`
	Total     int    `json:"total"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Leaderboard ranks a day's results: most words found, then fastest, then earliest.
func (s *Store) Leaderboard(ctx context.Context, date, lang string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT nickname, found, total, elapsed_ms
		FROM daily_results
		WHERE date=? AND lang=?
		ORDER BY found DESC, elapsed_ms ASC, created_at ASC, id ASC
		LIMIT ?`, date, lang, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LBRow{}
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.Nickname, &r.Found, &r.Total, &r.ElapsedMs); err != nil {
			return nil, err
		}
		r.Rank = len(out) + 1
		out = append(out, r)
	}
	return out, rows.Err()
}
