// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /api/daily:
//   - GET  /daily              → today's board for a language
//   - POST /daily/result       → record a finished daily board
//   - GET  /daily/leaderboard  → top 20 results for today (or a given date)
//
// Each nickname can record one result per day and language (enforced by a
// UNIQUE constraint). Boards are deterministic: the catalog entry and the
// generator seed both derive from the UTC date and DAILY_SALT.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/catalog"
	"github.com/robalobadob/wordsearch/internal/daily"
	"github.com/robalobadob/wordsearch/internal/grid"
	"github.com/robalobadob/wordsearch/internal/level"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleDaily)
		r.Post("/result", s.handleDailyResult)
		r.Get("/leaderboard", s.handleDailyLeaderboard)
	})
}

// dailyBoard is today's level together with its date key and catalog index.
type dailyBoard struct {
	Date  string
	Index int
	Level level.Level
}

// today builds the daily board for lang.
func (s *Server) today(ctx context.Context, lang catalog.Lang) (dailyBoard, error) {
	now := s.now()
	idx := daily.Index(now, s.salt, s.catalog.Len(lang))
	lvl, err := s.fixed.Build(ctx, idx+1, lang, grid.NewSeededSource(daily.Seed(now, s.salt, string(lang))))
	if err != nil {
		return dailyBoard{}, err
	}
	return dailyBoard{Date: daily.DateKey(now), Index: idx, Level: lvl}, nil
}

// -----------------------------------------------------------------------------
// GET /daily

type dailyRes struct {
	Date         string           `json:"date"`
	Lang         string           `json:"lang"`
	CatalogIndex int              `json:"catalogIndex"`
	Theme        string           `json:"theme"`
	Size         int              `json:"size"`
	Grid         []string         `json:"grid"`
	Words        []string         `json:"words"`
	Placements   []grid.Placement `json:"placements"`
	Played       bool             `json:"played"`
}

// handleDaily returns today's board. With ?nickname= it also reports
// whether that player already recorded a result.
func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lang, err := catalog.ParseLang(q.Get("lang"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_lang")
		return
	}
	b, err := s.today(r.Context(), lang)
	if err != nil {
		log.Error().Err(err).Str("lang", string(lang)).Msg("build daily")
		writeError(w, http.StatusInternalServerError, "build_failed")
		return
	}

	played := false
	if nick := strings.TrimSpace(q.Get("nickname")); nick != "" {
		if played, err = s.daily.AlreadyPlayed(r.Context(), nick, b.Date, string(lang)); err != nil {
			writeError(w, http.StatusInternalServerError, "server_error")
			return
		}
	}

	_ = json.NewEncoder(w).Encode(dailyRes{
		Date:         b.Date,
		Lang:         string(lang),
		CatalogIndex: b.Index,
		Theme:        b.Level.Theme,
		Size:         b.Level.Board.Size,
		Grid:         b.Level.Board.Rows(),
		Words:        b.Level.Board.Words,
		Placements:   b.Level.Board.Placements,
		Played:       played,
	})
}

// -----------------------------------------------------------------------------
// POST /daily/result

type dailyResultReq struct {
	Nickname  string `json:"nickname"`
	Lang      string `json:"lang"`
	Found     int    `json:"found"`
	ElapsedMs int64  `json:"elapsedMs"`
}

type dailyResultRes struct {
	Date   string `json:"date"`
	Played bool   `json:"played"` // true when an earlier result was kept instead
}

// handleDailyResult records today's result. Date, catalog index and word
// total come from the server's own board, not the client.
func (s *Server) handleDailyResult(w http.ResponseWriter, r *http.Request) {
	var req dailyResultReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	lang, err := catalog.ParseLang(req.Lang)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_lang")
		return
	}
	b, err := s.today(r.Context(), lang)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "build_failed")
		return
	}

	ok, err := s.daily.InsertResult(r.Context(), daily.Result{
		Nickname:     req.Nickname,
		Date:         b.Date,
		Lang:         string(lang),
		CatalogIndex: b.Index,
		Found:        req.Found,
		Total:        len(b.Level.Board.Words),
		ElapsedMs:    req.ElapsedMs,
	})
	switch {
	case errors.Is(err, daily.ErrInvalidResult):
		writeError(w, http.StatusBadRequest, "invalid_result")
		return
	case err != nil:
		log.Error().Err(err).Msg("daily insert")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if !ok {
		_ = json.NewEncoder(w).Encode(dailyResultRes{Date: b.Date, Played: true})
		return
	}
	writeJSON(w, http.StatusCreated, dailyResultRes{Date: b.Date})
}

// -----------------------------------------------------------------------------
// GET /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Lang string        `json:"lang"`
	Top  []daily.LBRow `json:"top"`
}

// handleDailyLeaderboard returns the leaderboard for the given date (default today).
func (s *Server) handleDailyLeaderboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lang, err := catalog.ParseLang(q.Get("lang"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_lang")
		return
	}
	date := q.Get("date")
	if date == "" {
		date = daily.DateKey(s.now())
	} else if _, err := daily.ParseDateKey(date); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date")
		return
	}
	rows, err := s.daily.Leaderboard(r.Context(), date, string(lang), 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Lang: string(lang), Top: rows})
}
