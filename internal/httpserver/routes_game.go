// internal/httpserver/routes_game.go
//
// HTTP routes for token-gated play sessions.
//   - POST /api/games                  → start a session at level 1
//   - GET  /api/games/{id}             → current view
//   - POST /api/games/{id}/select      → click one tile
//   - POST /api/games/{id}/clear       → drop the current selection
//   - POST /api/games/{id}/hint        → spend a hint
//   - POST /api/games/{id}/hint/reward → grant a hint (rewarded ad)
//   - POST /api/games/{id}/next        → advance after completing a level
//   - POST /api/games/{id}/giveup      → end the run and submit the score
//
// Sessions live in the store; every mutation goes through Store.Update so
// concurrent clicks on one game are serialized.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/catalog"
	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/grid"
	"github.com/robalobadob/wordsearch/internal/leaderboard"
	"github.com/robalobadob/wordsearch/internal/store"
)

// mountGames registers all /games routes.
func (s *Server) mountGames(r chi.Router) {
	r.Post("/games", s.handleNewGame)
	r.Route("/games/{id}", func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/", s.handleGetGame)
		r.Post("/select", s.handleSelect)
		r.Post("/clear", s.handleClear)
		r.Post("/hint", s.handleHint)
		r.Post("/hint/reward", s.handleRewardHint)
		r.Post("/next", s.handleNext)
		r.Post("/giveup", s.handleGiveUp)
	})
}

// -----------------------------------------------------------------------------
// POST /games

type newGameReq struct {
	Nickname string `json:"nickname"`
	Lang     string `json:"lang"`
}

type newGameRes struct {
	GameID string    `json:"gameId"`
	Token  string    `json:"token"`
	Game   game.View `json:"game"`
}

// handleNewGame builds level 1, stores the session and issues its token.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	nick := strings.TrimSpace(req.Nickname)
	if nick == "" {
		writeError(w, http.StatusBadRequest, "nickname_required")
		return
	}
	if utf8.RuneCountInString(nick) > leaderboard.MaxNickname {
		nick = string([]rune(nick)[:leaderboard.MaxNickname])
	}
	lang, err := catalog.ParseLang(req.Lang)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_lang")
		return
	}

	lvl, err := s.levels.Build(r.Context(), 1, lang, grid.NewSeededSource(randomSeed()))
	if err != nil {
		log.Error().Err(err).Msg("build first level")
		writeError(w, http.StatusInternalServerError, "build_failed")
		return
	}
	g := game.New(game.NewID(), nick, lang, lvl)
	if err := s.store.Save(r.Context(), g); err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	tok, exp, err := s.signSession(g.ID, g.Nickname)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	s.setSessionCookie(w, tok, exp)
	log.Info().Str("game", g.ID).Str("lang", string(lang)).Msg("game started")
	writeJSON(w, http.StatusCreated, newGameRes{GameID: g.ID, Token: tok, Game: g.View()})
}

// -----------------------------------------------------------------------------
// GET /games/{id}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(g.View())
}

// -----------------------------------------------------------------------------
// POST /games/{id}/select

type selectReq struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

type selectRes struct {
	Outcome game.Outcome `json:"outcome"`
	Game    game.View    `json:"game"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.X == nil || req.Y == nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	cell := grid.Cell{Row: *req.Y, Col: *req.X}

	var out game.Outcome
	g, err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(g *game.Game) error {
		var err error
		out, err = g.Select(cell)
		return err
	})
	if err != nil {
		writeGameError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(selectRes{Outcome: out, Game: g.View()})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(g *game.Game) error {
		g.ClearSelection()
		return nil
	})
	if err != nil {
		writeGameError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(g.View())
}

// -----------------------------------------------------------------------------
// hints

type hintRes struct {
	Cell grid.Cell `json:"cell"`
	Game game.View `json:"game"`
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	var cell grid.Cell
	g, err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(g *game.Game) error {
		var err error
		cell, err = g.UseHint()
		return err
	})
	if err != nil {
		writeGameError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(hintRes{Cell: cell, Game: g.View()})
}

func (s *Server) handleRewardHint(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(g *game.Game) error {
		return g.GrantHint()
	})
	if err != nil {
		writeGameError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(g.View())
}

// -----------------------------------------------------------------------------
// POST /games/{id}/next

// handleNext builds the next board outside the store lock (catalog lookups
// may be slow), then applies it only if the session is still where it was.
func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cur, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeGameError(w, err)
		return
	}
	if cur.State != game.StateLevelComplete {
		writeGameError(w, game.ErrNotComplete)
		return
	}

	next, err := s.levels.Build(r.Context(), cur.NextNumber(), cur.Lang, grid.NewSeededSource(randomSeed()))
	if err != nil {
		log.Error().Err(err).Str("game", id).Int("level", cur.NextNumber()).Msg("build next level")
		writeError(w, http.StatusInternalServerError, "build_failed")
		return
	}

	g, err := s.store.Update(r.Context(), id, func(g *game.Game) error {
		if g.NextNumber() != next.Number {
			return errStale
		}
		return g.Advance(next)
	})
	if err != nil {
		writeGameError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(g.View())
}

// -----------------------------------------------------------------------------
// POST /games/{id}/giveup

type giveUpRes struct {
	Missing   []string  `json:"missing"`
	Submitted bool      `json:"submitted"`
	Game      game.View `json:"game"`
}

// handleGiveUp ends the run and records the score on the global leaderboard.
// A failed submission is logged and reported, but the run still ends.
func (s *Server) handleGiveUp(w http.ResponseWriter, r *http.Request) {
	var missing []string
	g, err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(g *game.Game) error {
		var err error
		missing, err = g.GiveUp()
		return err
	})
	if err != nil {
		writeGameError(w, err)
		return
	}

	submitted := true
	if _, err := s.scores.Submit(r.Context(), leaderboard.Submission{
		Nickname: g.Nickname,
		Score:    g.Score,
		Level:    g.Level.Number,
		Country:  g.Lang.CountryTag(),
	}); err != nil {
		log.Error().Err(err).Str("game", g.ID).Msg("submit score")
		submitted = false
	}
	_ = json.NewEncoder(w).Encode(giveUpRes{Missing: missing, Submitted: submitted, Game: g.View()})
}

// -----------------------------------------------------------------------------

// errStale means the session moved on while the next board was being built.
var errStale = errors.New("session changed")

// writeGameError maps engine and store errors to HTTP responses.
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, game.ErrOutOfBounds):
		writeError(w, http.StatusBadRequest, "out_of_bounds")
	case errors.Is(err, game.ErrFinished):
		writeError(w, http.StatusConflict, "not_playing")
	case errors.Is(err, game.ErrNoHints):
		writeError(w, http.StatusConflict, "no_hints")
	case errors.Is(err, game.ErrNothingToHint):
		writeError(w, http.StatusConflict, "nothing_to_hint")
	case errors.Is(err, game.ErrNotComplete):
		writeError(w, http.StatusConflict, "level_not_complete")
	case errors.Is(err, errStale):
		writeError(w, http.StatusConflict, "stale_session")
	default:
		log.Error().Err(err).Msg("game request")
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}
