// internal/httpserver/routes_leaderboard.go
//
// Global leaderboard.
//   - GET  /api/leaderboard?limit=&nickname= → ranked array, best first
//   - POST /api/leaderboard                  → record a score
//
// GET returns a bare JSON array so existing clients can consume it as-is.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/leaderboard"
)

func (s *Server) mountLeaderboard(r chi.Router) {
	r.Get("/leaderboard", s.handleTopScores)
	r.Post("/leaderboard", s.handleSubmitScore)
}

func (s *Server) handleTopScores(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	rows, err := s.scores.Top(r.Context(), leaderboard.ClampLimit(limit))
	if err != nil {
		log.Error().Err(err).Msg("leaderboard top")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	_ = json.NewEncoder(w).Encode(leaderboard.MarkPlayer(rows, q.Get("nickname")))
}

// scoreReq uses a pointer so a missing score is distinguishable from 0.
type scoreReq struct {
	Nickname string `json:"nickname"`
	Score    *int   `json:"score"`
	Level    int    `json:"level"`
	Country  string `json:"country"`
}

type scoreRes struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	var req scoreReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Score == nil {
		writeError(w, http.StatusBadRequest, "Missing nickname or score")
		return
	}
	id, err := s.scores.Submit(r.Context(), leaderboard.Submission{
		Nickname: req.Nickname,
		Score:    *req.Score,
		Level:    req.Level,
		Country:  req.Country,
	})
	switch {
	case errors.Is(err, leaderboard.ErrNicknameRequired):
		writeError(w, http.StatusBadRequest, "Missing nickname or score")
		return
	case errors.Is(err, leaderboard.ErrInvalidScore):
		writeError(w, http.StatusBadRequest, "invalid_score")
		return
	case err != nil:
		log.Error().Err(err).Msg("leaderboard submit")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	_ = json.NewEncoder(w).Encode(scoreRes{Message: "Score saved", ID: id})
}
