// internal/httpserver/server.go
//
// HTTP server wiring for the word-search backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Stateless generation: GET /api/level, POST /api/grid.
//   - Play sessions (token-gated): mounted under /api/games.
//   - Global leaderboard: /api/leaderboard.
//   - Daily puzzle: mounted under /api/daily.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the session cookie works).
//   - Session tokens are HS256 JWTs bound to one game ID; see session.go.
//   - Daily boards always come from the static catalog so every player
//     sees the same grid.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/catalog"
	"github.com/robalobadob/wordsearch/internal/daily"
	"github.com/robalobadob/wordsearch/internal/grid"
	"github.com/robalobadob/wordsearch/internal/leaderboard"
	"github.com/robalobadob/wordsearch/internal/level"
	"github.com/robalobadob/wordsearch/internal/store"
)

const (
	defaultOrigin = "http://localhost:5173"
	defaultSecret = "dev_secret_change_me"
	defaultSalt   = "local_dev_salt"
	defaultTTL    = 24 * time.Hour

	MaxGridSize  = 32
	MaxGridWords = 100
)

// Options carries the server's collaborators and settings.
// Zero values fall back to development defaults.
type Options struct {
	Store     store.Store
	DB        *sql.DB
	Catalog   *catalog.Static // required; daily puzzles and the default level source
	Levels    *level.Builder  // session and /api/level boards; may be AI-backed
	Generator *grid.Generator

	ClientOrigin  string
	JWTSecret     string
	SessionTTL    time.Duration
	DailySalt     string
	SecureCookies bool
}

// Server bundles router, session store, and persistence.
type Server struct {
	r       *chi.Mux
	store   store.Store
	scores  *leaderboard.Store
	daily   *daily.Store
	catalog *catalog.Static
	levels  *level.Builder
	fixed   *level.Builder // static-catalog builder for daily boards
	gen     *grid.Generator

	origin string
	secret []byte
	ttl    time.Duration
	salt   string
	secure bool
	now    func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.Generator == nil {
		opts.Generator = grid.New(grid.DefaultOptions())
	}
	if opts.Levels == nil {
		opts.Levels = level.NewBuilder(opts.Catalog, opts.Generator)
	}
	s := &Server{
		r:       chi.NewRouter(),
		store:   opts.Store,
		scores:  leaderboard.NewStore(opts.DB),
		daily:   daily.NewStore(opts.DB),
		catalog: opts.Catalog,
		levels:  opts.Levels,
		fixed:   level.NewBuilder(opts.Catalog, opts.Generator),
		gen:     opts.Generator,
		origin:  orDefault(opts.ClientOrigin, defaultOrigin),
		secret:  []byte(orDefault(opts.JWTSecret, defaultSecret)),
		ttl:     opts.SessionTTL,
		salt:    orDefault(opts.DailySalt, defaultSalt),
		secure:  opts.SecureCookies,
		now:     time.Now,
	}
	if s.ttl <= 0 {
		s.ttl = defaultTTL
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(15 * time.Second)) // bound handler time (AI catalogs can be slow)
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordsearch","endpoints":["/health","/api/level","/api/grid","/api/games","/api/leaderboard","/api/daily"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Route("/api", func(r chi.Router) {
		r.Get("/level", s.handleLevel)
		r.Post("/grid", s.handleGrid)
		s.mountGames(r)
		s.mountLeaderboard(r)
		s.mountDaily(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// -------------------------- stateless generation ---------------------------

// boardRes is a full board including placement geometry.
type boardRes struct {
	Level      int              `json:"level,omitempty"`
	Lang       string           `json:"lang,omitempty"`
	Theme      string           `json:"theme,omitempty"`
	Fallback   bool             `json:"fallback,omitempty"`
	Size       int              `json:"size"`
	Grid       []string         `json:"grid"`
	Words      []string         `json:"words"`
	Placements []grid.Placement `json:"placements"`
	Seed       int64            `json:"seed"`
}

func newBoardRes(lvl level.Level, seed int64) boardRes {
	return boardRes{
		Level:      lvl.Number,
		Lang:       string(lvl.Lang),
		Theme:      lvl.Theme,
		Fallback:   lvl.Fallback,
		Size:       lvl.Board.Size,
		Grid:       lvl.Board.Rows(),
		Words:      lvl.Board.Words,
		Placements: lvl.Board.Placements,
		Seed:       seed,
	}
}

// handleLevel builds one level without creating a session.
// Query: level (default 1), lang (default en), seed (optional, echoed back).
func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	number, err := intParam(q.Get("level"), 1)
	if err != nil || number < 1 {
		writeError(w, http.StatusBadRequest, "invalid_level")
		return
	}
	lang, err := catalog.ParseLang(q.Get("lang"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_lang")
		return
	}
	seed, err := seedParam(q.Get("seed"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_seed")
		return
	}

	lvl, err := s.levels.Build(r.Context(), number, lang, grid.NewSeededSource(seed))
	if err != nil {
		log.Error().Err(err).Int("level", number).Msg("build level")
		writeError(w, http.StatusInternalServerError, "build_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(newBoardRes(lvl, seed))
}

// gridReq is the payload for POST /api/grid.
type gridReq struct {
	Words []string `json:"words"`
	Size  int      `json:"size"`
	Seed  int64    `json:"seed"`
}

// handleGrid runs the generator directly on caller-supplied words.
func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	var req gridReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Size < 1 || req.Size > MaxGridSize {
		writeError(w, http.StatusBadRequest, "invalid_size")
		return
	}
	if len(req.Words) > MaxGridWords {
		writeError(w, http.StatusBadRequest, "too_many_words")
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = randomSeed()
	}
	res := s.gen.Generate(req.Words, req.Size, grid.NewSeededSource(seed))
	_ = json.NewEncoder(w).Encode(boardRes{
		Size:       res.Size,
		Grid:       res.Rows(),
		Words:      res.Words,
		Placements: res.Placements,
		Seed:       seed,
	})
}

// ------------------------------- small util --------------------------------

// writeError writes {"error": code} with status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// writeJSON writes v with status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// intParam parses an optional integer query value.
func intParam(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

// seedParam parses an optional seed; absent or zero picks a random one so
// the response can always echo a reproducible seed.
func seedParam(v string) (int64, error) {
	if v == "" {
		return randomSeed(), nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return randomSeed(), nil
	}
	return n, nil
}

func randomSeed() int64 { return rand.Int63() + 1 }

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
