package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordsearch/internal/catalog"
	"github.com/robalobadob/wordsearch/internal/grid"
	"github.com/robalobadob/wordsearch/internal/httpserver"
	"github.com/robalobadob/wordsearch/internal/level"
	"github.com/robalobadob/wordsearch/internal/store"
)

var flagPort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the word-search HTTP API.

Level catalogs are read from CATALOG_DIR (falling back to the built-in
catalogs). When GCP_PROJECT_ID is set, play-session levels are generated
by Gemini on Vertex AI and fall back to the catalog on any failure; the
daily challenge always uses the catalog.

Environment:
  PORT, DB_PATH, CATALOG_DIR, CLIENT_ORIGIN, JWT_SECRET, COOKIE_SECURE,
  SESSION_TTL_HOURS, DAILY_SALT, GRID_ATTEMPTS,
  GCP_PROJECT_ID, GCP_REGION, GEMINI_MODEL

Examples:
  wordsearch serve
  wordsearch serve --port 8080 --db /var/lib/wordsearch/app.db`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagPort, "port", getEnv("PORT", "5175"), "HTTP port")
}

func runServe(cmd *cobra.Command, _ []string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := openDatabase(flagDBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	static, err := catalog.Load(os.Getenv("CATALOG_DIR"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load level catalogs")
	}
	for _, lang := range catalog.Langs() {
		log.Info().Str("lang", string(lang)).Int("levels", static.Len(lang)).Msg("catalog loaded")
	}

	gen := grid.New(grid.Options{Attempts: envInt("GRID_ATTEMPTS", grid.DefaultAttempts)})

	var src catalog.Source = static
	if project := os.Getenv("GCP_PROJECT_ID"); project != "" {
		gem, err := catalog.NewGeminiSource(ctx, project, os.Getenv("GCP_REGION"), os.Getenv("GEMINI_MODEL"), static)
		if err != nil {
			log.Warn().Err(err).Msg("gemini unavailable, using static catalog")
		} else {
			src = gem
			log.Info().Str("project", project).Msg("gemini level source enabled")
		}
	}

	ttl := time.Duration(envInt("SESSION_TTL_HOURS", 24)) * time.Hour
	mem := store.NewMemoryStore()
	go pruneSessions(ctx, mem, ttl)

	srv := httpserver.New(httpserver.Options{
		Store:         mem,
		DB:            db,
		Catalog:       static,
		Levels:        level.NewBuilder(src, gen),
		Generator:     gen,
		ClientOrigin:  os.Getenv("CLIENT_ORIGIN"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		SessionTTL:    ttl,
		DailySalt:     os.Getenv("DAILY_SALT"),
		SecureCookies: envBool("COOKIE_SECURE", false),
	})
	if os.Getenv("JWT_SECRET") == "" {
		log.Warn().Msg("JWT_SECRET not set, using development secret")
	}

	log.Info().Str("port", flagPort).Msg("starting wordsearch server")
	if err := srv.Start(":" + flagPort); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// pruneSessions drops idle sessions every ttl/4 (at most hourly).
func pruneSessions(ctx context.Context, mem *store.Memory, ttl time.Duration) {
	every := min(ttl/4, time.Hour)
	if every <= 0 {
		every = time.Hour
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := mem.Prune(now, ttl); n > 0 {
				log.Info().Int("pruned", n).Int("active", mem.Len()).Dur("ttl", ttl).Msg("pruned idle sessions")
			}
		}
	}
}
