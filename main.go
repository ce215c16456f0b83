// wordsearch serves and generates themed word-search boards.
//
// Usage:
//
//	wordsearch serve                 - Start the HTTP API
//	wordsearch generate WORD...      - Print one grid for the given words
//	wordsearch level                 - Print a catalog level as it would be served
//	wordsearch scores                - Show the global leaderboard
//	wordsearch catalog list|pull     - Inspect or install level catalogs
//
// Global flags:
//
//	--db <path>         - SQLite database path (env DB_PATH)
//	--log-level <lvl>   - zerolog level (env LOG_LEVEL)
//
// Settings come from the environment (and .env when present); flags win.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wordsearch",
	Short: "Word-search grid generator and game server",
	Long: `wordsearch builds themed word-search boards from level catalogs and
serves them over HTTP, with play sessions, hints, a global leaderboard
and a daily challenge.

Examples:
  wordsearch serve --port 5175
  wordsearch generate --size 6 --seed 42 cat dog bird
  wordsearch level --level 7 --lang pt
  wordsearch scores --limit 10
  wordsearch catalog pull github.com/acme/wordsearch-levels//catalog`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if lvl, err := zerolog.ParseLevel(flagLogLevel); err == nil {
			zerolog.SetGlobalLevel(lvl)
		}
	},
}

func init() {
	_ = godotenv.Load()

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", getEnv("DB_PATH", "./data/wordsearch.db"), "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", getEnv("LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(levelCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(catalogCmd)
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt reads an integer setting; unset or malformed values give def.
func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// envBool reads a boolean setting; unset or malformed values give def.
func envBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
