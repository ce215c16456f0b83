package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordsearch/internal/leaderboard"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the global leaderboard",
	Long: `Display the top scores recorded by finished runs.

Examples:
  wordsearch scores
  wordsearch scores --limit 10 --db ./data/wordsearch.db`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", leaderboard.DefaultLimit, "Number of rows to show")
}

func runScores(_ *cobra.Command, _ []string) {
	db, err := openDatabase(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	rows, err := leaderboard.NewStore(db).Top(context.Background(), flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Leaderboard")
	fmt.Println()

	if len(rows) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-20s  %-8s  %-5s  %-7s  %s\n", "Rank", "Nickname", "Score", "Level", "Country", "Date")
	fmt.Printf("  %-4s  %-20s  %-8s  %-5s  %-7s  %s\n", "----", "--------", "-----", "-----", "-------", "----")

	for _, e := range rows {
		fmt.Printf("  %-4d  %-20s  %-8d  %-5d  %-7s  %s\n",
			e.Rank, e.Nickname, e.Score, e.Level, e.Country, e.CreatedAt.Format("2006-01-02 15:04"))
	}
}
