package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best score",
	Long: `Display the persisted best score.

Examples:
  flappy scores
  flappy scores --best-file ~/.flappy-best`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	if flagBestFile != "" {
		fs, err := storage.NewFileStore(flagBestFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printBest(fs.LoadBest(), "")
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	best, err := store.Best(flappy.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving best score: %v\n", err)
		os.Exit(1)
	}

	date := ""
	if !best.UpdatedAt.IsZero() {
		date = best.UpdatedAt.Format("2006-01-02 15:04")
	}
	printBest(best.Score, date)
}

func printBest(score int, date string) {
	fmt.Println("Best Score - Flappy Bird")
	fmt.Println()

	if score == 0 {
		fmt.Println("No best score recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to set the first one!")
		return
	}

	fmt.Printf("  %-10s  %d\n", "Score", score)
	if date != "" {
		fmt.Printf("  %-10s  %s\n", "Set", date)
	}
}
