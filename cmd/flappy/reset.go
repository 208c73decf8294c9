package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var resetBestCmd = &cobra.Command{
	Use:   "reset-best",
	Short: "Clear the best score",
	Long: `Delete the persisted best score from the database, or from the
--best-file if one is given.

Examples:
  flappy reset-best
  flappy reset-best --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runResetBest,
}

func runResetBest(cmd *cobra.Command, args []string) {
	backend, err := openBackend()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening best-score storage: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()

	if err := backend.ResetBest(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Best score cleared.")
}
