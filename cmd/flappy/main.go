// flappy is a Flappy Bird-style game for the terminal.
//
// Usage:
//
//	flappy                   - Play (same as "flappy play")
//	flappy play              - Play the game
//	flappy scores            - Show the best score
//	flappy config            - Print the effective game config as YAML
//	flappy reset-best        - Clear the persisted best score
//
// Global flags:
//
//	--fps <rate>        - Set max frame rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.arcade/flappy.db)
//	--best-file <path>  - Keep the best score in a text file instead of the database
//	--log-file <path>   - Write logs to a file
//	--debug             - Enable debug logging
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagBestFile string
	flagLogFile  string
	flagDebug    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - keep the bird in the air, in your terminal",
	Long: `Flappy is a terminal take on the Flappy Bird arcade game.
Flap through the gaps between pipes; touching a pipe, the ground,
or the top of the screen ends the run.

Available commands:
  play       - Play the game (default)
  scores     - Show the best score
  config     - Print the effective game config
  reset-best - Clear the best score

Examples:
  flappy
  flappy play --difficulty hard
  flappy --seed 42 --fixed-step
  flappy scores`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Max frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/flappy.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagBestFile, "best-file", "", "Keep the best score in this text file instead of the database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Play flags also work without the subcommand
	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(resetBestCmd)
}

// newLogger builds the logger from --log-file and --debug.
// The terminal belongs to the game, so logs are discarded unless a file is given.
func newLogger() (*log.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}

	if flagLogFile != "" {
		path, err := storage.ExpandPath(flagLogFile)
		if err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}

// openBackend opens the best-score store selected by --best-file or --db.
func openBackend() (storage.Backend, error) {
	if flagBestFile != "" {
		fs, err := storage.NewFileStore(flagBestFile)
		if err != nil {
			return nil, err
		}
		return fs, nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, err
	}
	return store.ForGame(flappy.ID), nil
}
