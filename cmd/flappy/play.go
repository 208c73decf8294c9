package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var (
	flagConfig     string
	flagDifficulty string
	flagFixedStep  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start playing.

Controls:
  Space/Up   - Flap
  Enter/R    - Start / restart
  Esc/B      - Back to menu (after game over)
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  flappy play
  flappy play --difficulty hard
  flappy play --config ./my-flappy.yaml
  flappy play --seed 7 --fixed-step`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().BoolVar(&flagFixedStep, "fixed-step", false, "Advance exactly 1/fps per frame instead of measured time")
}

// loadGameConfig resolves the config file and applies the difficulty preset.
func loadGameConfig() (config.FlappyConfig, config.Source, error) {
	cfg, src, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return cfg, src, err
	}
	if err := config.ApplyFlappyPreset(&cfg, config.DifficultyPreset(flagDifficulty)); err != nil {
		return cfg, src, err
	}
	return cfg, src, nil
}

func runPlay(cmd *cobra.Command, args []string) {
	logger, closeLog, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	gameCfg, src, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if src == config.SourceBuiltin {
		logger.Warn("embedded config unusable, using built-in defaults")
	}
	logger.Debug("config loaded", "source", src, "difficulty", flagDifficulty)

	rc := core.DefaultConfig()
	rc.TickRate = flagFPS
	rc.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}

	// Open best-score storage; the game still works without it
	var store flappy.BestStore
	backend, err := openBackend()
	if err != nil {
		logger.Warn("could not open best-score storage", "error", err)
	} else {
		store = backend
	}

	game := flappy.New(gameCfg, store)
	runErr := tui.Run(game, tui.Options{
		Runtime:   rc,
		FixedStep: flagFixedStep,
		Logger:    logger,
	})

	// Close store before potential exit
	if backend != nil {
		backend.Close()
	}

	if runErr != nil {
		logger.Error("game loop failed", "error", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
