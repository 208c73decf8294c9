package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// helpHeight is the number of terminal rows reserved for the help footer.
const helpHeight = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Options configures a Model.
type Options struct {
	Runtime   core.RuntimeConfig
	FixedStep bool        // Feed the game exact 1/TickRate deltas
	Logger    *log.Logger // Nil discards logs
}

// Model is the Bubble Tea model running a flappy game.
type Model struct {
	game       *flappy.Game
	screen     *core.Screen
	clock      *core.Clock
	keys       *KeyMapper
	help       help.Model
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	state      flappy.GameState
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *flappy.Game, opts Options) Model {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	clock := core.NewClock(cfg.TickRate, opts.FixedStep)
	cfg.TickRate = clock.TickRate()

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 0)),
		clock:      clock,
		keys:       NewKeyMapper(),
		help:       h,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
	}
}

// Init resets the game to its menu and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.clock.Reset()
	m.logger.Debug("game ready", "seed", m.config.Seed, "fps", m.config.TickRate, "best", m.game.State().Best)

	return tickCmd(m.clock.Interval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey queues the key's action for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		state := m.game.State()
		m.logger.Info("quit", "mode", state.Mode, "score", state.Score, "best", state.Best)
		return m, tea.Quit
	}

	return m, nil
}

// handleResize fits the screen buffer to the terminal.
// The world is projected onto whatever size the screen has, so the game
// keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpHeight, 0))
	m.help.Width = msg.Width

	return m, nil
}

// handleTick advances the simulation by the clock's delta.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := m.clock.Tick(now)
	if m.inputFrame.Len() > 0 {
		m.logger.Debug("input", "actions", m.inputFrame.Events)
	}

	result := m.game.Step(m.inputFrame, dt)
	m.state = result.State
	m.logEvents(result)

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.clock.Interval())
}

// logEvents reports what happened during a step.
func (m Model) logEvents(result flappy.StepResult) {
	for _, e := range result.Events {
		switch e.Kind {
		case flappy.EventStarted:
			m.logger.Info("session started", "seed", m.game.Seed(), "best", result.State.Best)
		case flappy.EventScored:
			m.logger.Debug("scored", "score", e.Score)
		case flappy.EventCollided:
			m.logger.Info("game over",
				"score", e.Score,
				"best", result.State.Best,
				"elapsed", fmt.Sprintf("%.2fs", result.State.Elapsed),
			)
		case flappy.EventNewBest:
			m.logger.Info("new best score", "best", e.Score)
		case flappy.EventSaveFailed:
			m.logger.Warn("could not save best score", "best", e.Score, "error", e.Err)
		case flappy.EventMenu:
			m.logger.Debug("back to menu")
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// State returns the game state after the last tick.
func (m Model) State() flappy.GameState {
	return m.state
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
}

// Run starts the Bubble Tea program for the given game.
func Run(game *flappy.Game, opts Options) error {
	model := NewModel(game, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
