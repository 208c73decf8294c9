// Package flappy implements a Flappy Bird-style game.
// The player keeps a falling flyer airborne with jumps while pipes scroll in
// from the right; touching a pipe, the ground, or the ceiling ends the session.
package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// ID is the identifier used for score storage.
const ID = "flappy"

// Mode is the top-level game state.
type Mode int

const (
	ModeMenu Mode = iota
	ModePlaying
	ModeGameOver
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "MENU"
	case ModePlaying:
		return "PLAYING"
	case ModeGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// BestStore persists the best score between runs.
// LoadBest returns 0 when there is no readable record.
type BestStore interface {
	LoadBest() int
	SaveBest(best int) error
}

// EventKind identifies something notable that happened during a step.
type EventKind int

const (
	EventStarted    EventKind = iota // A new session began
	EventScored                      // The flyer passed a pipe
	EventCollided                    // The session ended
	EventNewBest                     // The session beat the best score
	EventSaveFailed                  // Persisting the best score failed
	EventMenu                        // Returned to the menu
)

// Event is reported in StepResult so the platform can log or play effects.
type Event struct {
	Kind  EventKind
	Score int
	Err   error // Set for EventSaveFailed
}

// GameState represents the current state of the game.
type GameState struct {
	Mode    Mode
	Score   int
	Best    int
	Elapsed float64 // Seconds of the current session
}

// GameOver reports whether the session has ended.
func (s GameState) GameOver() bool {
	return s.Mode == ModeGameOver
}

// StepResult is returned by Step after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// Game implements the simulation and the MENU -> PLAYING -> GAME_OVER state machine.
type Game struct {
	cfg        config.FlappyConfig
	runtime    core.RuntimeConfig
	difficulty *config.DifficultyManager
	store      BestStore

	mode     Mode
	flyer    Flyer
	ground   Ground
	pipes    *PipeManager
	score    int
	best     int
	elapsed  float64 // Session time, only advances while playing
	idle     float64 // Menu animation time
	speed    float64 // Current pipe speed
	gap      float64 // Current gap height
	sessions int     // Sessions started since Reset
	seed     int64   // Pipe RNG seed of the current session
	steps    int     // Steps simulated in the current session

	events []Event
}

// New creates a game for the given config. store may be nil.
func New(cfg config.FlappyConfig, store BestStore) *Game {
	g := &Game{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		store:      store,
	}
	g.resetWorld()
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Reset returns the game to the menu and reloads the persisted best score.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc
	g.mode = ModeMenu
	g.sessions = 0
	g.idle = 0
	g.best = 0
	if g.store != nil {
		g.best = max(g.store.LoadBest(), 0)
	}
	g.resetWorld()
}

// resetWorld puts flyer, ground, pipes, score and timers back to their start.
func (g *Game) resetWorld() {
	w := g.cfg.World
	seed := g.runtime.Seed + int64(g.sessions)
	g.seed = seed

	g.flyer = NewFlyer(w, g.cfg.Player, g.cfg.Physics)
	g.ground = NewGround(w.Width, w.GroundTop())
	if g.pipes == nil {
		g.pipes = NewPipeManager(seed, w, g.cfg.Pipes)
	} else {
		g.pipes.Reset(seed)
	}
	g.score = 0
	g.elapsed = 0
	g.steps = 0
	g.applyDifficulty()
}

// Step processes this frame's input events in order, then advances the
// simulation by dt seconds if a session is running.
func (g *Game) Step(in core.InputFrame, dt float64) StepResult {
	g.events = g.events[:0]

	for _, a := range in.Events {
		g.handle(a)
	}

	switch g.mode {
	case ModeMenu:
		g.idle += dt
	case ModePlaying:
		g.advance(dt)
	}

	result := StepResult{State: g.State()}
	if len(g.events) > 0 {
		result.Events = append([]Event(nil), g.events...)
	}
	return result
}

// handle applies one input event. Events with no transition in the current
// mode are ignored.
func (g *Game) handle(a core.Action) {
	switch g.mode {
	case ModeMenu:
		if a == core.ActionConfirm {
			g.start()
		}
	case ModePlaying:
		if a == core.ActionJump {
			g.flyer.Jump()
		}
	case ModeGameOver:
		switch a {
		case core.ActionConfirm:
			g.start()
		case core.ActionCancel:
			g.mode = ModeMenu
			g.idle = 0
			g.emit(EventMenu, g.score, nil)
		}
	}
}

// start begins a new session from a clean world.
func (g *Game) start() {
	g.sessions++
	g.resetWorld()
	g.mode = ModePlaying
	g.emit(EventStarted, 0, nil)
}

// advance runs one simulation step while playing.
func (g *Game) advance(dt float64) {
	g.steps++

	g.flyer.Update(dt)
	g.ground.Update(dt, g.groundSpeed())

	g.pipes.Tick(dt, g.gap)
	g.pipes.Update(dt, g.speed)

	if Collides(g.flyer, g.pipes, g.ground.Top) {
		g.endSession()
		return
	}

	if passed := g.pipes.MarkPassed(g.flyer.X); passed > 0 {
		g.score += passed
		g.emit(EventScored, g.score, nil)
	}

	g.elapsed += dt
	g.applyDifficulty()
}

// endSession freezes the simulation and records the best score.
func (g *Game) endSession() {
	g.mode = ModeGameOver
	g.emit(EventCollided, g.score, nil)

	if g.score <= g.best {
		return
	}
	g.best = g.score
	g.emit(EventNewBest, g.best, nil)
	if g.store != nil {
		if err := g.store.SaveBest(g.best); err != nil {
			g.emit(EventSaveFailed, g.best, err)
		}
	}
}

// applyDifficulty recomputes pipe speed and gap from session time.
func (g *Game) applyDifficulty() {
	p := g.cfg.Pipes
	g.speed = g.difficulty.PipeSpeed(p.Speed, g.elapsed)
	g.gap = min(g.difficulty.GapHeight(p.Gap, p.MinGap, g.elapsed), g.pipes.MaxGap())
}

// groundSpeed scales the ground with the pipes so both scroll together.
func (g *Game) groundSpeed() float64 {
	if g.cfg.Pipes.Speed <= 0 {
		return g.cfg.Physics.GroundSpeed
	}
	return g.cfg.Physics.GroundSpeed * g.speed / g.cfg.Pipes.Speed
}

func (g *Game) emit(kind EventKind, score int, err error) {
	g.events = append(g.events, Event{Kind: kind, Score: score, Err: err})
}

// Mode returns the current mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Seed returns the pipe RNG seed of the current session.
func (g *Game) Seed() int64 {
	return g.seed
}

// State returns the current game state.
func (g *Game) State() GameState {
	return GameState{
		Mode:    g.mode,
		Score:   g.score,
		Best:    g.best,
		Elapsed: g.elapsed,
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	Render(dst, g.Snapshot())
}
