package flappy

import "github.com/vovakirdan/tui-flappy/internal/config"

// Snapshot is a read-only copy of everything the renderer needs.
// Mutating it has no effect on the game.
type Snapshot struct {
	Mode      Mode
	World     config.WorldConfig
	Flyer     Flyer
	Ground    Ground
	Pipes     []Pipe
	PipeWidth float64
	Score     int
	Best      int
	Elapsed   float64
	Idle      float64
	Speed     float64
	Gap       float64
	Steps     int
}

// Snapshot returns the current state for rendering.
func (g *Game) Snapshot() Snapshot {
	pipes := make([]Pipe, len(g.pipes.Pipes()))
	copy(pipes, g.pipes.Pipes())

	return Snapshot{
		Mode:      g.mode,
		World:     g.cfg.World,
		Flyer:     g.flyer,
		Ground:    g.ground,
		Pipes:     pipes,
		PipeWidth: g.pipes.Width(),
		Score:     g.score,
		Best:      g.best,
		Elapsed:   g.elapsed,
		Idle:      g.idle,
		Speed:     g.speed,
		Gap:       g.gap,
		Steps:     g.steps,
	}
}
