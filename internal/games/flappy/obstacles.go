package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// offscreenEpsilon absorbs float drift when a pipe lands exactly on x = -width.
const offscreenEpsilon = 1e-9

// Pipe is a top/bottom obstacle pair with a vertical gap between them.
type Pipe struct {
	X         float64 // Horizontal position (left edge)
	GapY      float64 // Vertical center of the gap
	GapHeight float64 // Height of the passable gap
	Passed    bool    // Whether the flyer has passed this pipe (for scoring)
}

// GapTop returns the y where the top pipe ends.
func (p Pipe) GapTop() float64 {
	return p.GapY - p.GapHeight/2
}

// GapBottom returns the y where the bottom pipe starts.
func (p Pipe) GapBottom() float64 {
	return p.GapY + p.GapHeight/2
}

// TopRect returns the collision rectangle for the top portion of the pipe.
func (p Pipe) TopRect(pipeWidth float64) core.Rect {
	return core.NewRect(p.X, 0, pipeWidth, p.GapTop())
}

// BottomRect returns the collision rectangle for the bottom portion of the pipe.
func (p Pipe) BottomRect(pipeWidth, groundTop float64) core.Rect {
	bottomY := p.GapBottom()
	return core.NewRect(p.X, bottomY, pipeWidth, groundTop-bottomY)
}

// PipeManager handles spawning, movement, and removal of pipes.
// Pipes are kept in spawn order, which is also left-to-right order.
type PipeManager struct {
	pipes      []Pipe
	rng        *rand.Rand
	cfg        config.PipesConfig
	world      config.WorldConfig
	sinceSpawn float64 // Seconds since the last spawn
}

// NewPipeManager creates a new pipe manager with the given RNG seed.
func NewPipeManager(seed int64, world config.WorldConfig, cfg config.PipesConfig) *PipeManager {
	pm := &PipeManager{
		pipes: make([]Pipe, 0, 8),
		cfg:   cfg,
		world: world,
	}
	pm.Reset(seed)
	return pm
}

// Reset clears all pipes, the spawn timer, and reseeds the RNG.
func (pm *PipeManager) Reset(seed int64) {
	pm.pipes = pm.pipes[:0]
	pm.rng = rand.New(rand.NewSource(seed))
	pm.sinceSpawn = 0
}

// Width returns the pipe width.
func (pm *PipeManager) Width() float64 {
	return pm.cfg.Width
}

// MaxGap returns the largest gap that still leaves min_span for both pipes.
func (pm *PipeManager) MaxGap() float64 {
	return pm.world.GroundTop() - 2*pm.cfg.MinSpan
}

// Tick advances the spawn timer and spawns a pipe with the given gap height
// once spawn_interval has elapsed. The timer restarts from zero rather than
// carrying the overshoot. Returns true if a pipe was spawned.
func (pm *PipeManager) Tick(dt, gapHeight float64) bool {
	pm.sinceSpawn += dt
	if pm.sinceSpawn < pm.cfg.SpawnInterval {
		return false
	}
	pm.sinceSpawn = 0
	pm.Spawn(gapHeight)
	return true
}

// Spawn creates a new pipe just off the right edge of the world.
// The gap is clamped so both pipes keep at least min_span of height, and its
// center is drawn uniformly from the configured band where that band allows.
func (pm *PipeManager) Spawn(gapHeight float64) Pipe {
	groundTop := pm.world.GroundTop()
	gap := core.ClampF(gapHeight, 0, pm.MaxGap())

	// Strict range: both spans at least min_span tall
	lo := gap/2 + pm.cfg.MinSpan
	hi := groundTop - gap/2 - pm.cfg.MinSpan

	// Narrow to the center band when it overlaps the strict range
	bandLo := groundTop * pm.cfg.CenterMinRatio
	bandHi := groundTop * pm.cfg.CenterMaxRatio
	if max(lo, bandLo) <= min(hi, bandHi) {
		lo, hi = max(lo, bandLo), min(hi, bandHi)
	}

	pipe := Pipe{
		X:         pm.world.Width,
		GapY:      lo + pm.rng.Float64()*(hi-lo),
		GapHeight: gap,
		Passed:    false,
	}

	pm.pipes = append(pm.pipes, pipe)
	return pipe
}

// Update moves pipes left by speed*dt and drops those fully past the left edge.
// Returns the number of pipes removed.
func (pm *PipeManager) Update(dt, speed float64) int {
	shift := speed * dt
	for i := range pm.pipes {
		pm.pipes[i].X -= shift
	}

	// Compact in place; order of the survivors is preserved
	validPipes := pm.pipes[:0]
	for _, p := range pm.pipes {
		if p.X+pm.cfg.Width > offscreenEpsilon {
			validPipes = append(validPipes, p)
		}
	}
	removed := len(pm.pipes) - len(validPipes)
	pm.pipes = validPipes
	return removed
}

// MarkPassed flags every pipe whose right edge is behind flyerX.
// Each pipe is counted at most once. Returns the number newly passed.
func (pm *PipeManager) MarkPassed(flyerX float64) int {
	passed := 0
	for i := range pm.pipes {
		if !pm.pipes[i].Passed && flyerX > pm.pipes[i].X+pm.cfg.Width {
			pm.pipes[i].Passed = true
			passed++
		}
	}
	return passed
}

// Pipes returns the current list of pipes. The slice must not be modified.
func (pm *PipeManager) Pipes() []Pipe {
	return pm.pipes
}

// CheckCollision tests if the given rectangle overlaps any pipe.
func (pm *PipeManager) CheckCollision(r core.Rect) bool {
	groundTop := pm.world.GroundTop()
	for _, p := range pm.pipes {
		if r.Intersects(p.TopRect(pm.cfg.Width)) || r.Intersects(p.BottomRect(pm.cfg.Width, groundTop)) {
			return true
		}
	}
	return false
}
