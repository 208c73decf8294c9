package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Flyer is the player-controlled entity. X never changes after spawn;
// the world scrolls past it instead.
type Flyer struct {
	X, Y   float64 // Center of the collision circle
	VY     float64 // Vertical velocity, positive is down
	Radius float64

	physics config.PhysicsConfig
}

// NewFlyer places a flyer at its start position with zero velocity.
func NewFlyer(world config.WorldConfig, player config.PlayerConfig, physics config.PhysicsConfig) Flyer {
	return Flyer{
		X:       world.Width * player.XRatio,
		Y:       world.Height * player.YRatio,
		Radius:  player.Radius,
		physics: physics,
	}
}

// Jump replaces the current velocity with the jump velocity.
// Repeated jumps do not stack.
func (f *Flyer) Jump() {
	f.VY = f.physics.JumpVelocity
}

// Update integrates gravity over dt seconds.
// Velocity is capped at the max fall speed before moving.
func (f *Flyer) Update(dt float64) {
	f.VY += f.physics.Gravity * dt
	if f.VY > f.physics.MaxFallSpeed {
		f.VY = f.physics.MaxFallSpeed
	}
	f.Y += f.VY * dt
}

// Bounds returns the bounding square of the collision circle.
func (f Flyer) Bounds() core.Rect {
	return core.SquareAround(f.X, f.Y, f.Radius)
}
