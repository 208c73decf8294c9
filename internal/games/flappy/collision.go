package flappy

// Collides reports whether the flyer touches the ceiling, the ground, or a pipe.
// The flyer's circle is approximated by its bounding square.
func Collides(f Flyer, pipes *PipeManager, groundTop float64) bool {
	if f.Y-f.Radius <= 0 {
		return true
	}
	if f.Y+f.Radius >= groundTop {
		return true
	}
	return pipes.CheckCollision(f.Bounds())
}
