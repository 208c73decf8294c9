package flappy

// Ground is the scrolling floor: two strips, each one viewport wide,
// kept side by side so together they always cover [0, width).
type Ground struct {
	X1, X2 float64 // Left edge of each strip
	Width  float64 // Strip width (= viewport width)
	Top    float64 // Y of the ground surface
}

// NewGround creates a ground with the first strip at the left edge.
func NewGround(width, top float64) Ground {
	return Ground{
		X1:    0,
		X2:    width,
		Width: width,
		Top:   top,
	}
}

// Update scrolls both strips left by speed*dt and wraps any strip whose
// right edge has reached the left bound to the right of the other strip.
// The ground only moves left; a negative shift is ignored.
func (g *Ground) Update(dt, speed float64) {
	if g.Width <= 0 {
		return
	}

	shift := max(speed*dt, 0)
	g.X1 -= shift
	g.X2 -= shift

	// Loop so a very large step still ends with a covering pair.
	for {
		switch {
		case g.X1+g.Width <= 0:
			g.X1 = g.X2 + g.Width
		case g.X2+g.Width <= 0:
			g.X2 = g.X1 + g.Width
		default:
			return
		}
	}
}

// Lead returns the offset of the strip currently covering x=0.
func (g Ground) Lead() float64 {
	return min(g.X1, g.X2)
}
