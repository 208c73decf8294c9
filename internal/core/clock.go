package core

import "time"

// DefaultMaxDelta bounds a single measured delta so a stalled terminal
// cannot teleport the flyer through a pipe.
const DefaultMaxDelta = 0.1

// Clock turns tick timestamps into per-step elapsed seconds.
// The frame-rate wait itself happens in the platform (tea.Tick); Clock only
// measures, caps, and optionally fixes the step length.
type Clock struct {
	tickRate int
	maxDelta float64
	fixed    bool
	last     time.Time
	started  bool
}

// NewClock creates a clock for the given maximum frame rate.
// In fixed mode every delta is exactly 1/tickRate seconds.
func NewClock(tickRate int, fixed bool) *Clock {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Clock{
		tickRate: tickRate,
		maxDelta: DefaultMaxDelta,
		fixed:    fixed,
	}
}

// TickRate returns the effective frame rate.
func (c *Clock) TickRate() int {
	return c.tickRate
}

// Interval returns the minimum time between steps.
func (c *Clock) Interval() time.Duration {
	return time.Second / time.Duration(c.tickRate)
}

// Step returns the nominal step length in seconds.
func (c *Clock) Step() float64 {
	return 1.0 / float64(c.tickRate)
}

// Tick records a step at now and returns the elapsed seconds since the previous one.
// The first tick after creation or Reset returns the nominal step.
func (c *Clock) Tick(now time.Time) float64 {
	if c.fixed || !c.started {
		c.last = now
		c.started = true
		return c.Step()
	}

	dt := now.Sub(c.last).Seconds()
	c.last = now
	return ClampF(dt, 0, c.maxDelta)
}

// Reset forgets the previous tick, e.g. after the simulation was frozen.
func (c *Clock) Reset() {
	c.started = false
}
