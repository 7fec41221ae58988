package core

import "time"

// Timing bounds applied to every frame delta. Long stalls (window drags,
// debugger pauses) would otherwise teleport lifecycles forward.
const (
	MinDt = 0.001
	MaxDt = 0.1
)

// ClampDt forces a delta in seconds into the stable [MinDt, MaxDt] window.
func ClampDt(dt float64) float64 {
	if dt < MinDt {
		return MinDt
	}
	if dt > MaxDt {
		return MaxDt
	}
	return dt
}

// Clock measures wall-clock frame deltas, clamped for stability.
type Clock struct {
	last time.Time
}

// NewClock constructs a Clock. The first Dt call returns MinDt.
func NewClock() *Clock {
	return &Clock{}
}

// Dt returns the clamped seconds elapsed since the previous call.
func (c *Clock) Dt() float64 {
	now := time.Now()
	if c.last.IsZero() {
		c.last = now
		return MinDt
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	return ClampDt(dt)
}
