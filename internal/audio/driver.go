package audio

import (
	"math"

	"bloomfield/internal/core"
	"bloomfield/pkg/geom"
)

// Driver produces the raw metric frames that animate a simulation. Next is
// called once per tick from the frame loop; drivers backed by their own
// goroutines must synchronize internally and return a snapshot.
type Driver interface {
	Next(dt float64) core.Metrics
}

// LFO is a dependency-free driver that layers slow oscillators into
// plausible music-shaped metrics. It keeps demos moving with no audio
// device at all.
type LFO struct {
	t       float64
	bpm     float64
	volWalk float64
	rng     *core.RNG
}

// NewLFO constructs a deterministic LFO driver.
func NewLFO(seed int64) *LFO {
	return &LFO{bpm: 112, rng: core.NewRNG(seed)}
}

// Next advances the oscillators and returns one metric frame. Volume stays in
// the raw pre-gain range a real capture pipeline would report.
func (l *LFO) Next(dt float64) core.Metrics {
	l.t += dt

	beat := l.bpm / 60
	pulse := math.Sin(2 * math.Pi * beat * l.t)
	if pulse < 0 {
		pulse = 0
	}
	pulse = math.Pow(pulse, 6)

	breath := 0.5 + 0.5*math.Sin(2*math.Pi*0.05*l.t)
	l.volWalk = geom.Clamp(l.volWalk+l.rng.Range(-0.01, 0.01), -0.03, 0.03)
	vol := 0.03 + 0.15*pulse*(0.55+0.45*breath) + l.volWalk
	if vol < 0 {
		vol = 0
	}

	fullness := geom.Clamp(0.4+0.3*math.Sin(2*math.Pi*0.023*l.t+1.7)+0.25*breath, 0, 1)

	// Pitch wanders about an octave around middle C, with light vibrato.
	drift := 0.8*math.Sin(2*math.Pi*0.011*l.t) + 0.05*math.Sin(2*math.Pi*5.2*l.t)
	pitch := centerPitchHz * math.Pow(2, drift)
	conf := geom.Clamp(0.55+0.4*math.Sin(2*math.Pi*0.04*l.t+0.9), 0, 1)

	return core.Metrics{
		Volume:           vol,
		Pitch:            pitch,
		PitchConfidence:  conf,
		SpectralFullness: fullness,
	}
}
