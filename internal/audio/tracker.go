// Package audio turns raw metric frames into the smoothed, beat-annotated
// values the simulations consume. Nothing here listens to sound: metrics
// arrive from a Driver and the package only conditions them.
package audio

import (
	"math"

	"bloomfield/internal/core"
	"bloomfield/pkg/geom"
)

// Smoothing constants, expressed as per-tick blend factors at the nominal
// 60 Hz rate. ema rescales them for the actual dt.
const (
	volumeAlpha   = 0.18
	fullnessAlpha = 0.15
	pitchAlpha    = 0.30

	// Raw volume sits well below full scale for typical music, so it is
	// boosted before clamping.
	volumeGain = 5.0

	minPitchHz    = 50.0
	centerPitchHz = 261.0
	maxPitchHz    = 2500.0

	confidenceGate = 0.1
)

// ema blends prev toward target with a per-tick factor alpha defined at 60 Hz,
// corrected for the actual tick length so smoothing speed does not depend on
// the frame rate.
func ema(prev, target, alpha, dt float64) float64 {
	k := 1 - math.Pow(1-alpha, dt*60)
	return prev + (target-prev)*k
}

// Tracker holds the smoothed metric state for one simulation.
type Tracker struct {
	Volume   float64 // boosted and smoothed loudness in [0, 1]
	Fullness float64 // smoothed spectral fullness in [0, 1]
	PitchHz  float64 // smoothed pitch; 0 until a confident reading arrives
}

// Observe folds one clamped metric frame into the smoothed state. Pitch only
// moves on confident readings above the 50 Hz floor, so silence and octave
// noise cannot yank it around.
func (t *Tracker) Observe(m core.Metrics, dt float64) {
	t.Volume = ema(t.Volume, geom.Clamp(m.Volume*volumeGain, 0, 1), volumeAlpha, dt)
	t.Fullness = ema(t.Fullness, m.SpectralFullness, fullnessAlpha, dt)
	if m.PitchConfidence > confidenceGate && m.Pitch > minPitchHz {
		if t.PitchHz <= 0 {
			t.PitchHz = m.Pitch
		} else {
			t.PitchHz = ema(t.PitchHz, m.Pitch, pitchAlpha, dt)
		}
	}
}

// PitchNorm maps the smoothed pitch onto [-1, 1] on a log2 scale centered
// near middle C. Returns 0 while no pitch has been heard.
func (t *Tracker) PitchNorm() float64 {
	if t.PitchHz <= 0 {
		return 0
	}
	halfSpan := math.Log2(maxPitchHz/minPitchHz) * 0.5
	n := (math.Log2(t.PitchHz) - math.Log2(centerPitchHz)) / halfSpan
	return geom.Clamp(n, -1, 1)
}
