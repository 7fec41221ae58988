package audio

import "bloomfield/pkg/geom"

// Beat detection thresholds. A beat is a sudden loudness spike against the
// slow-moving baseline, rate-limited so one kick drum reads as one beat.
const (
	slowVolumeAlpha = 0.02
	beatFloor       = 0.05
	beatRatio       = 1.4
	beatCooldown    = 0.25
	historyWindow   = 5.0

	// Beats inside the history window that count as "maximum density".
	densityFullCount = 20

	activityAlpha = 0.03
)

// BeatDetector flags onsets in the smoothed volume and keeps a bounded
// history of recent beats for density measurement.
type BeatDetector struct {
	SlowVolume float64

	now      float64
	cooldown float64
	beats    []float64 // fire times, oldest first
}

// Observe advances the detector by dt using the smoothed volume. It reports
// whether a beat fired this tick.
func (b *BeatDetector) Observe(vol, dt float64) bool {
	b.now += dt
	b.SlowVolume = ema(b.SlowVolume, vol, slowVolumeAlpha, dt)
	if b.cooldown > 0 {
		b.cooldown -= dt
	}
	b.prune()

	if b.cooldown > 0 || vol <= beatFloor {
		return false
	}
	baseline := b.SlowVolume
	if baseline < 1e-6 {
		baseline = 1e-6
	}
	if vol/baseline <= beatRatio {
		return false
	}
	b.cooldown = beatCooldown
	b.beats = append(b.beats, b.now)
	return true
}

// prune drops beats that fell out of the history window.
func (b *BeatDetector) prune() {
	cut := 0
	for cut < len(b.beats) && b.now-b.beats[cut] > historyWindow {
		cut++
	}
	if cut > 0 {
		b.beats = append(b.beats[:0], b.beats[cut:]...)
	}
}

// Density reports recent beat frequency normalized to [0, 1].
func (b *BeatDetector) Density() float64 {
	return geom.Clamp(float64(len(b.beats))/densityFullCount, 0, 1)
}

// Activity is the slowly drifting arousal score built from beat density,
// loudness and fullness. It steers the reactive population target.
type Activity struct {
	Value float64
}

// Observe folds one tick of inputs into the score and returns it.
func (a *Activity) Observe(beatDensity, vol, fullness, dt float64) float64 {
	target := 0.5*beatDensity + 0.3*vol + 0.2*fullness
	a.Value = ema(a.Value, target, activityAlpha, dt)
	return a.Value
}
