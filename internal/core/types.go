package core

import "bloomfield/pkg/scene"

// Metrics is one frame of externally supplied audio measurements. The engine
// never analyzes sound itself; whatever produces these values owns that job.
type Metrics struct {
	Volume           float64 // overall loudness in [0, 1]
	Pitch            float64 // dominant pitch in Hz, 0 when unknown
	PitchConfidence  float64 // reliability of Pitch in [0, 1]
	SpectralFullness float64 // spectral richness in [0, 1]
}

// Clamped returns m with every component forced into its documented range.
func (m Metrics) Clamped() Metrics {
	m.Volume = clamp01(m.Volume)
	m.PitchConfidence = clamp01(m.PitchConfidence)
	m.SpectralFullness = clamp01(m.SpectralFullness)
	if m.Pitch < 0 {
		m.Pitch = 0
	} else if m.Pitch > 20000 {
		m.Pitch = 20000
	}
	return m
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Viewport is the output surface size in pixels.
type Viewport struct {
	W float64
	H float64
}

// Sim defines the contract an animated scene must implement.
type Sim interface {
	Name() string
	Setup(count int) error
	Reset(seed int64)
	Update(m Metrics, dt float64, vp Viewport)
	Scene(dst *scene.List)
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}
