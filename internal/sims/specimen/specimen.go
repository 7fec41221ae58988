// Package specimen shows one centered flower cycling through every head
// layout and center ornament, a gallery view for tuning shapes.
package specimen

import (
	"fmt"
	"strconv"

	"bloomfield/internal/audio"
	"bloomfield/internal/bloom"
	"bloomfield/internal/core"
	"bloomfield/pkg/geom"
	"bloomfield/pkg/scene"
)

const spinDegPerSec = 8.0

// layouts is the curated showcase sequence, one canonical parameter set per
// arrangement.
var layouts = []struct {
	layout bloom.Layout
	petals int
}{
	{bloom.Layout{Kind: bloom.Radial}, 8},
	{bloom.Layout{Kind: bloom.Phyllotaxis, SpiralSpacing: 3}, 45},
	{bloom.Layout{Kind: bloom.RoseCurve, K: 4, BaseScale: 0.55}, 18},
	{bloom.Layout{Kind: bloom.Superformula, M: 5, N1: 0.8, N2: 1.2, N3: 1.2, A: 1, B: 1}, 14},
	{bloom.Layout{Kind: bloom.LayeredWhorls, Layers: 3, PetalsPerLayer: 7, LengthFalloff: 0.65, WidthGrowth: 1.2, PhaseShift: 0.5}, 21},
}

var ornaments = []bloom.OrnamentKind{bloom.SimpleDisc, bloom.Stamens, bloom.PollenGrid, bloom.GeometricStar}

// Config holds the specimen viewer options.
type Config struct {
	Seed         int64
	CycleSeconds float64
	ColorMode    int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Seed: 1337, CycleSeconds: 6, ColorMode: 9}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["cycle"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.CycleSeconds = parsed
		}
	}
	if v, ok := cfg["color_mode"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.ColorMode = parsed
		}
	}
	return c
}

// Specimen renders a single reactive flower centered in the viewport.
type Specimen struct {
	cfg Config
	rng *core.RNG

	tracker audio.Tracker

	head   *bloom.Head
	stem   *bloom.Stem
	colors bloom.FlowerColors

	variant     int
	serial      uint64
	timer       float64
	elapsed     float64
	rotationDeg float64
	pointiness  float64
	pulse       float64
	vp          core.Viewport
}

// New returns a Specimen using defaults.
func New() *Specimen {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig returns a Specimen configured from the provided options.
func NewWithConfig(cfg Config) *Specimen {
	s := &Specimen{
		cfg:   cfg,
		rng:   core.NewRNG(cfg.Seed),
		pulse: 1,
		vp:    core.Viewport{W: 1280, H: 720},
	}
	s.apply()
	return s
}

// Name returns the simulation identifier.
func (s *Specimen) Name() string { return "specimen" }

// Variant reports the active layout/ornament combination index.
func (s *Specimen) Variant() int { return s.variant }

// ColorMode reports the active palette mode.
func (s *Specimen) ColorMode() int { return s.cfg.ColorMode }

// SetColorMode switches the palette mode and recolors the current flower.
func (s *Specimen) SetColorMode(mode int) {
	if mode < 0 || mode > 9 {
		return
	}
	s.cfg.ColorMode = mode
	s.apply()
}

// Setup restarts the showcase cycle. The count is unused beyond validation;
// a specimen is always a single flower.
func (s *Specimen) Setup(count int) error {
	if count < 0 {
		return fmt.Errorf("specimen: instance count must be >= 0, got %d", count)
	}
	s.variant = 0
	s.timer = 0
	s.apply()
	return nil
}

// Reset reseeds the color rolls and restarts the cycle.
func (s *Specimen) Reset(seed int64) {
	s.cfg.Seed = seed
	s.rng = core.NewRNG(seed)
	s.tracker = audio.Tracker{}
	s.serial = 0
	s.elapsed = 0
	s.rotationDeg = 0
	s.Setup(0)
}

// Update advances the cycle timer and the audio smoothing.
func (s *Specimen) Update(m core.Metrics, dt float64, vp core.Viewport) {
	dt = core.ClampDt(dt)
	s.vp = vp
	s.elapsed += dt
	s.tracker.Observe(m.Clamped(), dt)

	s.timer += dt
	if s.timer >= s.cfg.CycleSeconds {
		s.timer -= s.cfg.CycleSeconds
		s.variant = (s.variant + 1) % (len(layouts) * len(ornaments))
		s.apply()
	}

	s.rotationDeg = geom.WrapDeg(s.rotationDeg + spinDegPerSec*dt)
	s.pulse = 1 + s.tracker.Volume*0.9
	s.pointiness = geom.Clamp(0.5+s.tracker.PitchNorm()*0.35, 0, 1)
	s.head.SetParams(s.headParams())
}

// Scene emits the stem and head of the single flower.
func (s *Specimen) Scene(dst *scene.List) {
	base := geom.Vec2{X: s.vp.W * 0.5, Y: s.vp.H * 0.8}
	st := bloom.StemDrawState{Base: base, Scale: 1, Color: s.colors.Stem}
	s.stem.Draw(dst, st)

	entry := layouts[s.variant%len(layouts)]
	s.head.Draw(dst, bloom.DrawState{
		Center:       s.stem.Tip(st),
		Visible:      entry.petals,
		RotationDeg:  s.rotationDeg,
		LengthScale:  s.pulse,
		WidthScale:   s.pulse,
		Elapsed:      s.elapsed,
		PetalColor:   s.colors.Petal,
		CenterColor:  s.colors.Center,
		CenterRadius: 10,
	})
}

// apply rebuilds the flower for the active variant.
func (s *Specimen) apply() {
	s.colors = bloom.RollColors(s.rng, s.cfg.ColorMode, s.serial)
	s.serial++
	if s.pulse == 0 {
		s.pulse = 1
	}
	s.pointiness = 0.5

	s.head = bloom.NewHead(s.headParams())
	s.stem = bloom.NewStem(bloom.StemShape{
		Height:     180,
		Thickness:  5,
		TaperRatio: 0.6,
		Curvature:  0.15,
		Segments:   3,
		NodeWidth:  1.25,
	}, []bloom.TendrilSpec{{
		StemT:      0.55,
		Length:     28,
		CurlAmount: 2.5,
		Direction:  1,
		StartAngle: 0.35,
		Thickness:  1.2,
	}})
}

// headParams assembles the parameters for the active variant.
func (s *Specimen) headParams() bloom.HeadParams {
	entry := layouts[s.variant%len(layouts)]
	kind := ornaments[s.variant%len(ornaments)]
	return bloom.HeadParams{
		Layout: entry.layout,
		Petal: bloom.PetalShape{
			Length:        90,
			Width:         0.4,
			TipPointiness: s.pointiness,
			BulgePosition: 0.5,
			EdgeCurvature: 0.15,
		},
		Ornament: bloom.NewOrnament(kind, 10, 1.2),
		Noise: bloom.NoiseConfig{
			Enabled:      true,
			Seed:         91,
			LengthAmount: 0.1,
			AngleAmount:  4,
			ScaleAmount:  0.08,
			TimeSpeed:    0.4,
		},
	}
}

func init() {
	core.Register("specimen", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
