package flora

import (
	"bloomfield/internal/bloom"
	"bloomfield/internal/core"
	"bloomfield/pkg/geom"
)

// instance is one flower: an immutable rolled personality plus the mutable
// lifecycle, rotation, and fast-death fields.
type instance struct {
	layout     bloom.Layout
	ornament   bloom.Ornament
	noise      bloom.NoiseConfig
	colors     bloom.FlowerColors
	basePetals int

	baseLength    float64
	baseWidth     float64
	basePointness float64
	baseBulge     float64
	baseEdgeCurve float64
	baseCenterRad float64

	stemHeight    float64
	stemCurvature float64
	stemThickness float64
	taperRatio    float64
	segments      int
	nodeWidth     float64

	pos        geom.Vec2 // normalized screen position
	depthScale float64

	pitchDirection float64
	lifeSpeedMult  float64

	rotationDeg float64
	spinDegSec  float64 // signed

	phase          float64
	lastVisible    int
	fastDeath      bool
	fastDeathTimer float64

	state LifeState
	head  *bloom.Head
	stem  *bloom.Stem
}

// respawn rerolls the full personality in place and restarts the lifecycle.
func (in *instance) respawn(rng *core.RNG, colorMode int, serial uint64) {
	in.pos = geom.Vec2{X: rng.Range(0.02, 0.98), Y: rng.Range(0.05, 0.98)}
	depthT := (in.pos.Y - 0.05) / 0.93
	in.depthScale = geom.Lerp(0.3, 1.2, depthT)

	in.layout, in.basePetals = rollLayout(rng)
	in.baseLength = rng.Range(35, 75)
	in.baseWidth = rng.Range(0.2, 0.55)
	in.basePointness = rng.Range(0.2, 0.8)
	in.baseBulge = rng.Range(0.3, 0.7)
	in.baseEdgeCurve = rng.Range(-0.15, 0.4)
	in.baseCenterRad = rng.Range(4, 12)
	in.ornament = rollOrnament(rng, in.baseCenterRad)
	in.noise = rollNoise(rng)
	in.colors = bloom.RollColors(rng, colorMode, serial)

	in.stemHeight = rng.Range(60, 140)
	in.stemCurvature = rng.Range(-0.4, 0.4)
	in.stemThickness = geom.Lerp(1.5, 4, in.depthScale)
	in.taperRatio = rng.Range(0.4, 0.8)
	if rng.Chance(0.5) {
		in.segments = rng.RangeInt(2, 5)
		in.nodeWidth = rng.Range(1.1, 1.5)
	} else {
		in.segments = 0
		in.nodeWidth = 1
	}

	in.pitchDirection = rng.Sign()
	in.lifeSpeedMult = rng.Range(0.7, 1.3)

	in.rotationDeg = rng.Range(0, 360)
	in.spinDegSec = rng.Range(2, 14) * rng.Sign()

	in.phase = 0
	in.lastVisible = in.basePetals
	in.fastDeath = false
	in.fastDeathTimer = 0
	in.state = lifeState(0, in.basePetals, in.basePointness, 0, 0)

	in.head = bloom.NewHead(in.headParams())
	in.stem = bloom.NewStem(in.stemShape(1, 0), rollTendrils(rng, in.stemHeight))
}

// headParams assembles the cache-stable head configuration. Per-frame length
// and pulse scaling flows through the draw transform, not through here.
func (in *instance) headParams() bloom.HeadParams {
	return bloom.HeadParams{
		Layout: in.layout,
		Petal: bloom.PetalShape{
			Length:        in.baseLength,
			Width:         in.baseWidth,
			TipPointiness: in.state.Pointiness,
			BulgePosition: in.baseBulge,
			EdgeCurvature: in.baseEdgeCurve,
		},
		Ornament: in.ornament,
		Noise:    in.noise,
	}
}

// stemShape assembles the current stem geometry for a lifecycle output.
func (in *instance) stemShape(stemScale, curveMod float64) bloom.StemShape {
	return bloom.StemShape{
		Height:     in.stemHeight * in.depthScale * stemScale,
		Thickness:  in.stemThickness,
		TaperRatio: in.taperRatio,
		Curvature:  geom.Clamp(in.stemCurvature+curveMod, -2, 2),
		Segments:   in.segments,
		NodeWidth:  in.nodeWidth,
	}
}

// rollLayout draws a weighted layout variant with its petal count.
func rollLayout(rng *core.RNG) (bloom.Layout, int) {
	roll := rng.Float64() * 100
	switch {
	case roll < 25:
		return bloom.Layout{Kind: bloom.Radial}, rng.RangeInt(4, 8)

	case roll < 45:
		return bloom.Layout{
			Kind:          bloom.Phyllotaxis,
			SpiralSpacing: rng.Range(2, 4),
		}, rng.RangeInt(20, 60)

	case roll < 65:
		ks := [5]float64{2, 3, 4, 5, 7}
		return bloom.Layout{
			Kind:      bloom.RoseCurve,
			K:         ks[rng.IntN(len(ks))],
			BaseScale: rng.Range(0.45, 0.75),
		}, rng.RangeInt(12, 24)

	case roll < 80:
		return bloom.Layout{
			Kind: bloom.Superformula,
			M:    float64(rng.RangeInt(3, 8)),
			N1:   rng.Range(0.4, 1.6),
			N2:   rng.Range(0.5, 1.8),
			N3:   rng.Range(0.5, 1.8),
			A:    rng.Range(0.85, 1.15),
			B:    rng.Range(0.85, 1.15),
		}, rng.RangeInt(10, 20)

	default:
		layers := rng.RangeInt(2, 4)
		per := rng.RangeInt(5, 9)
		return bloom.Layout{
			Kind:           bloom.LayeredWhorls,
			Layers:         layers,
			PetalsPerLayer: per,
			LengthFalloff:  rng.Range(0.5, 0.8),
			WidthGrowth:    rng.Range(1.0, 1.4),
			PhaseShift:     rng.Range(0.3, 0.7),
		}, layers * per
	}
}

// rollOrnament draws a center decoration sized to the center disc.
func rollOrnament(rng *core.RNG, radius float64) bloom.Ornament {
	kinds := [4]bloom.OrnamentKind{bloom.SimpleDisc, bloom.Stamens, bloom.PollenGrid, bloom.GeometricStar}
	return bloom.NewOrnament(kinds[rng.IntN(len(kinds))], radius, rng.Range(0.8, 1.6))
}

// rollNoise draws the jitter personality. The seed stays small because it
// doubles as the noise sampling coordinate.
func rollNoise(rng *core.RNG) bloom.NoiseConfig {
	if !rng.Chance(0.65) {
		return bloom.NoiseConfig{}
	}
	return bloom.NoiseConfig{
		Enabled:      true,
		Seed:         int64(rng.IntN(10000)),
		LengthAmount: rng.Range(0.05, 0.18),
		AngleAmount:  rng.Range(2, 7),
		ScaleAmount:  rng.Range(0.04, 0.12),
		TimeSpeed:    rng.Range(0.2, 0.7),
	}
}

// rollTendrils attaches up to two curls. Short stems stay bare.
func rollTendrils(rng *core.RNG, stemHeight float64) []bloom.TendrilSpec {
	if stemHeight <= 100 {
		return nil
	}
	n := rng.IntN(3)
	if n == 0 {
		return nil
	}
	specs := make([]bloom.TendrilSpec, n)
	for i := range specs {
		specs[i] = bloom.TendrilSpec{
			StemT:      rng.Range(0.3, 0.75),
			Length:     rng.Range(15, 35),
			CurlAmount: rng.Range(1.5, 3.5),
			Direction:  rng.Sign(),
			StartAngle: rng.Range(0.2, 0.6),
			Thickness:  rng.Range(0.8, 1.5),
		}
	}
	return specs
}
