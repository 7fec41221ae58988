package bloom

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"bloomfield/internal/core"
	"bloomfield/pkg/geom"
	"bloomfield/pkg/scene"
)

// FlowerColors is the immutable color assignment of one instance.
type FlowerColors struct {
	Petal  scene.Color
	Center scene.Color
	Stem   scene.Color
}

// Palette bounds the color rolls for each flower part. Hues are degrees,
// saturation and value are [0, 1] ranges.
type Palette struct {
	Name      string
	PetalHues []float64
	PetalSat  [2]float64
	PetalVal  [2]float64
	CenterHue [2]float64
	StemHue   [2]float64
}

// Palettes is the fixed set color modes 1-8 select from; mode 0 cycles
// through it as spawns accumulate.
var Palettes = [8]Palette{
	{Name: "meadow", PetalHues: []float64{350, 15, 45, 325}, PetalSat: [2]float64{0.55, 0.85}, PetalVal: [2]float64{0.85, 1}, CenterHue: [2]float64{35, 70}, StemHue: [2]float64{100, 140}},
	{Name: "sunset", PetalHues: []float64{5, 20, 35, 320}, PetalSat: [2]float64{0.65, 0.9}, PetalVal: [2]float64{0.9, 1}, CenterHue: [2]float64{30, 55}, StemHue: [2]float64{95, 130}},
	{Name: "ocean", PetalHues: []float64{190, 210, 230, 250}, PetalSat: [2]float64{0.5, 0.8}, PetalVal: [2]float64{0.8, 0.95}, CenterHue: [2]float64{45, 60}, StemHue: [2]float64{150, 175}},
	{Name: "orchid", PetalHues: []float64{270, 285, 300, 315}, PetalSat: [2]float64{0.45, 0.75}, PetalVal: [2]float64{0.85, 1}, CenterHue: [2]float64{50, 70}, StemHue: [2]float64{110, 145}},
	{Name: "ember", PetalHues: []float64{0, 12, 24, 36}, PetalSat: [2]float64{0.75, 0.95}, PetalVal: [2]float64{0.85, 1}, CenterHue: [2]float64{25, 45}, StemHue: [2]float64{85, 110}},
	{Name: "pastel", PetalHues: []float64{340, 20, 60, 200, 280}, PetalSat: [2]float64{0.2, 0.4}, PetalVal: [2]float64{0.95, 1}, CenterHue: [2]float64{40, 60}, StemHue: [2]float64{105, 140}},
	{Name: "mono", PetalHues: []float64{45, 48, 52, 55}, PetalSat: [2]float64{0.5, 0.7}, PetalVal: [2]float64{0.9, 1}, CenterHue: [2]float64{40, 50}, StemHue: [2]float64{100, 120}},
	{Name: "dusk", PetalHues: []float64{230, 255, 280, 305}, PetalSat: [2]float64{0.55, 0.8}, PetalVal: [2]float64{0.6, 0.85}, CenterHue: [2]float64{35, 55}, StemHue: [2]float64{130, 160}},
}

// RollColors draws a color set for a new instance. Mode 0 cycles the palette
// table as the spawn serial grows, 1-8 pin one palette, anything else rolls
// the legacy warm/cool scheme.
func RollColors(rng *core.RNG, mode int, spawnSerial uint64) FlowerColors {
	switch {
	case mode >= 1 && mode <= len(Palettes):
		return rollPalette(rng, Palettes[mode-1])
	case mode == 0:
		return rollPalette(rng, Palettes[(spawnSerial/8)%uint64(len(Palettes))])
	default:
		return rollLegacy(rng)
	}
}

func rollPalette(rng *core.RNG, p Palette) FlowerColors {
	hue := p.PetalHues[rng.IntN(len(p.PetalHues))] + rng.Range(-8, 8)
	pc := colorful.Hsv(geom.WrapDeg(hue), rng.Range(p.PetalSat[0], p.PetalSat[1]), rng.Range(p.PetalVal[0], p.PetalVal[1]))
	cc := colorful.Hsv(rng.Range(p.CenterHue[0], p.CenterHue[1]), rng.Range(0.6, 0.9), rng.Range(0.88, 1))
	sc := colorful.Hsv(rng.Range(p.StemHue[0], p.StemHue[1]), rng.Range(0.45, 0.75), rng.Range(0.45, 0.7))
	return FlowerColors{
		Petal:  scene.RGBA(pc.R, pc.G, pc.B, 1),
		Center: scene.RGBA(cc.R, cc.G, cc.B, 1),
		Stem:   scene.RGBA(sc.R, sc.G, sc.B, 1),
	}
}

// rollLegacy rolls free-wheel HSB colors on the 0-255 wheel: warm petal
// hues with a 40% chance of a cool band, golden centers, green stems.
func rollLegacy(rng *core.RNG) FlowerColors {
	var hue float64
	if rng.Chance(0.4) {
		hue = rng.Range(200, 260)
	} else {
		hue = rng.Range(0, 40)
	}
	return FlowerColors{
		Petal:  hsb255(hue, rng.Range(140, 220), rng.Range(215, 255)),
		Center: hsb255(rng.Range(25, 50), rng.Range(150, 230), rng.Range(230, 255)),
		Stem:   hsb255(rng.Range(75, 110), rng.Range(120, 200), rng.Range(120, 190)),
	}
}

// hsb255 converts a color on the legacy 0-255 HSB wheel to a scene color.
func hsb255(h, s, b float64) scene.Color {
	c := colorful.Hsv(geom.WrapDeg(h/255*360), s/255, b/255)
	return scene.RGBA(c.R, c.G, c.B, 1)
}
