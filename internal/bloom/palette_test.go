package bloom

import (
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"

	"bloomfield/internal/core"
	"bloomfield/pkg/scene"
)

func checkColor(t *testing.T, name string, c scene.Color) {
	t.Helper()
	if c.A != 1 {
		t.Fatalf("%s alpha: %v", name, c.A)
	}
	for _, v := range []float64{c.R, c.G, c.B} {
		if v < 0 || v > 1 {
			t.Fatalf("%s channel out of range: %+v", name, c)
		}
	}
}

func TestRollColorsDeterministic(t *testing.T) {
	for mode := 0; mode <= 9; mode++ {
		a := RollColors(core.NewRNG(99), mode, 42)
		b := RollColors(core.NewRNG(99), mode, 42)
		if a != b {
			t.Fatalf("mode %d not reproducible", mode)
		}
		checkColor(t, "petal", a.Petal)
		checkColor(t, "center", a.Center)
		checkColor(t, "stem", a.Stem)
	}
}

func TestFixedPaletteStaysInFamily(t *testing.T) {
	// Ocean petals live in the blue band.
	for i := 0; i < 200; i++ {
		fc := RollColors(core.NewRNG(int64(i)), 3, 0)
		h, _, _ := colorful.Color{R: fc.Petal.R, G: fc.Petal.G, B: fc.Petal.B}.Hsv()
		if h < 180 || h > 260 {
			t.Fatalf("roll %d: ocean petal hue %v", i, h)
		}
	}
}

func TestCyclingModeAdvances(t *testing.T) {
	early := RollColors(core.NewRNG(7), 0, 0)
	late := RollColors(core.NewRNG(7), 0, 40)
	if early == late {
		t.Fatalf("cycling mode ignored the spawn serial")
	}
}

func TestLegacySchemeSplitsWarmCool(t *testing.T) {
	rng := core.NewRNG(123)
	cool := 0
	const rolls = 2000
	for i := 0; i < rolls; i++ {
		fc := RollColors(rng, 9, 0)
		h, _, _ := colorful.Color{R: fc.Petal.R, G: fc.Petal.G, B: fc.Petal.B}.Hsv()
		// Cool rolls land above 282 degrees on the converted wheel except for
		// the sliver that wraps past 0; warm rolls stay under 60.
		if h > 260 {
			cool++
		}
	}
	frac := float64(cool) / rolls
	if frac < 0.28 || frac > 0.48 {
		t.Fatalf("cool fraction %v, want near 0.37", frac)
	}
}
