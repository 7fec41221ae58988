package geom

import (
	"math"
	"testing"
)

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestCubicEndpoints(t *testing.T) {
	p0 := Vec2{1, 2}
	p1 := Vec2{3, -4}
	p2 := Vec2{-2, 5}
	p3 := Vec2{7, 1}
	if got := CubicPoint(p0, p1, p2, p3, 0); got != p0 {
		t.Fatalf("curve start: got %v want %v", got, p0)
	}
	if got := CubicPoint(p0, p1, p2, p3, 1); got != p3 {
		t.Fatalf("curve end: got %v want %v", got, p3)
	}
}

func TestCubicTangentDirections(t *testing.T) {
	p0 := Vec2{0, 0}
	p1 := Vec2{1, 0}
	p2 := Vec2{2, 1}
	p3 := Vec2{3, 1}
	start := CubicTangent(p0, p1, p2, p3, 0)
	if !almost(start.X, 3) || !almost(start.Y, 0) {
		t.Fatalf("start tangent: got %v want (3,0)", start)
	}
	end := CubicTangent(p0, p1, p2, p3, 1)
	if !almost(end.X, 3) || !almost(end.Y, 0) {
		t.Fatalf("end tangent: got %v want (3,0)", end)
	}
}

func TestAffineOrdering(t *testing.T) {
	// Scale first, then translate: the translation must not be scaled.
	tr := Identity().ScaleXY(2, 3).Translate(10, 20)
	got := tr.Apply(Vec2{1, 1})
	if !almost(got.X, 12) || !almost(got.Y, 23) {
		t.Fatalf("scale-then-translate: got %v want (12,23)", got)
	}
	// Translate first, then scale: the translation is scaled too.
	tr = Identity().Translate(10, 20).ScaleXY(2, 3)
	got = tr.Apply(Vec2{1, 1})
	if !almost(got.X, 22) || !almost(got.Y, 63) {
		t.Fatalf("translate-then-scale: got %v want (22,63)", got)
	}
}

func TestAffineRotate(t *testing.T) {
	tr := Identity().Rotate(math.Pi / 2)
	got := tr.Apply(Vec2{1, 0})
	if !almost(got.X, 0) || !almost(got.Y, 1) {
		t.Fatalf("quarter turn: got %v want (0,1)", got)
	}
	// Rotation after a translate also rotates the offset.
	tr = Identity().Translate(1, 0).Rotate(math.Pi / 2)
	got = tr.Apply(Vec2{0, 0})
	if !almost(got.X, 0) || !almost(got.Y, 1) {
		t.Fatalf("rotated offset: got %v want (0,1)", got)
	}
}

func TestNormZeroSafe(t *testing.T) {
	if got := (Vec2{}).Norm(); got != (Vec2{}) {
		t.Fatalf("zero norm: got %v want (0,0)", got)
	}
	n := Vec2{3, 4}.Norm()
	if !almost(n.Len(), 1) {
		t.Fatalf("unit length: got %v", n.Len())
	}
}

func TestWrapDeg(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{360, 0},
		{725, 5},
		{-90, 270},
		{137.508 * 5, 327.54},
	}
	for _, c := range cases {
		if got := WrapDeg(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("WrapDeg(%v): got %v want %v", c.in, got, c.want)
		}
	}
}

func TestClampLerp(t *testing.T) {
	if got := Clamp(5, 0, 1); got != 1 {
		t.Fatalf("clamp high: got %v", got)
	}
	if got := Clamp(-5, 0, 1); got != 0 {
		t.Fatalf("clamp low: got %v", got)
	}
	if got := Lerp(10, 20, 0.25); !almost(got, 12.5) {
		t.Fatalf("lerp: got %v", got)
	}
}
