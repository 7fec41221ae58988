package bloom

import (
	"math"
	"testing"

	"bloomfield/pkg/geom"
	"bloomfield/pkg/scene"
)

func TestStemCenterlineEndpoints(t *testing.T) {
	s := NewStem(StemShape{Height: 100, Thickness: 3, TaperRatio: 0.3, Curvature: 0.5, Segments: 3, NodeWidth: 1.4}, nil)
	if got := s.PointAt(0); got != (geom.Vec2{}) {
		t.Fatalf("base: %v", got)
	}
	tip := s.PointAt(1)
	if math.Abs(tip.X-15) > 1e-12 || math.Abs(tip.Y+100) > 1e-12 {
		t.Fatalf("tip: %v want (15,-100)", tip)
	}
	// The last control point sits directly under the tip, so the tangent
	// there is vertical.
	tan := s.TangentAt(1).Norm()
	if math.Abs(tan.X) > 1e-12 || tan.Y >= 0 {
		t.Fatalf("tip tangent: %v", tan)
	}
}

func TestStemRibbonTaper(t *testing.T) {
	s := NewStem(StemShape{Height: 80, Thickness: 4, TaperRatio: 0.25, Segments: 0, NodeWidth: 1}, nil)
	var l scene.List
	s.Draw(&l, StemDrawState{Scale: 1, Color: scene.RGBA(0, 1, 0, 1)})
	if l.Len() != 1 {
		t.Fatalf("command count: %d", l.Len())
	}
	_, pts := l.PathData(l.Cmds[0])
	// Segments 0 floors sampling at 20 points per side.
	if len(pts) != 40 {
		t.Fatalf("ribbon points: got %d want 40", len(pts))
	}
	baseW := pts[0].Sub(pts[39]).Len()
	tipW := pts[19].Sub(pts[20]).Len()
	if math.Abs(baseW-4) > 1e-9 {
		t.Fatalf("base width: %v want 4", baseW)
	}
	if math.Abs(tipW-1) > 1e-9 {
		t.Fatalf("tip width: %v want 1", tipW)
	}
}

func TestStemNodeBump(t *testing.T) {
	s := NewStem(StemShape{Height: 80, Thickness: 4, TaperRatio: 1, Segments: 2, NodeWidth: 2}, nil)
	// Dead center of the single internal boundary: full bump.
	if got := s.taperAt(0.5); math.Abs(got-4) > 1e-12 {
		t.Fatalf("bumped half-thickness: %v want 4", got)
	}
	// Outside the influence radius the taper is unmodified.
	if got := s.taperAt(0.2); math.Abs(got-2) > 1e-12 {
		t.Fatalf("plain half-thickness: %v want 2", got)
	}
}

func TestTendrilPolyline(t *testing.T) {
	spec := TendrilSpec{StemT: 0.6, Length: 30, CurlAmount: 2, Direction: 1, StartAngle: 0.3, Thickness: 1.2}
	s := NewStem(StemShape{Height: 90, Thickness: 3, TaperRatio: 0.4, Segments: 2, NodeWidth: 1.2}, []TendrilSpec{spec})
	s.rebuild()
	if len(s.curls) != 1 {
		t.Fatalf("curl count: %d", len(s.curls))
	}
	pts := s.curls[0]
	if len(pts) != tendrilSteps+1 {
		t.Fatalf("curl points: got %d want %d", len(pts), tendrilSteps+1)
	}
	if pts[0] != s.PointAt(0.6) {
		t.Fatalf("curl start: %v want %v", pts[0], s.PointAt(0.6))
	}
	total := 0.0
	for i := 0; i+1 < len(pts); i++ {
		total += pts[i+1].Sub(pts[i]).Len()
	}
	// Sum of a 15-step walk with segments shrinking by 0.4 over the run.
	want := 0.0
	for i := 0; i < tendrilSteps; i++ {
		want += 30.0 / tendrilSteps * (1 - 0.4*float64(i)/tendrilSteps)
	}
	if math.Abs(total-want) > 1e-9 {
		t.Fatalf("curl arc length: %v want %v", total, want)
	}
}

func TestStemDrawIdempotent(t *testing.T) {
	spec := TendrilSpec{StemT: 0.5, Length: 20, CurlAmount: 1.5, Direction: -1, StartAngle: 0.5, Thickness: 1}
	s := NewStem(StemShape{Height: 70, Thickness: 3, TaperRatio: 0.3, Curvature: -0.2, Segments: 3, NodeWidth: 1.5}, []TendrilSpec{spec})
	st := StemDrawState{Base: geom.Vec2{X: 100, Y: 400}, Scale: 0.8, Color: scene.RGBA(0, 0.6, 0, 1)}
	var a, b scene.List
	s.Draw(&a, st)
	s.Draw(&b, st)
	if a.Len() != b.Len() {
		t.Fatalf("command counts differ: %d vs %d", a.Len(), b.Len())
	}
	_, ap := a.PathData(a.Cmds[0])
	_, bp := b.PathData(b.Cmds[0])
	for i := range ap {
		if ap[i] != bp[i] {
			t.Fatalf("ribbon point %d differs", i)
		}
	}
}

func TestStemDirtyGating(t *testing.T) {
	sh := StemShape{Height: 70, Thickness: 3, TaperRatio: 0.3, Segments: 2, NodeWidth: 1.2}
	s := NewStem(sh, nil)
	var l scene.List
	s.Draw(&l, StemDrawState{Scale: 1})
	if s.dirty {
		t.Fatalf("dirty after draw")
	}
	s.SetShape(sh)
	if s.dirty {
		t.Fatalf("identical shape marked dirty")
	}
	sh.Curvature = 1.2
	s.SetShape(sh)
	if !s.dirty {
		t.Fatalf("changed curvature left cache clean")
	}
}

func TestStemTipMatchesTransform(t *testing.T) {
	s := NewStem(StemShape{Height: 100, Thickness: 3, TaperRatio: 0.3, Curvature: 0.4, Segments: 2, NodeWidth: 1}, nil)
	st := StemDrawState{Base: geom.Vec2{X: 50, Y: 300}, Scale: 0.5}
	tip := s.Tip(st)
	want := geom.Vec2{X: 50 + 0.5*12, Y: 300 - 0.5*100}
	if math.Abs(tip.X-want.X) > 1e-12 || math.Abs(tip.Y-want.Y) > 1e-12 {
		t.Fatalf("tip: %v want %v", tip, want)
	}
}
