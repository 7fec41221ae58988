package bloom

import (
	"math"
	"testing"

	"bloomfield/pkg/scene"
)

func buildOutline(s PetalShape) *scene.Path {
	var p scene.Path
	s.AppendOutline(&p)
	return &p
}

func TestPetalOutlineStructure(t *testing.T) {
	p := buildOutline(PetalShape{Length: 50, Width: 0.4, TipPointiness: 0.5, BulgePosition: 0.4})
	wantVerbs := []scene.Verb{scene.MoveTo, scene.CurveTo, scene.CurveTo, scene.ClosePath}
	if len(p.Verbs) != len(wantVerbs) {
		t.Fatalf("verb count: got %d want %d", len(p.Verbs), len(wantVerbs))
	}
	for i, v := range wantVerbs {
		if p.Verbs[i] != v {
			t.Fatalf("verb %d: got %d want %d", i, p.Verbs[i], v)
		}
	}
	if len(p.Pts) != 7 {
		t.Fatalf("point count: got %d want 7", len(p.Pts))
	}
}

func TestPetalTipDistance(t *testing.T) {
	for _, length := range []float64{10, 42.5, 75} {
		p := buildOutline(PetalShape{Length: length, Width: 0.3, TipPointiness: 0.7, BulgePosition: 0.5})
		tip := p.Pts[3]
		if tip.X != 0 {
			t.Fatalf("length %v: tip off axis: %v", length, tip)
		}
		if math.Abs(tip.Sub(p.Pts[0]).Len()-length) > 1e-12 {
			t.Fatalf("length %v: tip distance %v", length, tip.Sub(p.Pts[0]).Len())
		}
	}
}

func TestPetalMirrorSymmetry(t *testing.T) {
	p := buildOutline(PetalShape{Length: 60, Width: 0.45, TipPointiness: 0.3, BulgePosition: 0.35, EdgeCurvature: 0})
	// Right edge controls are pts[1], pts[2]; the mirrored left edge controls
	// come back as pts[4], pts[5].
	pairs := [][2]int{{1, 5}, {2, 4}}
	for _, pr := range pairs {
		r, l := p.Pts[pr[0]], p.Pts[pr[1]]
		if r.X != -l.X || r.Y != l.Y {
			t.Fatalf("controls %v not mirrored: %v vs %v", pr, r, l)
		}
	}
}

func TestPetalEdgeCurvatureShiftsBothEdges(t *testing.T) {
	flat := buildOutline(PetalShape{Length: 60, Width: 0.4, TipPointiness: 0.3, BulgePosition: 0.5})
	bowed := buildOutline(PetalShape{Length: 60, Width: 0.4, TipPointiness: 0.3, BulgePosition: 0.5, EdgeCurvature: 0.4})
	shift := 0.4 * (60 * 0.4) * 0.5
	if got := bowed.Pts[1].X - flat.Pts[1].X; math.Abs(got-shift) > 1e-12 {
		t.Fatalf("right bulge shift: got %v want %v", got, shift)
	}
	if got := bowed.Pts[5].X - flat.Pts[5].X; math.Abs(got+shift) > 1e-12 {
		t.Fatalf("left bulge shift: got %v want %v", got, -shift)
	}
}

func TestPetalParameterClamps(t *testing.T) {
	p := buildOutline(PetalShape{Length: 100, Width: 0.3, TipPointiness: 2, BulgePosition: 2})
	if p.Pts[2].X != 0 {
		t.Fatalf("over-pointy tip control not collapsed: %v", p.Pts[2])
	}
	if p.Pts[1].Y != -95 {
		t.Fatalf("bulge position not clamped to 0.95: %v", p.Pts[1])
	}
	p = buildOutline(PetalShape{Length: 100, Width: 0.3, TipPointiness: -1, BulgePosition: -1})
	if p.Pts[2].X != 30 {
		t.Fatalf("negative pointiness not clamped to 0: %v", p.Pts[2])
	}
	if p.Pts[1].Y != -5 {
		t.Fatalf("bulge position not clamped to 0.05: %v", p.Pts[1])
	}
}
