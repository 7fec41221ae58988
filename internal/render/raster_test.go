package render

import (
	"testing"

	"bloomfield/pkg/geom"
	"bloomfield/pkg/scene"
)

func pixelAt(r *Raster, x, y int) [4]byte {
	w, _ := r.Size()
	base := (y*w + x) * 4
	p := r.Pix()
	return [4]byte{p[base], p[base+1], p[base+2], p[base+3]}
}

func squarePath(x0, y0, x1, y1 float64) *scene.Path {
	var p scene.Path
	p.MoveTo(geom.Vec2{X: x0, Y: y0})
	p.LineTo(geom.Vec2{X: x1, Y: y0})
	p.LineTo(geom.Vec2{X: x1, Y: y1})
	p.LineTo(geom.Vec2{X: x0, Y: y1})
	p.Close()
	return &p
}

func TestFillSquareCoversInterior(t *testing.T) {
	r := NewRaster(40, 40)
	var list scene.List
	list.FillPath(squarePath(10, 10, 30, 30), geom.Identity(), scene.RGBA(1, 0, 0, 1))
	r.Draw(&list)

	if got := pixelAt(r, 20, 20); got != [4]byte{255, 0, 0, 255} {
		t.Fatalf("interior pixel = %v, want opaque red", got)
	}
	if got := pixelAt(r, 5, 5); got != [4]byte{} {
		t.Fatalf("exterior pixel = %v, want untouched", got)
	}
	if got := pixelAt(r, 31, 20); got != [4]byte{} {
		t.Fatalf("pixel right of the square = %v, want untouched", got)
	}
}

func TestEvenOddLeavesHoleEmpty(t *testing.T) {
	r := NewRaster(50, 50)
	outer := squarePath(10, 10, 40, 40)
	inner := squarePath(20, 20, 30, 30)
	outer.Verbs = append(outer.Verbs, inner.Verbs...)
	outer.Pts = append(outer.Pts, inner.Pts...)

	var list scene.List
	list.FillPath(outer, geom.Identity(), scene.RGBA(0, 0, 1, 1))
	r.Draw(&list)

	if got := pixelAt(r, 15, 25); got != [4]byte{0, 0, 255, 255} {
		t.Fatalf("ring pixel = %v, want opaque blue", got)
	}
	if got := pixelAt(r, 25, 25); got != [4]byte{} {
		t.Fatalf("hole pixel = %v, want empty", got)
	}
}

func TestFillCircleSpans(t *testing.T) {
	r := NewRaster(40, 40)
	var list scene.List
	list.Circle(geom.Vec2{X: 20, Y: 20}, 10, scene.RGBA(0, 1, 0, 1))
	r.Draw(&list)

	if got := pixelAt(r, 20, 20); got != [4]byte{0, 255, 0, 255} {
		t.Fatalf("center pixel = %v, want opaque green", got)
	}
	if got := pixelAt(r, 29, 20); got != [4]byte{0, 255, 0, 255} {
		t.Fatalf("edge pixel = %v, want opaque green", got)
	}
	if got := pixelAt(r, 20, 5); got != [4]byte{} {
		t.Fatalf("pixel above the disc = %v, want empty", got)
	}
	if got := pixelAt(r, 29, 29); got != [4]byte{} {
		t.Fatalf("bounding-box corner = %v, want empty", got)
	}
}

func TestSourceOverBlend(t *testing.T) {
	r := NewRaster(20, 20)
	r.Clear(scene.Color{R: 1, G: 1, B: 1, A: 1})
	var list scene.List
	list.FillPath(squarePath(0, 0, 20, 20), geom.Identity(), scene.RGBA(0, 0, 0, 0.5))
	r.Draw(&list)

	// Half-alpha black over opaque white: src 128 premult, dst scaled by
	// the remaining 127/255.
	got := pixelAt(r, 10, 10)
	if got[0] != 127 || got[3] != 255 {
		t.Fatalf("blended pixel = %v, want 50%% gray with full alpha", got)
	}
}

func TestStrokeLineWidth(t *testing.T) {
	r := NewRaster(40, 40)
	var list scene.List
	list.Line(geom.Vec2{X: 5, Y: 20}, geom.Vec2{X: 35, Y: 20}, 4, scene.RGBA(1, 1, 1, 1))
	r.Draw(&list)

	if got := pixelAt(r, 20, 20); got[3] != 255 {
		t.Fatalf("pixel on the line = %v, want opaque", got)
	}
	if got := pixelAt(r, 20, 19); got[3] != 255 {
		t.Fatalf("pixel inside the stroke width = %v, want opaque", got)
	}
	if got := pixelAt(r, 20, 15); got != [4]byte{} {
		t.Fatalf("pixel outside the stroke = %v, want empty", got)
	}
}

func TestCurvedFillCoversSpine(t *testing.T) {
	var p scene.Path
	p.MoveTo(geom.Vec2{})
	p.CurveTo(geom.Vec2{X: -20, Y: -30}, geom.Vec2{X: -5, Y: -55}, geom.Vec2{Y: -60})
	p.CurveTo(geom.Vec2{X: 5, Y: -55}, geom.Vec2{X: 20, Y: -30}, geom.Vec2{})
	p.Close()

	r := NewRaster(100, 100)
	var list scene.List
	list.FillPath(&p, geom.Identity().Translate(50, 80), scene.RGBA(1, 0, 1, 1))
	r.Draw(&list)

	// The spine between base and tip lies inside the outline.
	if got := pixelAt(r, 50, 45); got[3] != 255 {
		t.Fatalf("spine pixel = %v, want filled", got)
	}
	if got := pixelAt(r, 80, 45); got != [4]byte{} {
		t.Fatalf("pixel far right of the petal = %v, want empty", got)
	}
}

func TestClearFillsSurface(t *testing.T) {
	r := NewRaster(8, 8)
	r.Clear(scene.RGBA(0.2, 0.4, 0.6, 1))
	a := pixelAt(r, 0, 0)
	b := pixelAt(r, 7, 7)
	if a != b || a[3] != 255 {
		t.Fatalf("clear not uniform: %v vs %v", a, b)
	}
}
