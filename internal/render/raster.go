// Package render turns scene command lists into pixels. Raster is the CPU
// path shared by the terminal frontend and the tests; the ebiten painter in
// painter.go is the GPU path used by the windowed build.
package render

import (
	"math"
	"sort"

	"bloomfield/pkg/geom"
	"bloomfield/pkg/scene"
)

// flatness is the max curve deviation in pixels before another subdivision.
const flatness = 0.25

// edge is one flattened segment in screen space.
type edge struct {
	x0, y0 float64
	x1, y1 float64
}

// Raster renders scene lists into a premultiplied RGBA byte buffer.
type Raster struct {
	w, h int
	pix  []byte

	edges []edge
	xs    []float64
}

// NewRaster allocates a w by h surface.
func NewRaster(w, h int) *Raster {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Raster{w: w, h: h, pix: make([]byte, w*h*4)}
}

// Size reports the surface dimensions.
func (r *Raster) Size() (int, int) { return r.w, r.h }

// Pix exposes the premultiplied RGBA buffer, row major.
func (r *Raster) Pix() []byte { return r.pix }

// Clear fills the whole surface with c.
func (r *Raster) Clear(c scene.Color) {
	cr, cg, cb, ca := colorBytes(c)
	for i := 0; i < len(r.pix); i += 4 {
		r.pix[i+0] = cr
		r.pix[i+1] = cg
		r.pix[i+2] = cb
		r.pix[i+3] = ca
	}
}

// Draw renders every command in order.
func (r *Raster) Draw(list *scene.List) {
	for _, cmd := range list.Cmds {
		switch cmd.Kind {
		case scene.KindFill:
			verbs, pts := list.PathData(cmd)
			r.fillPath(verbs, pts, cmd.Col)
		case scene.KindCircle:
			r.fillCircle(cmd.Center, cmd.Radius, cmd.Col)
		case scene.KindLine:
			r.strokeLine(cmd.A, cmd.B, cmd.Width, cmd.Col)
		}
	}
}

// fillPath flattens the path into edges and scan fills them even-odd.
func (r *Raster) fillPath(verbs []scene.Verb, pts []geom.Vec2, c scene.Color) {
	r.edges = r.edges[:0]
	var cur, start geom.Vec2
	open := false
	pi := 0
	for _, v := range verbs {
		switch v {
		case scene.MoveTo:
			if open {
				r.addEdge(cur, start)
			}
			cur = pts[pi]
			start = cur
			open = true
			pi++
		case scene.LineTo:
			r.addEdge(cur, pts[pi])
			cur = pts[pi]
			pi++
		case scene.CurveTo:
			r.flattenCubic(cur, pts[pi], pts[pi+1], pts[pi+2])
			cur = pts[pi+2]
			pi += 3
		case scene.ClosePath:
			if open {
				r.addEdge(cur, start)
				cur = start
				open = false
			}
		}
	}
	if open {
		r.addEdge(cur, start)
	}
	r.fillEdges(c)
}

func (r *Raster) addEdge(a, b geom.Vec2) {
	if a.Y == b.Y {
		return
	}
	r.edges = append(r.edges, edge{a.X, a.Y, b.X, b.Y})
}

// flattenCubic splits the curve by Wang's formula so every segment deviates
// from the true curve by at most flatness pixels.
func (r *Raster) flattenCubic(p0, p1, p2, p3 geom.Vec2) {
	d1 := p0.Sub(p1.Scale(2)).Add(p2)
	d2 := p1.Sub(p2.Scale(2)).Add(p3)
	m := math.Max(d1.Len(), d2.Len())
	n := 1
	if m > 0 {
		if nf := math.Sqrt(3 * m / (4 * flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		pt := geom.CubicPoint(p0, p1, p2, p3, t)
		r.addEdge(prev, pt)
		prev = pt
	}
}

// fillEdges runs the even-odd scanline pass over the collected edges.
func (r *Raster) fillEdges(c scene.Color) {
	if len(r.edges) == 0 {
		return
	}
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, e := range r.edges {
		minY = math.Min(minY, math.Min(e.y0, e.y1))
		maxY = math.Max(maxY, math.Max(e.y0, e.y1))
	}
	y0 := int(math.Floor(minY))
	y1 := int(math.Ceil(maxY))
	if y0 < 0 {
		y0 = 0
	}
	if y1 > r.h {
		y1 = r.h
	}
	for y := y0; y < y1; y++ {
		sy := float64(y) + 0.5
		r.xs = r.xs[:0]
		for _, e := range r.edges {
			// Half-open span test keeps shared vertices from
			// counting twice.
			if (e.y0 <= sy && sy < e.y1) || (e.y1 <= sy && sy < e.y0) {
				t := (sy - e.y0) / (e.y1 - e.y0)
				r.xs = append(r.xs, e.x0+t*(e.x1-e.x0))
			}
		}
		if len(r.xs) < 2 {
			continue
		}
		sort.Float64s(r.xs)
		for i := 0; i+1 < len(r.xs); i += 2 {
			r.blendSpan(y, r.xs[i], r.xs[i+1], c)
		}
	}
}

// fillCircle fills row spans of the disc directly.
func (r *Raster) fillCircle(center geom.Vec2, radius float64, c scene.Color) {
	if radius <= 0 {
		return
	}
	y0 := int(math.Floor(center.Y - radius))
	y1 := int(math.Ceil(center.Y + radius))
	if y0 < 0 {
		y0 = 0
	}
	if y1 > r.h {
		y1 = r.h
	}
	for y := y0; y < y1; y++ {
		dy := float64(y) + 0.5 - center.Y
		if math.Abs(dy) > radius {
			continue
		}
		half := math.Sqrt(radius*radius - dy*dy)
		r.blendSpan(y, center.X-half, center.X+half, c)
	}
}

// strokeLine fills the quad spanned by the segment and its width.
func (r *Raster) strokeLine(a, b geom.Vec2, width float64, c scene.Color) {
	d := b.Sub(a)
	if d.Len() < 1e-9 {
		r.fillCircle(a, width*0.5, c)
		return
	}
	n := d.Norm().Perp().Scale(math.Max(width, 1) * 0.5)
	r.edges = r.edges[:0]
	q := [4]geom.Vec2{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}
	for i := range q {
		r.addEdge(q[i], q[(i+1)%4])
	}
	r.fillEdges(c)
}

// blendSpan source-over blends c across [x0, x1) on row y.
func (r *Raster) blendSpan(y int, x0, x1 float64, c scene.Color) {
	ix0 := int(math.Floor(x0 + 0.5))
	ix1 := int(math.Ceil(x1 - 0.5))
	if ix0 < 0 {
		ix0 = 0
	}
	if ix1 > r.w {
		ix1 = r.w
	}
	if ix0 >= ix1 {
		return
	}
	cr, cg, cb, ca := colorBytes(c)
	inv := uint32(255 - ca)
	base := (y*r.w + ix0) * 4
	for x := ix0; x < ix1; x++ {
		r.pix[base+0] = cr + uint8(uint32(r.pix[base+0])*inv/255)
		r.pix[base+1] = cg + uint8(uint32(r.pix[base+1])*inv/255)
		r.pix[base+2] = cb + uint8(uint32(r.pix[base+2])*inv/255)
		r.pix[base+3] = ca + uint8(uint32(r.pix[base+3])*inv/255)
		base += 4
	}
}

// colorBytes quantizes a premultiplied color to bytes.
func colorBytes(c scene.Color) (uint8, uint8, uint8, uint8) {
	return quant(c.R), quant(c.G), quant(c.B), quant(c.A)
}

func quant(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
