//go:build ebiten

package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"bloomfield/pkg/geom"
	"bloomfield/pkg/scene"
)

// whiteImage feeds DrawTriangles. Sampling the 1x1 center of a 3x3 image
// keeps filtered lookups away from the texel border.
var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Painter replays scene lists onto an ebiten image. It keeps vertex and
// index buffers across frames so steady-state drawing does not allocate.
type Painter struct {
	vs []ebiten.Vertex
	is []uint16
}

// NewPainter returns a painter ready for per-frame reuse.
func NewPainter() *Painter { return &Painter{} }

// Draw replays every command in list onto dst in order.
func (p *Painter) Draw(dst *ebiten.Image, list *scene.List) {
	for _, cmd := range list.Cmds {
		switch cmd.Kind {
		case scene.KindFill:
			verbs, pts := list.PathData(cmd)
			p.fillPath(dst, verbs, pts, cmd.Col)
		case scene.KindCircle:
			vector.DrawFilledCircle(dst,
				float32(cmd.Center.X), float32(cmd.Center.Y), float32(cmd.Radius),
				rgbaColor(cmd.Col), true)
		case scene.KindLine:
			vector.StrokeLine(dst,
				float32(cmd.A.X), float32(cmd.A.Y),
				float32(cmd.B.X), float32(cmd.B.Y),
				float32(cmd.Width), rgbaColor(cmd.Col), true)
		}
	}
}

func (p *Painter) fillPath(dst *ebiten.Image, verbs []scene.Verb, pts []geom.Vec2, c scene.Color) {
	var path vector.Path
	pi := 0
	for _, v := range verbs {
		switch v {
		case scene.MoveTo:
			path.MoveTo(float32(pts[pi].X), float32(pts[pi].Y))
			pi++
		case scene.CurveTo:
			c1, c2, end := pts[pi], pts[pi+1], pts[pi+2]
			path.CubicTo(
				float32(c1.X), float32(c1.Y),
				float32(c2.X), float32(c2.Y),
				float32(end.X), float32(end.Y))
			pi += 3
		case scene.LineTo:
			path.LineTo(float32(pts[pi].X), float32(pts[pi].Y))
			pi++
		case scene.ClosePath:
			path.Close()
		}
	}

	p.vs, p.is = path.AppendVerticesAndIndicesForFilling(p.vs[:0], p.is[:0])
	for i := range p.vs {
		p.vs[i].SrcX = 1
		p.vs[i].SrcY = 1
		p.vs[i].ColorR = float32(c.R)
		p.vs[i].ColorG = float32(c.G)
		p.vs[i].ColorB = float32(c.B)
		p.vs[i].ColorA = float32(c.A)
	}
	op := &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
		FillRule:       ebiten.EvenOdd,
		AntiAlias:      true,
	}
	dst.DrawTriangles(p.vs, p.is, whiteSubImage, op)
}

// rgbaColor converts a premultiplied scene color to the premultiplied
// color.RGBA the vector helpers expect.
func rgbaColor(c scene.Color) color.RGBA {
	r, g, b, a := colorBytes(c)
	return color.RGBA{R: r, G: g, B: b, A: a}
}
