// Package scene defines the renderer-agnostic draw-command list the
// simulations emit. A backend replays the commands in order; nothing in this
// package touches a display.
package scene

import "bloomfield/pkg/geom"

// Color is a premultiplied-alpha RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// RGBA builds a premultiplied Color from straight (non-premultiplied) components.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r * a, G: g * a, B: b * a, A: a}
}

// Scaled returns c with its opacity scaled by s in [0, 1].
func (c Color) Scaled(s float64) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A * s}
}

// Verb is one step in a path outline.
type Verb uint8

const (
	// MoveTo starts a subpath, consuming one point.
	MoveTo Verb = iota
	// CurveTo appends a cubic bezier, consuming two control points and an endpoint.
	CurveTo
	// LineTo appends a straight segment, consuming one point.
	LineTo
	// ClosePath closes the current subpath, consuming no points.
	ClosePath
)

// Path is a reusable outline under construction, in the builder's local space.
type Path struct {
	Verbs []Verb
	Pts   []geom.Vec2
}

// MoveTo starts a new subpath at p.
func (p *Path) MoveTo(pt geom.Vec2) {
	p.Verbs = append(p.Verbs, MoveTo)
	p.Pts = append(p.Pts, pt)
}

// CurveTo appends a cubic bezier to end via control points c1 and c2.
func (p *Path) CurveTo(c1, c2, end geom.Vec2) {
	p.Verbs = append(p.Verbs, CurveTo)
	p.Pts = append(p.Pts, c1, c2, end)
}

// LineTo appends a straight segment to pt.
func (p *Path) LineTo(pt geom.Vec2) {
	p.Verbs = append(p.Verbs, LineTo)
	p.Pts = append(p.Pts, pt)
}

// Close closes the current subpath.
func (p *Path) Close() {
	p.Verbs = append(p.Verbs, ClosePath)
}

// Reset empties the path while keeping its capacity.
func (p *Path) Reset() {
	p.Verbs = p.Verbs[:0]
	p.Pts = p.Pts[:0]
}

// Kind discriminates draw commands.
type Kind uint8

const (
	// KindFill fills a closed path.
	KindFill Kind = iota
	// KindCircle fills a circle.
	KindCircle
	// KindLine strokes a straight segment with a width.
	KindLine
)

// Cmd is a single draw command. Fill commands index into the list's shared
// verb and point arenas; the coordinates are already in screen space.
type Cmd struct {
	Kind   Kind
	Col    Color
	Verbs  [2]int // arena range [lo, hi)
	Points [2]int
	Center geom.Vec2
	Radius float64
	A, B   geom.Vec2
	Width  float64
}

// List collects one frame of draw commands. It is reused across frames;
// Reset keeps the backing storage.
type List struct {
	Cmds  []Cmd
	verbs []Verb
	pts   []geom.Vec2
}

// Reset empties the list while keeping capacity for the next frame.
func (l *List) Reset() {
	l.Cmds = l.Cmds[:0]
	l.verbs = l.verbs[:0]
	l.pts = l.pts[:0]
}

// Len reports the number of commands recorded.
func (l *List) Len() int { return len(l.Cmds) }

// FillPath records p filled with c, with every point passed through tr.
func (l *List) FillPath(p *Path, tr geom.Affine, c Color) {
	vlo, plo := len(l.verbs), len(l.pts)
	l.verbs = append(l.verbs, p.Verbs...)
	for _, pt := range p.Pts {
		l.pts = append(l.pts, tr.Apply(pt))
	}
	l.Cmds = append(l.Cmds, Cmd{
		Kind:   KindFill,
		Col:    c,
		Verbs:  [2]int{vlo, len(l.verbs)},
		Points: [2]int{plo, len(l.pts)},
	})
}

// Circle records a filled circle.
func (l *List) Circle(center geom.Vec2, r float64, c Color) {
	l.Cmds = append(l.Cmds, Cmd{Kind: KindCircle, Col: c, Center: center, Radius: r})
}

// Line records a stroked segment from a to b.
func (l *List) Line(a, b geom.Vec2, width float64, c Color) {
	l.Cmds = append(l.Cmds, Cmd{Kind: KindLine, Col: c, A: a, B: b, Width: width})
}

// PathData returns the verbs and screen-space points of a fill command.
func (l *List) PathData(c Cmd) ([]Verb, []geom.Vec2) {
	return l.verbs[c.Verbs[0]:c.Verbs[1]], l.pts[c.Points[0]:c.Points[1]]
}
