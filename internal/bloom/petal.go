// Package bloom builds the botanical geometry: petal outlines, head layouts
// with center ornaments and noise jitter, stem ribbons with tendrils, and the
// flower color rolls. Everything works in a local frame with the growth axis
// along -Y; callers place the results with affine transforms.
package bloom

import (
	"bloomfield/pkg/geom"
	"bloomfield/pkg/scene"
)

// PetalShape describes one petal outline: base at the origin, tip at
// (0, -Length). Width, BulgePosition and TipPointiness are fractions; ranges
// outside their documented windows are clamped at build time.
type PetalShape struct {
	Length        float64 // base-to-tip distance in pixels
	Width         float64 // half-width as a fraction of Length
	TipPointiness float64 // 0 rounded .. 1 needle
	BulgePosition float64 // widest point along the petal, fraction of Length
	EdgeCurvature float64 // signed sideways bow of both edges
}

// AppendOutline appends the closed two-curve petal outline to dst: up the
// right edge from base to tip, back down the mirrored left edge. With
// EdgeCurvature zero the two edges are exact mirror images.
func (s PetalShape) AppendOutline(dst *scene.Path) {
	halfW := s.Length * s.Width
	bulgeY := s.Length * geom.Clamp(s.BulgePosition, 0.05, 0.95)
	tipW := halfW * (1 - geom.Clamp(s.TipPointiness, 0, 1))
	shift := s.EdgeCurvature * halfW * 0.5

	base := geom.Vec2{}
	tip := geom.Vec2{Y: -s.Length}
	dst.MoveTo(base)
	dst.CurveTo(
		geom.Vec2{X: halfW + shift, Y: -bulgeY},
		geom.Vec2{X: tipW, Y: -0.92 * s.Length},
		tip,
	)
	dst.CurveTo(
		geom.Vec2{X: -tipW, Y: -0.92 * s.Length},
		geom.Vec2{X: -(halfW + shift), Y: -bulgeY},
		base,
	)
	dst.Close()
}
