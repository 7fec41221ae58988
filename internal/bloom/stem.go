package bloom

import (
	"math"

	"bloomfield/pkg/geom"
	"bloomfield/pkg/scene"
)

const (
	tendrilSteps = 15
	// Fraction of stem arc length over which a node bump fades out.
	nodeInfluence = 0.06
)

// StemShape describes one stem in its local frame: base at the origin,
// tip bending toward (Curvature·Height·0.3, -Height).
type StemShape struct {
	Height     float64
	Thickness  float64 // full width at the base, pixels
	TaperRatio float64 // tip thickness as a fraction of the base
	Curvature  float64 // signed lean
	Segments   int     // node count driver; also sets ribbon sampling density
	NodeWidth  float64 // thickness multiplier at segment boundaries
}

// TendrilSpec is one curling side shoot, fixed for the instance's life.
type TendrilSpec struct {
	StemT      float64 // attachment point along the stem, [0, 1]
	Length     float64
	CurlAmount float64 // total curl in half-turns over the tendril
	Direction  float64 // -1 or 1
	StartAngle float64 // 0 leaves along the normal, 1 along the tangent
	Thickness  float64
}

// Stem owns the cached ribbon outline and tendril polylines for one stem.
// The cache rebuilds lazily after SetShape changes the geometry.
type Stem struct {
	shape    StemShape
	tendrils []TendrilSpec
	dirty    bool

	ribbon scene.Path
	curls  [][]geom.Vec2
	rbuf   []geom.Vec2
	lbuf   []geom.Vec2
}

// NewStem constructs a stem with its tendrils. The tendril list is owned by
// the stem afterwards.
func NewStem(shape StemShape, tendrils []TendrilSpec) *Stem {
	return &Stem{shape: shape, tendrils: tendrils, dirty: true}
}

// Shape returns the current stem shape.
func (s *Stem) Shape() StemShape { return s.shape }

// Tendrils returns the attached tendril specs.
func (s *Stem) Tendrils() []TendrilSpec { return s.tendrils }

// SetShape replaces the shape, invalidating the cache only on change.
func (s *Stem) SetShape(sh StemShape) {
	if sh == s.shape {
		return
	}
	s.shape = sh
	s.dirty = true
}

// control returns the centerline cubic's four control points.
func (s *Stem) control() (p0, p1, p2, p3 geom.Vec2) {
	h := s.shape.Height
	xOff := s.shape.Curvature * h * 0.3
	p0 = geom.Vec2{}
	p1 = geom.Vec2{X: 0.6 * xOff, Y: -0.5 * h}
	p2 = geom.Vec2{X: xOff, Y: -0.9 * h}
	p3 = geom.Vec2{X: xOff, Y: -h}
	return p0, p1, p2, p3
}

// PointAt returns the centerline point at t in [0, 1], local space.
func (s *Stem) PointAt(t float64) geom.Vec2 {
	p0, p1, p2, p3 := s.control()
	return geom.CubicPoint(p0, p1, p2, p3, geom.Clamp(t, 0, 1))
}

// TangentAt returns the centerline tangent at t, local space.
func (s *Stem) TangentAt(t float64) geom.Vec2 {
	p0, p1, p2, p3 := s.control()
	return geom.CubicTangent(p0, p1, p2, p3, geom.Clamp(t, 0, 1))
}

// taperAt returns the half-thickness at t including node bumps.
func (s *Stem) taperAt(t float64) float64 {
	half := s.shape.Thickness * 0.5 * geom.Lerp(1, s.shape.TaperRatio, t)
	if s.shape.Segments >= 2 && s.shape.NodeWidth != 1 {
		for k := 1; k < s.shape.Segments; k++ {
			d := math.Abs(t - float64(k)/float64(s.shape.Segments))
			if d < nodeInfluence {
				w := 0.5 * (1 + math.Cos(math.Pi*d/nodeInfluence))
				half *= 1 + (s.shape.NodeWidth-1)*w
			}
		}
	}
	return half
}

// rebuild refreshes the ribbon outline and the tendril polylines.
func (s *Stem) rebuild() {
	s.dirty = false

	count := s.shape.Segments * 8
	if count < 20 {
		count = 20
	}
	if cap(s.rbuf) < count {
		s.rbuf = make([]geom.Vec2, count)
		s.lbuf = make([]geom.Vec2, count)
	}
	rights := s.rbuf[:count]
	lefts := s.lbuf[:count]
	for i := 0; i < count; i++ {
		t := float64(i) / float64(count-1)
		p := s.PointAt(t)
		n := s.TangentAt(t).Norm().Perp()
		half := s.taperAt(t)
		rights[i] = p.Add(n.Scale(half))
		lefts[i] = p.Add(n.Scale(-half))
	}
	s.ribbon.Reset()
	s.ribbon.MoveTo(rights[0])
	for i := 1; i < count; i++ {
		s.ribbon.LineTo(rights[i])
	}
	for i := count - 1; i >= 0; i-- {
		s.ribbon.LineTo(lefts[i])
	}
	s.ribbon.Close()

	if cap(s.curls) < len(s.tendrils) {
		s.curls = make([][]geom.Vec2, len(s.tendrils))
	}
	s.curls = s.curls[:len(s.tendrils)]
	for i, spec := range s.tendrils {
		s.curls[i] = s.buildTendril(spec, s.curls[i])
	}
}

// buildTendril walks the curl: start at the attachment point, step outward
// with a per-step rotation and shrinking segments.
func (s *Stem) buildTendril(spec TendrilSpec, pts []geom.Vec2) []geom.Vec2 {
	pts = pts[:0]
	p := s.PointAt(spec.StemT)
	tan := s.TangentAt(spec.StemT).Norm()
	nrm := tan.Perp()
	if spec.Direction < 0 {
		nrm = nrm.Scale(-1)
	}
	dir := nrm.Scale(1 - spec.StartAngle).Add(tan.Scale(spec.StartAngle)).Norm()
	curl := spec.CurlAmount * math.Pi / tendrilSteps * spec.Direction
	step := spec.Length / tendrilSteps

	pts = append(pts, p)
	for i := 0; i < tendrilSteps; i++ {
		frac := float64(i) / tendrilSteps
		p = p.Add(dir.Scale(step * (1 - 0.4*frac)))
		pts = append(pts, p)
		dir = dir.Rot(curl)
	}
	return pts
}

// StemDrawState carries the per-frame inputs for rendering one stem.
type StemDrawState struct {
	Base  geom.Vec2 // ground attachment, screen space
	Scale float64   // uniform scale: depth times lifecycle stem scale
	Color scene.Color
}

// Draw emits the ribbon and then the tendril strokes.
func (s *Stem) Draw(dst *scene.List, st StemDrawState) {
	if s.dirty {
		s.rebuild()
	}
	tr := geom.Identity().ScaleXY(st.Scale, st.Scale).Translate(st.Base.X, st.Base.Y)
	dst.FillPath(&s.ribbon, tr, st.Color)
	for i, spec := range s.tendrils {
		pts := s.curls[i]
		w := spec.Thickness * st.Scale
		for k := 0; k+1 < len(pts); k++ {
			dst.Line(tr.Apply(pts[k]), tr.Apply(pts[k+1]), w, st.Color)
		}
	}
}

// Tip returns the screen-space head attachment point for the draw state.
func (s *Stem) Tip(st StemDrawState) geom.Vec2 {
	tr := geom.Identity().ScaleXY(st.Scale, st.Scale).Translate(st.Base.X, st.Base.Y)
	return tr.Apply(s.PointAt(1))
}
