package bloom

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"bloomfield/pkg/geom"
	"bloomfield/pkg/scene"
)

// GoldenAngleDeg is the phyllotactic divergence angle.
const GoldenAngleDeg = 137.508

// LayoutKind selects one of the petal arrangement algorithms.
type LayoutKind uint8

const (
	Radial LayoutKind = iota
	Phyllotaxis
	RoseCurve
	Superformula
	LayeredWhorls
)

// String returns the layout name used in readouts and sweep reports.
func (k LayoutKind) String() string {
	switch k {
	case Radial:
		return "radial"
	case Phyllotaxis:
		return "phyllotaxis"
	case RoseCurve:
		return "rose"
	case Superformula:
		return "superformula"
	case LayeredWhorls:
		return "whorls"
	}
	return "unknown"
}

// Layout is one arrangement variant plus its parameters. The set is closed;
// only the fields of the active Kind are meaningful.
type Layout struct {
	Kind LayoutKind

	// Phyllotaxis
	SpiralSpacing float64

	// RoseCurve
	K         float64
	BaseScale float64

	// Superformula
	M, N1, N2, N3, A, B float64

	// LayeredWhorls
	Layers         int
	PetalsPerLayer int
	LengthFalloff  float64
	WidthGrowth    float64
	PhaseShift     float64
}

// Placement is one petal's pose relative to the head center. Layer selects
// the cached outline for layered layouts and is 0 otherwise.
type Placement struct {
	AngleDeg float64
	Radius   float64
	LenMult  float64
	Layer    int
}

// PlacementFor computes the pose of petal i out of n visible petals.
func (l Layout) PlacementFor(i, n int) Placement {
	if n < 1 {
		n = 1
	}
	p := Placement{LenMult: 1}
	switch l.Kind {
	case Radial:
		p.AngleDeg = float64(i) * 360 / float64(n)
	case Phyllotaxis:
		p.AngleDeg = geom.WrapDeg(float64(i) * GoldenAngleDeg)
		p.Radius = l.SpiralSpacing * math.Sqrt(float64(i))
	case RoseCurve:
		p.AngleDeg = float64(i) * 360 / float64(n)
		theta := geom.Radians(p.AngleDeg)
		p.LenMult = l.BaseScale + math.Abs(math.Cos(l.K*theta))*(1-l.BaseScale)
	case Superformula:
		p.AngleDeg = float64(i) * 360 / float64(n)
		p.LenMult = l.superRadius(geom.Radians(p.AngleDeg))
	case LayeredWhorls:
		per := l.PetalsPerLayer
		if per < 1 {
			per = 1
		}
		layer := i / per
		step := 360 / float64(per)
		p.AngleDeg = float64(i%per) * step
		if layer%2 == 1 {
			p.AngleDeg += l.PhaseShift * step
		}
		p.Layer = layer
	}
	return p
}

// superRadius evaluates the superformula radial multiplier at theta, clamped
// to [0.2, 1.5]. Degenerate parameter combinations fall back to 1.
func (l Layout) superRadius(theta float64) float64 {
	if math.Abs(l.A) < 1e-9 || math.Abs(l.B) < 1e-9 || math.Abs(l.N1) < 1e-9 {
		return 1
	}
	sum := math.Pow(math.Abs(math.Cos(l.M*theta/4)/l.A), l.N2) +
		math.Pow(math.Abs(math.Sin(l.M*theta/4)/l.B), l.N3)
	if sum < 1e-9 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return 1
	}
	r := math.Pow(sum, -1/l.N1)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 1
	}
	return geom.Clamp(r, 0.2, 1.5)
}

// OrnamentKind selects the head-center decoration.
type OrnamentKind uint8

const (
	SimpleDisc OrnamentKind = iota
	Stamens
	PollenGrid
	GeometricStar
)

// Ornament is the head-center decoration. Radius and Detail scale every
// variant; the count fields belong to specific kinds and are derived from
// Detail by NewOrnament.
type Ornament struct {
	Kind   OrnamentKind
	Radius float64
	Detail float64

	Filaments int // Stamens
	Density   int // PollenGrid
	Points    int // GeometricStar
}

// NewOrnament builds an ornament, deriving the variant counts from detail.
func NewOrnament(kind OrnamentKind, radius, detail float64) Ornament {
	o := Ornament{Kind: kind, Radius: radius, Detail: detail}
	switch kind {
	case Stamens:
		o.Filaments = int(8 * detail)
	case PollenGrid:
		o.Density = int(20 * detail)
	case GeometricStar:
		o.Points = int(5 * detail)
		if o.Points < 3 {
			o.Points = 3
		}
	}
	return o
}

// NoiseConfig controls the per-petal coherent jitter. Seed doubles as the
// noise generator seed and the first sampling coordinate, so keep it small.
type NoiseConfig struct {
	Enabled      bool
	Seed         int64
	LengthAmount float64
	AngleAmount  float64
	ScaleAmount  float64
	TimeSpeed    float64
}

// HeadParams is the full shape configuration of one inflorescence.
type HeadParams struct {
	Layout   Layout
	Petal    PetalShape
	Ornament Ornament
	Noise    NoiseConfig
}

// Head owns the cached petal outlines for one inflorescence and emits the
// petals plus the center ornament. Outlines rebuild lazily, only after the
// parameters actually change.
type Head struct {
	params HeadParams
	noise  opensimplex.Noise
	dirty  bool

	outline  scene.Path   // shared by every petal for single-outline layouts
	layerOut []scene.Path // one outline per whorl layer
	scratch  scene.Path   // per-draw ornament workspace
}

// NewHead constructs a Head for the given parameters.
func NewHead(p HeadParams) *Head {
	h := &Head{params: p, dirty: true}
	if p.Noise.Enabled {
		h.noise = opensimplex.New(p.Noise.Seed)
	}
	return h
}

// Params returns the current configuration.
func (h *Head) Params() HeadParams { return h.params }

// SetParams replaces the configuration. The outline cache is invalidated only
// when the geometry-bearing parameters changed.
func (h *Head) SetParams(p HeadParams) {
	if p == h.params {
		return
	}
	if p.Noise != h.params.Noise {
		if p.Noise.Enabled {
			h.noise = opensimplex.New(p.Noise.Seed)
		} else {
			h.noise = nil
		}
	}
	if p.Layout != h.params.Layout || p.Petal != h.params.Petal {
		h.dirty = true
	}
	h.params = p
}

// rebuild refreshes the cached outlines from the current parameters.
func (h *Head) rebuild() {
	h.dirty = false
	h.outline.Reset()
	h.params.Petal.AppendOutline(&h.outline)

	if h.params.Layout.Kind != LayeredWhorls {
		h.layerOut = h.layerOut[:0]
		return
	}
	layers := h.params.Layout.Layers
	if layers < 1 {
		layers = 1
	}
	if cap(h.layerOut) < layers {
		h.layerOut = make([]scene.Path, layers)
	}
	h.layerOut = h.layerOut[:layers]
	for l := 0; l < layers; l++ {
		t := 0.0
		if layers > 1 {
			t = float64(l) / float64(layers-1)
		}
		shape := h.params.Petal
		shape.Length *= 1 - t*(1-h.params.Layout.LengthFalloff)
		shape.Width = math.Min(shape.Width*(1+t*(h.params.Layout.WidthGrowth-1)), 0.8)
		h.layerOut[l].Reset()
		shape.AppendOutline(&h.layerOut[l])
	}
}

// DrawState carries the per-frame inputs for rendering one head.
type DrawState struct {
	Center       geom.Vec2
	Visible      int
	RotationDeg  float64
	LengthScale  float64 // petal local -Y multiplier: depth, life scale, pulse
	WidthScale   float64 // petal local X and spiral radius multiplier
	Elapsed      float64 // seconds, the noise time axis
	PetalColor   scene.Color
	CenterColor  scene.Color
	CenterRadius float64 // screen-space ornament radius
}

// Draw emits the visible petals (outer whorl layers first) and then the
// center ornament on top of their bases.
func (h *Head) Draw(dst *scene.List, st DrawState) {
	if h.dirty {
		h.rebuild()
	}
	n := st.Visible
	for i := 0; i < n; i++ {
		pl := h.params.Layout.PlacementFor(i, n)
		lenScale, angleOff, scaleOff := h.jitter(i, st.Elapsed)

		rad := geom.Radians(st.RotationDeg + pl.AngleDeg + angleOff)
		dir := geom.Vec2{X: math.Sin(rad), Y: -math.Cos(rad)}
		pos := st.Center.Add(dir.Scale(pl.Radius * st.WidthScale))

		sx := st.WidthScale * (1 + scaleOff)
		sy := st.LengthScale * pl.LenMult * lenScale * (1 + scaleOff)

		outline := &h.outline
		if h.params.Layout.Kind == LayeredWhorls && len(h.layerOut) > 0 {
			li := pl.Layer
			if li >= len(h.layerOut) {
				li = len(h.layerOut) - 1
			}
			outline = &h.layerOut[li]
		}
		tr := geom.Identity().ScaleXY(sx, sy).Rotate(rad).Translate(pos.X, pos.Y)
		dst.FillPath(outline, tr, st.PetalColor)
	}
	h.drawOrnament(dst, st)
}

// jitter samples the three noise channels for petal i. All outputs are
// identity when the jitter is disabled.
func (h *Head) jitter(i int, elapsed float64) (lenScale, angleOff, scaleOff float64) {
	nc := h.params.Noise
	if !nc.Enabled || h.noise == nil {
		return 1, 0, 0
	}
	x := float64(nc.Seed) + float64(i)*7.3
	y := elapsed * nc.TimeSpeed
	lenScale = 1 + h.noise.Eval2(x, y)*nc.LengthAmount
	angleOff = h.noise.Eval2(x+31.7, y) * nc.AngleAmount
	scaleOff = h.noise.Eval2(x+64.3, y) * nc.ScaleAmount
	return lenScale, angleOff, scaleOff
}

// drawOrnament dispatches on the ornament kind.
func (h *Head) drawOrnament(dst *scene.List, st DrawState) {
	o := h.params.Ornament
	r := st.CenterRadius
	if r <= 0 {
		return
	}
	switch o.Kind {
	case SimpleDisc:
		dst.Circle(st.Center, r, st.CenterColor)

	case Stamens:
		n := o.Filaments
		if n < 1 {
			n = int(8 * o.Detail)
		}
		if n < 1 {
			n = 1
		}
		dst.Circle(st.Center, r*0.35, st.CenterColor)
		w := math.Max(0.8, r*0.1)
		for f := 0; f < n; f++ {
			ang := geom.Radians(st.RotationDeg + float64(f)*360/float64(n))
			dir := geom.Vec2{X: math.Sin(ang), Y: -math.Cos(ang)}
			tip := st.Center.Add(dir.Scale(r * 1.25))
			dst.Line(st.Center, tip, w, st.CenterColor)
			dst.Circle(tip, r*0.16, st.CenterColor)
		}

	case PollenGrid:
		n := o.Density
		if n < 1 {
			n = int(20 * o.Detail)
		}
		if n < 1 {
			n = 1
		}
		maxR := 0.8 * r
		dot := math.Max(0.7, r*0.09)
		for d := 0; d < n; d++ {
			ang := geom.Radians(st.RotationDeg + geom.WrapDeg(float64(d)*GoldenAngleDeg))
			rr := maxR * math.Sqrt(float64(d+1)/float64(n))
			dir := geom.Vec2{X: math.Sin(ang), Y: -math.Cos(ang)}
			dst.Circle(st.Center.Add(dir.Scale(rr)), dot, st.CenterColor)
		}

	case GeometricStar:
		pts := o.Points
		if pts < 3 {
			pts = 3
		}
		h.scratch.Reset()
		total := pts * 2
		for v := 0; v < total; v++ {
			ang := geom.Radians(st.RotationDeg + float64(v)*360/float64(total))
			rr := r
			if v%2 == 1 {
				rr = r * 0.45
			}
			dir := geom.Vec2{X: math.Sin(ang), Y: -math.Cos(ang)}
			p := st.Center.Add(dir.Scale(rr))
			if v == 0 {
				h.scratch.MoveTo(p)
			} else {
				h.scratch.LineTo(p)
			}
		}
		h.scratch.Close()
		dst.FillPath(&h.scratch, geom.Identity(), st.CenterColor)
	}
}
