package flora

import (
	"math"

	"bloomfield/internal/bloom"
	"bloomfield/internal/core"
	"bloomfield/pkg/geom"
	"bloomfield/pkg/scene"
)

const (
	petalGravity    = 240.0 // px/s^2
	fallFadeDelay   = 0.5   // seconds before alpha starts decaying
	fallFadeSpeed   = 1.1   // alpha per second
	fallMaxLifetime = 4.0   // seconds
	fallMargin      = 60.0  // px past the bottom edge before removal
)

// fallingPetal is one detached petal in flight. The waver is a draw-time
// offset only; removal checks use the integrated position.
type fallingPetal struct {
	pos      geom.Vec2
	vel      geom.Vec2
	rotation float64 // radians
	spin     float64 // radians per second
	alpha    float64
	age      float64

	waverPhase float64
	waverAmp   float64
	waverFreq  float64

	shape bloom.PetalShape
	color scene.Color
}

// FallSystem owns the active falling petals.
type FallSystem struct {
	rng     *core.RNG
	petals  []fallingPetal
	outline scene.Path
}

// NewFallSystem constructs an empty particle set drawing jitter from rng.
func NewFallSystem(rng *core.RNG) *FallSystem {
	return &FallSystem{rng: rng}
}

// Len reports the number of live particles.
func (fs *FallSystem) Len() int { return len(fs.petals) }

// Reset drops every live particle, keeping capacity.
func (fs *FallSystem) Reset(rng *core.RNG) {
	fs.rng = rng
	fs.petals = fs.petals[:0]
}

// Spawn launches one detached petal from pos along the detachment angle.
// The shape is a frozen screen-space snapshot of the petal at that moment.
func (fs *FallSystem) Spawn(pos geom.Vec2, angleDeg float64, shape bloom.PetalShape, c scene.Color) {
	rad := geom.Radians(angleDeg)
	dir := geom.Vec2{X: math.Sin(rad), Y: -math.Cos(rad)}
	pop := fs.rng.Range(60, 110)

	fs.petals = append(fs.petals, fallingPetal{
		pos:        pos.Add(dir.Scale(0.4 * shape.Length)),
		vel:        dir.Scale(0.4 * pop).Add(geom.Vec2{Y: -pop}),
		rotation:   rad,
		spin:       fs.rng.Range(2, 5) * fs.rng.Sign(),
		alpha:      1,
		waverPhase: fs.rng.Range(0, 2*math.Pi),
		waverAmp:   fs.rng.Range(6, 14),
		waverFreq:  fs.rng.Range(0.8, 1.6),
		shape:      shape,
		color:      c,
	})
}

// Update integrates every particle and swap-deletes the expired ones.
func (fs *FallSystem) Update(dt float64, vp core.Viewport) {
	for i := 0; i < len(fs.petals); {
		p := &fs.petals[i]
		p.age += dt
		p.vel.Y += petalGravity * dt
		p.pos = p.pos.Add(p.vel.Scale(dt))
		p.rotation += p.spin * dt
		if p.age > fallFadeDelay {
			p.alpha -= fallFadeSpeed * dt
		}
		if p.alpha <= 0 || p.age > fallMaxLifetime || p.pos.Y > vp.H+fallMargin {
			last := len(fs.petals) - 1
			fs.petals[i] = fs.petals[last]
			fs.petals = fs.petals[:last]
			continue
		}
		i++
	}
}

// Scene emits every live petal with its sinusoidal waver applied.
func (fs *FallSystem) Scene(dst *scene.List) {
	for i := range fs.petals {
		p := &fs.petals[i]
		waver := math.Sin(p.age*p.waverFreq*2*math.Pi+p.waverPhase) * p.waverAmp
		fs.outline.Reset()
		p.shape.AppendOutline(&fs.outline)
		tr := geom.Identity().Rotate(p.rotation).Translate(p.pos.X+waver, p.pos.Y)
		dst.FillPath(&fs.outline, tr, p.color.Scaled(geom.Clamp(p.alpha, 0, 1)))
	}
}
