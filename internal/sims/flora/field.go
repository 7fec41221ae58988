// Package flora animates a population of procedural flowers whose shape,
// color, and pacing follow live audio metrics.
package flora

import (
	"fmt"
	"math"
	"sort"

	"bloomfield/internal/audio"
	"bloomfield/internal/bloom"
	"bloomfield/internal/core"
	"bloomfield/pkg/geom"
	"bloomfield/pkg/scene"
)

// detachEvent records one petal separating from a head during the update
// pass. Events are collected into a side buffer and handed to the falling
// system after every instance has been stepped.
type detachEvent struct {
	pos      geom.Vec2
	angleDeg float64
	shape    bloom.PetalShape
	color    scene.Color
}

// Field is the flower-field simulation.
type Field struct {
	cfg Config
	rng *core.RNG

	tracker  audio.Tracker
	beats    audio.BeatDetector
	activity audio.Activity

	instances []*instance
	falling   *FallSystem

	serial  uint64 // lifetime spawn counter, drives palette cycling
	elapsed float64
	vp      core.Viewport

	detach []detachEvent
}

// New returns a Field using defaults.
func New() *Field {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig returns a Field configured from the provided options.
func NewWithConfig(cfg Config) *Field {
	rng := core.NewRNG(cfg.Seed)
	return &Field{
		cfg:     cfg,
		rng:     rng,
		falling: NewFallSystem(rng),
		vp:      core.Viewport{W: 1280, H: 720},
	}
}

// Name returns the simulation identifier.
func (f *Field) Name() string { return "field" }

// Count reports the live instance count.
func (f *Field) Count() int { return len(f.instances) }

// FallingCount reports the live falling-petal count.
func (f *Field) FallingCount() int { return f.falling.Len() }

// ActivityLevel exposes the smoothed musical activity score.
func (f *Field) ActivityLevel() float64 { return f.activity.Value }

// Reactive reports whether population sizing follows activity.
func (f *Field) Reactive() bool { return f.cfg.Reactive }

// SetReactive switches activity-driven population sizing on or off.
func (f *Field) SetReactive(on bool) { f.cfg.Reactive = on }

// ColorMode returns the active palette mode.
func (f *Field) ColorMode() int { return f.cfg.ColorMode }

// SetColorMode selects the palette mode for future spawns. Values outside
// [0, 9] are ignored.
func (f *Field) SetColorMode(mode int) {
	if mode >= 0 && mode <= 9 {
		f.cfg.ColorMode = mode
	}
}

// Setup populates the field with count staggered instances. A zero count
// falls back to the configured base population.
func (f *Field) Setup(count int) error {
	if count < 0 {
		return fmt.Errorf("flora: instance count must be >= 0, got %d", count)
	}
	if count == 0 {
		count = f.cfg.BaseCount
	}
	f.cfg.BaseCount = count

	f.instances = f.instances[:0]
	for i := 0; i < count; i++ {
		in := &instance{}
		f.spawn(in)
		// Stagger starting phases so the field does not bloom in sync.
		in.phase = f.rng.Float64()
		in.state = lifeState(in.phase, in.basePetals, in.basePointness, 0, 0)
		in.lastVisible = in.state.VisiblePetals
		f.instances = append(f.instances, in)
	}
	f.sortByDepth()
	return nil
}

// Reset reseeds the field and rebuilds the current population.
func (f *Field) Reset(seed int64) {
	f.cfg.Seed = seed
	f.rng = core.NewRNG(seed)
	f.tracker = audio.Tracker{}
	f.beats = audio.BeatDetector{}
	f.activity = audio.Activity{}
	f.falling.Reset(f.rng)
	f.serial = 0
	f.elapsed = 0
	count := len(f.instances)
	if count == 0 {
		count = f.cfg.BaseCount
	}
	f.Setup(count)
}

// Update advances every instance, applies population control, and steps the
// falling petals. Structural changes are collected during the pass and
// applied afterwards, so the collection is never mutated mid-iteration.
func (f *Field) Update(m core.Metrics, dt float64, vp core.Viewport) {
	dt = core.ClampDt(dt)
	m = m.Clamped()
	f.vp = vp
	f.elapsed += dt

	f.tracker.Observe(m, dt)
	f.beats.Observe(f.tracker.Volume, dt)
	f.activity.Observe(f.beats.Density(), f.tracker.Volume, f.tracker.Fullness, dt)
	pitchNorm := f.tracker.PitchNorm()

	// Fullness paces the whole field. ~18s per cycle at full spectrum,
	// slower when quiet, never fully stopped.
	speed := f.cfg.Params.LifeSpeedBase * (0.05 + 0.95*f.tracker.Fullness)
	if f.cfg.Reactive {
		speed *= 0.6 + 0.8*f.activity.Value
	}

	target := f.target()
	if !f.cfg.Reactive && len(f.instances) > f.cfg.BaseCount && f.cfg.BaseCount > 0 {
		// Leftover crowd from a reactive episode dies off faster.
		over := float64(len(f.instances)-f.cfg.BaseCount) / float64(f.cfg.BaseCount)
		speed *= 1 + 2*math.Min(1, over)
	}

	f.detach = f.detach[:0]
	needsSort := false
	removals := 0
	n := len(f.instances)

	for _, in := range f.instances {
		if in.fastDeath {
			in.fastDeathTimer += dt
			fd := in.fastDeathTimer / fastDeathDuration
			if fd >= 1 {
				if n-removals > target {
					in.phase = 1
					removals++
					continue
				}
				f.spawn(in)
				needsSort = true
				continue
			}
			in.state = fastDeathState(fd, in.basePointness)
		} else {
			in.phase += speed * in.lifeSpeedMult * dt
			if in.phase >= 1 {
				if n-removals > target {
					removals++
					continue
				}
				f.spawn(in)
				needsSort = true
				continue
			}
			pitchMod := in.pitchDirection * pitchNorm * 0.35
			in.state = lifeState(in.phase, in.basePetals, in.basePointness, pitchMod, f.tracker.Volume)
		}

		in.rotationDeg = geom.WrapDeg(in.rotationDeg + in.spinDegSec*dt)
		in.head.SetParams(in.headParams())
		in.stem.SetShape(in.stemShape(in.state.StemScale, in.state.StemCurveMod))

		if in.state.VisiblePetals < in.lastVisible {
			f.recordDetach(in)
		}
		in.lastVisible = in.state.VisiblePetals
	}
	n -= removals

	// Grow toward the target, rate limited to avoid frame spikes.
	for grown := 0; n < target && grown < f.cfg.Params.GrowBatch; grown++ {
		in := &instance{}
		f.spawn(in)
		f.instances = append(f.instances, in)
		n++
		needsSort = true
	}

	// Shrink by flagging fast deaths; the population thins over the
	// following ticks instead of popping out of existence.
	if f.cfg.Reactive && n > target {
		flagged := 0
		for _, in := range f.instances {
			if flagged >= f.cfg.Params.FastDeathBatch {
				break
			}
			if in.fastDeath || in.phase <= phaseGrowEnd || in.phase >= phaseShedEnd {
				continue
			}
			in.fastDeath = true
			in.fastDeathTimer = 0
			flagged++
		}
	}

	if removals > 0 {
		kept := f.instances[:0]
		for _, in := range f.instances {
			if in.phase < 1 {
				kept = append(kept, in)
			}
		}
		f.instances = kept
	}

	for _, ev := range f.detach {
		f.falling.Spawn(ev.pos, ev.angleDeg, ev.shape, ev.color)
	}
	f.falling.Update(dt, vp)

	if needsSort {
		f.sortByDepth()
	}
}

// Scene emits the field back to front, then the falling petals on top.
func (f *Field) Scene(dst *scene.List) {
	for _, in := range f.instances {
		if in.state.Alpha <= 0.01 || in.phase >= 1 {
			continue
		}
		base := geom.Vec2{X: in.pos.X * f.vp.W, Y: in.pos.Y * f.vp.H}
		a := in.state.Alpha
		st := bloom.StemDrawState{Base: base, Scale: 1, Color: in.colors.Stem.Scaled(a)}
		in.stem.Draw(dst, st)

		scale := in.depthScale * in.state.Scale * in.state.VolumePulse
		in.head.Draw(dst, bloom.DrawState{
			Center:       in.stem.Tip(st),
			Visible:      in.state.VisiblePetals,
			RotationDeg:  in.rotationDeg,
			LengthScale:  scale,
			WidthScale:   scale,
			Elapsed:      f.elapsed,
			PetalColor:   in.colors.Petal.Scaled(a),
			CenterColor:  in.colors.Center.Scaled(a),
			CenterRadius: in.baseCenterRad * in.depthScale * math.Max(in.state.Scale, 0.1),
		})
	}
	f.falling.Scene(dst)
}

// spawn rerolls an instance and advances the palette-cycling serial.
func (f *Field) spawn(in *instance) {
	in.respawn(f.rng, f.cfg.ColorMode, f.serial)
	f.serial++
}

// target is the population size the controller steers toward.
func (f *Field) target() int {
	if !f.cfg.Reactive {
		return f.cfg.BaseCount
	}
	p := f.cfg.Params
	t := geom.Lerp(float64(p.ReactiveMin), float64(p.ReactiveMax), f.activity.Value)
	return int(math.Round(t))
}

// recordDetach emits one event per petal dropped this tick, posed by the
// placement the petal held while still attached.
func (f *Field) recordDetach(in *instance) {
	base := geom.Vec2{X: in.pos.X * f.vp.W, Y: in.pos.Y * f.vp.H}
	center := in.stem.Tip(bloom.StemDrawState{Base: base, Scale: 1})
	scale := in.depthScale * in.state.Scale * in.state.VolumePulse
	for i := in.state.VisiblePetals; i < in.lastVisible; i++ {
		pl := in.layout.PlacementFor(i, in.lastVisible)
		f.detach = append(f.detach, detachEvent{
			pos:      center,
			angleDeg: in.rotationDeg + pl.AngleDeg,
			shape: bloom.PetalShape{
				Length:        in.baseLength * scale * pl.LenMult,
				Width:         in.baseWidth,
				TipPointiness: in.state.Pointiness,
				BulgePosition: in.baseBulge,
				EdgeCurvature: in.baseEdgeCurve,
			},
			color: in.colors.Petal.Scaled(in.state.Alpha),
		})
	}
}

// sortByDepth keeps the draw order back to front; smaller y sits farther
// away and is drawn first.
func (f *Field) sortByDepth() {
	sort.Slice(f.instances, func(a, b int) bool {
		return f.instances[a].pos.Y < f.instances[b].pos.Y
	})
}

func init() {
	core.Register("field", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
