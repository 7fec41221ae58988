package flora

import (
	"math"

	"bloomfield/pkg/geom"
)

// Phase boundaries of the natural life cycle.
const (
	phaseGrowEnd  = 0.15
	phaseBloomEnd = 0.60
	phaseShedEnd  = 0.80
	phaseWiltEnd  = 0.95

	// Seconds a flagged instance takes from fast-death start to terminal.
	fastDeathDuration = 0.67
)

// LifeState is the visual output of the lifecycle machine for one tick.
type LifeState struct {
	Scale         float64 // head scale
	StemScale     float64 // stem height scale
	StemCurveMod  float64 // extra bend added to the base curvature
	Alpha         float64
	VolumePulse   float64
	Pointiness    float64
	VisiblePetals int
}

// lifeState maps a phase into visual parameters. vol is the smoothed volume
// and pitchMod the signed pointiness modulation rolled into this instance.
func lifeState(phase float64, basePetals int, basePointiness, pitchMod, vol float64) LifeState {
	st := LifeState{
		Scale:         1,
		StemScale:     1,
		Alpha:         1,
		VolumePulse:   1,
		Pointiness:    basePointiness,
		VisiblePetals: basePetals,
	}
	switch {
	case phase < phaseGrowEnd:
		t := phase / phaseGrowEnd
		st.Scale = t * t
		st.StemScale = t
		st.Alpha = t

	case phase < phaseBloomEnd:
		st.VolumePulse = 1 + vol*0.9
		st.Pointiness = geom.Clamp(basePointiness+pitchMod, 0, 1)

	case phase < phaseShedEnd:
		t := (phase - phaseBloomEnd) / (phaseShedEnd - phaseBloomEnd)
		st.VisiblePetals = shedCount(basePetals, t)
		st.Scale = 1 - t*0.3
		reactivity := 1 - t
		st.VolumePulse = 1 + vol*0.9*reactivity
		st.Pointiness = geom.Clamp(basePointiness+pitchMod*reactivity, 0, 1)

	case phase < phaseWiltEnd:
		t := (phase - phaseShedEnd) / (phaseWiltEnd - phaseShedEnd)
		st.VisiblePetals = 0
		st.Scale = (1 - t) * 0.7
		st.StemScale = 1 - t*0.6
		st.StemCurveMod = t * 1.5
		st.Alpha = 1 - t*0.6

	default:
		t := geom.Clamp((phase-phaseWiltEnd)/(1-phaseWiltEnd), 0, 1)
		st.VisiblePetals = 0
		st.Scale = 0.01
		st.StemScale = 0.4 * (1 - t)
		st.StemCurveMod = 1.5
		st.Alpha = (1 - t) * 0.4
	}
	st.Alpha = geom.Clamp(st.Alpha, 0, 1)
	return st
}

// shedCount is the visible petal count while petals drop off, t in [0, 1].
func shedCount(basePetals int, t float64) int {
	n := int(math.Round(float64(basePetals) * (1 - t)))
	if n < 0 {
		n = 0
	}
	return n
}

// fastDeathState overrides the natural cycle while a flagged instance dies.
// fd runs 0 to 1 over the fast-death window.
func fastDeathState(fd, basePointiness float64) LifeState {
	fd = geom.Clamp(fd, 0, 1)
	ease := 1 - fd*fd
	return LifeState{
		Scale:        ease,
		StemScale:    ease,
		StemCurveMod: fd * 3,
		Alpha:        ease,
		VolumePulse:  1,
		Pointiness:   basePointiness,
	}
}
