package audio

import "testing"

func TestLFOStaysInRange(t *testing.T) {
	l := NewLFO(11)
	for i := 0; i < 3600; i++ {
		m := l.Next(tick)
		if m.Volume < 0 || m.Volume > 0.5 {
			t.Fatalf("tick %d: raw volume out of range: %v", i, m.Volume)
		}
		if m.SpectralFullness < 0 || m.SpectralFullness > 1 {
			t.Fatalf("tick %d: fullness out of range: %v", i, m.SpectralFullness)
		}
		if m.PitchConfidence < 0 || m.PitchConfidence > 1 {
			t.Fatalf("tick %d: confidence out of range: %v", i, m.PitchConfidence)
		}
		if m.Pitch < minPitchHz || m.Pitch > maxPitchHz {
			t.Fatalf("tick %d: pitch wandered out of range: %v", i, m.Pitch)
		}
	}
}

func TestLFODeterministic(t *testing.T) {
	a := NewLFO(5)
	b := NewLFO(5)
	for i := 0; i < 600; i++ {
		if a.Next(tick) != b.Next(tick) {
			t.Fatalf("same-seed drivers diverged at tick %d", i)
		}
	}
	c := NewLFO(6)
	d := NewLFO(7)
	diverged := false
	for i := 0; i < 600; i++ {
		if c.Next(tick) != d.Next(tick) {
			diverged = true
		}
	}
	if !diverged {
		t.Fatalf("distinct seeds produced identical metric streams")
	}
}
