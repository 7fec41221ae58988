package audio

import (
	"math"
	"testing"

	"bloomfield/internal/core"
)

const tick = 1.0 / 60

func TestVolumeGainAndClamp(t *testing.T) {
	var tr Tracker
	prev := 0.0
	for i := 0; i < 200; i++ {
		tr.Observe(core.Metrics{Volume: 0.5}, tick)
		if tr.Volume < prev {
			t.Fatalf("volume not monotone at tick %d: %v -> %v", i, prev, tr.Volume)
		}
		if tr.Volume > 1 {
			t.Fatalf("volume escaped clamp: %v", tr.Volume)
		}
		prev = tr.Volume
	}
	if tr.Volume < 0.95 {
		t.Fatalf("volume failed to converge toward boosted target: %v", tr.Volume)
	}
}

func TestPitchGate(t *testing.T) {
	var tr Tracker
	tr.Observe(core.Metrics{Pitch: 440, PitchConfidence: 0.9}, tick)
	if tr.PitchHz != 440 {
		t.Fatalf("first confident pitch should latch directly: %v", tr.PitchHz)
	}
	tr.Observe(core.Metrics{Pitch: 100, PitchConfidence: 0.05}, tick)
	if tr.PitchHz != 440 {
		t.Fatalf("unconfident pitch moved the tracker: %v", tr.PitchHz)
	}
	tr.Observe(core.Metrics{Pitch: 30, PitchConfidence: 0.9}, tick)
	if tr.PitchHz != 440 {
		t.Fatalf("sub-floor pitch moved the tracker: %v", tr.PitchHz)
	}
	tr.Observe(core.Metrics{Pitch: 880, PitchConfidence: 0.9}, tick)
	if tr.PitchHz <= 440 || tr.PitchHz >= 880 {
		t.Fatalf("confident pitch should blend toward target: %v", tr.PitchHz)
	}
}

func TestPitchNorm(t *testing.T) {
	var tr Tracker
	if got := tr.PitchNorm(); got != 0 {
		t.Fatalf("norm before any pitch: %v", got)
	}
	tr.PitchHz = centerPitchHz
	if got := tr.PitchNorm(); math.Abs(got) > 1e-12 {
		t.Fatalf("norm at center: %v", got)
	}
	tr.PitchHz = maxPitchHz
	if got := tr.PitchNorm(); got != 1 {
		t.Fatalf("norm at ceiling should clamp to 1: %v", got)
	}
	tr.PitchHz = minPitchHz
	got := tr.PitchNorm()
	if got >= 0 || got < -1 {
		t.Fatalf("norm at floor: %v", got)
	}
}

func TestSmoothingRateIndependent(t *testing.T) {
	var slow, fast Tracker
	m := core.Metrics{Volume: 0.1, SpectralFullness: 0.8}
	for i := 0; i < 30; i++ {
		slow.Observe(m, 1.0/30)
	}
	for i := 0; i < 60; i++ {
		fast.Observe(m, 1.0/60)
	}
	if math.Abs(slow.Fullness-fast.Fullness) > 1e-9 {
		t.Fatalf("fullness depends on tick rate: %v vs %v", slow.Fullness, fast.Fullness)
	}
	if math.Abs(slow.Volume-fast.Volume) > 1e-9 {
		t.Fatalf("volume depends on tick rate: %v vs %v", slow.Volume, fast.Volume)
	}
}
