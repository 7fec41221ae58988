package audio

import "testing"

func TestBeatFiresOnSpikeOnce(t *testing.T) {
	var b BeatDetector
	// Warm the baseline past the cold-start transient.
	lateFires := 0
	for i := 0; i < 240; i++ {
		if b.Observe(0.08, tick) && i >= 180 {
			lateFires++
		}
	}
	if lateFires != 0 {
		t.Fatalf("steady volume kept firing after warmup: %d", lateFires)
	}
	if !b.Observe(0.3, tick) {
		t.Fatalf("spike over settled baseline did not fire")
	}
	if b.Observe(0.3, tick) {
		t.Fatalf("second tick fired inside the cooldown")
	}
}

func TestBeatBelowFloorNeverFires(t *testing.T) {
	var b BeatDetector
	for i := 0; i < 600; i++ {
		if b.Observe(0.04, tick) {
			t.Fatalf("fired below the volume floor at tick %d", i)
		}
	}
}

func TestDensityAndPruning(t *testing.T) {
	var b BeatDetector
	fired := 0
	// Spikes every 0.3 s over a quiet bed for 5 s.
	for i := 0; i < 300; i++ {
		vol := 0.02
		if i%18 == 0 {
			vol = 0.4
		}
		if b.Observe(vol, tick) {
			fired++
		}
	}
	if fired < 10 {
		t.Fatalf("expected a dense beat run, got %d fires", fired)
	}
	d := b.Density()
	if d <= 0.4 || d > 1 {
		t.Fatalf("density after dense run: %v", d)
	}
	// Silence long enough to outlive the history window.
	for i := 0; i < 400; i++ {
		b.Observe(0, tick)
	}
	if got := b.Density(); got != 0 {
		t.Fatalf("density after pruning window: %v", got)
	}
}

func TestActivityConverges(t *testing.T) {
	var a Activity
	prev := -1.0
	for i := 0; i < 4000; i++ {
		v := a.Observe(1, 1, 1, tick)
		if v < prev {
			t.Fatalf("activity regressed at tick %d: %v -> %v", i, prev, v)
		}
		prev = v
	}
	if prev < 0.9 {
		t.Fatalf("activity failed to approach composite target: %v", prev)
	}
	var quiet Activity
	quiet.Value = 0.8
	for i := 0; i < 4000; i++ {
		quiet.Observe(0, 0, 0, tick)
	}
	if quiet.Value > 0.1 {
		t.Fatalf("activity failed to decay in silence: %v", quiet.Value)
	}
}
