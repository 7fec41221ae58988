package audio

import (
	"testing"

	"github.com/gopxl/beep"
)

const testRate = beep.SampleRate(44100)

func TestSynthStreamDeterministic(t *testing.T) {
	a := NewSynth(testRate, 9)
	b := NewSynth(testRate, 9)
	ba := make([][2]float64, 4096)
	bb := make([][2]float64, 4096)
	n, ok := a.Stream(ba)
	if n != len(ba) || !ok {
		t.Fatalf("stream returned (%d, %v)", n, ok)
	}
	b.Stream(bb)
	for i := range ba {
		if ba[i] != bb[i] {
			t.Fatalf("same-seed synths diverged at sample %d", i)
		}
	}
}

func TestSynthSamplesBounded(t *testing.T) {
	s := NewSynth(testRate, 3)
	buf := make([][2]float64, 2048)
	for block := 0; block < 40; block++ {
		s.Stream(buf)
		for i, v := range buf {
			if v[0] != v[1] {
				t.Fatalf("block %d sample %d not mono-duplicated", block, i)
			}
			if v[0] < -1 || v[0] > 1 {
				t.Fatalf("block %d sample %d clipped: %v", block, i, v[0])
			}
		}
	}
}

func TestSynthMetricsSnapshot(t *testing.T) {
	s := NewSynth(testRate, 7)
	buf := make([][2]float64, 4410)
	for block := 0; block < 10; block++ {
		s.Stream(buf)
	}
	m := s.Next(1.0 / 60)
	if m.Volume <= 0 || m.Volume > 1 {
		t.Fatalf("volume snapshot: %v", m.Volume)
	}
	found := false
	for _, f := range leadScale {
		if m.Pitch == f {
			found = true
		}
	}
	if !found {
		t.Fatalf("pitch %v is not a scale tone", m.Pitch)
	}
	if m.PitchConfidence < 0 || m.PitchConfidence > 1 {
		t.Fatalf("confidence snapshot: %v", m.PitchConfidence)
	}
	if m.SpectralFullness < 0 || m.SpectralFullness > 1 {
		t.Fatalf("fullness snapshot: %v", m.SpectralFullness)
	}
	if err := s.Err(); err != nil {
		t.Fatalf("synth reported error: %v", err)
	}
}
