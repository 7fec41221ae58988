package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"

	"bloomfield/internal/core"
	"bloomfield/pkg/geom"
)

// A-minor pentatonic over two octaves. The lead voice walks this table.
var leadScale = []float64{220, 261.63, 293.66, 329.63, 392, 440, 523.25, 587.33}

// Synth is a small generative pattern player: kick, bass drone and a
// wandering pentatonic lead. It implements beep.Streamer for audible output
// while publishing the exact loudness, pitch and richness it is producing,
// so a field reacts to ground truth rather than to signal analysis.
type Synth struct {
	mu  sync.Mutex
	sr  beep.SampleRate
	rng *core.RNG

	pos     int // samples rendered
	beatLen int // samples per beat
	noteLen int // samples per lead step

	kickAge   int
	noteAge   int
	rest      bool
	leadIdx   int
	leadFreq  float64
	leadPhase float64
	bassPhase float64

	metrics core.Metrics
}

// NewSynth constructs a deterministic pattern player at the given sample rate.
func NewSynth(sr beep.SampleRate, seed int64) *Synth {
	s := &Synth{
		sr:       sr,
		rng:      core.NewRNG(seed),
		beatLen:  sr.N(time.Minute / 112), // 112 BPM
		leadFreq: leadScale[0],
	}
	s.noteLen = s.beatLen / 2
	return s
}

// Stream renders the next block of stereo samples and refreshes the metric
// snapshot from the block it just produced.
func (s *Synth) Stream(samples [][2]float64) (n int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sumSq float64
	for i := range samples {
		if s.pos%s.beatLen == 0 {
			s.kickAge = 0
		}
		if s.pos%s.noteLen == 0 {
			s.advanceLead()
		}

		// Kick: downward pitch sweep under an exponential decay.
		kt := float64(s.kickAge) / float64(s.sr)
		kickEnv := math.Exp(-kt * 18)
		kickFreq := 42 + 95*kickEnv
		kick := 0.5 * kickEnv * math.Sin(2*math.Pi*kickFreq*kt)

		// Bass drone an octave under the scale root.
		s.bassPhase += 55.0 / float64(s.sr)
		bass := 0.13 * math.Sin(2*math.Pi*s.bassPhase)

		// Lead with a touch of second harmonic for body.
		lead := 0.0
		if !s.rest {
			env := math.Exp(-float64(s.noteAge) / float64(s.sr) * 4.5)
			s.leadPhase += s.leadFreq / float64(s.sr)
			lead = 0.22 * env * (math.Sin(2*math.Pi*s.leadPhase) + 0.35*math.Sin(4*math.Pi*s.leadPhase))
		}

		v := kick + bass + lead
		samples[i][0] = v
		samples[i][1] = v
		sumSq += v * v

		s.pos++
		s.kickAge++
		s.noteAge++
	}

	if len(samples) > 0 {
		rms := math.Sqrt(sumSq / float64(len(samples)))
		leadEnv := 0.0
		if !s.rest {
			leadEnv = math.Exp(-float64(s.noteAge) / float64(s.sr) * 4.5)
		}
		kickEnv := math.Exp(-float64(s.kickAge) / float64(s.sr) * 18)
		s.metrics = core.Metrics{
			Volume:           math.Min(rms*1.6, 1),
			Pitch:            s.leadFreq,
			PitchConfidence:  geom.Clamp(leadEnv*1.4, 0, 1),
			SpectralFullness: geom.Clamp(0.25+0.5*leadEnv+0.2*kickEnv, 0, 1),
		}
	}
	return len(samples), true
}

// Err implements beep.Streamer. The synth never fails.
func (s *Synth) Err() error { return nil }

// Next implements Driver by returning the latest block's snapshot.
func (s *Synth) Next(dt float64) core.Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}

// advanceLead moves to the next step of the pattern: a rest one time in five,
// otherwise a bounded walk over the scale.
func (s *Synth) advanceLead() {
	s.noteAge = 0
	s.rest = s.rng.Chance(0.2)
	if s.rest {
		return
	}
	step := s.rng.RangeInt(-2, 2)
	s.leadIdx = (s.leadIdx + step + len(leadScale)) % len(leadScale)
	s.leadFreq = leadScale[s.leadIdx]
}
