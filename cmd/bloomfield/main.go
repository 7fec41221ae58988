//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"strings"
	"time"

	"bloomfield/internal/app"
	"bloomfield/internal/audio"
	"bloomfield/internal/core"
	_ "bloomfield/internal/sims/flora"
	_ "bloomfield/internal/sims/specimen"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/hajimehoshi/ebiten/v2"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	var overrides kvList
	flag.Var(&overrides, "set", "sim parameter override in key=value form (repeatable)")
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q", cfg.Sim)
	}

	simCfg := map[string]string{}
	for _, kv := range overrides {
		key, value, found := strings.Cut(kv, "=")
		if !found {
			log.Fatalf("invalid -set value %q, want key=value", kv)
		}
		simCfg[key] = value
	}

	sim := factory(simCfg)
	if err := sim.Setup(cfg.Count); err != nil {
		log.Fatal(err)
	}
	sim.Reset(cfg.Seed)

	game := app.New(sim, newDriver(cfg), cfg)

	ebiten.SetWindowTitle("bloomfield — " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.W+cfg.HUD, cfg.H)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

// newDriver starts the synth voice when requested, falling back to the
// silent oscillator driver when no audio device is available.
func newDriver(cfg *app.Config) audio.Driver {
	if !cfg.Synth {
		return audio.NewLFO(cfg.Seed)
	}
	const sr = beep.SampleRate(44100)
	if err := speaker.Init(sr, sr.N(100*time.Millisecond)); err != nil {
		log.Printf("audio device unavailable, using silent driver: %v", err)
		return audio.NewLFO(cfg.Seed)
	}
	synth := audio.NewSynth(sr, cfg.Seed)
	speaker.Play(synth)
	return synth
}
