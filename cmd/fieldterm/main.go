// Command fieldterm runs the flower field in a terminal using half-block
// cells. It needs no GPU and no audio device.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"bloomfield/internal/audio"
	"bloomfield/internal/core"
	"bloomfield/internal/render"
	_ "bloomfield/internal/sims/flora"
	_ "bloomfield/internal/sims/specimen"
	"bloomfield/pkg/scene"
)

type colorModeSetter interface {
	SetColorMode(mode int)
}

type reactiveToggler interface {
	Reactive() bool
	SetReactive(on bool)
}

func main() {
	simName := flag.String("sim", "field", "simulation to run (field, specimen)")
	seed := flag.Int64("seed", 1337, "deterministic seed")
	count := flag.Int("count", 0, "initial bloom count (0 uses the sim default)")
	fps := flag.Int("fps", 30, "frames per second")
	flag.Parse()

	factory, ok := core.Sims()[*simName]
	if !ok {
		log.Fatalf("unknown sim %q", *simName)
	}
	sim := factory(nil)
	if err := sim.Setup(*count); err != nil {
		log.Fatal(err)
	}
	sim.Reset(*seed)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()
	screen.HideCursor()

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			events <- screen.PollEvent()
		}
	}()

	if *fps < 1 {
		*fps = 1
	}
	ticker := time.NewTicker(time.Second / time.Duration(*fps))
	defer ticker.Stop()

	driver := audio.NewLFO(*seed)
	clock := core.NewClock()
	bg := scene.RGBA(0.05, 0.055, 0.07, 1)

	var list scene.List
	var ra *render.Raster
	paused := false

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				ra = nil
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
					return
				case ev.Rune() == ' ':
					paused = !paused
				case ev.Rune() == 'r':
					sim.Reset(*seed)
				case ev.Rune() == 'm':
					if t, ok := sim.(reactiveToggler); ok {
						t.SetReactive(!t.Reactive())
					}
				case ev.Rune() >= '0' && ev.Rune() <= '9':
					if s, ok := sim.(colorModeSetter); ok {
						s.SetColorMode(int(ev.Rune() - '0'))
					}
				}
			}
		case <-ticker.C:
			cols, rows := screen.Size()
			if cols < 1 || rows < 1 {
				continue
			}
			w, h := cols, rows*2
			if ra == nil || !sameSize(ra, w, h) {
				ra = render.NewRaster(w, h)
			}
			dt := clock.Dt()
			if !paused {
				m := driver.Next(dt)
				sim.Update(m, dt, core.Viewport{W: float64(w), H: float64(h)})
			}
			ra.Clear(bg)
			list.Reset()
			sim.Scene(&list)
			ra.Draw(&list)
			render.Blit(screen, ra)
			screen.Show()
		}
	}
}

func sameSize(r *render.Raster, w, h int) bool {
	rw, rh := r.Size()
	return rw == w && rh == h
}
