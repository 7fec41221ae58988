//go:build ebiten

package app

import (
	"image/color"
	"sort"
	"time"

	"bloomfield/internal/audio"
	"bloomfield/internal/core"
	"bloomfield/internal/render"
	"bloomfield/internal/ui"
	"bloomfield/pkg/scene"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type colorModeSetter interface {
	SetColorMode(mode int)
}

type reactiveToggler interface {
	Reactive() bool
	SetReactive(on bool)
}

var background = color.RGBA{R: 12, G: 14, B: 18, A: 255}

// Game adapts a core simulation to the ebiten.Game interface, feeding it
// metric frames from the audio driver once per tick.
type Game struct {
	sim     core.Sim
	driver  audio.Driver
	painter *render.Painter
	overlay *ui.Overlay
	hud     *ui.HUD
	clock   *core.Clock
	beats   audio.BeatDetector

	list    scene.List
	metrics core.Metrics

	w, h     int
	hudWidth int
	paused   bool
	tickOnce bool
	seed     int64
	count    int
}

// New constructs a Game for the provided simulation and driver.
func New(sim core.Sim, driver audio.Driver, cfg *Config) *Game {
	g := &Game{
		sim:      sim,
		driver:   driver,
		painter:  render.NewPainter(),
		overlay:  ui.NewOverlay(sim),
		clock:    core.NewClock(),
		w:        cfg.W,
		h:        cfg.H,
		hudWidth: cfg.HUD,
		seed:     cfg.Seed,
		count:    cfg.Count,
	}
	if cfg.HUD > 0 {
		g.hud = ui.NewHUD(sim, cfg.HUD)
	}
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		if toggler, ok := g.sim.(reactiveToggler); ok {
			toggler.SetReactive(!toggler.Reactive())
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.switchSim()
	}
	if setter, ok := g.sim.(colorModeSetter); ok {
		for d := 0; d <= 9; d++ {
			if inpututil.IsKeyJustPressed(ebiten.KeyDigit0 + ebiten.Key(d)) {
				setter.SetColorMode(d)
			}
		}
	}

	dt := g.clock.Dt()
	beat := false
	if (!g.paused) || g.tickOnce {
		g.metrics = g.driver.Next(dt)
		beat = g.beats.Observe(g.metrics.Volume, dt)
		g.sim.Update(g.metrics, dt, core.Viewport{W: float64(g.w), H: float64(g.h)})
		g.tickOnce = false
	}

	if g.overlay != nil {
		g.overlay.Update(g.metrics, beat, dt)
	}
	if g.hud != nil {
		g.hud.Update(g.w)
	}
	return nil
}

// switchSim swaps in the next registered simulation, carrying over the
// configured seed and count. Factory overrides do not survive the switch.
func (g *Game) switchSim() {
	registry := core.Sims()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	if len(names) < 2 {
		return
	}
	sort.Strings(names)
	idx := 0
	for i, name := range names {
		if name == g.sim.Name() {
			idx = i
			break
		}
	}
	next := registry[names[(idx+1)%len(names)]](nil)
	if err := next.Setup(g.count); err != nil {
		return
	}
	next.Reset(g.seed)
	g.sim = next
	g.overlay = ui.NewOverlay(next)
	if g.hud != nil {
		g.hud = ui.NewHUD(next, g.hudWidth)
	}
	ebiten.SetWindowTitle("bloomfield — " + next.Name())
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.list.Reset()
	g.sim.Scene(&g.list)
	g.painter.Draw(screen, &g.list)
	if g.overlay != nil {
		g.overlay.Draw(screen, g.paused)
	}
	if g.hud != nil {
		g.hud.Draw(screen, g.w, g.h)
	}
}

// Layout returns the logical screen size, field view plus panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w + g.hudWidth, g.h
}
