//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"math"

	"bloomfield/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type populationProvider interface {
	Count() int
	FallingCount() int
}

type activityProvider interface {
	ActivityLevel() float64
}

type reactiveProvider interface {
	Reactive() bool
}

type colorModeProvider interface {
	ColorMode() int
}

type variantProvider interface {
	Variant() int
}

// Overlay draws the audio meters and population readout on top of the field.
// Tab toggles it.
type Overlay struct {
	sim     core.Sim
	visible bool

	metrics core.Metrics
	flash   float64

	pixel *ebiten.Image
}

// NewOverlay constructs an overlay for sim, visible by default.
func NewOverlay(sim core.Sim) *Overlay {
	o := &Overlay{sim: sim, visible: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update records the latest metric frame and handles the visibility toggle.
// beat lights the onset indicator for a few frames.
func (o *Overlay) Update(m core.Metrics, beat bool, dt float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		o.visible = !o.visible
	}
	o.metrics = m
	if beat {
		o.flash = 1
	} else {
		o.flash -= 3 * dt
		if o.flash < 0 {
			o.flash = 0
		}
	}
}

// Draw renders the overlay onto screen.
func (o *Overlay) Draw(screen *ebiten.Image, paused bool) {
	if !o.visible {
		return
	}
	face := basicfont.Face7x13
	dim := color.RGBA{R: 160, G: 160, B: 170, A: 255}
	bright := color.RGBA{R: 220, G: 220, B: 230, A: 255}

	title := o.sim.Name()
	if paused {
		title += "  [paused]"
	}
	y := 18
	text.Draw(screen, title, face, 12, y, bright)
	y += 16

	if p, ok := o.sim.(populationProvider); ok {
		text.Draw(screen, fmt.Sprintf("blooms %d  falling %d", p.Count(), p.FallingCount()), face, 12, y, dim)
		y += 16
	}
	if p, ok := o.sim.(variantProvider); ok {
		text.Draw(screen, fmt.Sprintf("variant %d", p.Variant()), face, 12, y, dim)
		y += 16
	}
	status := ""
	if p, ok := o.sim.(activityProvider); ok {
		status = fmt.Sprintf("activity %3.0f%%", 100*p.ActivityLevel())
	}
	if p, ok := o.sim.(reactiveProvider); ok {
		if p.Reactive() {
			status += "  reactive"
		} else {
			status += "  steady"
		}
	}
	if p, ok := o.sim.(colorModeProvider); ok {
		status += fmt.Sprintf("  palette %d", p.ColorMode())
	}
	if status != "" {
		text.Draw(screen, status, face, 12, y, dim)
	}

	o.drawMeters(screen)
}

func (o *Overlay) drawMeters(screen *ebiten.Image) {
	h := screen.Bounds().Dy()
	base := h - 16

	o.drawMeter(screen, 12, base-28, o.metrics.Volume, color.RGBA{R: 110, G: 200, B: 120, A: 230})
	o.drawMeter(screen, 12, base-14, pitchBar(o.metrics), color.RGBA{R: 220, G: 180, B: 90, A: 230})
	o.drawMeter(screen, 12, base, o.metrics.SpectralFullness, color.RGBA{R: 100, G: 160, B: 230, A: 230})

	// Onset indicator next to the bars.
	if o.flash > 0 {
		a := uint8(math.Round(60 + 195*clamp01(o.flash)))
		o.drawPoint(screen, 150, float64(base-14), 8, color.RGBA{R: 240, G: 120, B: 120, A: a})
	}
}

func (o *Overlay) drawMeter(screen *ebiten.Image, x, y int, value float64, col color.RGBA) {
	const width, height = 120.0, 6.0
	o.drawRect(screen, float64(x), float64(y), width, height, color.RGBA{R: 40, G: 42, B: 48, A: 180})
	w := width * clamp01(value)
	if w > 0 {
		o.drawRect(screen, float64(x), float64(y), w, height, col)
	}
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	if o.pixel == nil || w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}

// pitchBar maps the pitch estimate onto [0, 1] over five octaves above A1,
// dimmed to zero when the estimate is not trustworthy.
func pitchBar(m core.Metrics) float64 {
	if m.Pitch <= 0 || m.PitchConfidence < 0.2 {
		return 0
	}
	return clamp01(math.Log2(m.Pitch/55) / 5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
