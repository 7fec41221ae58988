//go:build !ebiten

package ui

import "bloomfield/internal/core"

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(core.Sim) *Overlay { return &Overlay{} }

// Update is a no-op in headless builds.
func (o *Overlay) Update(core.Metrics, bool, float64) {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any, bool) {}
