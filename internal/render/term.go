package render

import "github.com/gdamore/tcell/v2"

// halfBlock shows the foreground color in the top half of a cell and the
// background color in the bottom half, giving two raster rows per cell.
const halfBlock = '▀'

// Blit copies the raster onto scr, two raster rows per terminal row. The
// raster should already be composited onto an opaque background; alpha is
// ignored here.
func Blit(scr tcell.Screen, r *Raster) {
	cols, rows := scr.Size()
	w, h := r.Size()
	pix := r.Pix()
	for cy := 0; cy < rows; cy++ {
		top := cy * 2
		if top >= h {
			break
		}
		for cx := 0; cx < cols && cx < w; cx++ {
			fg := pixColor(pix, w, cx, top)
			bg := fg
			if top+1 < h {
				bg = pixColor(pix, w, cx, top+1)
			}
			scr.SetContent(cx, cy, halfBlock, nil,
				tcell.StyleDefault.Foreground(fg).Background(bg))
		}
	}
}

func pixColor(pix []byte, w, x, y int) tcell.Color {
	base := (y*w + x) * 4
	return tcell.NewRGBColor(int32(pix[base]), int32(pix[base+1]), int32(pix[base+2]))
}
