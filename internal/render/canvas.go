// Package render paints a city.Scene onto a Canvas. The compositor is
// immediate-mode: every frame is painted from scratch in a fixed order.
package render

import (
	"image"
	"image/color"
)

// Canvas is the 2D surface the compositor paints on. Coordinates are in
// pixels with the origin at the top-left.
type Canvas interface {
	Size() (w, h int)
	FillRect(x, y, w, h float32, clr color.Color)
	StrokeRect(x, y, w, h, width float32, clr color.Color)
	StrokeLine(x0, y0, x1, y1, width float32, clr color.Color)
	FillCircle(cx, cy, r float32, clr color.Color)
	// DrawImage composites img with its top-left at (x, y).
	DrawImage(img image.Image, x, y float32)
	// DrawText centres s on (cx, cy). Text wider than maxW is squeezed or
	// clipped to it.
	DrawText(s string, cx, cy, size, maxW float32, clr color.Color)
	// Reflect runs draw against an offscreen layer, mirrors the layer about
	// axisY and composites it into clip at the given alpha.
	Reflect(axisY float32, clip image.Rectangle, alpha float32, draw func(Canvas))
}

// fade returns c at opacity a (0..1), non-premultiplied.
func fade(c color.RGBA, a float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha8(a)}
}

// rgba builds a non-premultiplied colour from 0-255 channels and a 0..1 alpha.
func rgba(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: alpha8(a)}
}

func alpha8(a float64) uint8 {
	switch {
	case a <= 0:
		return 0
	case a >= 1:
		return 255
	default:
		return uint8(a*255 + 0.5)
	}
}
