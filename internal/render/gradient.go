package render

import (
	"image"
	"image/color"
	"math"
)

// Stop is a gradient colour stop at Offset in [0,1].
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// sample interpolates the stops at t. Stops must be sorted by offset.
func sample(stops []Stop, t float64) color.NRGBA {
	if len(stops) == 0 {
		return color.NRGBA{}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			f := (t - a.Offset) / span
			return color.NRGBA{
				R: lerp8(a.Color.R, b.Color.R, f),
				G: lerp8(a.Color.G, b.Color.G, f),
				B: lerp8(a.Color.B, b.Color.B, f),
				A: lerp8(a.Color.A, b.Color.A, f),
			}
		}
	}
	return stops[len(stops)-1].Color
}

func lerp8(a, b uint8, f float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
}

// LinearV renders a top-to-bottom gradient into a w×h image.
func LinearV(w, h int, stops []Stop) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		t := 0.0
		if b.Dy() > 1 {
			t = float64(y) / float64(b.Dy()-1)
		}
		c := sample(stops, t)
		row := img.Pix[y*img.Stride : y*img.Stride+b.Dx()*4]
		for x := 0; x < len(row); x += 4 {
			row[x], row[x+1], row[x+2], row[x+3] = c.R, c.G, c.B, c.A
		}
	}
	return img
}

// Radial renders a circular gradient centred on (cx, cy) with radius r
// into a w×h image. Pixels beyond r take the last stop.
func Radial(w, h int, cx, cy, r float64, stops []Stop) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	if r <= 0 {
		return img
	}
	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		dy := float64(y) + 0.5 - cy
		for x := 0; x < b.Dx(); x++ {
			dx := float64(x) + 0.5 - cx
			c := sample(stops, math.Sqrt(dx*dx+dy*dy)/r)
			i := y*img.Stride + x*4
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
		}
	}
	return img
}
