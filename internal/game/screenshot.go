package game

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/neon-skyline/internal/render"
)

// queueScreenshot asks Draw to capture the next composited frame. The
// capture happens before the HUD is drawn so exports show only the city.
func (g *Game) queueScreenshot() (string, error) {
	g.pendingShot = true
	return "", nil
}

// flushScreenshot writes the composited frame if one was queued.
func (g *Game) flushScreenshot(screen *ebiten.Image) {
	if !g.pendingShot {
		return
	}
	g.pendingShot = false

	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, b.Dx(), b.Dy())

	path := render.ExportPath(g.shotDir, time.Now())
	if err := render.WritePNG(path, img); err != nil {
		g.ctl.ExportFailed(err)
		return
	}
	g.ctl.Exported(path)
}

// unpremultiply converts premultiplied RGBA bytes to straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}
