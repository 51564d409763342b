package game

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Garsondee/neon-skyline/internal/render"
)

// maxCachedImages bounds the image conversion cache. The compositor only
// hands over a few backdrop gradients per viewport.
const maxCachedImages = 8

// ebitenCanvas adapts an *ebiten.Image to render.Canvas.
type ebitenCanvas struct {
	dst    *ebiten.Image
	font   *text.GoTextFaceSource
	images map[image.Image]*ebiten.Image

	// Offscreen buffer for the reflection pass, sized to dst.
	layer       *ebiten.Image
	layerCanvas *ebitenCanvas
}

var _ render.Canvas = (*ebitenCanvas)(nil)

func newEbitenCanvas() (*ebitenCanvas, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load sign font: %w", err)
	}
	return &ebitenCanvas{
		font:   src,
		images: make(map[image.Image]*ebiten.Image),
	}, nil
}

// target points the canvas at the frame's screen image.
func (c *ebitenCanvas) target(dst *ebiten.Image) {
	c.dst = dst
}

func (c *ebitenCanvas) Size() (int, int) {
	b := c.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (c *ebitenCanvas) FillRect(x, y, w, h float32, clr color.Color) {
	vector.FillRect(c.dst, x, y, w, h, clr, true)
}

func (c *ebitenCanvas) StrokeRect(x, y, w, h, width float32, clr color.Color) {
	vector.StrokeRect(c.dst, x, y, w, h, width, clr, true)
}

func (c *ebitenCanvas) StrokeLine(x0, y0, x1, y1, width float32, clr color.Color) {
	vector.StrokeLine(c.dst, x0, y0, x1, y1, width, clr, true)
}

func (c *ebitenCanvas) FillCircle(cx, cy, r float32, clr color.Color) {
	vector.FillCircle(c.dst, cx, cy, r, clr, true)
}

// DrawImage uploads img on first use and reuses the GPU copy afterwards.
func (c *ebitenCanvas) DrawImage(img image.Image, x, y float32) {
	eimg, ok := c.images[img]
	if !ok {
		if len(c.images) >= maxCachedImages {
			for k, v := range c.images {
				v.Deallocate()
				delete(c.images, k)
			}
		}
		eimg = ebiten.NewImageFromImage(img)
		c.images[img] = eimg
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	c.dst.DrawImage(eimg, op)
}

// DrawText centres s on (cx, cy), squeezing it horizontally to fit maxW.
func (c *ebitenCanvas) DrawText(s string, cx, cy, size, maxW float32, clr color.Color) {
	if s == "" || size <= 0 || maxW <= 0 {
		return
	}
	face := &text.GoTextFace{Source: c.font, Size: float64(size)}
	w, _ := text.Measure(s, face, 0)

	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	if w > float64(maxW) {
		op.GeoM.Scale(float64(maxW)/w, 1)
	}
	op.GeoM.Translate(float64(cx), float64(cy))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(c.dst, s, face, op)
}

// Reflect renders draw offscreen, then blits it flipped about axisY into
// clip with the given alpha.
func (c *ebitenCanvas) Reflect(axisY float32, clip image.Rectangle, alpha float32, draw func(render.Canvas)) {
	clip = clip.Intersect(c.dst.Bounds())
	if clip.Empty() || alpha <= 0 {
		return
	}
	if c.layer == nil || c.layer.Bounds().Size() != c.dst.Bounds().Size() {
		if c.layer != nil {
			c.layer.Deallocate()
		}
		w, h := c.Size()
		c.layer = ebiten.NewImage(w, h)
		c.layerCanvas = &ebitenCanvas{dst: c.layer, font: c.font, images: c.images}
	}
	c.layer.Clear()
	draw(c.layerCanvas)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(1, -1)
	op.GeoM.Translate(0, 2*float64(axisY))
	op.ColorScale.ScaleAlpha(alpha)
	c.dst.SubImage(clip).(*ebiten.Image).DrawImage(c.layer, op)
}
