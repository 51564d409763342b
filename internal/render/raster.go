package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// circleSegments is the polygon resolution used for filled circles.
const circleSegments = 20

var goRegular = sync.OnceValues(func() (*opentype.Font, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse goregular: %w", err)
	}
	return f, nil
})

// Raster is a software Canvas backed by an *image.RGBA. It needs no GPU
// or window, which makes it the canvas for headless export, the terminal
// presenter and tests.
type Raster struct {
	img   *image.RGBA
	ras   *vector.Rasterizer
	faces map[int]font.Face

	layer *Raster     // offscreen target for Reflect
	flip  *image.RGBA // mirrored copy of layer
}

// NewRaster allocates a transparent w×h raster.
func NewRaster(w, h int) *Raster {
	return &Raster{
		img:   image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1))),
		ras:   vector.NewRasterizer(1, 1),
		faces: make(map[int]font.Face),
	}
}

// Image returns the backing image.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Size returns the raster dimensions.
func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates the raster when the size changes.
func (r *Raster) Resize(w, h int) {
	if cw, ch := r.Size(); cw == w && ch == h {
		return
	}
	r.img = image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	r.layer, r.flip = nil, nil
}

// Clear replaces every pixel with c.
func (r *Raster) Clear(c color.Color) {
	xdraw.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{}, xdraw.Src)
}

// pixelRect snaps a float rectangle to whole pixels, never thinner than one.
func pixelRect(x, y, w, h float32) image.Rectangle {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	x0 := int(math.Floor(float64(x)))
	y0 := int(math.Floor(float64(y)))
	x1 := int(math.Floor(float64(x+w) + 0.5))
	y1 := int(math.Floor(float64(y+h) + 0.5))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return image.Rect(x0, y0, x1, y1)
}

// FillRect blends a solid rectangle.
func (r *Raster) FillRect(x, y, w, h float32, clr color.Color) {
	if w == 0 || h == 0 {
		return
	}
	rect := pixelRect(x, y, w, h).Intersect(r.img.Bounds())
	if rect.Empty() {
		return
	}
	xdraw.Draw(r.img, rect, image.NewUniform(clr), image.Point{}, xdraw.Over)
}

// StrokeRect draws a rectangle outline centred on its edges.
func (r *Raster) StrokeRect(x, y, w, h, width float32, clr color.Color) {
	hw := width / 2
	r.FillRect(x-hw, y-hw, w+width, width, clr)
	r.FillRect(x-hw, y+h-hw, w+width, width, clr)
	r.FillRect(x-hw, y+hw, width, h-width, clr)
	r.FillRect(x+w-hw, y+hw, width, h-width, clr)
}

// StrokeLine draws a line segment of the given width.
func (r *Raster) StrokeLine(x0, y0, x1, y1, width float32, clr color.Color) {
	switch {
	case y0 == y1:
		r.FillRect(min(x0, x1), y0-width/2, abs32(x1-x0), width, clr)
		return
	case x0 == x1:
		r.FillRect(x0-width/2, min(y0, y1), width, abs32(y1-y0), clr)
		return
	}
	dx, dy := x1-x0, y1-y0
	l := float32(math.Hypot(float64(dx), float64(dy)))
	nx, ny := -dy/l*width/2, dx/l*width/2
	r.fillPolygon([][2]float32{
		{x0 + nx, y0 + ny}, {x1 + nx, y1 + ny},
		{x1 - nx, y1 - ny}, {x0 - nx, y0 - ny},
	}, clr)
}

// FillCircle fills a circle approximated by a polygon.
func (r *Raster) FillCircle(cx, cy, radius float32, clr color.Color) {
	if radius <= 0.75 {
		r.FillRect(cx-radius, cy-radius, 2*radius, 2*radius, clr)
		return
	}
	pts := make([][2]float32, circleSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = [2]float32{cx + radius*float32(math.Cos(a)), cy + radius*float32(math.Sin(a))}
	}
	r.fillPolygon(pts, clr)
}

// fillPolygon rasterizes pts into a mask sized to the polygon's bounds and
// blends clr through it.
func (r *Raster) fillPolygon(pts [][2]float32, clr color.Color) {
	minX, minY := pts[0][0], pts[0][1]
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = min(minX, p[0]), max(maxX, p[0])
		minY, maxY = min(minY, p[1]), max(maxY, p[1])
	}
	ox, oy := int(math.Floor(float64(minX))), int(math.Floor(float64(minY)))
	bw := int(math.Ceil(float64(maxX))) - ox + 1
	bh := int(math.Ceil(float64(maxY))) - oy + 1
	dst := image.Rect(ox, oy, ox+bw, oy+bh)
	if !dst.Overlaps(r.img.Bounds()) {
		return
	}

	r.ras.Reset(bw, bh)
	r.ras.DrawOp = xdraw.Src
	fx, fy := float32(ox), float32(oy)
	r.ras.MoveTo(pts[0][0]-fx, pts[0][1]-fy)
	for _, p := range pts[1:] {
		r.ras.LineTo(p[0]-fx, p[1]-fy)
	}
	r.ras.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, bw, bh))
	r.ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	xdraw.DrawMask(r.img, dst, image.NewUniform(clr), image.Point{}, mask, image.Point{}, xdraw.Over)
}

// DrawImage composites img with its top-left corner at (x, y).
func (r *Raster) DrawImage(img image.Image, x, y float32) {
	b := img.Bounds()
	ix, iy := int(math.Round(float64(x))), int(math.Round(float64(y)))
	dst := image.Rect(ix, iy, ix+b.Dx(), iy+b.Dy())
	xdraw.Draw(r.img, dst, img, b.Min, xdraw.Over)
}

func (r *Raster) face(size float32) font.Face {
	key := int(size * 4)
	if f, ok := r.faces[key]; ok {
		return f
	}
	var f font.Face
	if tt, err := goRegular(); err == nil {
		f, err = opentype.NewFace(tt, &opentype.FaceOptions{
			Size:    float64(key) / 4,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			f = nil
		}
	}
	r.faces[key] = f
	return f
}

// DrawText centres s on (cx, cy) and clips it to maxW.
func (r *Raster) DrawText(s string, cx, cy, size, maxW float32, clr color.Color) {
	if s == "" || size <= 0 || maxW <= 0 {
		return
	}
	face := r.face(size)
	if face == nil {
		return
	}
	clip := image.Rect(
		int(cx-maxW/2), int(cy-size),
		int(math.Ceil(float64(cx+maxW/2))), int(math.Ceil(float64(cy+size))),
	).Intersect(r.img.Bounds())
	if clip.Empty() {
		return
	}
	d := &font.Drawer{
		Dst:  r.img.SubImage(clip).(*image.RGBA),
		Src:  image.NewUniform(clr),
		Face: face,
	}
	m := face.Metrics()
	width := float32(d.MeasureString(s)) / 64
	baseline := cy + float32(m.Ascent-m.Descent)/64/2
	d.Dot = fixed.Point26_6{
		X: fixed.Int26_6((cx - width/2) * 64),
		Y: fixed.Int26_6(baseline * 64),
	}
	d.DrawString(s)
}

// Reflect draws into an offscreen layer, flips it about axisY and blends it
// into clip at alpha.
func (r *Raster) Reflect(axisY float32, clip image.Rectangle, alpha float32, draw func(Canvas)) {
	clip = clip.Intersect(r.img.Bounds())
	if clip.Empty() || alpha <= 0 {
		return
	}
	w, h := r.Size()
	if r.layer == nil {
		r.layer = &Raster{
			img:   image.NewRGBA(r.img.Bounds()),
			ras:   vector.NewRasterizer(1, 1),
			faces: r.faces,
		}
		r.flip = image.NewRGBA(r.img.Bounds())
	} else {
		r.layer.Clear(color.Transparent)
		xdraw.Draw(r.flip, r.flip.Bounds(), image.Transparent, image.Point{}, xdraw.Src)
	}
	draw(r.layer)

	s2d := f64.Aff3{1, 0, 0, 0, -1, 2 * float64(axisY)}
	xdraw.NearestNeighbor.Transform(r.flip, s2d, r.layer.img, image.Rect(0, 0, w, h), xdraw.Src, nil)
	mask := image.NewUniform(color.Alpha{A: alpha8(float64(alpha))})
	xdraw.DrawMask(r.img, clip, r.flip, clip.Min, mask, image.Point{}, xdraw.Over)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
