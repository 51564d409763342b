package render

import (
	"image"
	"image/color"

	"github.com/Garsondee/neon-skyline/internal/city"
)

const (
	reflectionAlpha = 0.1
	fogRise         = 70 // fog band starts this far above the ground line
	fogHeight       = 85
	rippleStart     = 4
)

var (
	skyStops = []Stop{
		{0, rgba(0x02, 0x02, 0x10, 1)},
		{0.3, rgba(0x05, 0x05, 0x20, 1)},
		{0.6, rgba(0x0a, 0x0a, 0x30, 1)},
		{0.85, rgba(0x15, 0x0a, 0x35, 1)},
		{1, rgba(0x1a, 0x0a, 0x2e, 1)},
	}
	horizonStops = []Stop{
		{0, rgba(100, 20, 80, 0.12)},
		{0.6, rgba(40, 10, 50, 0.04)},
		{1, rgba(0, 0, 0, 0)},
	}
	fogStops = []Stop{
		{0, rgba(10, 10, 40, 0)},
		{0.6, rgba(15, 10, 35, 0.12)},
		{1, rgba(10, 5, 25, 0.25)},
	}
	waterStops = []Stop{
		{0, rgba(5, 5, 20, 0.25)},
		{0.4, rgba(5, 5, 20, 0.55)},
		{1, rgba(3, 3, 10, 0.92)},
	}

	groundColor    = rgba(0x03, 0x03, 0x08, 1)
	rippleColor    = rgba(80, 100, 160, 0.035)
	edgeColor      = color.RGBA{R: 70, G: 70, B: 120, A: 255}
	mastColor      = color.RGBA{R: 0x33, G: 0x33, B: 0x55, A: 255}
	roofLightColor = color.RGBA{R: 0xff, G: 0x00, B: 0x40, A: 255}
	white          = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// backdrop holds the gradient images for one viewport. They depend only
// on the viewport, so they are rebuilt on resize and reused every frame.
type backdrop struct {
	w, h, groundY int

	sky, horizon, fog, water *image.NRGBA
}

func newBackdrop(w, h, groundY int) *backdrop {
	return &backdrop{
		w: w, h: h, groundY: groundY,
		sky:     LinearV(w, groundY, skyStops),
		horizon: Radial(w, groundY, float64(w)/2, float64(groundY), 0.55*float64(w), horizonStops),
		fog:     LinearV(w, fogHeight, fogStops),
		water:   LinearV(w, h-groundY, waterStops),
	}
}

// Compositor paints scenes. It keeps its own random source for per-frame
// jitter so rendering never perturbs the simulation's stream.
type Compositor struct {
	rng city.RNG
	bd  *backdrop
}

// NewCompositor returns a compositor drawing jitter from r. A nil r gets a
// time-seeded source.
func NewCompositor(r city.RNG) *Compositor {
	if r == nil {
		r = city.NewRNG(0)
	}
	return &Compositor{rng: r}
}

func (cp *Compositor) backdrop(w, h, groundY int) *backdrop {
	if cp.bd == nil || cp.bd.w != w || cp.bd.h != h || cp.bd.groundY != groundY {
		cp.bd = newBackdrop(w, h, groundY)
	}
	return cp.bd
}

// Render paints one full frame of s. Paint order: sky, horizon glow,
// stars, building layers back to front, cars, steam, ground (reflected or
// flat), rain, fog, lightning.
func (cp *Compositor) Render(c Canvas, s *city.Scene) {
	a := s.Assets()
	if a == nil {
		return
	}
	W, H, gY := float32(s.Width), float32(s.Height), float32(s.GroundY)
	bd := cp.backdrop(int(s.Width), int(s.Height), int(s.GroundY))
	t := s.Time

	c.DrawImage(bd.sky, 0, 0)
	c.DrawImage(bd.horizon, 0, 0)

	for _, st := range a.Stars {
		sz := float32(st.Size)
		c.FillRect(float32(st.X), float32(st.Y), sz, sz, fade(white, st.Alpha(t)))
	}

	for _, layer := range a.Layers {
		for i := range layer {
			RenderFull(c, &layer[i], s.GroundY, t)
		}
	}

	if s.ShowCars {
		for i := range a.Cars {
			drawCar(c, &a.Cars[i])
		}
	}
	for i := range a.Steam {
		st := &a.Steam[i]
		c.FillCircle(float32(st.X), float32(st.Y), float32(st.Size), rgba(140, 150, 190, st.Alpha*st.Fade()))
	}

	if s.ShowReflections {
		cp.drawWater(c, a, W, H, gY)
	} else {
		c.FillRect(0, gY, W, H-gY, groundColor)
	}

	if s.ShowRain {
		for i := range a.Rain {
			d := &a.Rain[i]
			x, y := float32(d.X), float32(d.Y)
			c.StrokeLine(x, y, x+float32(d.Wind*0.03), y+float32(d.Length), 1, rgba(180, 200, 255, d.Alpha))
		}
	}

	c.DrawImage(bd.fog, 0, gY-fogRise)

	if f := s.Lightning.Intensity(); f > 0 {
		c.FillRect(0, 0, W, H, rgba(200, 200, 255, f*0.25))
	}
}

// drawWater paints the ground, the mirrored skyline, the water tint and
// horizontal ripples.
func (cp *Compositor) drawWater(c Canvas, a *city.Assets, W, H, gY float32) {
	c.FillRect(0, gY, W, H-gY, groundColor)
	clip := image.Rect(0, int(gY), int(W), int(H))
	c.Reflect(gY, clip, reflectionAlpha, func(layer Canvas) {
		for _, l := range a.Layers {
			for i := range l {
				RenderSimplified(layer, &l[i], float64(gY))
			}
		}
	})
	c.DrawImage(cp.bd.water, 0, gY)
	for y := gY + rippleStart; y < H; y += float32(city.IntRange(cp.rng, 3, 7)) {
		c.StrokeLine(0, y, W, y, 1, rippleColor)
	}
}

// RenderFull draws a building with edge outline, lit windows with glow,
// signs and its roof ornament, at the building's layer opacity.
func RenderFull(c Canvas, b *city.Building, groundY, t float64) {
	op := b.Opacity
	bx, by := float32(b.X), float32(b.Top(groundY))
	w, h := float32(b.W), float32(b.H)

	c.FillRect(bx, by, w, h, fade(b.Color, op))
	c.StrokeRect(bx+0.5, by+0.5, w-1, h-1, 1, fade(edgeColor, 0.2*op*op))

	for _, win := range b.Windows {
		if !win.Lit {
			continue
		}
		wa := op * city.WindowAlpha(win, t)
		x, y := bx+float32(win.X), by+float32(win.Y)
		ww, wh := float32(win.W), float32(win.H)
		halo := ww * 0.75
		c.FillRect(x-halo, y-halo, ww+2*halo, wh+2*halo, fade(win.Color, wa*0.15))
		c.FillRect(x, y, ww, wh, fade(win.Color, wa))
	}

	for _, s := range b.Signs {
		drawSign(c, s, bx, by, op*city.SignAlpha(s, t))
	}

	drawRoof(c, b, bx, by, op, t)
}

// RenderSimplified draws only the body and lit windows, for reflections.
func RenderSimplified(c Canvas, b *city.Building, groundY float64) {
	op := b.Opacity
	bx, by := float32(b.X), float32(b.Top(groundY))
	c.FillRect(bx, by, float32(b.W), float32(b.H), fade(b.Color, op))
	for _, win := range b.Windows {
		if win.Lit {
			c.FillRect(bx+float32(win.X), by+float32(win.Y), float32(win.W), float32(win.H), fade(win.Color, op))
		}
	}
}

func drawSign(c Canvas, s city.Sign, bx, by float32, a float64) {
	x, y := bx+float32(s.X), by+float32(s.Y)
	w, h := float32(s.W), float32(s.H)

	c.FillRect(x, y, w, h, rgba(0, 0, 0, 0.7*a))
	c.StrokeRect(x-2, y-2, w+4, h+4, 4, fade(s.Color, a*0.25))
	c.StrokeRect(x, y, w, h, 1.5, fade(s.Color, a))

	size := min(h-6, 13)
	if size > 0 {
		c.DrawText(s.Text, x+w/2, y+h/2, size, w-4, fade(s.Color, a))
	}
}

func drawRoof(c Canvas, b *city.Building, bx, by float32, op, t float64) {
	w := float32(b.W)
	cx := bx + w/2
	switch b.Roof {
	case city.RoofAntenna:
		top := by - 18
		c.StrokeLine(cx, by, cx, top, 1, fade(mastColor, op))
		ba := op * b.RoofAlpha(t)
		c.FillCircle(cx, top, 5, fade(b.RoofColor, ba*0.3))
		c.FillCircle(cx, top, 2, fade(b.RoofColor, ba))
	case city.RoofLight:
		la := op * b.RoofAlpha(t)
		c.FillCircle(cx, by+3, 4, fade(roofLightColor, la*0.3))
		c.FillCircle(cx, by+3, 2, fade(roofLightColor, la))
	case city.RoofBlock:
		bw, bh := w*0.4, float32(b.RoofBlockH)
		c.FillRect(cx-bw/2, by-bh, bw, bh, fade(b.RoofBlockColor, op))
	}
}

func drawCar(c Canvas, car *city.FlyingCar) {
	n := len(car.Trail)
	size := float32(car.Size)
	for i, p := range car.Trail {
		f := float64(i) / float64(n)
		sz := size * 0.3 * float32(f)
		if sz <= 0 {
			continue
		}
		c.FillRect(float32(p.X)-sz/2, float32(p.Y)-sz/2, sz, sz, rgba(255, 0, 64, f*0.4))
	}

	x, y := float32(car.X), float32(car.Y)
	c.FillRect(x-size*1.5, y-size, size*3, size*2, fade(car.Color, 0.25))
	c.FillRect(x-size, y-size/2, size*2, size, fade(car.Color, 1))

	hx := x + size*float32(car.Dir)
	c.FillCircle(hx, y, size*0.9, fade(white, 0.3))
	c.FillCircle(hx, y, size*0.35, fade(white, 1))
}
