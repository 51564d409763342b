package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Garsondee/neon-skyline/internal/city"
)

func TestLinearV_InterpolatesStops(t *testing.T) {
	img := LinearV(2, 3, []Stop{
		{0, color.NRGBA{A: 255}},
		{1, color.NRGBA{R: 200, A: 255}},
	})
	if got := img.NRGBAAt(0, 1).R; got != 100 {
		t.Fatalf("expected midpoint red 100, got %d", got)
	}
	if got := img.NRGBAAt(1, 2).R; got != 200 {
		t.Fatalf("expected last row red 200, got %d", got)
	}
}

func TestRadial_BeyondRadiusTakesLastStop(t *testing.T) {
	// Centre on pixel (4,4) so its sample point sits at distance 0.
	img := Radial(10, 10, 4.5, 4.5, 4, horizonStops)
	if got := img.NRGBAAt(9, 9); got.A != 0 {
		t.Fatalf("expected transparent corner, got %+v", got)
	}
	if got, want := img.NRGBAAt(4, 4), horizonStops[0].Color; got != want {
		t.Fatalf("expected centre to take the first stop %+v, got %+v", want, got)
	}
	if got, want := img.NRGBAAt(5, 4), sample(horizonStops, 0.25); got != want {
		t.Fatalf("expected one pixel out to sample t=0.25 (%+v), got %+v", want, got)
	}
}

func TestRaster_FillRectClipsToBounds(t *testing.T) {
	r := NewRaster(8, 8)
	r.FillRect(-4, -4, 6, 6, color.RGBA{R: 255, A: 255})
	if got := r.Image().RGBAAt(1, 1); got.R != 255 {
		t.Fatalf("expected filled pixel, got %+v", got)
	}
	if got := r.Image().RGBAAt(3, 3); got.A != 0 {
		t.Fatalf("expected untouched pixel, got %+v", got)
	}
}

func TestRaster_ReflectMirrorsAboutAxis(t *testing.T) {
	r := NewRaster(20, 100)
	red := color.RGBA{R: 255, A: 255}
	r.Reflect(50, image.Rect(0, 50, 20, 100), 1, func(c Canvas) {
		c.FillRect(0, 10, 20, 10, red)
	})
	if got := r.Image().RGBAAt(5, 85); got.R != 255 {
		t.Fatalf("expected mirrored pixel at y=85, got %+v", got)
	}
	if got := r.Image().RGBAAt(5, 15); got.A != 0 {
		t.Fatalf("expected source area untouched outside clip, got %+v", got)
	}
	if got := r.Image().RGBAAt(5, 60); got.A != 0 {
		t.Fatalf("expected gap between axis and mirror, got %+v", got)
	}
}

func TestRaster_StrokeLineDiagonal(t *testing.T) {
	r := NewRaster(20, 20)
	r.StrokeLine(2, 2, 17, 17, 2, color.RGBA{G: 255, A: 255})
	if got := r.Image().RGBAAt(10, 10); got.G == 0 {
		t.Fatalf("expected line through the centre, got %+v", got)
	}
	if got := r.Image().RGBAAt(17, 2); got.A != 0 {
		t.Fatalf("expected empty off-diagonal corner, got %+v", got)
	}
}

func newRenderScene(seed int64) *city.Scene {
	settings := city.DefaultSettings()
	settings.StarCount = 0
	settings.CarCount = 0
	return city.NewScene(settings, city.DefaultPalette(), city.WithViewport(320, 180), city.WithSeed(seed))
}

func luma(c color.RGBA) int {
	return int(c.R) + int(c.G) + int(c.B)
}

func TestCompositor_SkyIsDark(t *testing.T) {
	// No buildings or rain, so the top-left pixel is pure backdrop.
	settings := city.DefaultSettings()
	settings.StarCount = 0
	settings.CarCount = 0
	settings.Layers = nil
	s := city.NewScene(settings, city.DefaultPalette(), city.WithViewport(320, 180), city.WithSeed(1))
	s.ShowRain = false

	r := NewRaster(320, 180)
	NewCompositor(city.NewRNG(1)).Render(r, s)
	got := r.Image().RGBAAt(0, 0)
	top := skyStops[0].Color
	if got != (color.RGBA{R: top.R, G: top.G, B: top.B, A: 255}) {
		t.Fatalf("expected the top sky stop %+v, got %+v", top, got)
	}
	if luma(got) > 60 {
		t.Fatalf("expected a dark sky, got %+v", got)
	}
}

func TestCompositor_LightningBrightens(t *testing.T) {
	s := newRenderScene(2)
	cp := NewCompositor(city.NewRNG(2))
	calm := NewRaster(320, 180)
	cp.Render(calm, s)

	s.Lightning.Strike(0.6)
	flash := NewRaster(320, 180)
	cp.Render(flash, s)

	a, b := calm.Image().RGBAAt(2, 2), flash.Image().RGBAAt(2, 2)
	if luma(b) <= luma(a) {
		t.Fatalf("expected flash to brighten the sky, calm=%+v flash=%+v", a, b)
	}
}

func TestCompositor_ReflectionsChangeGround(t *testing.T) {
	s := newRenderScene(3)
	s.ShowRain = false
	cp := NewCompositor(city.NewRNG(3))

	on := NewRaster(320, 180)
	cp.Render(on, s)
	s.ShowReflections = false
	off := NewRaster(320, 180)
	cp.Render(off, s)

	gy := int(s.GroundY)
	diff := 0
	for y := gy + 1; y < 180; y++ {
		for x := 0; x < 320; x++ {
			if on.Image().RGBAAt(x, y) != off.Image().RGBAAt(x, y) {
				diff++
			}
		}
	}
	if diff == 0 {
		t.Fatal("expected reflections to alter the ground")
	}
}

func TestCompositor_ReusesBackdropUntilResize(t *testing.T) {
	s := newRenderScene(4)
	cp := NewCompositor(nil)
	cp.Render(NewRaster(320, 180), s)
	first := cp.bd
	cp.Render(NewRaster(320, 180), s)
	if cp.bd != first {
		t.Fatal("expected backdrop to be reused")
	}
	s.Resize(200, 100)
	cp.Render(NewRaster(200, 100), s)
	if cp.bd == first {
		t.Fatal("expected backdrop rebuilt after resize")
	}
}

func TestWritePNG_RoundTrip(t *testing.T) {
	r := NewRaster(4, 4)
	r.Clear(color.RGBA{R: 10, G: 20, B: 30, A: 255})
	path := ExportPath(filepath.Join(t.TempDir(), "shots"), time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC))
	if filepath.Base(path) != "skyline_20240501_123000.png" {
		t.Fatalf("unexpected export name %s", path)
	}
	if err := WritePNG(path, r.Image()); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r, g, b, _ := img.At(2, 2).RGBA(); r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Fatalf("expected pixel (10,20,30), got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

// recordingCanvas counts draw calls by kind.
type recordingCanvas struct {
	calls map[string]int
}

func newRecordingCanvas() *recordingCanvas {
	return &recordingCanvas{calls: make(map[string]int)}
}

func (c *recordingCanvas) Size() (int, int) { return 320, 180 }
func (c *recordingCanvas) FillRect(x, y, w, h float32, clr color.Color) {
	c.calls["FillRect"]++
}
func (c *recordingCanvas) StrokeRect(x, y, w, h, width float32, clr color.Color) {
	c.calls["StrokeRect"]++
}
func (c *recordingCanvas) StrokeLine(x0, y0, x1, y1, width float32, clr color.Color) {
	c.calls["StrokeLine"]++
}
func (c *recordingCanvas) FillCircle(cx, cy, r float32, clr color.Color) {
	c.calls["FillCircle"]++
}
func (c *recordingCanvas) DrawImage(img image.Image, x, y float32) {
	c.calls["DrawImage"]++
}
func (c *recordingCanvas) DrawText(s string, cx, cy, size, maxW float32, clr color.Color) {
	c.calls["DrawText"]++
}
func (c *recordingCanvas) Reflect(axisY float32, clip image.Rectangle, alpha float32, draw func(Canvas)) {
	c.calls["Reflect"]++
	draw(c)
}

func signedAntennaBuilding() *city.Building {
	return &city.Building{
		X: 10, W: 60, H: 100,
		Color:   color.RGBA{R: 12, G: 12, B: 30, A: 255},
		Opacity: 1,
		Windows: []city.Window{
			{X: 4, Y: 8, W: 4, H: 6, Lit: true, Color: color.RGBA{R: 255, G: 165, A: 255}},
			{X: 14, Y: 8, W: 4, H: 6, Lit: false, Color: color.RGBA{R: 255, G: 165, A: 255}},
		},
		Signs: []city.Sign{
			{X: 5, Y: 20, W: 40, H: 20, Text: "NEON", Color: color.RGBA{R: 255, B: 110, A: 255}, Speed: 2},
		},
		Roof:      city.RoofAntenna,
		RoofColor: color.RGBA{R: 0, G: 245, B: 255, A: 255},
	}
}

func TestRenderSimplified_BodyAndLitWindowsOnly(t *testing.T) {
	c := newRecordingCanvas()
	RenderSimplified(c, signedAntennaBuilding(), 150)

	if got := c.calls["FillRect"]; got != 2 {
		t.Fatalf("expected body + 1 lit window fills, got %d", got)
	}
	for _, kind := range []string{"DrawText", "StrokeRect", "StrokeLine", "FillCircle"} {
		if got := c.calls[kind]; got != 0 {
			t.Fatalf("expected no %s in simplified mode, got %d", kind, got)
		}
	}
}

func TestRenderFull_DrawsOutlineSignsAndRoof(t *testing.T) {
	c := newRecordingCanvas()
	RenderFull(c, signedAntennaBuilding(), 150, 1.0)

	for _, kind := range []string{"DrawText", "StrokeRect", "StrokeLine", "FillCircle"} {
		if c.calls[kind] == 0 {
			t.Fatalf("expected %s in full mode, got none", kind)
		}
	}
	// body, lit window halo + core, sign backing
	if got := c.calls["FillRect"]; got != 4 {
		t.Fatalf("expected 4 fills (unlit window skipped), got %d", got)
	}
}

func TestRaster_SignTextStaysInsideSign(t *testing.T) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for _, text := range []string{"NEON", "電脳"} {
		r := NewRaster(100, 40)
		r.DrawText(text, 50, 20, 13, 30, white)

		inside := 0
		b := r.Image().Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if r.Image().RGBAAt(x, y).A == 0 {
					continue
				}
				if x < 35 || x > 65 || y < 7 || y > 33 {
					t.Fatalf("%q: expected ink inside the sign, got pixel at (%d,%d)", text, x, y)
				}
				inside++
			}
		}
		if text == "NEON" && inside == 0 {
			t.Fatalf("expected %q to draw", text)
		}
	}
}
