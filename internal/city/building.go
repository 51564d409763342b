package city

import (
	"image/color"
	"math"
)

// RoofKind is the rooftop ornament of a building.
type RoofKind int

const (
	RoofNone RoofKind = iota
	RoofAntenna
	RoofLight
	RoofBlock
	roofKindCount
)

// roofTable makes antenna and light twice as likely as none or block.
var roofTable = []RoofKind{RoofNone, RoofAntenna, RoofAntenna, RoofLight, RoofLight, RoofBlock}

// String returns the roof name.
func (k RoofKind) String() string {
	switch k {
	case RoofNone:
		return "none"
	case RoofAntenna:
		return "antenna"
	case RoofLight:
		return "light"
	case RoofBlock:
		return "block"
	default:
		return "unknown"
	}
}

// Window packing constants (pixels).
const (
	windowInsetX   = 4
	windowInsetY   = 8
	windowPadW     = 8
	windowPadH     = 15
	windowRowGap   = 4
	windowAspect   = 1.5
	windowLitP     = 0.65
	windowFlickerP = 0.05
	signFlickerP   = 0.15
	signTopMargin  = 12
	signSideMargin = 3
	signMaxYFrac   = 0.55
)

// Window is one lit or unlit cell on a facade. X/Y are relative to the
// building's top-left corner.
type Window struct {
	X, Y    float64
	W, H    float64
	Lit     bool
	Flicker bool
	Phase   float64
	Color   color.RGBA
}

// Sign is a neon sign mounted on a facade. X/Y are relative to the
// building's top-left corner.
type Sign struct {
	X, Y    float64
	W, H    float64
	Text    string
	Color   color.RGBA
	Phase   float64
	Speed   float64
	Flicker bool
}

// Building is a fixed silhouette with its windows, signs and roof ornament.
// Nothing in it changes after construction.
type Building struct {
	X, W, H   float64
	Color     color.RGBA
	Opacity   float64
	Windows   []Window
	Signs     []Sign
	Roof      RoofKind
	RoofColor color.RGBA
	RoofPhase float64

	// Block roof geometry, sampled once.
	RoofBlockH     float64
	RoofBlockColor color.RGBA
}

// WindowGrid returns the column and row count for a building of size w×h.
func WindowGrid(w, h float64, layer LayerConfig) (cols, rows int) {
	if layer.WindowGap > 0 {
		cols = int(math.Floor((w - windowPadW) / layer.WindowGap))
	}
	cellH := layer.WindowSize * windowAspect
	rows = int(math.Floor((h - windowPadH) / (cellH + windowRowGap)))
	return max(cols, 0), max(rows, 0)
}

func newBuilding(r RNG, p *Palette, layer LayerConfig, x, w, h float64) Building {
	b := Building{X: x, W: w, H: h, Opacity: layer.Opacity}
	b.Color, _ = Pick(r, p.Building)

	cols, rows := WindowGrid(w, h, layer)
	cellH := layer.WindowSize * windowAspect
	b.Windows = make([]Window, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			win := Window{
				X: windowInsetX + float64(col)*layer.WindowGap,
				Y: windowInsetY + float64(row)*(cellH+windowRowGap),
				W: layer.WindowSize,
				H: cellH,
			}
			win.Lit = Chance(r, windowLitP)
			win.Flicker = Chance(r, windowFlickerP)
			win.Phase = Range(r, 0, 6.28)
			win.Color, _ = Pick(r, p.Window)
			b.Windows = append(b.Windows, win)
		}
	}

	if Chance(r, layer.SignChance) {
		n := IntRange(r, 1, 2)
		for i := 0; i < n; i++ {
			if s, ok := newSign(r, p, w, h); ok {
				b.Signs = append(b.Signs, s)
			}
		}
	}

	b.Roof, _ = Pick(r, roofTable)
	b.RoofColor, _ = Pick(r, p.Neon)
	b.RoofPhase = Range(r, 0, 6.28)
	if b.Roof == RoofBlock {
		b.RoofBlockH = float64(IntRange(r, 8, 25))
		b.RoofBlockColor, _ = Pick(r, p.Building)
	}
	return b
}

// newSign places a sign inside a w×h footprint. ok is false when the
// facade is too small to hold one.
func newSign(r RNG, p *Palette, w, h float64) (Sign, bool) {
	sh := float64(IntRange(r, 14, 28))
	sw := math.Min(w-2*signSideMargin, float64(IntRange(r, 28, 65)))
	if sw <= 0 || sh > h-signTopMargin {
		return Sign{}, false
	}
	s := Sign{W: sw, H: sh}
	s.X = Range(r, signSideMargin, math.Max(signSideMargin, w-sw-signSideMargin))
	s.Y = math.Min(Range(r, signTopMargin, math.Max(signTopMargin, h*signMaxYFrac)), h-sh)
	s.Text, _ = Pick(r, p.SignTexts)
	s.Color, _ = Pick(r, p.Neon)
	s.Phase = Range(r, 0, 6.28)
	s.Speed = Range(r, 1, 4)
	s.Flicker = Chance(r, signFlickerP)
	return s, true
}

// Top returns the y of the roof line for a given ground line.
func (b *Building) Top(groundY float64) float64 {
	return groundY - b.H
}

// LitWindows counts lit windows.
func (b *Building) LitWindows() int {
	n := 0
	for i := range b.Windows {
		if b.Windows[i].Lit {
			n++
		}
	}
	return n
}

// WindowAlpha is the glow multiplier of a window at time t.
func WindowAlpha(w Window, t float64) float64 {
	if !w.Flicker {
		return 1
	}
	return 0.3 + 0.7*math.Abs(math.Sin(t*8+w.Phase))
}

// SignAlpha is the glow multiplier of a sign at time t. Flickering signs
// drop out while sin(15t+phase) is above 0.8.
func SignAlpha(s Sign, t float64) float64 {
	if s.Flicker && math.Sin(t*15+s.Phase) > 0.8 {
		return 0.1
	}
	return 0.7 + 0.3*math.Sin(t*s.Speed+s.Phase)
}

// RoofAlpha is the blink multiplier of the rooftop beacon at time t.
func (b *Building) RoofAlpha(t float64) float64 {
	switch b.Roof {
	case RoofAntenna:
		if math.Sin(t*3+b.RoofPhase) > 0.5 {
			return 1
		}
		return 0.1
	case RoofLight:
		if math.Sin(t*2+b.RoofPhase) > 0.3 {
			return 0.8
		}
		return 0.2
	default:
		return 1
	}
}
