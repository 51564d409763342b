// Package term shows the skyline in a terminal. Each cell is two virtual
// pixels stacked vertically: an upper half block drawn in the top pixel's
// colour over a background of the bottom pixel's colour.
package term

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/text/width"

	"github.com/Garsondee/neon-skyline/internal/city"
	"github.com/Garsondee/neon-skyline/internal/control"
	"github.com/Garsondee/neon-skyline/internal/render"
)

// halfBlock is the upper half block glyph.
const halfBlock = '▀'

// DefaultPixelsPerCell is the horizontal scene resolution of one cell.
// Vertically a cell covers twice as many scene pixels.
const DefaultPixelsPerCell = 8

var (
	hudStyle   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0, 245, 255)).Background(tcell.NewRGBColor(6, 4, 16))
	eventStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 105, 180)).Background(tcell.NewRGBColor(6, 4, 16))
)

// Presenter paints frames of a scene onto a tcell screen.
type Presenter struct {
	screen tcell.Screen
	comp   *render.Compositor
	raster *render.Raster
	cells  *image.RGBA // cols × 2·rows
	ppc    int
}

// NewPresenter creates a presenter. ppc <= 0 selects DefaultPixelsPerCell.
func NewPresenter(screen tcell.Screen, comp *render.Compositor, ppc int) *Presenter {
	if ppc <= 0 {
		ppc = DefaultPixelsPerCell
	}
	return &Presenter{
		screen: screen,
		comp:   comp,
		raster: render.NewRaster(1, 1),
		ppc:    ppc,
	}
}

// Viewport returns the scene size matching the current screen size.
func (p *Presenter) Viewport() (w, h int) {
	cols, rows := p.screen.Size()
	return max(cols, 1) * p.ppc, max(rows, 1) * 2 * p.ppc
}

// Raster returns the full-resolution frame of the last Frame call.
func (p *Presenter) Raster() *render.Raster {
	return p.raster
}

// Frame composites s, downsamples it to the cell grid and writes the
// cells. It does not call Show.
func (p *Presenter) Frame(s *city.Scene) {
	p.raster.Resize(int(s.Width), int(s.Height))
	p.raster.Clear(color.Black)
	p.comp.Render(p.raster, s)

	cols, rows := p.screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	if p.cells == nil || p.cells.Bounds().Dx() != cols || p.cells.Bounds().Dy() != rows*2 {
		p.cells = image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	}
	src := p.raster.Image()
	xdraw.ApproxBiLinear.Scale(p.cells, p.cells.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := p.cells.RGBAAt(x, 2*y)
			bot := p.cells.RGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.Foreground(cellColor(top)).Background(cellColor(bot))
			p.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
}

func cellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Overlay writes the status line, key help and the newest event.
func (p *Presenter) Overlay(ctl *control.Controller) {
	if !ctl.ShowHUD {
		return
	}
	s := ctl.Driver().Scene()
	p.text(0, 0, fmt.Sprintf(" NEON SKYLINE  t=%.1fs  rain:%s vehicles:%s reflections:%s ",
		s.Time, onOff(s.ShowRain), onOff(s.ShowCars), onOff(s.ShowReflections)), hudStyle)
	p.text(0, 1, " [Space] regen [R]ain [V]ehicles [F]reflect [P]ng [C]opy [H]ud [M]ute [Q]uit ", hudStyle)

	if ev := ctl.Events().Recent(1); len(ev) == 1 {
		_, rows := p.screen.Size()
		p.text(0, rows-1, fmt.Sprintf(" %.1fs %s ", ev[0].Time, ev[0].Message), eventStyle)
	}
}

// text writes s from column x, stopping at the right edge. Wide runes
// take two columns.
func (p *Presenter) text(x, y int, s string, style tcell.Style) int {
	cols, _ := p.screen.Size()
	for _, r := range s {
		w := runeWidth(r)
		if x+w > cols {
			break
		}
		p.screen.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

// Export writes the last full-resolution frame as a PNG into dir.
func (p *Presenter) Export(dir string) (string, error) {
	path := render.ExportPath(dir, time.Now())
	if err := render.WritePNG(path, p.raster.Image()); err != nil {
		return "", err
	}
	return path, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
