package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/neon-skyline/internal/control"
)

const (
	logPanelWidth  = 300
	logVisible     = 8
	logLineHeight  = 14
	logTitleHeight = 16
	logHighlighted = 2 // newest entries drawn on a highlight row
)

// eventColors maps each event kind to its indicator dot colour.
var eventColors = map[control.EventKind]color.RGBA{
	control.EventInfo:       {R: 140, G: 140, B: 170, A: 255},
	control.EventStrike:     {R: 200, G: 200, B: 255, A: 255},
	control.EventRegenerate: {R: 0, G: 245, B: 255, A: 255},
	control.EventToggle:     {R: 255, G: 0, B: 110, A: 255},
	control.EventError:      {R: 255, G: 80, B: 40, A: 255},
}

// drawEventLog renders the newest events in a panel in the bottom-right
// corner of the screen.
func drawEventLog(screen *ebiten.Image, log *control.EventLog, screenW, screenH int) {
	entries := log.Recent(logVisible)
	if len(entries) == 0 {
		return
	}
	panelH := logTitleHeight + len(entries)*logLineHeight + 6
	px := float32(screenW - logPanelWidth - 8)
	py := float32(screenH - panelH - 8)

	// Panel background.
	vector.FillRect(screen, px, py, logPanelWidth, float32(panelH), color.RGBA{R: 6, G: 4, B: 16, A: 200}, false)
	vector.StrokeRect(screen, px, py, logPanelWidth, float32(panelH), 1, color.RGBA{R: 90, G: 40, B: 120, A: 180}, false)

	// Title bar.
	vector.FillRect(screen, px, py, logPanelWidth, logTitleHeight, color.RGBA{R: 20, G: 10, B: 40, A: 230}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", int(px)+8, int(py))

	y := int(py) + logTitleHeight + 2
	for i, e := range entries {
		if i >= len(entries)-logHighlighted {
			vector.FillRect(screen, px+2, float32(y), logPanelWidth-4, logLineHeight, color.RGBA{R: 30, G: 20, B: 50, A: 160}, false)
		}
		vector.FillRect(screen, px+5, float32(y+4), 3, 6, eventColors[e.Kind], false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%6.1fs %s", e.Time, e.Message), int(px)+12, y)
		y += logLineHeight
	}
}
