package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/Garsondee/neon-skyline/internal/city"
	"github.com/Garsondee/neon-skyline/internal/config"
	"github.com/Garsondee/neon-skyline/internal/control"
	"github.com/Garsondee/neon-skyline/internal/render"
)

// hudScale is the integer upscale factor applied to HUD text.
const hudScale = 2

// keyActions binds window keys to controller actions. Every binding is
// edge-triggered.
var keyActions = []struct {
	key    ebiten.Key
	action control.Action
}{
	{ebiten.KeySpace, control.ActionRegenerate},
	{ebiten.KeyR, control.ActionToggleRain},
	{ebiten.KeyV, control.ActionToggleCars},
	{ebiten.KeyF, control.ActionToggleReflections},
	{ebiten.KeyP, control.ActionExport},
	{ebiten.KeyC, control.ActionCopyReport},
	{ebiten.KeyH, control.ActionToggleHUD},
	{ebiten.KeyM, control.ActionToggleMute},
	{ebiten.KeyEscape, control.ActionQuit},
}

// Options configures a Game.
type Options struct {
	Config        *config.Config
	Palette       city.Palette
	Logger        *zap.Logger
	Sound         control.Sound // nil disables audio cues
	ScreenshotDir string
}

// Game hosts the skyline in an ebiten window.
type Game struct {
	width  int
	height int

	driver *city.Driver
	ctl    *control.Controller
	comp   *render.Compositor
	canvas *ebitenCanvas
	log    *zap.Logger

	prevKeys map[ebiten.Key]bool

	// Offscreen buffer for HUD text, rendered at 1x then blitted at hudScale.
	hudBuf *ebiten.Image

	pendingShot bool
	shotDir     string
}

// New builds the scene, driver and controller for a window of the
// configured size.
func New(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Defaults()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	canvas, err := newEbitenCanvas()
	if err != nil {
		return nil, err
	}

	scene := city.NewScene(cfg.Settings(), opts.Palette,
		city.WithViewport(cfg.Window.Width, cfg.Window.Height),
		city.WithSeed(cfg.Scene.Seed))
	g := &Game{
		width:    cfg.Window.Width,
		height:   cfg.Window.Height,
		driver:   city.NewDriver(scene, log),
		comp:     render.NewCompositor(nil),
		canvas:   canvas,
		log:      log,
		prevKeys: make(map[ebiten.Key]bool),
		shotDir:  opts.ScreenshotDir,
	}
	ctlOpts := []control.Option{control.WithExporter(g.queueScreenshot)}
	if opts.Sound != nil {
		ctlOpts = append(ctlOpts, control.WithSound(opts.Sound))
	}
	g.ctl = control.New(g.driver, log, ctlOpts...)

	rep := scene.Report()
	log.Info("skyline ready",
		zap.Int("width", rep.Width),
		zap.Int("height", rep.Height),
		zap.Int("buildings", rep.Buildings),
		zap.Int("signs", rep.Signs))
	return g, nil
}

// Controller exposes the command surface, mostly for tests and tooling.
func (g *Game) Controller() *control.Controller {
	return g.ctl
}

func (g *Game) Update() error {
	g.handleInput()
	if g.ctl.Quit {
		return ebiten.Termination
	}
	g.driver.Tick(time.Now())
	return nil
}

// handleInput dispatches edge-triggered keypresses.
func (g *Game) handleInput() {
	currentKeys := make(map[ebiten.Key]bool, len(keyActions))
	for _, ka := range keyActions {
		currentKeys[ka.key] = ebiten.IsKeyPressed(ka.key)
		if currentKeys[ka.key] && !g.prevKeys[ka.key] {
			g.ctl.Do(ka.action)
		}
	}
	g.prevKeys = currentKeys
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 2, G: 2, B: 16, A: 255})

	g.canvas.target(screen)
	g.comp.Render(g.canvas, g.driver.Scene())
	g.flushScreenshot(screen)

	if g.ctl.ShowHUD {
		g.drawHUD(screen)
		drawEventLog(screen, g.ctl.Events(), g.width, g.height)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.driver.Scene()
	lines := []string{
		fmt.Sprintf("NEON SKYLINE  t=%.1fs  fps=%.0f", s.Time, ebiten.ActualFPS()),
		fmt.Sprintf("rain:%s  vehicles:%s  reflections:%s",
			onOff(s.ShowRain), onOff(s.ShowCars), onOff(s.ShowReflections)),
	}
	lines = append(lines, control.Help...)

	const lineH = 12 // debug font line height at 1x
	const charW = 6  // debug font char width at 1x
	const padX = 5
	const padY = 4

	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)

	bufW, bufH := max(g.width/hudScale, 1), max(g.height/hudScale, 1)
	if g.hudBuf == nil || g.hudBuf.Bounds().Dx() != bufW || g.hudBuf.Bounds().Dy() != bufH {
		if g.hudBuf != nil {
			g.hudBuf.Deallocate()
		}
		g.hudBuf = ebiten.NewImage(bufW, bufH)
	}
	bx, by := float32(4), float32(4)

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, bx, by, boxW, boxH, color.RGBA{R: 6, G: 4, B: 16, A: 200}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH, 1, color.RGBA{R: 0, G: 160, B: 180, A: 160}, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(g.hudBuf, line, int(bx)+padX, int(by)+padY+i*lineH)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(hudScale, hudScale)
	screen.DrawImage(g.hudBuf, opts)
}

// Layout follows the window size; a changed size regenerates the city.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 &&
		(outsideWidth != g.width || outsideHeight != g.height) {
		g.width, g.height = outsideWidth, outsideHeight
		g.driver.Resize(outsideWidth, outsideHeight)
	}
	return g.width, g.height
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
