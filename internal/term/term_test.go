package term

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap/zaptest"

	"github.com/Garsondee/neon-skyline/internal/city"
	"github.com/Garsondee/neon-skyline/internal/control"
	"github.com/Garsondee/neon-skyline/internal/render"
)

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func newTestController(t *testing.T, p *Presenter) *control.Controller {
	t.Helper()
	w, h := p.Viewport()
	scene := city.NewScene(city.DefaultSettings(), city.DefaultPalette(), city.WithViewport(w, h), city.WithSeed(11))
	return control.New(city.NewDriver(scene, zaptest.NewLogger(t)), zaptest.NewLogger(t),
		control.WithClipboard(func(string) error { return nil }))
}

func TestPresenter_ViewportFollowsScreen(t *testing.T) {
	screen := newSimScreen(t, 40, 12)
	p := NewPresenter(screen, render.NewCompositor(city.NewRNG(1)), 4)
	if w, h := p.Viewport(); w != 160 || h != 96 {
		t.Fatalf("expected 160x96, got %dx%d", w, h)
	}
}

func TestPresenter_FrameFillsCellsWithHalfBlocks(t *testing.T) {
	screen := newSimScreen(t, 40, 12)
	p := NewPresenter(screen, render.NewCompositor(city.NewRNG(1)), 4)
	ctl := newTestController(t, p)

	p.Frame(ctl.Driver().Scene())
	screen.Show()

	for _, pos := range [][2]int{{0, 0}, {39, 11}, {20, 6}} {
		r, _, _, _ := screen.GetContent(pos[0], pos[1])
		if r != halfBlock {
			t.Fatalf("cell %v: expected half block, got %q", pos, r)
		}
	}
	_, _, style, _ := screen.GetContent(5, 0)
	fg, _, _ := style.Decompose()
	r, g, b := fg.RGB()
	if r+g+b > 120 {
		t.Fatalf("expected dark sky in the top row, got (%d,%d,%d)", r, g, b)
	}
}

func TestPresenter_OverlayRespectsHUD(t *testing.T) {
	screen := newSimScreen(t, 90, 10)
	p := NewPresenter(screen, render.NewCompositor(city.NewRNG(2)), 2)
	ctl := newTestController(t, p)

	p.Frame(ctl.Driver().Scene())
	p.Overlay(ctl)
	if r, _, _, _ := screen.GetContent(1, 0); r != 'N' {
		t.Fatalf("expected status line, got %q", r)
	}

	ctl.Do(control.ActionToggleHUD)
	p.Frame(ctl.Driver().Scene())
	p.Overlay(ctl)
	if r, _, _, _ := screen.GetContent(1, 0); r != halfBlock {
		t.Fatalf("expected HUD hidden, got %q", r)
	}
}

func TestRun_QuitKeyStopsLoop(t *testing.T) {
	screen := newSimScreen(t, 30, 10)
	p := NewPresenter(screen, render.NewCompositor(city.NewRNG(3)), 2)
	ctl := newTestController(t, p)

	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), screen, p, ctl, zaptest.NewLogger(t))
	}()
	time.Sleep(3 * FrameInterval)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean exit, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run loop did not stop on q")
	}
	if ctl.Driver().State() != city.DriverRunning {
		t.Fatalf("expected driver running after frames, got %s", ctl.Driver().State())
	}
}

func TestRun_ContextCancelStopsLoop(t *testing.T) {
	screen := newSimScreen(t, 20, 8)
	p := NewPresenter(screen, render.NewCompositor(city.NewRNG(4)), 2)
	ctl := newTestController(t, p)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := Run(ctx, screen, p, ctl, nil); err != nil {
		t.Fatalf("expected nil on cancel, got %v", err)
	}
}

func TestPresenter_TextAdvancesWideRunes(t *testing.T) {
	screen := newSimScreen(t, 10, 2)
	p := NewPresenter(screen, render.NewCompositor(city.NewRNG(5)), 2)

	end := p.text(0, 0, "a東京b", hudStyle)
	if end != 6 {
		t.Fatalf("expected end column 6, got %d", end)
	}
	for col, want := range map[int]rune{0: 'a', 1: '東', 3: '京', 5: 'b'} {
		if r, _, _, _ := screen.GetContent(col, 0); r != want {
			t.Fatalf("col %d: expected %q, got %q", col, want, r)
		}
	}
	if end := p.text(8, 1, "東京", hudStyle); end != 10 {
		t.Fatalf("expected clipping at the edge to stop at 10, got %d", end)
	}
}
