package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Garsondee/neon-skyline/internal/control"
)

// FrameInterval is the terminal refresh period (~30 FPS).
const FrameInterval = 33 * time.Millisecond

// Run drives ctl's scene on screen until the user quits or ctx ends.
// screen must already be initialised; Run does not Fini it.
func Run(ctx context.Context, screen tcell.Screen, p *Presenter, ctl *control.Controller, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	d := ctl.Driver()
	d.Resize(p.Viewport())

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-eventChan:
			handleEvent(ev, p, ctl)
			if ctl.Quit {
				log.Info("terminal presenter quit")
				return nil
			}

		case now := <-ticker.C:
			d.Tick(now)
			p.Frame(d.Scene())
			p.Overlay(ctl)
			screen.Show()
		}
	}
}

func handleEvent(ev tcell.Event, p *Presenter, ctl *control.Controller) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			ctl.Do(control.ActionQuit)
		case tcell.KeyRune:
			ctl.Do(control.ActionForRune(ev.Rune()))
		}
	case *tcell.EventResize:
		p.screen.Sync()
		ctl.Driver().Resize(p.Viewport())
	}
}
