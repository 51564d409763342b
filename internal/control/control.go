// Package control maps user commands onto a city.Driver and fans driver
// events out to sound, the event log and the clipboard. Both the window
// and the terminal host route their keys through it.
package control

import (
	"fmt"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/Garsondee/neon-skyline/internal/city"
)

// Action is a user command.
type Action int

const (
	ActionNone Action = iota
	ActionRegenerate
	ActionToggleRain
	ActionToggleCars
	ActionToggleReflections
	ActionExport
	ActionCopyReport
	ActionToggleHUD
	ActionToggleMute
	ActionQuit
)

var actionNames = [...]string{
	ActionNone:              "none",
	ActionRegenerate:        "regenerate",
	ActionToggleRain:        "rain",
	ActionToggleCars:        "vehicles",
	ActionToggleReflections: "reflections",
	ActionExport:            "export",
	ActionCopyReport:        "copy-report",
	ActionToggleHUD:         "hud",
	ActionToggleMute:        "mute",
	ActionQuit:              "quit",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// ActionForRune maps a typed character to its action. Letters are
// case-insensitive.
func ActionForRune(r rune) Action {
	switch r {
	case ' ':
		return ActionRegenerate
	case 'r', 'R':
		return ActionToggleRain
	case 'v', 'V':
		return ActionToggleCars
	case 'f', 'F':
		return ActionToggleReflections
	case 'p', 'P':
		return ActionExport
	case 'c', 'C':
		return ActionCopyReport
	case 'h', 'H':
		return ActionToggleHUD
	case 'm', 'M':
		return ActionToggleMute
	case 'q', 'Q':
		return ActionQuit
	default:
		return ActionNone
	}
}

// Help lists the key bindings for HUDs.
var Help = []string{
	"[Space] regenerate",
	"[R] rain  [V] vehicles  [F] reflections",
	"[P] export PNG  [C] copy report",
	"[H] HUD  [M] mute",
}

// Sound receives ambience cues. *audio.Player satisfies it.
type Sound interface {
	Thunder(intensity float64)
	SetRain(on bool)
	ToggleMute() bool
}

// Exporter writes the current frame somewhere and returns a description
// of where, or "" when the export is deferred to the next frame.
type Exporter func() (string, error)

// Controller executes actions against a driver.
type Controller struct {
	driver *city.Driver
	events *EventLog
	sound  Sound
	copy   func(string) error
	export Exporter
	log    *zap.Logger

	ShowHUD bool
	Quit    bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithSound routes strikes and rain toggles to s.
func WithSound(s Sound) Option {
	return func(c *Controller) { c.sound = s }
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) Option {
	return func(c *Controller) { c.copy = fn }
}

// WithExporter sets the PNG export capability of the host.
func WithExporter(fn Exporter) Option {
	return func(c *Controller) { c.export = fn }
}

// New builds a controller and subscribes it to the driver's events.
func New(d *city.Driver, log *zap.Logger, opts ...Option) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{
		driver:  d,
		events:  NewEventLog(),
		copy:    clipboard.WriteAll,
		log:     log,
		ShowHUD: true,
	}
	for _, opt := range opts {
		opt(c)
	}

	d.OnStrike(func(intensity float64) {
		c.events.Add(d.Scene().Time, EventStrike, fmt.Sprintf("lightning %.2f", intensity))
		if c.sound != nil {
			c.sound.Thunder(intensity)
		}
	})
	d.OnRegenerate(func(r city.Report) {
		c.events.Add(r.Time, EventRegenerate,
			fmt.Sprintf("city %dx%d: %d buildings, %d signs", r.Width, r.Height, r.Buildings, r.Signs))
	})
	d.OnToggle(func(name string, on bool) {
		c.events.Add(d.Scene().Time, EventToggle, fmt.Sprintf("%s %s", name, onOff(on)))
		if name == "rain" && c.sound != nil {
			c.sound.SetRain(on)
		}
	})
	if c.sound != nil {
		c.sound.SetRain(d.Scene().ShowRain)
	}
	return c
}

// Driver returns the controlled driver.
func (c *Controller) Driver() *city.Driver {
	return c.driver
}

// Events returns the event log.
func (c *Controller) Events() *EventLog {
	return c.events
}

// Do executes a.
func (c *Controller) Do(a Action) {
	t := c.driver.Scene().Time
	switch a {
	case ActionRegenerate:
		c.driver.Regenerate()
	case ActionToggleRain:
		c.driver.ToggleRain()
	case ActionToggleCars:
		c.driver.ToggleCars()
	case ActionToggleReflections:
		c.driver.ToggleReflections()
	case ActionExport:
		c.doExport(t)
	case ActionCopyReport:
		if err := c.copy(c.driver.Scene().Report().Format()); err != nil {
			c.log.Warn("copy report", zap.Error(err))
			c.events.Add(t, EventError, "clipboard unavailable")
			return
		}
		c.events.Add(t, EventInfo, "report copied")
	case ActionToggleHUD:
		c.ShowHUD = !c.ShowHUD
	case ActionToggleMute:
		if c.sound == nil {
			return
		}
		muted := c.sound.ToggleMute()
		c.events.Add(t, EventToggle, fmt.Sprintf("sound %s", onOff(!muted)))
	case ActionQuit:
		c.Quit = true
	}
}

func (c *Controller) doExport(t float64) {
	if c.export == nil {
		c.events.Add(t, EventError, "export unavailable")
		return
	}
	where, err := c.export()
	if err != nil {
		c.ExportFailed(err)
		return
	}
	if where != "" {
		c.Exported(where)
	}
}

// Exported records a finished export. Hosts that defer the capture to the
// next frame call it themselves.
func (c *Controller) Exported(path string) {
	c.log.Info("image exported", zap.String("path", path))
	c.events.Add(c.driver.Scene().Time, EventInfo, "saved "+path)
}

// ExportFailed records a deferred export error.
func (c *Controller) ExportFailed(err error) {
	c.log.Error("export image", zap.Error(err))
	c.events.Add(c.driver.Scene().Time, EventError, "export failed")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
