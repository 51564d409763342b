package city

import (
	"time"

	"go.uber.org/zap"
)

// MaxFrameStep bounds one simulated step so a stalled frame cannot push
// particles through their bounds checks.
const MaxFrameStep = 50 * time.Millisecond

// DriverState is the frame-loop state.
type DriverState int

const (
	DriverIdle DriverState = iota
	DriverRunning
)

// String returns the state name.
func (s DriverState) String() string {
	if s == DriverRunning {
		return "running"
	}
	return "idle"
}

// Driver owns one Scene and turns host frame callbacks into clamped
// simulation steps. Hosts call Tick once per frame and then render.
type Driver struct {
	scene *Scene
	state DriverState
	last  time.Time
	log   *zap.Logger

	onStrike     []func(intensity float64)
	onRegenerate []func(Report)
	onToggle     []func(name string, on bool)
}

// NewDriver wraps scene. A nil logger disables logging.
func NewDriver(scene *Scene, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{scene: scene, log: log}
}

// Scene returns the driven scene.
func (d *Driver) Scene() *Scene {
	return d.scene
}

// State returns the loop state.
func (d *Driver) State() DriverState {
	return d.state
}

// OnStrike registers a callback fired when lightning strikes.
func (d *Driver) OnStrike(fn func(intensity float64)) {
	d.onStrike = append(d.onStrike, fn)
}

// OnRegenerate registers a callback fired after every regeneration.
func (d *Driver) OnRegenerate(fn func(Report)) {
	d.onRegenerate = append(d.onRegenerate, fn)
}

// OnToggle registers a callback fired when a particle group is toggled.
func (d *Driver) OnToggle(fn func(name string, on bool)) {
	d.onToggle = append(d.onToggle, fn)
}

// Tick advances the scene to now. The first tick only starts the clock.
// It returns the step actually simulated.
func (d *Driver) Tick(now time.Time) time.Duration {
	if d.state == DriverIdle {
		d.state = DriverRunning
		d.last = now
		d.log.Debug("frame loop started")
		return 0
	}
	dt := now.Sub(d.last)
	d.last = now
	return d.Step(dt)
}

// Step advances the scene by dt, clamped to [0, MaxFrameStep].
func (d *Driver) Step(dt time.Duration) time.Duration {
	dt = min(max(dt, 0), MaxFrameStep)
	if intensity := d.scene.Update(dt.Seconds()); intensity > 0 {
		d.log.Debug("lightning strike",
			zap.Float64("intensity", intensity),
			zap.Float64("time", d.scene.Time))
		for _, fn := range d.onStrike {
			fn(intensity)
		}
	}
	return dt
}

// Regenerate rebuilds the city.
func (d *Driver) Regenerate() {
	d.scene.Regenerate()
	d.regenerated("regenerate")
}

// Resize changes the viewport and regenerates when the size changed.
func (d *Driver) Resize(width, height int) {
	if d.scene.Resize(width, height) {
		d.regenerated("resize")
	}
}

func (d *Driver) regenerated(reason string) {
	rep := d.scene.Report()
	d.log.Info("city generated",
		zap.String("reason", reason),
		zap.Int("width", int(d.scene.Width)),
		zap.Int("height", int(d.scene.Height)),
		zap.Int("buildings", rep.Buildings),
		zap.Int("signs", rep.Signs),
		zap.Int("cars", rep.Cars))
	for _, fn := range d.onRegenerate {
		fn(rep)
	}
}

// ToggleRain flips rain (and with it lightning) and returns the new state.
func (d *Driver) ToggleRain() bool {
	d.scene.ShowRain = !d.scene.ShowRain
	d.toggled("rain", d.scene.ShowRain)
	return d.scene.ShowRain
}

// ToggleCars flips flying cars and returns the new state.
func (d *Driver) ToggleCars() bool {
	d.scene.ShowCars = !d.scene.ShowCars
	d.toggled("cars", d.scene.ShowCars)
	return d.scene.ShowCars
}

// ToggleReflections flips the ground reflection pass and returns the new state.
func (d *Driver) ToggleReflections() bool {
	d.scene.ShowReflections = !d.scene.ShowReflections
	d.toggled("reflections", d.scene.ShowReflections)
	return d.scene.ShowReflections
}

func (d *Driver) toggled(name string, on bool) {
	d.log.Info("toggle", zap.String("group", name), zap.Bool("on", on))
	for _, fn := range d.onToggle {
		fn(name, on)
	}
}
