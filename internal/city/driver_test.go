package city

import (
	"math"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func newTestScene(t *testing.T, seed int64, mutate func(*Settings)) *Scene {
	t.Helper()
	settings := DefaultSettings()
	if mutate != nil {
		mutate(&settings)
	}
	return NewScene(settings, DefaultPalette(), WithViewport(1280, 720), WithSeed(seed))
}

func TestLightning_DecaysLinearlyAndClamps(t *testing.T) {
	var l Lightning
	l.Strike(0.5)
	l.Update(0.1)
	if got := l.Intensity(); math.Abs(got-0.2) > 1e-5 {
		t.Fatalf("expected 0.2 after one tick, got %f", got)
	}
	l.Update(0.1)
	if got := l.Intensity(); got != 0 {
		t.Fatalf("expected clamp to 0 after two ticks, got %f", got)
	}
	if l.Active() {
		t.Fatal("expected flash to be inactive")
	}
	l.Update(0.1)
	if got := l.Intensity(); got != 0 {
		t.Fatalf("expected flash to stay at 0, got %f", got)
	}
}

func TestLightning_RestrikeRestartsFade(t *testing.T) {
	var l Lightning
	l.Strike(0.3)
	l.Update(0.05)
	l.Strike(0.6)
	if got := l.Intensity(); got != 0.6 {
		t.Fatalf("expected restrike to jump to 0.6, got %f", got)
	}
	l.Update(0.1)
	if got := l.Intensity(); math.Abs(got-0.3) > 1e-5 {
		t.Fatalf("expected 0.3 after restrike decay, got %f", got)
	}
}

func TestDriver_FirstTickStartsLoop(t *testing.T) {
	d := NewDriver(newTestScene(t, 1, nil), zaptest.NewLogger(t))
	if d.State() != DriverIdle {
		t.Fatalf("expected idle, got %s", d.State())
	}
	start := time.Unix(1000, 0)
	if dt := d.Tick(start); dt != 0 {
		t.Fatalf("expected first step 0, got %v", dt)
	}
	if d.State() != DriverRunning {
		t.Fatalf("expected running, got %s", d.State())
	}
	if d.Scene().Time != 0 {
		t.Fatalf("expected clock 0 after first tick, got %f", d.Scene().Time)
	}
	if dt := d.Tick(start.Add(16 * time.Millisecond)); dt != 16*time.Millisecond {
		t.Fatalf("expected 16ms step, got %v", dt)
	}
}

func TestDriver_ClampsStep(t *testing.T) {
	d := NewDriver(newTestScene(t, 2, nil), nil)
	start := time.Unix(2000, 0)
	d.Tick(start)
	if dt := d.Tick(start.Add(3 * time.Second)); dt != MaxFrameStep {
		t.Fatalf("expected stall clamped to %v, got %v", MaxFrameStep, dt)
	}
	if got := d.Scene().Time; math.Abs(got-0.05) > 1e-12 {
		t.Fatalf("expected clock 0.05, got %f", got)
	}
	if dt := d.Tick(start); dt != 0 {
		t.Fatalf("expected backwards clock clamped to 0, got %v", dt)
	}
}

func TestDriver_ToggleSkipsUpdatesAndResumes(t *testing.T) {
	d := NewDriver(newTestScene(t, 3, nil), zaptest.NewLogger(t))
	s := d.Scene()
	if d.ToggleCars() {
		t.Fatal("expected cars off after toggle")
	}
	if d.ToggleRain() {
		t.Fatal("expected rain off after toggle")
	}
	carX := s.Assets().Cars[0].X
	rainY := s.Assets().Rain[0].Y
	d.Step(20 * time.Millisecond)
	if s.Assets().Cars[0].X != carX {
		t.Fatal("disabled cars moved")
	}
	if s.Assets().Rain[0].Y != rainY {
		t.Fatal("disabled rain moved")
	}
	d.ToggleCars()
	d.Step(20 * time.Millisecond)
	if s.Assets().Cars[0].X == carX {
		t.Fatal("re-enabled cars did not resume")
	}
}

func TestDriver_StrikeOnlyWhileRaining(t *testing.T) {
	s := newTestScene(t, 4, func(st *Settings) { st.LightningChance = 1 })
	d := NewDriver(s, zaptest.NewLogger(t))
	var strikes []float64
	d.OnStrike(func(i float64) { strikes = append(strikes, i) })

	d.Step(10 * time.Millisecond)
	if len(strikes) != 1 {
		t.Fatalf("expected 1 strike, got %d", len(strikes))
	}
	if strikes[0] < 0.25 || strikes[0] >= 0.7 {
		t.Fatalf("strike intensity %f outside [0.25,0.7)", strikes[0])
	}
	// hooks see the struck value; the flash itself has faded for 10ms
	want := strikes[0] - LightningDecay*0.01
	if got := s.Lightning.Intensity(); math.Abs(got-want) > 1e-4 {
		t.Fatalf("expected flash %f after one tick, got %f", want, got)
	}

	d.ToggleRain()
	d.Step(10 * time.Millisecond)
	if len(strikes) != 1 {
		t.Fatalf("expected no strike with rain off, got %d strikes", len(strikes))
	}
}

func TestDriver_RegenerateHooks(t *testing.T) {
	d := NewDriver(newTestScene(t, 5, nil), zaptest.NewLogger(t))
	var reports []Report
	d.OnRegenerate(func(r Report) { reports = append(reports, r) })

	before := d.Scene().Assets()
	d.Regenerate()
	if d.Scene().Assets() == before {
		t.Fatal("expected a new assets value after regenerate")
	}
	d.Resize(1280, 720)
	if len(reports) != 1 {
		t.Fatalf("expected same-size resize to be a no-op, got %d reports", len(reports))
	}
	d.Resize(640, 360)
	if len(reports) != 2 {
		t.Fatalf("expected resize to regenerate, got %d reports", len(reports))
	}
	if reports[1].Width != 640 || reports[1].GroundY != 295 {
		t.Fatalf("expected 640 wide with ground 295, got %d / %d", reports[1].Width, reports[1].GroundY)
	}
}
