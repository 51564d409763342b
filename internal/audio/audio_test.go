package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"
	"go.uber.org/zap/zaptest"
)

func drain(t *testing.T, s beep.Streamer, limit int) (total int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for total < limit {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			if math.IsNaN(smp[0]) || smp[0] != smp[1] {
				t.Fatalf("expected finite mono sample, got %v", smp)
			}
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatalf("stream did not end within %d samples", limit)
	return total, peak
}

func TestThunder_FiniteAndBounded(t *testing.T) {
	g := NewThunderGenerator(sampleRate, 0.7, 1)
	n, peak := drain(t, g, sampleRate.N(10e9))
	if n != g.Len() {
		t.Fatalf("expected %d samples, got %d", g.Len(), n)
	}
	if peak > 1 || peak == 0 {
		t.Fatalf("expected audible peak within [-1,1], got %f", peak)
	}
}

func TestThunder_StrongerStrikeLasts(t *testing.T) {
	weak := NewThunderGenerator(sampleRate, 0.25, 1)
	strong := NewThunderGenerator(sampleRate, 0.7, 1)
	if strong.Len() <= weak.Len() {
		t.Fatalf("expected stronger strike to last longer, got %d vs %d", strong.Len(), weak.Len())
	}
}

func TestThunder_TailFades(t *testing.T) {
	g := NewThunderGenerator(sampleRate, 0.5, 3)
	buf := make([][2]float64, g.Len())
	n, _ := g.Stream(buf)
	rms := func(s [][2]float64) float64 {
		var sum float64
		for _, v := range s {
			sum += v[0] * v[0]
		}
		return math.Sqrt(sum / float64(len(s)))
	}
	q := n / 4
	head, tail := rms(buf[:q]), rms(buf[n-q:n])
	if tail >= head {
		t.Fatalf("expected tail quieter than head, head=%f tail=%f", head, tail)
	}
}

func TestRain_Endless(t *testing.T) {
	g := NewRainGenerator(sampleRate, 2)
	buf := make([][2]float64, 1024)
	for i := 0; i < 10; i++ {
		if n, ok := g.Stream(buf); n != len(buf) || !ok {
			t.Fatalf("expected full buffer, got n=%d ok=%v", n, ok)
		}
	}
}

func TestPlayer_GracefulWithoutDevice(t *testing.T) {
	p := NewPlayer(0.5, zaptest.NewLogger(t))
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("player panicked without initialization: %v", r)
		}
	}()
	p.Thunder(0.5)
	p.SetRain(true)
	p.SetRain(false)
	if !p.ToggleMute() || !p.Muted() {
		t.Fatal("expected muted after toggle")
	}
	p.Close()
}

func TestPlayer_ZeroVolumeStaysSilent(t *testing.T) {
	p := NewPlayer(0, nil)
	p.ToggleMute()
	p.ToggleMute()
	if !p.master.Silent {
		t.Fatal("expected zero volume to stay silent after unmute")
	}
}
