package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// Thunder envelope (seconds).
const (
	thunderAttack  = 0.03
	thunderBaseLen = 1.5
	thunderMaxLen  = 4.0
)

// ThunderGenerator is a finite rumble: brown noise under a fast attack and
// an exponential tail. Stronger strikes are louder and longer.
type ThunderGenerator struct {
	sr    beep.SampleRate
	rng   *rand.Rand
	pos   int
	total int
	amp   float64
	tau   float64 // decay time constant, seconds
	brown float64
	lp    float64
}

// NewThunderGenerator builds a rumble for a strike of the given intensity
// (0..1).
func NewThunderGenerator(sr beep.SampleRate, intensity float64, seed int64) *ThunderGenerator {
	intensity = math.Max(0, math.Min(1, intensity))
	length := math.Min(thunderBaseLen+2.5*intensity, thunderMaxLen)
	return &ThunderGenerator{
		sr:    sr,
		rng:   rand.New(rand.NewSource(seed)), // #nosec G404 -- audio noise, not security-sensitive
		total: sr.N(time.Duration(length * float64(time.Second))),
		amp:   0.35 + 0.6*intensity,
		tau:   length / 4,
	}
}

// Len is the rumble length in samples.
func (g *ThunderGenerator) Len() int {
	return g.total
}

func (g *ThunderGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)

		// Leaky integration of white noise gives a brown spectrum.
		g.brown = 0.995*g.brown + 0.05*(g.rng.Float64()*2-1)
		g.lp += 0.08 * (g.brown - g.lp)

		env := math.Exp(-t / g.tau)
		if t < thunderAttack {
			env *= t / thunderAttack
		}
		s := clamp(g.amp * env * g.lp * 3)
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *ThunderGenerator) Err() error {
	return nil
}

// RainGenerator is an endless soft hiss: high-passed white noise with a
// slow swell.
type RainGenerator struct {
	sr   beep.SampleRate
	rng  *rand.Rand
	pos  int
	prev float64
}

// NewRainGenerator creates a rain hiss generator
func NewRainGenerator(sr beep.SampleRate, seed int64) *RainGenerator {
	return &RainGenerator{
		sr:  sr,
		rng: rand.New(rand.NewSource(seed)), // #nosec G404 -- audio noise, not security-sensitive
	}
}

func (g *RainGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		white := g.rng.Float64()*2 - 1
		hp := white - g.prev
		g.prev = white
		swell := 0.8 + 0.2*math.Sin(2*math.Pi*0.15*t)
		s := 0.04 * swell * hp
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *RainGenerator) Err() error {
	return nil
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
