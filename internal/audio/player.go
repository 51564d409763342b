// Package audio plays the skyline's ambience: a rain hiss while rain is on
// and a thunder rumble for every lightning strike. Every method is safe to
// call before Initialize or after it failed; the calls are then no-ops.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(44100)

// Player owns the speaker and a mixer feeding it.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      *effects.Volume
	rain        *beep.Ctrl
	initialized bool
	muted       bool
	zeroVolume  bool
	seed        int64
	log         *zap.Logger
}

// NewPlayer creates a player at volume (0..1). It does not touch the
// audio device until Initialize.
func NewPlayer(volume float64, log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	mixer := &beep.Mixer{}
	return &Player{
		mixer:      mixer,
		master:     newVolume(mixer, volume),
		zeroVolume: volume <= 0,
		seed:       time.Now().UnixNano(),
		log:        log,
	}
}

// newVolume maps a linear 0..1 volume onto beep's log2 scale.
// math.Log2(0) is -Inf, so zero is expressed as Silent.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(math.Min(vol, 1))}
}

// Initialize opens the audio device.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(p.master)
	p.initialized = true
	p.log.Info("audio initialized", zap.Int("sample_rate", int(sampleRate)))
	return nil
}

// Close silences everything and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.rain = nil
	p.initialized = false
}

// Thunder plays a rumble scaled by the strike intensity.
func (p *Player) Thunder(intensity float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.seed++
	g := NewThunderGenerator(sampleRate, intensity, p.seed)
	speaker.Lock()
	p.mixer.Add(beep.Take(g.Len(), g))
	speaker.Unlock()
}

// SetRain starts or pauses the rain hiss.
func (p *Player) SetRain(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	if p.rain == nil {
		if !on {
			return
		}
		p.seed++
		p.rain = &beep.Ctrl{Streamer: NewRainGenerator(sampleRate, p.seed)}
		p.mixer.Add(p.rain)
		return
	}
	p.rain.Paused = !on
}

// ToggleMute flips the master mute and returns the new state.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = !p.muted
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.master.Silent = p.muted || p.zeroVolume
	return p.muted
}

// Muted reports the master mute state.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}
