package city

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// LightningDecay is how fast a flash fades, intensity units per second.
const LightningDecay = 3.0

// Lightning is the transient sky flash. A strike jumps the intensity and a
// linear tween brings it back to zero.
type Lightning struct {
	intensity float64
	tween     *gween.Tween
}

// Strike sets the flash to intensity and restarts the fade.
func (l *Lightning) Strike(intensity float64) {
	if intensity <= 0 {
		l.intensity, l.tween = 0, nil
		return
	}
	l.intensity = intensity
	l.tween = gween.New(float32(intensity), 0, float32(intensity/LightningDecay), ease.Linear)
}

// Update fades the flash by dt seconds.
func (l *Lightning) Update(dt float64) {
	if l.tween == nil {
		return
	}
	v, done := l.tween.Update(float32(dt))
	if done || v <= 0 {
		l.intensity, l.tween = 0, nil
		return
	}
	l.intensity = float64(v)
}

// Intensity returns the current flash strength, never negative.
func (l *Lightning) Intensity() float64 {
	return l.intensity
}

// Active reports whether a flash is visible.
func (l *Lightning) Active() bool {
	return l.intensity > 0
}
