package city

import "math"

// steamGrowth is how fast a puff's radius grows, px/s.
const steamGrowth = 2.5

// Steam is a puff rising from a fixed rooftop vent.
type Steam struct {
	OriginX, OriginY float64
	X, Y             float64
	Size             float64
	Speed            float64
	Life             float64
	MaxLife          float64
	Alpha            float64
	Drift            float64
}

func newSteam(r RNG, ox, oy float64) Steam {
	s := Steam{OriginX: ox, OriginY: oy}
	s.reset(r, true)
	return s
}

func (s *Steam) reset(r RNG, initial bool) {
	s.X = s.OriginX + Range(r, -4, 4)
	s.Y = s.OriginY
	if initial {
		s.Y -= Range(r, 0, 40)
	}
	s.Size = Range(r, 2, 6)
	s.Speed = Range(r, 15, 40)
	s.Life = 0
	s.MaxLife = Range(r, 2, 4.5)
	if initial {
		s.Life = math.Min(Range(r, 0, 3), s.MaxLife)
	}
	s.Alpha = Range(r, 0.03, 0.1)
	s.Drift = Range(r, -8, 8)
}

// Update rises, drifts and grows the puff, restarting it at the vent once
// its life runs out.
func (s *Steam) Update(dt float64, r RNG) {
	s.Y -= s.Speed * dt
	s.X += s.Drift * dt
	s.Size += dt * steamGrowth
	s.Life += dt
	if s.Life > s.MaxLife {
		s.reset(r, false)
	}
}

// Fade is the remaining opacity fraction, 1 at birth and 0 at end of life.
func (s *Steam) Fade() float64 {
	if s.MaxLife <= 0 {
		return 0
	}
	return math.Max(0, 1-s.Life/s.MaxLife)
}
