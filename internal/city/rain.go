package city

// RainDrop is one falling streak. Drops that leave the bottom of the
// viewport wrap back above the top.
type RainDrop struct {
	X, Y   float64
	Length float64
	Speed  float64
	Wind   float64 // horizontal drift, px/s
	Alpha  float64

	width, height float64
}

// NewRainDrop creates a drop scattered anywhere in a width×height viewport.
func NewRainDrop(r RNG, width, height float64) RainDrop {
	d := RainDrop{width: width, height: height}
	d.reset(r, true)
	return d
}

func (d *RainDrop) reset(r RNG, initial bool) {
	d.X = Range(r, -50, d.width+50)
	if initial {
		d.Y = Range(r, 0, d.height)
	} else {
		d.Y = Range(r, -100, -10)
	}
	d.Length = Range(r, 10, 22)
	d.Speed = Range(r, 400, 750)
	d.Wind = Range(r, 30, 70)
	d.Alpha = Range(r, 0.08, 0.25)
}

// Update moves the drop and wraps it above the top once it falls past
// the bottom edge.
func (d *RainDrop) Update(dt float64, r RNG) {
	d.Y += d.Speed * dt
	d.X += d.Wind * dt
	if d.Y > d.height {
		d.reset(r, false)
	}
}
