package city

import "image/color"

const (
	carSpawnMargin = 50 // respawn distance outside the entry edge
	carExitMargin  = 80 // distance past the exit edge that triggers respawn
)

// Point is a trail sample.
type Point struct {
	X, Y float64
}

// FlyingCar crosses the sky horizontally and leaves a short trail.
type FlyingCar struct {
	X, Y     float64
	Dir      float64 // +1 rightwards, -1 leftwards
	Speed    float64
	Size     float64
	Color    color.RGBA
	Trail    []Point // oldest first
	TrailMax int

	width   float64
	groundY float64
	neon    []color.RGBA
}

func newFlyingCar(r RNG, width, groundY float64, neon []color.RGBA) FlyingCar {
	c := FlyingCar{width: width, groundY: groundY, neon: neon}
	c.reset(r, true)
	return c
}

func (c *FlyingCar) reset(r RNG, initial bool) {
	c.Dir = -1
	if r.Float64() > 0.5 {
		c.Dir = 1
	}
	switch {
	case initial:
		c.X = Range(r, 0, c.width)
	case c.Dir == 1:
		c.X = -carSpawnMargin
	default:
		c.X = c.width + carSpawnMargin
	}
	c.Y = Range(r, c.groundY*0.08, c.groundY*0.55)
	c.Speed = Range(r, 80, 200)
	c.Size = Range(r, 3, 6)
	c.Color, _ = Pick(r, c.neon)
	c.TrailMax = IntRange(r, 15, 30)
	c.Trail = make([]Point, 0, c.TrailMax+1)
}

// Update advances the car by dt seconds, records the trail and respawns it
// on the far side once it has left the viewport.
func (c *FlyingCar) Update(dt float64, r RNG) {
	c.X += c.Speed * c.Dir * dt
	c.Trail = append(c.Trail, Point{X: c.X, Y: c.Y})
	if over := len(c.Trail) - c.TrailMax; over > 0 {
		n := copy(c.Trail, c.Trail[over:])
		c.Trail = c.Trail[:n]
	}
	if (c.Dir == 1 && c.X > c.width+carExitMargin) || (c.Dir == -1 && c.X < -carExitMargin) {
		c.reset(r, false)
	}
}
