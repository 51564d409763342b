package city

import "math"

// starBand is the fraction of the viewport height stars may occupy.
const starBand = 0.45

// Star is a fixed point of light in the upper sky.
type Star struct {
	X, Y       float64
	Size       float64
	Brightness float64
	Speed      float64 // twinkle rate, rad/s
	Phase      float64
}

func newStar(r RNG, width, height float64) Star {
	return Star{
		X:          Range(r, 0, width),
		Y:          Range(r, 0, height*starBand),
		Size:       Range(r, 0.5, 1.8),
		Brightness: Range(r, 0.3, 1),
		Speed:      Range(r, 0.5, 3),
		Phase:      Range(r, 0, 6.28),
	}
}

// Alpha returns the twinkling brightness at time t.
func (s Star) Alpha(t float64) float64 {
	return s.Brightness * (0.5 + 0.5*math.Sin(t*s.Speed+s.Phase))
}
