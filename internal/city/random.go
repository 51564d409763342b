package city

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"strconv"
	"time"
)

// RNG is the sampling source behind generation and particle respawns.
// *rand.Rand satisfies it.
type RNG interface {
	Float64() float64
}

// NewRNG returns a seeded source. A zero seed means "seed from the clock".
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- cosmetic only
}

// Range samples uniformly from [a, b).
func Range(r RNG, a, b float64) float64 {
	return r.Float64()*(b-a) + a
}

// IntRange samples an integer uniformly from [a, b] inclusive.
func IntRange(r RNG, a, b int) int {
	return int(math.Floor(Range(r, float64(a), float64(b+1))))
}

// Chance reports true with probability p.
func Chance(r RNG, p float64) bool {
	return r.Float64() < p
}

// Pick returns a uniformly chosen element. ok is false for an empty slice.
func Pick[T any](r RNG, items []T) (v T, ok bool) {
	if len(items) == 0 {
		return v, false
	}
	i := int(r.Float64() * float64(len(items)))
	if i >= len(items) {
		i = len(items) - 1
	}
	return items[i], true
}

// HexToRGB parses a "#rrggbb" string into an opaque colour.
func HexToRGB(hex string) (color.RGBA, error) {
	if len(hex) != 7 || hex[0] != '#' {
		return color.RGBA{}, fmt.Errorf("hex colour %q: want #rrggbb", hex)
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("hex colour %q: %w", hex, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
