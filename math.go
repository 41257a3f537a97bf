package arcade

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Clamp restricts v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return mgl64.Clamp(v, lo, hi)
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Vec2) float64 {
	return b.Sub(a).Len()
}

// Angle returns the angle in radians of the line from a to b, measured
// clockwise from the +X axis (Y points down).
func Angle(a, b Vec2) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// FromAngle returns a vector of the given length pointing along angle.
func FromAngle(angle, length float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{cos * length, sin * length}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// approach moves v toward zero by amount without crossing zero.
func approach(v, amount float64) float64 {
	switch {
	case v > amount:
		return v - amount
	case v < -amount:
		return v + amount
	default:
		return 0
	}
}

// sign returns -1 for negative values and +1 otherwise, so a zero input
// still yields a usable direction.
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
