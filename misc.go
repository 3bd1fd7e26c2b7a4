package viewrig

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/exp/constraints"
)

// epsilon is the length below which a direction is treated as degenerate.
const epsilon = 1e-9

func clamp[T constraints.Float | constraints.Integer](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func degreesToRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

func lerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// slerpShortest interpolates along the shorter of the two arcs between a and b.
// mgl64.QuatSlerp does not flip the hemisphere on its own.
func slerpShortest(a, b mgl64.Quat, t float64) mgl64.Quat {
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl64.QuatSlerp(a, b, t).Normalize()
}
