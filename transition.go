package viewrig

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// transition moves the camera from one pose to another over a fixed
// duration. The rig polls Tick once per frame; nothing runs in between.
type transition struct {
	start Pose
	end   Pose

	// focus state the rig adopts once the end pose is reached
	center mgl64.Vec3
	radius float64

	elapsed  float64
	duration float64
	curve    Curve
}

func newTransition(start, end Pose, center mgl64.Vec3, radius, duration float64, curve Curve) *transition {
	if curve == nil {
		curve = EaseInOut
	}
	if math.IsNaN(duration) || math.IsInf(duration, 0) {
		duration = 0
	}
	return &transition{
		start:    start,
		end:      end,
		center:   center,
		radius:   radius,
		duration: duration,
		curve:    curve,
	}
}

// Tick advances the transition by dt and returns the pose for this frame.
// Once elapsed reaches the duration it returns the exact end pose and done.
// A duration that is not a positive number finishes on the first tick.
func (tr *transition) Tick(dt float64) (pose Pose, done bool) {
	if dt > 0 {
		tr.elapsed += dt
	}
	if !(tr.elapsed < tr.duration) {
		return tr.end, true
	}

	t := tr.curve(clamp(tr.elapsed/tr.duration, 0, 1))
	return Pose{
		Position:    lerpVec3(tr.start.Position, tr.end.Position, t),
		Orientation: slerpShortest(tr.start.Orientation, tr.end.Orientation, t),
	}, false
}

// aimsAt reports whether the transition already heads for this target.
func (tr *transition) aimsAt(center mgl64.Vec3, radius float64) bool {
	return tr.center.ApproxEqual(center) && mgl64.FloatEqual(tr.radius, radius)
}
