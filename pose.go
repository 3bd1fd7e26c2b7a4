package viewrig

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	worldUp      = mgl64.Vec3{0, 1, 0}
	worldForward = mgl64.Vec3{0, 0, -1}
	worldRight   = mgl64.Vec3{1, 0, 0}
)

// Pose is where the camera is and which way it faces. The camera looks down
// its local -Z axis with +Y up, the same frame mgl64.LookAtV produces.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// NewPose returns a pose at position facing target. If the two points
// coincide the pose faces world forward.
func NewPose(position, target mgl64.Vec3) Pose {
	return Pose{
		Position:    position,
		Orientation: lookAt(position, target, mgl64.QuatIdent()),
	}
}

func (p Pose) Forward() mgl64.Vec3 {
	return p.Orientation.Rotate(worldForward)
}

func (p Pose) Right() mgl64.Vec3 {
	return p.Orientation.Rotate(worldRight)
}

func (p Pose) Up() mgl64.Vec3 {
	return p.Orientation.Rotate(worldUp)
}

func (p Pose) String() string {
	return fmt.Sprintf("pos(%.3f, %.3f, %.3f) fwd(%.3f, %.3f, %.3f)",
		p.Position.X(), p.Position.Y(), p.Position.Z(),
		p.Forward().X(), p.Forward().Y(), p.Forward().Z())
}

// lookAt returns the orientation that faces target from eye with world up
// kept as close to vertical as possible. fallback is returned when eye and
// target coincide.
func lookAt(eye, target mgl64.Vec3, fallback mgl64.Quat) mgl64.Quat {
	dir := target.Sub(eye)
	if dir.Len() < epsilon {
		return fallback
	}
	return lookRotation(dir, worldUp)
}

// lookRotation builds the rotation whose local -Z maps onto forward.
func lookRotation(forward, up mgl64.Vec3) mgl64.Quat {
	f := forward.Normalize()
	r := f.Cross(up)
	if r.Len() < epsilon {
		// looking straight along up, any horizontal right axis will do
		r = f.Cross(mgl64.Vec3{0, 0, 1})
	}
	r = r.Normalize()
	u := r.Cross(f)

	m := mgl64.Mat3FromCols(r, u, f.Mul(-1))
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize()
}
