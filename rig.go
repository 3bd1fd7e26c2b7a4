package viewrig

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mode is the rig's current control scheme.
type Mode int

const (
	ModeFree Mode = iota
	ModeFocused
	ModeTransitioning
)

func (m Mode) String() string {
	switch m {
	case ModeFree:
		return "Free"
	case ModeFocused:
		return "Focused"
	case ModeTransitioning:
		return "Transitioning"
	default:
		return "Unknown"
	}
}

// Rig is an editor viewport camera. It flies freely until asked to focus on
// a sphere, then glides into an orbit around that sphere's center.
//
// A Rig is not safe for concurrent use. The host calls Update once per frame
// and reads Pose afterwards.
type Rig struct {
	opts Options

	pose Pose
	mode Mode

	focusPoint  mgl64.Vec3
	focusRadius float64
	offset      mgl64.Vec3
	hasFocus    bool

	// last usable approach direction, for when the camera sits on the target
	lastDirection mgl64.Vec3

	job *transition
}

// NewRig returns a rig in ModeFree at the given pose.
func NewRig(pose Pose, options ...Option) *Rig {
	opts := DefaultOptions()
	for _, option := range options {
		option(&opts)
	}
	return &Rig{
		opts:          opts,
		pose:          pose,
		mode:          ModeFree,
		lastDirection: worldForward.Mul(-1),
	}
}

func (r *Rig) Mode() Mode {
	return r.mode
}

func (r *Rig) Pose() Pose {
	return r.pose
}

func (r *Rig) FocusPoint() mgl64.Vec3 {
	return r.focusPoint
}

func (r *Rig) FocusRadius() float64 {
	return r.focusRadius
}

// Offset is the camera position relative to the focus point.
func (r *Rig) Offset() mgl64.Vec3 {
	return r.offset
}

// HasFocus reports whether a focus target has been reached and not reset.
func (r *Rig) HasFocus() bool {
	return r.hasFocus
}

func (r *Rig) Options() Options {
	return r.opts
}

// SetOptions replaces the rig's options. A transition already running keeps
// the duration and curve it started with.
func (r *Rig) SetOptions(opts Options) {
	r.opts = opts
}

// Update advances the rig by one tick and returns the resulting pose.
func (r *Rig) Update(in Input) Pose {
	if r.mode == ModeTransitioning {
		r.advance(in.DeltaTime)
		return r.pose
	}
	if in.PointerOverUI {
		return r.pose
	}

	switch r.mode {
	case ModeFree:
		r.moveFree(in)
	case ModeFocused:
		r.moveFocused(in)
	}
	r.zoom(in)
	return r.pose
}

// Focus starts a transition that frames a sphere of the given radius around
// center. A transition already in flight is dropped and the new one starts
// from wherever the camera is right now.
func (r *Rig) Focus(center mgl64.Vec3, radius float64) {
	if radius <= 0 {
		radius = MinFocusRadius
	}
	if r.job != nil && r.job.aimsAt(center, radius) {
		return
	}

	from := center
	if r.hasFocus {
		from = r.focusPoint
	}
	dir := r.direction(r.pose.Position.Sub(from))
	target := center.Add(dir.Mul(r.requiredDistance(radius)))

	end := Pose{
		Position:    target,
		Orientation: lookAt(target, center, r.pose.Orientation),
	}
	r.job = newTransition(r.pose, end, center, radius, r.opts.TransitionDuration, r.opts.Easing)
	r.mode = ModeTransitioning

	if !(r.job.duration > 0) {
		r.advance(0)
	}
}

// Reset drops any focus and returns to ModeFree without moving the camera.
func (r *Rig) Reset() {
	r.mode = ModeFree
	r.focusPoint = mgl64.Vec3{}
	r.focusRadius = 0
	r.offset = mgl64.Vec3{}
	r.hasFocus = false
	r.job = nil
}

func (r *Rig) requiredDistance(radius float64) float64 {
	halfFov := degreesToRadians(r.opts.FieldOfView) / 2
	dist := (radius * r.opts.FocusPadding) / math.Tan(halfFov)
	if math.IsNaN(dist) {
		dist = r.opts.MaxZoom
	}
	return clamp(dist, r.opts.MinZoom, r.opts.MaxZoom)
}

// direction normalizes v, falling back to the last good direction when v is
// too short to normalize.
func (r *Rig) direction(v mgl64.Vec3) mgl64.Vec3 {
	if v.Len() < epsilon {
		return r.lastDirection
	}
	r.lastDirection = v.Normalize()
	return r.lastDirection
}

func (r *Rig) advance(dt float64) {
	pose, done := r.job.Tick(dt)
	r.pose = pose
	if !done {
		return
	}

	r.focusPoint = r.job.center
	r.focusRadius = r.job.radius
	r.offset = r.pose.Position.Sub(r.focusPoint)
	r.hasFocus = true
	r.mode = ModeFocused
	r.job = nil
}

func (r *Rig) moveFree(in Input) {
	if in.Rotate != (mgl64.Vec2{}) {
		step := degreesToRadians(r.opts.RotationSpeed) * in.DeltaTime
		yaw := mgl64.QuatRotate(in.Rotate.X()*step, worldUp)
		pitch := mgl64.QuatRotate(in.Rotate.Y()*step, worldRight)
		// yaw in world space, pitch in local space
		r.pose.Orientation = yaw.Mul(r.pose.Orientation).Mul(pitch).Normalize()
	}

	if in.Pan != (mgl64.Vec2{}) {
		step := r.opts.MoveSpeed * in.DeltaTime
		move := r.pose.Right().Mul(-in.Pan.X() * step).
			Add(r.pose.Up().Mul(-in.Pan.Y() * step))
		r.pose.Position = r.pose.Position.Add(move)
	}
}

func (r *Rig) moveFocused(in Input) {
	if in.Orbit != (mgl64.Vec2{}) {
		step := degreesToRadians(r.opts.RotationSpeed) * in.DeltaTime
		r.rotateAround(r.focusPoint, worldUp, in.Orbit.X()*step)
		r.rotateAround(r.focusPoint, r.pose.Right(), -in.Orbit.Y()*step)
		r.offset = r.pose.Position.Sub(r.focusPoint)
	}

	r.pose.Position = r.focusPoint.Add(r.offset)
	r.pose.Orientation = lookAt(r.pose.Position, r.focusPoint, r.pose.Orientation)
}

// rotateAround swings the camera about an axis through pivot, turning its
// orientation by the same amount.
func (r *Rig) rotateAround(pivot, axis mgl64.Vec3, angle float64) {
	if angle == 0 || axis.Len() < epsilon {
		return
	}
	q := mgl64.QuatRotate(angle, axis.Normalize())
	r.pose.Position = pivot.Add(q.Rotate(r.pose.Position.Sub(pivot)))
	r.pose.Orientation = q.Mul(r.pose.Orientation).Normalize()
}

func (r *Rig) zoom(in Input) {
	if math.Abs(in.Scroll) <= ScrollDeadzone {
		return
	}
	amount := in.Scroll * r.opts.ZoomSpeed

	if r.mode != ModeFocused {
		r.pose.Position = r.pose.Position.Add(r.pose.Forward().Mul(amount))
		return
	}

	// the padded radius is a hard floor, even over MaxZoom
	floor := r.focusRadius * r.opts.FocusPadding
	dist := math.Max(math.Min(r.offset.Len()-amount, r.opts.MaxZoom), floor)

	r.offset = r.direction(r.offset).Mul(dist)
	r.pose.Position = r.focusPoint.Add(r.offset)
}
