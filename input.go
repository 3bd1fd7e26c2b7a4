package viewrig

import "github.com/go-gl/mathgl/mgl64"

// Input is one tick's worth of host input. The host maps its devices onto
// these deltas; the rig does not know about buttons or screens.
type Input struct {
	// Rotate turns the free camera: X yaws about world up, Y pitches about
	// the camera's right axis. Secondary button drag.
	Rotate mgl64.Vec2

	// Pan slides the free camera along its right and up axes, inverted.
	// Tertiary button drag.
	Pan mgl64.Vec2

	// Orbit swings the focused camera around the focus point. Primary button
	// drag.
	Orbit mgl64.Vec2

	// Scroll zooms. Positive moves the camera forward.
	Scroll float64

	// PointerOverUI suppresses all movement and zoom for the tick.
	PointerOverUI bool

	// DeltaTime is the tick length in seconds.
	DeltaTime float64
}
