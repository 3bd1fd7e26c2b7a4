package viewrig

const (
	// ScrollDeadzone is the smallest scroll magnitude that zooms.
	ScrollDeadzone = 0.01

	// MinFocusRadius replaces non-positive radii passed to Focus.
	MinFocusRadius = 0.5
)

// Options tunes the rig. Speeds are per second of tick time.
type Options struct {
	MoveSpeed     float64 // pan units per delta unit
	RotationSpeed float64 // degrees per delta unit
	ZoomSpeed     float64 // world units per scroll unit

	MinZoom      float64
	MaxZoom      float64
	FocusPadding float64

	// FieldOfView is the vertical field of view in degrees used to frame a
	// focused selection.
	FieldOfView float64

	TransitionDuration float64
	Easing             Curve
}

func DefaultOptions() Options {
	return Options{
		MoveSpeed:          10,
		RotationSpeed:      100,
		ZoomSpeed:          5,
		MinZoom:            1,
		MaxZoom:            20,
		FocusPadding:       1.5,
		FieldOfView:        60,
		TransitionDuration: 1,
		Easing:             EaseInOut,
	}
}

// Option is a functional option for NewRig.
type Option func(*Options)

func WithOptions(o Options) Option {
	return func(opts *Options) {
		*opts = o
	}
}

func WithMoveSpeed(speed float64) Option {
	return func(o *Options) {
		o.MoveSpeed = speed
	}
}

func WithRotationSpeed(speed float64) Option {
	return func(o *Options) {
		o.RotationSpeed = speed
	}
}

func WithZoomSpeed(speed float64) Option {
	return func(o *Options) {
		o.ZoomSpeed = speed
	}
}

// WithZoomBounds sets the distance range used when framing a focus target.
// max also caps focused zoom.
func WithZoomBounds(min, max float64) Option {
	return func(o *Options) {
		o.MinZoom = min
		o.MaxZoom = max
	}
}

func WithFocusPadding(padding float64) Option {
	return func(o *Options) {
		o.FocusPadding = padding
	}
}

func WithFieldOfView(degrees float64) Option {
	return func(o *Options) {
		o.FieldOfView = degrees
	}
}

// WithTransition sets how long focus transitions take and how they ease.
// A duration of zero or less makes Focus snap immediately.
func WithTransition(duration float64, curve Curve) Option {
	return func(o *Options) {
		o.TransitionDuration = duration
		o.Easing = curve
	}
}
