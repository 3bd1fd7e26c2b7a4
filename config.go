package viewrig

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

const curveEndTolerance = 1e-6

// Config is the on-disk form of Options.
type Config struct {
	MoveSpeed          float64 `yaml:"move_speed"`
	RotationSpeed      float64 `yaml:"rotation_speed"`
	ZoomSpeed          float64 `yaml:"zoom_speed"`
	MinZoom            float64 `yaml:"min_zoom"`
	MaxZoom            float64 `yaml:"max_zoom"`
	FocusPadding       float64 `yaml:"focus_padding"`
	FieldOfView        float64 `yaml:"field_of_view"`
	TransitionDuration float64 `yaml:"transition_duration"`

	// Easing names a built-in curve. EasingExpr, when set, wins over it.
	Easing     string `yaml:"easing"`
	EasingExpr string `yaml:"easing_expr,omitempty"`
}

// ConfigError reports a config field with an unusable value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("viewrig: config field %s: %s", e.Field, e.Reason)
}

func DefaultConfig() Config {
	o := DefaultOptions()
	return Config{
		MoveSpeed:          o.MoveSpeed,
		RotationSpeed:      o.RotationSpeed,
		ZoomSpeed:          o.ZoomSpeed,
		MinZoom:            o.MinZoom,
		MaxZoom:            o.MaxZoom,
		FocusPadding:       o.FocusPadding,
		FieldOfView:        o.FieldOfView,
		TransitionDuration: o.TransitionDuration,
		Easing:             "ease-in-out",
	}
}

// LoadConfig reads and validates a YAML config file. Fields missing from
// the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("viewrig: load %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("viewrig: %s: %w", path, err)
	}
	return cfg, nil
}

func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"move_speed", c.MoveSpeed},
		{"rotation_speed", c.RotationSpeed},
		{"zoom_speed", c.ZoomSpeed},
		{"min_zoom", c.MinZoom},
		{"max_zoom", c.MaxZoom},
		{"focus_padding", c.FocusPadding},
		{"field_of_view", c.FieldOfView},
		{"transition_duration", c.TransitionDuration},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &ConfigError{Field: f.name, Reason: "must be a finite number"}
		}
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"move_speed", c.MoveSpeed},
		{"rotation_speed", c.RotationSpeed},
		{"zoom_speed", c.ZoomSpeed},
		{"min_zoom", c.MinZoom},
	} {
		if f.value < 0 {
			return &ConfigError{Field: f.name, Reason: "must not be negative"}
		}
	}
	if c.MaxZoom < c.MinZoom {
		return &ConfigError{Field: "max_zoom", Reason: fmt.Sprintf("%g is below min_zoom %g", c.MaxZoom, c.MinZoom)}
	}
	if c.FocusPadding <= 0 {
		return &ConfigError{Field: "focus_padding", Reason: "must be positive"}
	}
	if c.FieldOfView <= 0 || c.FieldOfView >= 180 {
		return &ConfigError{Field: "field_of_view", Reason: "must be between 0 and 180 degrees"}
	}
	if _, err := c.curve(); err != nil {
		return err
	}
	return nil
}

func (c Config) curve() (Curve, error) {
	if strings.TrimSpace(c.EasingExpr) != "" {
		curve, err := CompileCurve(c.EasingExpr)
		if err != nil {
			return nil, &ConfigError{Field: "easing_expr", Reason: err.Error()}
		}
		if !mgl64.FloatEqualThreshold(curve(0), 0, curveEndTolerance) || !mgl64.FloatEqualThreshold(curve(1), 1, curveEndTolerance) {
			return nil, &ConfigError{
				Field:  "easing_expr",
				Reason: fmt.Sprintf("curve must run from 0 to 1, got %g at t=0 and %g at t=1", curve(0), curve(1)),
			}
		}
		return curve, nil
	}
	if c.Easing == "" {
		return EaseInOut, nil
	}
	curve, ok := CurveByName(c.Easing)
	if !ok {
		return nil, &ConfigError{
			Field:  "easing",
			Reason: fmt.Sprintf("unknown curve %q, want one of %s", c.Easing, strings.Join(CurveNames(), ", ")),
		}
	}
	return curve, nil
}

// Options converts the config into rig options.
func (c Config) Options() (Options, error) {
	curve, err := c.curve()
	if err != nil {
		return Options{}, err
	}
	return Options{
		MoveSpeed:          c.MoveSpeed,
		RotationSpeed:      c.RotationSpeed,
		ZoomSpeed:          c.ZoomSpeed,
		MinZoom:            c.MinZoom,
		MaxZoom:            c.MaxZoom,
		FocusPadding:       c.FocusPadding,
		FieldOfView:        c.FieldOfView,
		TransitionDuration: c.TransitionDuration,
		Easing:             curve,
	}, nil
}

// Marshal renders the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
