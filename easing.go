package viewrig

import (
	"fmt"
	"math"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Curve maps normalized time in [0, 1] to normalized progress.
type Curve func(t float64) float64

func Linear(t float64) float64 {
	return t
}

// EaseInOut is the smoothstep curve 3t²-2t³. It has zero slope at both ends.
func EaseInOut(t float64) float64 {
	return t * t * (3 - 2*t)
}

func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

var namedCurves = map[string]Curve{
	"linear":            Linear,
	"ease-in-out":       EaseInOut,
	"ease-in-out-cubic": EaseInOutCubic,
	"ease-out-quad":     EaseOutQuad,
}

// CurveByName looks up one of the built-in curves.
func CurveByName(name string) (Curve, bool) {
	c, ok := namedCurves[name]
	return c, ok
}

// CurveNames lists the built-in curve names in sorted order.
func CurveNames() []string {
	names := make([]string, 0, len(namedCurves))
	for name := range namedCurves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func curveEnv(t float64) map[string]any {
	return map[string]any{
		"t":    t,
		"pi":   math.Pi,
		"sin":  math.Sin,
		"cos":  math.Cos,
		"pow":  math.Pow,
		"sqrt": math.Sqrt,
	}
}

// CompileCurve compiles an expression over t, such as "t*t*(3-2*t)", into a
// Curve. A sample that fails to evaluate falls back to linear progress.
func CompileCurve(src string) (Curve, error) {
	program, err := expr.Compile(src, expr.Env(curveEnv(0)), expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("viewrig: compile easing %q: %w", src, err)
	}
	return programCurve(program), nil
}

func programCurve(program *vm.Program) Curve {
	return func(t float64) float64 {
		out, err := expr.Run(program, curveEnv(t))
		if err != nil {
			return t
		}
		v, ok := out.(float64)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			return t
		}
		return v
	}
}
