// Package tangency evaluates tangent and normal lines in closed form.
//
// Three families of pure functions share one result shape:
//   - polynomials: point, derivative slope, tangent and normal at x
//   - circles and ellipses: tangent at a point, at an x-coordinate or at a
//     parameter value, with focal geometry for ellipses
//   - line utilities: point-slope construction, negative reciprocals,
//     focal distance sums
//
// Every call validates its input and returns either a fresh Result or a
// typed error. Nothing is cached and nothing is shared between calls, so all
// functions are safe for concurrent use.
package tangency

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"
)

// ============================================================
// Errors
// ============================================================

var (
	// ErrInvalidInput reports a non-finite coefficient or coordinate, or a
	// non-positive radius or semi-axis.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPointNotOnCurve reports a point that fails the curve equation.
	ErrPointNotOnCurve = errors.New("point not on curve")

	// ErrOutOfDomain reports a coordinate outside the curve's extent.
	ErrOutOfDomain = errors.New("out of domain")

	// ErrUndefinedSlope reports a negative reciprocal of a zero slope.
	ErrUndefinedSlope = errors.New("undefined slope")

	// ErrUnsupportedOrientation reports an ellipse whose y semi-axis is
	// longer than its x semi-axis.
	ErrUnsupportedOrientation = errors.New("unsupported orientation")

	// ErrInfiniteSolutions reports an equation that holds for every x.
	ErrInfiniteSolutions = errors.New("infinite solutions")
)

// ErrorCode maps an error returned by this package to a stable wire code.
// Unknown errors map to "INTERNAL".
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return "INVALID_INPUT"
	case errors.Is(err, ErrPointNotOnCurve):
		return "POINT_NOT_ON_CURVE"
	case errors.Is(err, ErrOutOfDomain):
		return "OUT_OF_DOMAIN"
	case errors.Is(err, ErrUndefinedSlope):
		return "UNDEFINED_SLOPE"
	case errors.Is(err, ErrUnsupportedOrientation):
		return "UNSUPPORTED_ORIENTATION"
	case errors.Is(err, ErrInfiniteSolutions):
		return "INFINITE_SOLUTIONS"
	}
	return "INTERNAL"
}

// OnCurveTolerance is the relative error accepted when checking that a point
// satisfies a curve equation.
const OnCurveTolerance = 1e-6

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func checkFinite(name string, vals ...float64) error {
	for _, v := range vals {
		if !isFinite(v) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidInput, name, v)
		}
	}
	return nil
}

func checkPositive(name string, v float64) error {
	if !isFinite(v) || v <= 0 {
		return fmt.Errorf("%w: %s must be positive and finite, got %v", ErrInvalidInput, name, v)
	}
	return nil
}

// ============================================================
// Result
// ============================================================

// Foci describes the focal geometry of an ellipse together with the focal
// distance sum of a tangent point. DistanceSum equals 2a on the ellipse.
type Foci struct {
	C           float64
	F1, F2      vec.Vec2
	DistanceSum float64
}

// Result is the outcome of one tangency evaluation. Foci is nil except for
// ellipses with a ≥ b.
type Result struct {
	Point   vec.Vec2
	Slope   Slope
	Tangent Line
	Normal  Line
	Foci    *Foci
}

func newResult(p vec.Vec2, m Slope) Result {
	return Result{
		Point:   p,
		Slope:   m,
		Tangent: LineFromPointSlope(p, m),
		Normal:  LineFromPointSlope(p, normalOf(m)),
	}
}

func (r Result) toJSON() map[string]interface{} {
	out := map[string]interface{}{
		"point":   pointJSON(r.Point),
		"slope":   r.Slope,
		"tangent": r.Tangent.toJSON(),
		"normal":  r.Normal.toJSON(),
	}
	if r.Foci != nil {
		out["foci"] = map[string]interface{}{
			"c":            r.Foci.C,
			"f1":           pointJSON(r.Foci.F1),
			"f2":           pointJSON(r.Foci.F2),
			"distance_sum": r.Foci.DistanceSum,
		}
	}
	return out
}

func pointJSON(p vec.Vec2) map[string]float64 {
	return map[string]float64{"x": p.X, "y": p.Y}
}
