package tangency

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"seehuhn.de/go/geom/vec"
)

// ============================================================
// Slope
// ============================================================

// Slope is the slope of a line: either a finite real number or vertical.
// The zero value is the horizontal slope 0.
type Slope struct {
	m        float64
	vertical bool
}

// Vertical is the slope of a line parallel to the y-axis.
var Vertical = Slope{vertical: true}

// Finite returns the finite slope m.
func Finite(m float64) Slope { return Slope{m: m} }

func (s Slope) IsVertical() bool { return s.vertical }

// Value returns the slope and true, or 0 and false for a vertical slope.
func (s Slope) Value() (float64, bool) {
	if s.vertical {
		return 0, false
	}
	return s.m, true
}

func (s Slope) String() string {
	if s.vertical {
		return "vertical"
	}
	return fmtNum(s.m)
}

// MarshalJSON encodes a finite slope as a number and a vertical slope as the
// string "vertical".
func (s Slope) MarshalJSON() ([]byte, error) {
	if s.vertical {
		return []byte(`"vertical"`), nil
	}
	return json.Marshal(s.m)
}

// UnmarshalJSON accepts a number or the string "vertical".
func (s *Slope) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if str != "vertical" {
			return fmt.Errorf("slope: want number or \"vertical\", got %q", str)
		}
		*s = Vertical
		return nil
	}
	var m float64
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("slope: %w", err)
	}
	*s = Finite(m)
	return nil
}

// normalOf returns the slope perpendicular to m. Unlike NegativeReciprocal it
// returns Vertical instead of failing when m is 0 or too small for -1/m to be
// representable.
func normalOf(m Slope) Slope {
	v, ok := m.Value()
	if !ok {
		return Finite(0)
	}
	n := -1 / v
	if !isFinite(n) {
		return Vertical
	}
	return Finite(n)
}

// NegativeReciprocal returns -1/m. A vertical slope yields 0. A zero slope
// fails with ErrUndefinedSlope: the perpendicular is vertical and the caller
// has to represent it explicitly.
func NegativeReciprocal(m Slope) (Slope, error) {
	v, ok := m.Value()
	if !ok {
		return Finite(0), nil
	}
	if err := checkFinite("slope", v); err != nil {
		return Slope{}, err
	}
	if v == 0 {
		return Slope{}, fmt.Errorf("%w: negative reciprocal of slope 0", ErrUndefinedSlope)
	}
	n := -1 / v
	if !isFinite(n) {
		return Slope{}, fmt.Errorf("%w: negative reciprocal of slope %v overflows", ErrInvalidInput, v)
	}
	return Finite(n), nil
}

// ============================================================
// Line
// ============================================================

// Line is a line through Point with the given Slope.
type Line struct {
	Point vec.Vec2
	Slope Slope
}

// LineFromPointSlope returns the line through p with slope m. A vertical
// slope gives the line x = p.X.
func LineFromPointSlope(p vec.Vec2, m Slope) Line {
	return Line{Point: p, Slope: m}
}

func (l Line) IsVertical() bool { return l.Slope.IsVertical() }

// Intercept returns the y-intercept. It reports false for vertical lines.
func (l Line) Intercept() (float64, bool) {
	m, ok := l.Slope.Value()
	if !ok {
		return 0, false
	}
	return l.Point.Y - m*l.Point.X, true
}

// At returns the y-coordinate of the line at x. It reports false for
// vertical lines.
func (l Line) At(x float64) (float64, bool) {
	m, ok := l.Slope.Value()
	if !ok {
		return 0, false
	}
	return l.Point.Y + m*(x-l.Point.X), true
}

// Direction returns a unit vector along the line, pointing towards
// increasing x (or increasing y for a vertical line).
func (l Line) Direction() vec.Vec2 {
	m, ok := l.Slope.Value()
	if !ok {
		return vec.Vec2{X: 0, Y: 1}
	}
	// (1, m) scaled by 1/|m| when steep, so m² never overflows.
	d := vec.Vec2{X: 1, Y: m}
	if math.Abs(m) > 1 {
		d = vec.Vec2{X: 1 / math.Abs(m), Y: math.Copysign(1, m)}
	}
	return d.Mul(1 / math.Hypot(d.X, d.Y))
}

// DistanceTo returns the perpendicular distance from p to the line.
func (l Line) DistanceTo(p vec.Vec2) float64 {
	d := l.Direction()
	r := p.Sub(l.Point)
	return math.Abs(d.X*r.Y - d.Y*r.X)
}

// String renders the line in slope-intercept form, e.g. "y = 4x - 4", or as
// "x = 2" when vertical.
func (l Line) String() string {
	m, ok := l.Slope.Value()
	if !ok {
		return "x = " + fmtNum(l.Point.X)
	}
	b := l.Point.Y - m*l.Point.X
	if math.Abs(b) <= 1e-12*math.Max(math.Abs(l.Point.Y), math.Abs(m*l.Point.X)) {
		b = 0 // cancellation noise
	}
	return "y = " + NewPolynomial(b, m).String()
}

// PointSlope renders the line in point-slope form, e.g. "y - 4 = 4(x - 2)".
func (l Line) PointSlope() string {
	m, ok := l.Slope.Value()
	if !ok {
		return "x = " + fmtNum(l.Point.X)
	}
	lhs := "y" + shifted(l.Point.Y)
	if m == 0 {
		return lhs + " = 0"
	}
	if l.Point.X == 0 {
		return lhs + " = " + coeffTerm(m, "x")
	}
	return lhs + " = " + coeffTerm(m, "(x"+shifted(l.Point.X)+")")
}

func (l Line) toJSON() map[string]interface{} {
	out := map[string]interface{}{
		"point":    pointJSON(l.Point),
		"slope":    l.Slope,
		"equation": l.String(),
	}
	if b, ok := l.Intercept(); ok {
		out["intercept"] = b
	}
	return out
}

// ============================================================
// Geometry helpers
// ============================================================

// SumOfFocalDistances returns |p-f1| + |p-f2|.
func SumOfFocalDistances(p, f1, f2 vec.Vec2) float64 {
	return p.Sub(f1).Length() + p.Sub(f2).Length()
}

// ============================================================
// Formatting
// ============================================================

func fmtNum(v float64) string {
	if v == 0 {
		return "0" // also -0
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// shifted renders " - v" for positive v, " + |v|" for negative v and the
// empty string for zero, as in "x - 2" or "y + 3".
func shifted(v float64) string {
	switch {
	case v > 0:
		return " - " + fmtNum(v)
	case v < 0:
		return " + " + fmtNum(math.Abs(v))
	}
	return ""
}

func coeffTerm(c float64, body string) string {
	switch c {
	case 1:
		return body
	case -1:
		return "-" + body
	}
	return fmtNum(c) + body
}
