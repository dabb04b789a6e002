package tangency

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"
)

// ============================================================
// Circle
// ============================================================

// Circle is the circle |p − Center| = Radius.
type Circle struct {
	Center vec.Vec2
	Radius float64
}

func (c Circle) validate() error {
	if err := checkFinite("center", c.Center.X, c.Center.Y); err != nil {
		return err
	}
	return checkPositive("radius", c.Radius)
}

// onCircle reports whether p satisfies the circle equation within
// OnCurveTolerance, relative to r².
func (c Circle) onCircle(p vec.Vec2) bool {
	d := p.Sub(c.Center)
	r2 := c.Radius * c.Radius
	return math.Abs(d.Dot(d)-r2) <= OnCurveTolerance*r2
}

// tangentAt assumes p lies on the circle. The tangent is perpendicular to the
// radius, so its slope is −dx/dy, vertical where |dy| is within
// verticalSinEps of the radius.
func (c Circle) tangentAt(p vec.Vec2) Result {
	d := p.Sub(c.Center)
	if math.Abs(d.Y) <= verticalSinEps*c.Radius {
		return newResult(p, Vertical)
	}
	m := -d.X / d.Y
	if m == 0 {
		m = 0 // drop the sign of -0
	}
	return newResult(p, Finite(m))
}

// TangentOnCircle returns the tangent to c at p. The point must satisfy the
// circle equation within OnCurveTolerance, otherwise ErrPointNotOnCurve is
// returned. The normal line passes through the center.
func TangentOnCircle(c Circle, p vec.Vec2) (Result, error) {
	if err := c.validate(); err != nil {
		return Result{}, err
	}
	if err := checkFinite("point", p.X, p.Y); err != nil {
		return Result{}, err
	}
	if !c.onCircle(p) {
		return Result{}, fmt.Errorf("%w: (%v, %v) is not on the circle of radius %v",
			ErrPointNotOnCurve, p.X, p.Y, c.Radius)
	}
	return c.tangentAt(p), nil
}

// TangentsWithSlope returns the two tangent lines of c with slope m. The
// first touches c on the side of the left-hand normal of the direction of m.
func (c Circle) TangentsWithSlope(m Slope) ([2]Line, error) {
	if err := c.validate(); err != nil {
		return [2]Line{}, err
	}
	if v, ok := m.Value(); ok {
		if err := checkFinite("slope", v); err != nil {
			return [2]Line{}, err
		}
	}
	u := LineFromPointSlope(vec.Vec2{}, m).Direction()
	n := vec.Vec2{X: -u.Y, Y: u.X}.Mul(c.Radius)
	return [2]Line{
		LineFromPointSlope(c.Center.Add(n), m),
		LineFromPointSlope(c.Center.Sub(n), m),
	}, nil
}

// TangentsFromPoint returns the tangents of c through p. A point on the
// circle has one tangent, an exterior point two. A point strictly inside the
// circle fails with ErrOutOfDomain.
func (c Circle) TangentsFromPoint(p vec.Vec2) ([]Result, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	if err := checkFinite("point", p.X, p.Y); err != nil {
		return nil, err
	}
	if c.onCircle(p) {
		return []Result{c.tangentAt(p)}, nil
	}
	d := p.Sub(c.Center)
	dist := d.Length()
	if dist < c.Radius {
		return nil, fmt.Errorf("%w: (%v, %v) is inside the circle of radius %v",
			ErrOutOfDomain, p.X, p.Y, c.Radius)
	}
	theta := math.Atan2(d.Y, d.X)
	alpha := math.Acos(c.Radius / dist)
	out := make([]Result, 0, 2)
	for _, phi := range []float64{theta + alpha, theta - alpha} {
		s, co := math.Sincos(phi)
		touch := c.Center.Add(vec.Vec2{X: co, Y: s}.Mul(c.Radius))
		out = append(out, c.tangentAt(touch))
	}
	return out, nil
}

// ============================================================
// Ellipse
// ============================================================

// Ellipse is x²/A² + y²/B² = 1, centered at the origin. The focal geometry
// assumes the major axis lies on x, i.e. A ≥ B.
type Ellipse struct {
	A, B float64
}

func (e Ellipse) validate() error {
	if err := checkPositive("semi-axis a", e.A); err != nil {
		return err
	}
	return checkPositive("semi-axis b", e.B)
}

func (e Ellipse) checkOrientation() error {
	if e.A < e.B {
		return fmt.Errorf("%w: semi-axis a=%v is shorter than b=%v", ErrUnsupportedOrientation, e.A, e.B)
	}
	return nil
}

// FocalDistance returns c = √(a² − b²).
func (e Ellipse) FocalDistance() (float64, error) {
	if err := e.validate(); err != nil {
		return 0, err
	}
	if err := e.checkOrientation(); err != nil {
		return 0, err
	}
	return math.Sqrt(e.A*e.A - e.B*e.B), nil
}

// Foci returns the foci (±c, 0). DistanceSum is measured at the vertex
// (a, 0) and equals 2a.
func (e Ellipse) Foci() (Foci, error) {
	if _, err := e.FocalDistance(); err != nil {
		return Foci{}, err
	}
	return *e.focalData(vec.Vec2{X: e.A}), nil
}

// focalData assumes a validated ellipse with A ≥ B.
func (e Ellipse) focalData(p vec.Vec2) *Foci {
	c := math.Sqrt(e.A*e.A - e.B*e.B)
	f1 := vec.Vec2{X: c}
	f2 := vec.Vec2{X: -c}
	return &Foci{C: c, F1: f1, F2: f2, DistanceSum: SumOfFocalDistances(p, f1, f2)}
}

// slopeAt assumes p lies on the ellipse; dy/dx = −(b²x)/(a²y).
func (e Ellipse) slopeAt(p vec.Vec2) Slope {
	m := -(e.B * e.B * p.X) / (e.A * e.A * p.Y)
	if m == 0 {
		m = 0 // drop the sign of -0
	}
	return Finite(m)
}

// TangentOnEllipseAtX returns the tangent at the point of the upper half of e
// with the given x-coordinate. At the vertices x = ±a the tangent is
// Vertical. The result always carries focal data.
func TangentOnEllipseAtX(e Ellipse, x float64) (Result, error) {
	if err := e.validate(); err != nil {
		return Result{}, err
	}
	if err := checkFinite("x", x); err != nil {
		return Result{}, err
	}
	if err := e.checkOrientation(); err != nil {
		return Result{}, err
	}
	if math.Abs(x) > e.A {
		return Result{}, fmt.Errorf("%w: point outside ellipse, |x|=%v exceeds a=%v", ErrOutOfDomain, math.Abs(x), e.A)
	}

	p := vec.Vec2{X: x, Y: e.B * math.Sqrt(math.Max(0, 1-x*x/(e.A*e.A)))}
	var res Result
	if p.Y == 0 {
		res = newResult(p, Vertical)
	} else {
		res = newResult(p, e.slopeAt(p))
	}
	res.Foci = e.focalData(p)
	return res, nil
}

// verticalSinEps is the |sin t| below which the parametrised tangent is taken
// to be vertical.
const verticalSinEps = 1e-12

// TangentOnEllipseAtParam returns the tangent at (a·cos t, b·sin t). Any
// finite t is accepted. Focal data is attached when a ≥ b.
func TangentOnEllipseAtParam(e Ellipse, t float64) (Result, error) {
	if err := e.validate(); err != nil {
		return Result{}, err
	}
	if err := checkFinite("t", t); err != nil {
		return Result{}, err
	}

	s, co := math.Sincos(t)
	p := vec.Vec2{X: e.A * co, Y: e.B * s}
	var res Result
	if math.Abs(s) <= verticalSinEps {
		res = newResult(p, Vertical)
	} else {
		res = newResult(p, e.slopeAt(p))
	}
	if e.A >= e.B {
		res.Foci = e.focalData(p)
	}
	return res, nil
}

// PointsWithSlope returns the two points of e where the tangent has slope m.
// The first point lies on the upper half (y ≥ 0), the second is its mirror
// through the origin.
func (e Ellipse) PointsWithSlope(m Slope) ([2]vec.Vec2, error) {
	if err := e.validate(); err != nil {
		return [2]vec.Vec2{}, err
	}
	v, ok := m.Value()
	if !ok {
		return [2]vec.Vec2{{X: e.A}, {X: -e.A}}, nil
	}
	if err := checkFinite("slope", v); err != nil {
		return [2]vec.Vec2{}, err
	}
	k := math.Sqrt(e.A*e.A*v*v + e.B*e.B)
	upper := vec.Vec2{X: -e.A * e.A * v / k, Y: e.B * e.B / k}
	return [2]vec.Vec2{upper, upper.Mul(-1)}, nil
}

// TangentDistanceProduct returns the product of the distances from F1 and F2
// to l. For any tangent of the ellipse the product equals b².
func (f Foci) TangentDistanceProduct(l Line) float64 {
	return l.DistanceTo(f.F1) * l.DistanceTo(f.F2)
}
