package tangency

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/vec"
)

// ============================================================
// Polynomial
// ============================================================

// Polynomial is an immutable real polynomial stored with ascending
// coefficients. The zero value is the zero polynomial.
type Polynomial struct{ coeffs []float64 }

// NewPolynomial returns c0 + c1·x + … + cn·xⁿ.
func NewPolynomial(coeffs ...float64) Polynomial {
	c := make([]float64, len(coeffs))
	copy(c, coeffs)
	return Polynomial{coeffs: c}
}

// Quadratic returns a·x² + b·x + c. a may be zero.
func Quadratic(a, b, c float64) Polynomial { return NewPolynomial(c, b, a) }

// Cubic returns a·x³ + b·x² + c·x + d.
func Cubic(a, b, c, d float64) Polynomial { return NewPolynomial(d, c, b, a) }

// Coefficients returns a copy of the ascending coefficients.
func (p Polynomial) Coefficients() []float64 {
	c := make([]float64, len(p.coeffs))
	copy(c, p.coeffs)
	return c
}

// Degree returns the index of the highest non-zero coefficient, or 0 for the
// zero polynomial.
func (p Polynomial) Degree() int {
	for i := len(p.coeffs) - 1; i > 0; i-- {
		if p.coeffs[i] != 0 {
			return i
		}
	}
	return 0
}

// IsZero reports whether every coefficient is zero.
func (p Polynomial) IsZero() bool {
	for _, c := range p.coeffs {
		if c != 0 {
			return false
		}
	}
	return true
}

// Derivative applies the power rule coefficient-wise:
// [c0, c1, c2, …, cn] becomes [c1, 2·c2, …, n·cn].
func (p Polynomial) Derivative() Polynomial {
	if len(p.coeffs) <= 1 {
		return Polynomial{}
	}
	d := make([]float64, len(p.coeffs)-1)
	for i := 1; i < len(p.coeffs); i++ {
		d[i-1] = float64(i) * p.coeffs[i]
	}
	return Polynomial{coeffs: d}
}

// Eval returns p(x) by direct summation of cᵢ·xⁱ.
func (p Polynomial) Eval(x float64) float64 {
	sum, pow := 0.0, 1.0
	for _, c := range p.coeffs {
		sum += c * pow
		pow *= x
	}
	return sum
}

// Sub returns p − q.
func (p Polynomial) Sub(q Polynomial) Polynomial {
	n := max(len(p.coeffs), len(q.coeffs))
	d := make([]float64, n)
	copy(d, p.coeffs)
	for i, c := range q.coeffs {
		d[i] -= c
	}
	return Polynomial{coeffs: d}
}

func (p Polynomial) validate() error {
	for i, c := range p.coeffs {
		if !isFinite(c) {
			return fmt.Errorf("%w: coefficient c%d must be finite, got %v", ErrInvalidInput, i, c)
		}
	}
	return nil
}

func (p Polynomial) String() string { return p.format(false) }

// LaTeX renders the polynomial with braced exponents, e.g. x^{3} - 2x^{2} + 1.
func (p Polynomial) LaTeX() string { return p.format(true) }

func (p Polynomial) format(latex bool) string {
	var sb strings.Builder
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		c := p.coeffs[i]
		if c == 0 {
			continue
		}
		mag := math.Abs(c)
		switch {
		case sb.Len() == 0 && c < 0:
			sb.WriteString("-")
		case sb.Len() > 0 && c < 0:
			sb.WriteString(" - ")
		case sb.Len() > 0:
			sb.WriteString(" + ")
		}
		if i == 0 {
			sb.WriteString(fmtNum(mag))
			continue
		}
		if mag != 1 {
			sb.WriteString(fmtNum(mag))
		}
		sb.WriteString("x")
		if i > 1 {
			exp := strconv.Itoa(i)
			if latex {
				exp = "{" + exp + "}"
			}
			sb.WriteString("^" + exp)
		}
	}
	if sb.Len() == 0 {
		return "0"
	}
	return sb.String()
}

// ============================================================
// Tangent evaluation
// ============================================================

// EvaluateTangent returns the point (x, p(x)), the slope p'(x), the tangent
// line and the normal line. When the slope is 0 the normal is the vertical
// line through x.
func EvaluateTangent(p Polynomial, x float64) (Result, error) {
	if err := p.validate(); err != nil {
		return Result{}, err
	}
	if err := checkFinite("x", x); err != nil {
		return Result{}, err
	}
	pt := vec.Vec2{X: x, Y: p.Eval(x)}
	m := p.Derivative().Eval(x)
	if err := checkFinite("slope", m, pt.Y); err != nil {
		return Result{}, fmt.Errorf("evaluating at x=%v: %w", x, err)
	}
	return newResult(pt, Finite(m)), nil
}

// HorizontalTangents returns the sorted x-coordinates where p has a
// horizontal tangent, i.e. the real roots of p'.
func HorizontalTangents(p Polynomial) ([]float64, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	d := p.Derivative()
	if d.IsZero() {
		return nil, fmt.Errorf("%w: %s has a horizontal tangent everywhere", ErrInfiniteSolutions, p)
	}
	return realRoots(d)
}

// ParallelTangents returns the sorted x-coordinates where f and g have
// parallel tangents, i.e. the real roots of f' − g'.
func ParallelTangents(f, g Polynomial) ([]float64, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	d := f.Sub(g).Derivative()
	if d.IsZero() {
		return nil, fmt.Errorf("%w: %s and %s have parallel tangents everywhere", ErrInfiniteSolutions, f, g)
	}
	return realRoots(d)
}

// AngleBetweenCurves returns the acute angle, in radians, between the
// tangents of f and g at x. The curves need not intersect at x.
func AngleBetweenCurves(f, g Polynomial, x float64) (float64, error) {
	rf, err := EvaluateTangent(f, x)
	if err != nil {
		return 0, err
	}
	rg, err := EvaluateTangent(g, x)
	if err != nil {
		return 0, err
	}
	return angleBetween(rf.Tangent, rg.Tangent), nil
}

func angleBetween(l1, l2 Line) float64 {
	cos := math.Abs(l1.Direction().Dot(l2.Direction()))
	return math.Acos(math.Min(cos, 1))
}
