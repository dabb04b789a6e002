package tangency

import (
	"fmt"
	"math"
	"sort"
)

// ============================================================
// Real roots of derivative polynomials
// ============================================================

const (
	newtonSeeds   = 200
	newtonMaxIter = 100
)

// realRoots returns the sorted, de-duplicated real roots of a non-zero
// polynomial. Degrees up to two are solved in closed form; higher degrees use
// a Newton sweep over the Cauchy root bound. Roots beyond the float64 range
// fail with ErrInvalidInput.
func realRoots(p Polynomial) ([]float64, error) {
	c := p.coeffs[:p.Degree()+1]
	if err := checkFinite("coefficient of "+p.String(), c...); err != nil {
		return nil, err
	}
	var roots []float64
	switch len(c) {
	case 1:
		return nil, nil
	case 2:
		roots = []float64{-c[0] / c[1]}
	case 3:
		roots = solveQuadratic(c[2], c[1], c[0])
	default:
		q := Polynomial{coeffs: c}
		bound := rootBound(q)
		if !isFinite(bound) {
			return nil, fmt.Errorf("%w: root bound of %s overflows", ErrInvalidInput, q)
		}
		roots = newtonSweep(q, bound)
	}
	for i, r := range roots {
		if !isFinite(r) {
			return nil, fmt.Errorf("%w: roots of %s overflow", ErrInvalidInput, p)
		}
		if r == 0 {
			roots[i] = 0 // drop the sign of -0
		}
	}
	sort.Float64s(roots)
	return roots, nil
}

func solveQuadratic(a, b, c float64) []float64 {
	disc := b*b - 4*a*c
	switch {
	case disc < 0:
		return nil
	case disc == 0:
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(disc)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

// rootBound returns the Cauchy bound R = 1 + max|cᵢ/cₙ| on every real root.
func rootBound(p Polynomial) float64 {
	n := len(p.coeffs) - 1
	lead := p.coeffs[n]
	bound := 0.0
	for _, c := range p.coeffs[:n] {
		bound = math.Max(bound, math.Abs(c/lead))
	}
	return bound + 1
}

// newtonSweep starts Newton's method from evenly spaced seeds in
// [-bound, bound].
func newtonSweep(p Polynomial, bound float64) []float64 {
	dp := p.Derivative()
	var roots []float64
	for i := 0; i <= newtonSeeds; i++ {
		x := -bound + 2*bound*float64(i)/newtonSeeds
		for iter := 0; iter < newtonMaxIter; iter++ {
			dfx := dp.Eval(x)
			if dfx == 0 {
				break
			}
			step := p.Eval(x) / dfx
			x -= step
			if math.Abs(x) > 2*bound {
				break
			}
			if math.Abs(step) <= 1e-13*(1+math.Abs(x)) {
				break
			}
		}
		if !isFinite(x) || math.Abs(x) > bound || math.Abs(p.Eval(x)) > 1e-8*magnitude(p, x) {
			continue
		}
		dup := false
		for _, r := range roots {
			if math.Abs(r-x) <= 1e-6*(1+math.Abs(x)) {
				dup = true
				break
			}
		}
		if !dup {
			roots = append(roots, x)
		}
	}
	return roots
}

// magnitude returns Σ|cᵢ|·|x|ⁱ, the scale against which p(x) ≈ 0 is judged.
func magnitude(p Polynomial, x float64) float64 {
	sum, pow := 0.0, 1.0
	for _, c := range p.coeffs {
		sum += math.Abs(c) * pow
		pow *= math.Abs(x)
	}
	return sum
}
