package mathutil

import "math"

// Epsilon is the tolerance used for fuzzy comparisons across the package.
const Epsilon = 1e-7

// Components is anything exposing an ordered list of float components.
// Vec3 and Quat both satisfy it.
type Components interface {
	Components() []float64
}

// VectorLike is a Components that can also be updated in place.
type VectorLike interface {
	Components
	SetComponents(c []float64)
}

// counterpart returns the component of b paired with position n of a.
//
// When a 4-component object meets a 3-component one, the shorter side
// aligns against positions 1..3 (the scalar slot has no counterpart).
// Missing counterparts read as 0.
func counterpart(n, da int, b []float64) float64 {
	db := len(b)
	switch {
	case da == 4 && db == 3:
		if n == 0 {
			return 0
		}
		return b[n-1]
	case da == 3 && db == 4:
		return b[n+1]
	case n < db:
		return b[n]
	}
	return 0
}

// Weave pairs the components of a and b under the broadcast rule and
// returns op applied to every pair. The result has the dimensionality of
// the longer operand.
func Weave(a, b Components, op func(x, y float64) float64) []float64 {
	ac, bc := a.Components(), b.Components()
	if len(bc) > len(ac) {
		ac, bc = bc, ac
		inner := op
		op = func(x, y float64) float64 { return inner(y, x) }
	}
	out := make([]float64, len(ac))
	for n := range ac {
		out[n] = op(ac[n], counterpart(n, len(ac), bc))
	}
	return out
}

// Combine updates dst in place, pairing each of its components with the
// matching component of other. dst keeps its own dimensionality.
func Combine(dst VectorLike, other Components, op func(x, y float64) float64) {
	c := dst.Components()
	oc := other.Components()
	for n := range c {
		c[n] = op(c[n], counterpart(n, len(c), oc))
	}
	dst.SetComponents(c)
}

// update applies m to every component of v.
func update(v VectorLike, m func(x float64) float64) {
	c := v.Components()
	for n := range c {
		c[n] = m(c[n])
	}
	v.SetComponents(c)
}

// Dot returns the broadcast dot product of a and b.
func Dot(a, b Components) float64 {
	var sum float64
	for _, p := range Weave(a, b, func(x, y float64) float64 { return x * y }) {
		sum += p
	}
	return sum
}

func NormSqr(v Components) float64 {
	var sum float64
	for _, c := range v.Components() {
		sum += c * c
	}
	return sum
}

func Norm(v Components) float64 {
	return math.Sqrt(NormSqr(v))
}

// FuzzyEquals reports whether a and b have the same dimensionality and every
// component pair differs by at most Epsilon.
func FuzzyEquals(a, b Components) bool {
	ac, bc := a.Components(), b.Components()
	if len(ac) != len(bc) {
		return false
	}
	for n := range ac {
		if math.Abs(ac[n]-bc[n]) > Epsilon {
			return false
		}
	}
	return true
}

// Normalize scales v to unit length. Near-zero vectors are left untouched.
func Normalize(v VectorLike) {
	n := Norm(v)
	if n <= Epsilon {
		return
	}
	update(v, func(x float64) float64 { return x / n })
}

func Negate(v VectorLike) {
	update(v, func(x float64) float64 { return -x })
}

func AddVector(dst VectorLike, o Components) {
	Combine(dst, o, func(x, y float64) float64 { return x + y })
}

func SubVector(dst VectorLike, o Components) {
	Combine(dst, o, func(x, y float64) float64 { return x - y })
}

func MulVector(dst VectorLike, o Components) {
	Combine(dst, o, func(x, y float64) float64 { return x * y })
}

// DivVector divides dst by o componentwise. A component whose divisor is
// zero is left unchanged.
func DivVector(dst VectorLike, o Components) {
	Combine(dst, o, safeDiv)
}

func AddScalar(v VectorLike, s float64) {
	update(v, func(x float64) float64 { return x + s })
}

func MulScalar(v VectorLike, s float64) {
	update(v, func(x float64) float64 { return x * s })
}

func DivScalar(v VectorLike, s float64) {
	update(v, func(x float64) float64 { return x / s })
}

func safeDiv(x, y float64) float64 {
	if y == 0 {
		return x
	}
	return x / y
}
