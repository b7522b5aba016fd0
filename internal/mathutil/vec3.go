package mathutil

import "math"

// Vec3 is a 3-component vector (value type, stack-allocated).
type Vec3 [3]float64

// Uniform returns a vector with all three components set to s.
func Uniform(s float64) Vec3 {
	return Vec3{s, s, s}
}

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Mul multiplies componentwise.
func (a Vec3) Mul(b Vec3) Vec3 {
	return Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// Div divides componentwise, leaving components with a ~0 divisor unchanged.
func (a Vec3) Div(b Vec3) Vec3 {
	return Vec3{safeDiv(a[0], b[0]), safeDiv(a[1], b[1]), safeDiv(a[2], b[2])}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func (v Vec3) Negate() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func (v Vec3) LenSqr() float64 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.LenSqr())
}

func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// Lerp returns a + (b-a)*t.
func Lerp(a, b Vec3, t float64) Vec3 {
	k := 1 - t
	return Vec3{
		b[0]*t + a[0]*k,
		b[1]*t + a[1]*k,
		b[2]*t + a[2]*k,
	}
}

func (a Vec3) FuzzyEquals(b Vec3) bool {
	return FuzzyEquals(a, b)
}

// Components implements Components.
func (v Vec3) Components() []float64 {
	return []float64{v[0], v[1], v[2]}
}

// SetComponents implements VectorLike. Shorter slices update a prefix.
func (v *Vec3) SetComponents(c []float64) {
	copy(v[:], c)
}
