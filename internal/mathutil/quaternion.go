package mathutil

import "math"

const (
	flagUnit uint8 = 1 << iota
	flagPositivePolar
	flagIdentity

	flagAll = flagUnit | flagPositivePolar | flagIdentity
)

// Quat is a quaternion (w, x, y, z) with w the scalar part.
//
// Unit, positive-polar and identity are cached as flags. known records
// which flag bits are valid; mutators clear it and readers derive any
// unknown bit from the components, so a flag never outlives the numbers
// it describes. The zero value is the zero quaternion.
type Quat struct {
	w, x, y, z float64
	flags      uint8
	known      uint8
}

// NewQuat builds a quaternion from raw components.
func NewQuat(w, x, y, z float64) Quat {
	return Quat{w: w, x: x, y: y, z: z}
}

// QuatIdentity returns the identity rotation with every flag set.
func QuatIdentity() Quat {
	return Quat{w: 1, flags: flagAll, known: flagAll}
}

// QuatFromEuler converts Euler XYZ angles (radians) to a unit quaternion.
func QuatFromEuler(rx, ry, rz float64) Quat {
	cx, sx := math.Cos(rx*0.5), math.Sin(rx*0.5)
	cy, sy := math.Cos(ry*0.5), math.Sin(ry*0.5)
	cz, sz := math.Cos(rz*0.5), math.Sin(rz*0.5)

	return Quat{
		w:     cx*cy*cz + sx*sy*sz,
		x:     sx*cy*cz - cx*sy*sz,
		y:     cx*sy*cz + sx*cy*sz,
		z:     cx*cy*sz - sx*sy*cz,
		flags: flagUnit,
		known: flagUnit,
	}
}

// QuatFromPrincipal returns a rotation of angle radians about the Y axis.
func QuatFromPrincipal(angle float64) Quat {
	angle *= 0.5
	return Quat{
		w:     math.Cos(angle),
		y:     math.Sin(angle),
		flags: flagUnit,
		known: flagUnit,
	}
}

func (q Quat) W() float64 { return q.w }
func (q Quat) X() float64 { return q.x }
func (q Quat) Y() float64 { return q.y }
func (q Quat) Z() float64 { return q.z }

func (q Quat) ScalarPart() float64 { return q.w }

func (q Quat) VectorPart() Vec3 { return Vec3{q.x, q.y, q.z} }

// Components implements Components in (w, x, y, z) order.
func (q Quat) Components() []float64 {
	return []float64{q.w, q.x, q.y, q.z}
}

// SetComponents implements VectorLike. Shorter slices update a prefix.
func (q *Quat) SetComponents(c []float64) {
	dst := [4]*float64{&q.w, &q.x, &q.y, &q.z}
	for i := 0; i < len(c) && i < 4; i++ {
		*dst[i] = c[i]
	}
	q.invalidate()
}

func (q *Quat) invalidate() {
	q.flags, q.known = 0, 0
}

func (q *Quat) mark(bits uint8, on bool) {
	q.known |= bits
	if on {
		q.flags |= bits
	} else {
		q.flags &^= bits
	}
}

func (q Quat) has(bit uint8) bool {
	if q.known&bit != 0 {
		return q.flags&bit != 0
	}
	return q.derive(bit)
}

func (q Quat) derive(bit uint8) bool {
	switch bit {
	case flagIdentity:
		return math.Abs(q.w-1) <= Epsilon &&
			math.Abs(q.x) <= Epsilon &&
			math.Abs(q.y) <= Epsilon &&
			math.Abs(q.z) <= Epsilon
	case flagUnit:
		return math.Abs(q.rawNormSqr()-1) <= Epsilon
	case flagPositivePolar:
		return q.has(flagUnit) && q.w >= 0
	}
	return false
}

func (q Quat) IsUnit() bool          { return q.has(flagUnit) }
func (q Quat) IsPositivePolar() bool { return q.has(flagPositivePolar) }
func (q Quat) IsIdentity() bool      { return q.has(flagIdentity) }

func (q Quat) rawNormSqr() float64 {
	return q.w*q.w + q.x*q.x + q.y*q.y + q.z*q.z
}

func (q Quat) NormSqr() float64 {
	if q.has(flagUnit) {
		return 1
	}
	return q.rawNormSqr()
}

func (q Quat) Norm() float64 {
	if q.has(flagUnit) {
		return 1
	}
	return math.Sqrt(q.rawNormSqr())
}

func (q Quat) FuzzyEquals(o Quat) bool {
	return FuzzyEquals(q, o)
}

// Normalize scales q to unit norm. Near-zero quaternions are left as is.
func (q *Quat) Normalize() {
	if q.has(flagUnit) {
		return
	}
	n := math.Sqrt(q.rawNormSqr())
	if n < Epsilon {
		return
	}
	q.w /= n
	q.x /= n
	q.y /= n
	q.z /= n
	q.invalidate()
	q.mark(flagUnit, true)
}

func (q *Quat) Negate() {
	q.w, q.x, q.y, q.z = -q.w, -q.x, -q.y, -q.z
	q.known &= flagUnit
}

// MakePositivePolar normalizes q and flips it so that w >= 0. q and -q
// describe the same rotation.
func (q *Quat) MakePositivePolar() {
	if q.known&flagPositivePolar != 0 && q.flags&flagPositivePolar != 0 {
		return
	}
	q.Normalize()
	if q.w < 0 {
		q.Negate()
	}
	q.mark(flagPositivePolar, q.has(flagUnit))
}

// Positive returns the positive-polar form of q.
func (q Quat) Positive() Quat {
	q.MakePositivePolar()
	return q
}

// Invert replaces q with its multiplicative inverse: the conjugate divided
// by the squared norm. The identity is left untouched.
func (q *Quat) Invert() {
	if q.has(flagIdentity) {
		return
	}
	n := q.NormSqr()
	if n <= Epsilon {
		return
	}
	q.w = q.w / n
	q.x = -q.x / n
	q.y = -q.y / n
	q.z = -q.z / n
	q.known &= flagUnit | flagPositivePolar
}

// Inverse returns the inverse of q without modifying it.
func (q Quat) Inverse() Quat {
	q.Invert()
	return q
}

// Multiply sets q to the Hamilton product q·o.
func (q *Quat) Multiply(o Quat) {
	if q.has(flagIdentity) {
		*q = o
		return
	}
	unit := q.has(flagUnit) && o.has(flagUnit)

	nx := q.w*o.x + q.x*o.w + q.y*o.z - q.z*o.y
	ny := q.w*o.y + q.y*o.w + q.z*o.x - q.x*o.z
	nz := q.w*o.z + q.z*o.w + q.x*o.y - q.y*o.x
	q.w = q.w*o.w - q.x*o.x - q.y*o.y - q.z*o.z
	q.x, q.y, q.z = nx, ny, nz

	q.invalidate()
	if unit {
		q.mark(flagUnit, true)
	}
}

// Rotate applies q·v·q⁻¹ to v using the expanded closed form, assuming q is
// a unit quaternion. Each output axis is a nine-term polynomial in the
// components of q weighted by those of v.
func (q Quat) Rotate(v Vec3) Vec3 {
	if q.has(flagIdentity) {
		return v
	}
	w, x, y, z := q.w, q.x, q.y, q.z
	return Vec3{
		w*w*v[0] + 2*y*w*v[2] - 2*z*w*v[1] + x*x*v[0] + 2*y*x*v[1] + 2*z*x*v[2] - z*z*v[0] - y*y*v[0],
		2*x*y*v[0] + y*y*v[1] + 2*z*y*v[2] + 2*w*z*v[0] - z*z*v[1] + w*w*v[1] - 2*x*w*v[2] - x*x*v[1],
		2*x*z*v[0] + 2*y*z*v[1] + z*z*v[2] - 2*w*y*v[0] - y*y*v[2] + 2*w*x*v[1] - x*x*v[2] + w*w*v[2],
	}
}

// Slerp spherically interpolates between the positive-polar forms of a and
// b along the shorter arc. Nearly parallel inputs fall back to a linear
// blend. The result is positive-polar.
func Slerp(a, b Quat, t float64) Quat {
	a.MakePositivePolar()
	b.MakePositivePolar()

	if math.Abs(t) <= Epsilon {
		return a
	}
	j := 1 - t
	if math.Abs(j) <= Epsilon {
		return b
	}

	dot := Dot(a, b)
	if dot < 0 {
		dot = -dot
		b.Negate()
	}

	if dot <= 0.9995 {
		theta := math.Acos(dot)
		s := math.Sin(theta)
		j = math.Sin(j*theta) / s
		t = math.Sin(t*theta) / s
	}

	ret := Quat{
		w: j*a.w + t*b.w,
		x: j*a.x + t*b.x,
		y: j*a.y + t*b.y,
		z: j*a.z + t*b.z,
	}
	ret.MakePositivePolar()
	return ret
}
