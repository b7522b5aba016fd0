package mathutil

// Transform places an object in space: scale, then rotate, then translate.
type Transform struct {
	Translation Vec3
	Rotation    Quat
	Scale       Vec3
}

// NewTransform returns the identity placement.
func NewTransform() Transform {
	return Transform{
		Rotation: QuatIdentity(),
		Scale:    Uniform(1),
	}
}

func (t *Transform) Translate(amt Vec3) {
	t.Translation = t.Translation.Add(amt)
}

func (t *Transform) Rotate(amt Quat) {
	t.Rotation.Multiply(amt)
}

func (t *Transform) ScaleBy(amt Vec3) {
	t.Scale = t.Scale.Mul(amt)
}

func (t *Transform) ScaleUniform(amt float64) {
	t.Scale = t.Scale.Scale(amt)
}

// Transform applies t's translation, rotation and scale onto other.
func (t Transform) Transform(other *Transform) {
	other.Translate(t.Translation)
	other.Rotate(t.Rotation)
	other.ScaleBy(t.Scale)
}

// InverseTransform undoes Transform on other: negated translation, inverted
// rotation, divided scale.
func (t Transform) InverseTransform(other *Transform) {
	other.Translate(t.Translation.Negate())
	other.Rotate(t.Rotation.Inverse())
	other.Scale = other.Scale.Div(t.Scale)
}

// TransformVector maps v from local space into the space t places it in.
func (t Transform) TransformVector(v Vec3) Vec3 {
	return t.Rotation.Rotate(v.Mul(t.Scale)).Add(t.Translation)
}

// InverseTransformVector is the exact inverse of TransformVector.
func (t Transform) InverseTransformVector(v Vec3) Vec3 {
	return t.Rotation.Inverse().Rotate(v.Sub(t.Translation)).Div(t.Scale)
}
