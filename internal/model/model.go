// Package model builds the textured primitives the renderer spins: a
// model is a placement plus a list of quad faces, each with its own UV
// corners.
package model

import (
	"fmt"

	"blot/internal/geom"
	"blot/internal/mathutil"
)

// Face is a quad with the texture coordinates of its four corners, in
// tl, tr, bl, br order.
type Face struct {
	Quad geom.Quad
	U, V [4]float64
}

var (
	defaultU = [4]float64{0, 1, 0, 1}
	defaultV = [4]float64{0, 0, 1, 1}
)

// Model is a set of faces in local space placed by Transform.
type Model struct {
	Transform mathutil.Transform
	faces     []Face
}

// New returns an empty model with room for n faces.
func New(n int) *Model {
	return &Model{
		Transform: mathutil.NewTransform(),
		faces:     make([]Face, 0, n),
	}
}

// AddFace adds q mapped to the whole texture.
func (m *Model) AddFace(q geom.Quad) {
	m.faces = append(m.faces, Face{Quad: q, U: defaultU, V: defaultV})
}

// AddFaceUV adds q with explicit corner UVs.
func (m *Model) AddFaceUV(q geom.Quad, u, v [4]float64) {
	m.faces = append(m.faces, Face{Quad: q, U: u, V: v})
}

func (m *Model) FaceCount() int { return len(m.faces) }

func (m *Model) checkIndex(i int) {
	if i < 0 || i >= len(m.faces) {
		panic(fmt.Sprintf("model: face %d out of range [0, %d)", i, len(m.faces)))
	}
}

// Face returns face i placed in world space.
func (m *Model) Face(i int) geom.Quad {
	m.checkIndex(i)
	return m.faces[i].Quad.Transformed(m.Transform)
}

// LocalFace returns face i untransformed.
func (m *Model) LocalFace(i int) Face {
	m.checkIndex(i)
	return m.faces[i]
}

// RemapUV converts patch coordinates on face i into texture coordinates
// by bilinearly blending the face's corner UVs.
func (m *Model) RemapUV(i int, u, v float64) (float64, float64) {
	m.checkIndex(i)
	f := &m.faces[i]
	us, vs := f.U, f.V

	uTop := (us[1]-us[0])*u + us[0]
	uBottom := (us[3]-us[2])*u + us[2]
	nu := (uBottom-uTop)*v + uTop

	vLeft := (vs[2]-vs[0])*v + vs[0]
	vRight := (vs[3]-vs[1])*v + vs[1]
	nv := (vRight-vLeft)*u + vLeft

	return nu, nv
}

// Origin returns the model's position in world space.
func (m *Model) Origin() mathutil.Vec3 { return m.Transform.Translation }
