// Package camera projects world-space points onto a square, centered
// viewport in pixel space.
package camera

import (
	"math"

	"blot/internal/geom"
	"blot/internal/mathutil"
)

// Camera is a perspective camera placed in the world by Transform.
// Intrinsics are set through the setters so the cached projection terms
// stay consistent.
type Camera struct {
	Transform mathutil.Transform

	fov           float64 // degrees
	zNear, zFar   float64
	width, height float64

	fovTan   float64
	nearSpan float64
	maxDim   float64
	padLeft  float64
	padTop   float64
}

// NewCamera returns a camera at the origin looking down +Z with a 90°
// field of view, planes at 0.05 and 100, and a 512×512 viewport.
func NewCamera() *Camera {
	c := &Camera{Transform: mathutil.NewTransform()}
	c.fov = 90
	c.fovTan = 1
	c.SetZPlanes(0.05, 100)
	c.SetSize(512, 512)
	return c
}

func (c *Camera) FOV() float64    { return c.fov }
func (c *Camera) ZNear() float64  { return c.zNear }
func (c *Camera) ZFar() float64   { return c.zFar }
func (c *Camera) Width() float64  { return c.width }
func (c *Camera) Height() float64 { return c.height }

// SetFOV sets the full field of view in degrees.
func (c *Camera) SetFOV(deg float64) {
	c.fov = deg
	c.fovTan = math.Tan(mathutil.Deg2Rad(deg) / 2)
	c.updateNearSpan()
}

func (c *Camera) SetZNear(near float64) { c.SetZPlanes(near, c.zFar) }
func (c *Camera) SetZFar(far float64)   { c.SetZPlanes(c.zNear, far) }

// SetZPlanes sets both clip planes. A near plane below epsilon is raised to
// epsilon and a far plane not beyond near is pushed just past it.
func (c *Camera) SetZPlanes(near, far float64) {
	if near < mathutil.Epsilon {
		near = mathutil.Epsilon
	}
	if far <= near {
		far = near + mathutil.Epsilon
	}
	c.zNear = near
	c.zFar = far
	c.updateNearSpan()
}

func (c *Camera) updateNearSpan() {
	c.nearSpan = 2 * c.zNear * c.fovTan
}

func (c *Camera) SetWidth(w float64)  { c.SetSize(w, c.height) }
func (c *Camera) SetHeight(h float64) { c.SetSize(c.width, h) }

// SetSize sets the viewport. The projection is square with side
// max(w, h) and is centered, so the shorter axis is padded on both sides.
func (c *Camera) SetSize(w, h float64) {
	c.width = w
	c.height = h
	c.maxDim = math.Max(w, h)
	c.padLeft = (w - c.maxDim) / 2
	c.padTop = (h - c.maxDim) / 2
}

// ProjectPoint maps a world-space point to pixel space. Z is kept in
// camera space. It reports false for points nearer than the near plane or
// outside the view cone; nothing is clipped.
func (c *Camera) ProjectPoint(v mathutil.Vec3) (mathutil.Vec3, bool) {
	v = c.Transform.InverseTransformVector(v)
	if v[2] < c.zNear {
		return v, false
	}
	x, ok := c.projectAxis(v[0], v[2])
	if !ok {
		return v, false
	}
	y, ok := c.projectAxis(v[1], v[2])
	if !ok {
		return v, false
	}
	v[0] = x*c.maxDim + c.padLeft
	v[1] = (1-y)*c.maxDim + c.padTop
	return v, true
}

// projectAxis returns the [0, 1] screen coordinate of term at depth z.
func (c *Camera) projectAxis(term, z float64) (float64, bool) {
	if math.Abs(term) < mathutil.Epsilon {
		return 0.5, true
	}
	r := (term/z*c.zNear)/c.nearSpan + 0.5
	if r < 0 || r > 1 {
		return 0, false
	}
	return r, true
}

// ProjectQuad projects every corner and fails on the first corner that
// does, so a quad crossing the view boundary is dropped whole.
func (c *Camera) ProjectQuad(q geom.Quad) (geom.Quad, bool) {
	var out [4]mathutil.Vec3
	for i, corner := range q.Corners() {
		p, ok := c.ProjectPoint(corner)
		if !ok {
			return q, false
		}
		out[i] = p
	}
	return geom.Quad{TL: out[0], TR: out[1], BL: out[2], BR: out[3]}, true
}

// ToCamera returns the unit vector from p toward the camera position.
func (c *Camera) ToCamera(p mathutil.Vec3) mathutil.Vec3 {
	return c.Transform.Translation.Sub(p).Normalize()
}
