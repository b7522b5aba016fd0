package render

import "blot/internal/mathutil"

// Light returns the shading factor of a face whose center is at center on
// a model placed at origin, seen by a camera at eye. The face normal is
// taken as the direction from the model origin to the face center, which
// holds for the convex primitives rendered here. Faces turned straight at
// the camera get 1, faces seen edge-on get 0.5.
func Light(center, origin, eye mathutil.Vec3) float64 {
	normal := center.Sub(origin).Normalize()
	ray := eye.Sub(origin).Normalize()
	d := ray.Dot(normal)
	return d*d*0.5 + 0.5
}
