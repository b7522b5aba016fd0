package model

import (
	"math"

	"blot/internal/geom"
	"blot/internal/mathutil"
)

// MinSteps is the fewest latitude or longitude steps a sphere is built with.
const MinSteps = 3

var cubeFaces = [6]geom.Quad{
	{TL: mathutil.Vec3{-1, 1, 1}, TR: mathutil.Vec3{1, 1, 1}, BL: mathutil.Vec3{-1, -1, 1}, BR: mathutil.Vec3{1, -1, 1}},
	{TL: mathutil.Vec3{-1, 1, -1}, TR: mathutil.Vec3{1, 1, -1}, BL: mathutil.Vec3{-1, -1, -1}, BR: mathutil.Vec3{1, -1, -1}},
	{TL: mathutil.Vec3{-1, 1, 1}, TR: mathutil.Vec3{-1, 1, -1}, BL: mathutil.Vec3{-1, -1, 1}, BR: mathutil.Vec3{-1, -1, -1}},
	{TL: mathutil.Vec3{1, 1, -1}, TR: mathutil.Vec3{1, 1, 1}, BL: mathutil.Vec3{1, -1, -1}, BR: mathutil.Vec3{1, -1, 1}},
	{TL: mathutil.Vec3{-1, 1, 1}, TR: mathutil.Vec3{1, 1, 1}, BL: mathutil.Vec3{-1, 1, -1}, BR: mathutil.Vec3{1, 1, -1}},
	{TL: mathutil.Vec3{-1, -1, -1}, TR: mathutil.Vec3{1, -1, -1}, BL: mathutil.Vec3{-1, -1, 1}, BR: mathutil.Vec3{1, -1, 1}},
}

// Cube returns the 2×2×2 cube centered on the origin, each face mapped to
// the whole texture.
func Cube() *Model {
	m := New(len(cubeFaces))
	for _, q := range cubeFaces {
		m.AddFace(q)
	}
	return m
}

// UVSphere returns a unit sphere cut into lat slices around Y and long
// bands from pole to pole. The texture wraps once around and once from top
// to bottom. Step counts below MinSteps are raised to it.
func UVSphere(lat, long int) *Model {
	lat = max(lat, MinSteps)
	long = max(long, MinSteps)
	m := New(lat * long)

	angStart := 0.0
	x1, z1 := 1.0, 0.0
	for a := 1; a <= lat; a++ {
		angEnd := float64(a) / float64(lat)
		x2 := math.Cos(angEnd * 2 * math.Pi)
		z2 := math.Sin(angEnd * 2 * math.Pi)

		gammaStart := 0.0
		y1, f1 := 1.0, 0.0
		for g := 1; g <= long; g++ {
			gammaEnd := float64(g) / float64(long)
			y2 := math.Cos(gammaEnd * math.Pi)
			f2 := math.Sqrt(math.Max(0, 1-y2*y2))

			m.AddFaceUV(geom.Quad{
				TL: mathutil.Vec3{x1 * f1, y1, z1 * f1},
				TR: mathutil.Vec3{x2 * f1, y1, z2 * f1},
				BL: mathutil.Vec3{x1 * f2, y2, z1 * f2},
				BR: mathutil.Vec3{x2 * f2, y2, z2 * f2},
			},
				[4]float64{angStart, angEnd, angStart, angEnd},
				[4]float64{gammaStart, gammaStart, gammaEnd, gammaEnd},
			)

			gammaStart = gammaEnd
			y1, f1 = y2, f2
		}

		angStart = angEnd
		x1, z1 = x2, z2
	}
	return m
}
