// Package geom holds the 2D patch geometry used to rasterize projected
// faces: bounded lines and bilinear quads with UV inversion.
package geom

import (
	"math"

	"blot/internal/mathutil"
)

// rootDistSqr is the squared distance (a quarter pixel) at which a u-line
// is accepted as passing through the point.
const rootDistSqr = 0.25

// Quad is a bilinear patch. After projection its corners are in pixel
// space; u runs left to right, v top to bottom.
type Quad struct {
	TL, TR, BL, BR mathutil.Vec3
}

// ULine returns the line of constant u, from the top edge to the bottom.
func (q Quad) ULine(u float64) Line {
	return NewLine(mathutil.Lerp(q.TL, q.TR, u), mathutil.Lerp(q.BL, q.BR, u))
}

// Bases returns the top and bottom edges.
func (q Quad) Bases() [2]Line {
	return [2]Line{NewLine(q.TL, q.TR), NewLine(q.BL, q.BR)}
}

// Center returns the mean of the four corners.
func (q Quad) Center() mathutil.Vec3 {
	return q.TL.Add(q.TR).Add(q.BL).Add(q.BR).Scale(0.25)
}

// Corners returns tl, tr, bl, br in that order.
func (q Quad) Corners() [4]mathutil.Vec3 {
	return [4]mathutil.Vec3{q.TL, q.TR, q.BL, q.BR}
}

// Map applies fn to every corner.
func (q Quad) Map(fn func(mathutil.Vec3) mathutil.Vec3) Quad {
	return Quad{TL: fn(q.TL), TR: fn(q.TR), BL: fn(q.BL), BR: fn(q.BR)}
}

// Transformed places q by t, from local into parent space.
func (q Quad) Transformed(t mathutil.Transform) Quad {
	return q.Map(t.TransformVector)
}

// InverseTransformed undoes Transformed.
func (q Quad) InverseTransformed(t mathutil.Transform) Quad {
	return q.Map(t.InverseTransformVector)
}

// IntBounds returns the inclusive pixel rectangle covering all four
// corners: floor of the minimum and ceil of the maximum on each axis.
func (q Quad) IntBounds() (minX, minY, maxX, maxY int) {
	x0, x1 := minmax4(q.TL[0], q.TR[0], q.BL[0], q.BR[0])
	y0, y1 := minmax4(q.TL[1], q.TR[1], q.BL[1], q.BR[1])
	return int(math.Floor(x0)), int(math.Floor(y0)), int(math.Ceil(x1)), int(math.Ceil(y1))
}

func minmax4(a, b, c, d float64) (lo, hi float64) {
	return math.Min(math.Min(a, b), math.Min(c, d)), math.Max(math.Max(a, b), math.Max(c, d))
}

// UV recovers the patch coordinates of a 2D point by bisecting over u for
// the line of constant u that passes through it, then reading v as the
// progress along that line. It reports false when no such line is found or
// when v falls outside [0, 1].
func (q Quad) UV(point mathutil.Vec3) (u, v float64, ok bool) {
	// Edges shorter than a pixel are treated as one pixel long, so a quad
	// collapsed to a point still gets a finite stopping threshold.
	resolutionSqr := 1.0
	for _, base := range q.Bases() {
		resolutionSqr = math.Max(resolutionSqr, base.LengthSqr())
	}
	thresholdSqr := 1 / resolutionSqr

	line, u, found := q.searchU(point, 0.5, 0.5, thresholdSqr)
	if !found {
		return 0, 0, false
	}
	snapped, _ := line.Snap(point)
	v = line.Progress(snapped)
	return u, v, v >= 0 && v <= 1
}

func (q Quad) searchU(point mathutil.Vec3, head, span, thresholdSqr float64) (Line, float64, bool) {
	line := q.ULine(head)
	if line.DistSqr(point) < rootDistSqr {
		return line, head, true
	}
	if 16*span*span <= thresholdSqr {
		return line, 0, false
	}

	half := span * 0.5
	ld := q.ULine(head - half).DistSqr(point)
	rd := q.ULine(head + half).DistSqr(point)
	ldNaN, rdNaN := math.IsNaN(ld), math.IsNaN(rd)

	switch {
	case ldNaN && rdNaN:
		if l, u, ok := q.searchU(point, head-half, half, thresholdSqr); ok {
			return l, u, true
		}
		return q.searchU(point, head+half, half, thresholdSqr)
	case rdNaN || ld <= rd:
		return q.searchU(point, head-half, half, thresholdSqr)
	default:
		return q.searchU(point, head+half, half, thresholdSqr)
	}
}

// CompareDepth orders quads by the squared distance of their centers from
// the origin: negative when a is nearer than b, zero on a tie.
func CompareDepth(a, b Quad) int {
	ad := a.Center().LenSqr()
	bd := b.Center().LenSqr()
	switch {
	case ad < bd:
		return -1
	case ad > bd:
		return 1
	}
	return 0
}
