package geom

import (
	"math"

	"blot/internal/mathutil"
)

// LineMode tags how a Line is parametrized.
type LineMode uint8

const (
	Invalid LineMode = iota
	Horizontal
	Vertical
	Diagonal
)

// Line is a bounded 2D segment. Only the X and Y components of the
// vectors it takes part in are used.
//
// The segment is stored as a bound range [min, max] along one axis plus a
// mode-specific equation. reverse is set when the first endpoint had the
// larger bound coordinate, so progress runs 0 → 1 from that endpoint.
type Line struct {
	mode     LineMode
	y        float64 // Horizontal
	x        float64 // Vertical
	m, b     float64 // Diagonal: y = m*x + b
	boundByX bool    // Diagonal
	min, max float64
	reverse  bool
}

// InvalidLine returns the degenerate line.
func InvalidLine() Line {
	return Line{}
}

// NewLine builds the line through a and b. The mode is chosen by comparing
// the change along each axis; diagonals are bounded along the axis of
// greater change.
func NewLine(a, b mathutil.Vec3) Line {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	adx, ady := math.Abs(dx), math.Abs(dy)

	switch {
	case adx <= mathutil.Epsilon && ady <= mathutil.Epsilon:
		return InvalidLine()
	case ady <= mathutil.Epsilon:
		l := Line{mode: Horizontal, y: b[1]}
		l.bound(a[0], b[0])
		return l
	case adx <= mathutil.Epsilon:
		l := Line{mode: Vertical, x: b[0]}
		l.bound(a[1], b[1])
		return l
	}

	m := dy / dx
	l := Line{
		mode:     Diagonal,
		m:        m,
		b:        b[1] - m*b[0],
		boundByX: adx >= ady,
	}
	if l.boundByX {
		l.bound(a[0], b[0])
	} else {
		l.bound(a[1], b[1])
	}
	return l
}

func (l *Line) bound(first, second float64) {
	l.min = math.Min(first, second)
	l.max = math.Max(first, second)
	l.reverse = first == l.max
}

func (l Line) Mode() LineMode { return l.mode }

// Bound returns the coordinate of p along the line's bounding axis, or NaN
// for an invalid line.
func (l Line) Bound(p mathutil.Vec3) float64 {
	switch l.mode {
	case Horizontal:
		return p[0]
	case Vertical:
		return p[1]
	case Diagonal:
		if l.boundByX {
			return p[0]
		}
		return p[1]
	}
	return math.NaN()
}

func (l Line) InBounds(p mathutil.Vec3) bool {
	bound := l.Bound(p)
	return bound >= l.min && bound <= l.max
}

// Snap projects p perpendicularly onto the (unbounded) line. It reports
// false for an invalid line, leaving p unchanged.
func (l Line) Snap(p mathutil.Vec3) (mathutil.Vec3, bool) {
	switch l.mode {
	case Horizontal:
		p[1] = l.y
	case Vertical:
		p[0] = l.x
	case Diagonal:
		nm := -1 / l.m
		nb := p[1] - nm*p[0]
		nx := (nb - l.b) / (l.m - nm)
		p[0] = nx
		p[1] = l.m*nx + l.b
	default:
		return p, false
	}
	return p, true
}

// Progress returns how far p lies along the segment: 0 at the first
// endpoint, 1 at the second. Values outside [0, 1] are past the ends.
func (l Line) Progress(p mathutil.Vec3) float64 {
	t := (l.Bound(p) - l.min) / (l.max - l.min)
	if l.reverse {
		t = 1 - t
	}
	return t
}

// PointAt returns the point at progress t along the segment, the inverse of
// Progress. The Z component is zero.
func (l Line) PointAt(t float64) mathutil.Vec3 {
	if l.reverse {
		t = 1 - t
	}
	bound := l.min + (l.max-l.min)*t
	switch l.mode {
	case Horizontal:
		return mathutil.Vec3{bound, l.y, 0}
	case Vertical:
		return mathutil.Vec3{l.x, bound, 0}
	case Diagonal:
		if l.boundByX {
			return mathutil.Vec3{bound, l.m*bound + l.b, 0}
		}
		return mathutil.Vec3{(bound - l.b) / l.m, bound, 0}
	}
	return mathutil.Vec3{math.NaN(), math.NaN(), 0}
}

// DistSqr returns the squared distance from p to its projection on the
// line, or NaN for an invalid line. It is meant for comparisons only.
func (l Line) DistSqr(p mathutil.Vec3) float64 {
	snapped, ok := l.Snap(p)
	if !ok {
		return math.NaN()
	}
	d := snapped.Sub(p)
	return d[0]*d[0] + d[1]*d[1]
}

// LengthSqr returns the squared length of the bounded segment.
func (l Line) LengthSqr() float64 {
	switch l.mode {
	case Horizontal, Vertical:
		d := l.max - l.min
		return d * d
	case Diagonal:
		var x1, y1, x2, y2 float64
		if l.boundByX {
			x1, x2 = l.min, l.max
			y1, y2 = l.m*x1+l.b, l.m*x2+l.b
		} else {
			y1, y2 = l.min, l.max
			x1, x2 = (y1-l.b)/l.m, (y2-l.b)/l.m
		}
		dx, dy := x2-x1, y2-y1
		return dx*dx + dy*dy
	}
	return 0
}
