package geom

import (
	"math"
	"testing"

	"blot/internal/mathutil"
)

func square(size float64) Quad {
	return Quad{
		TL: mathutil.Vec3{0, 0, 0},
		TR: mathutil.Vec3{size, 0, 0},
		BL: mathutil.Vec3{0, size, 0},
		BR: mathutil.Vec3{size, size, 0},
	}
}

func TestUVSquareCenter(t *testing.T) {
	u, v, ok := square(10).UV(mathutil.Vec3{5, 5, 0})
	if !ok {
		t.Fatal("UV() ok = false, want true")
	}
	if math.Abs(u-0.5) > 0.01 || math.Abs(v-0.5) > 0.01 {
		t.Errorf("UV() = (%v, %v), want (0.5, 0.5)", u, v)
	}
}

func TestUVRoundTrip(t *testing.T) {
	quads := map[string]Quad{
		"square": square(256),
		"skewed": {
			TL: mathutil.Vec3{100, 100, 0},
			TR: mathutil.Vec3{400, 120, 0},
			BL: mathutil.Vec3{90, 380, 0},
			BR: mathutil.Vec3{420, 400, 0},
		},
		"trapezoid": {
			TL: mathutil.Vec3{150, 50, 0},
			TR: mathutil.Vec3{250, 50, 0},
			BL: mathutil.Vec3{50, 300, 0},
			BR: mathutil.Vec3{350, 300, 0},
		},
	}
	samples := []float64{0.05, 0.2, 0.35, 0.5, 0.65, 0.8, 0.95}

	for name, q := range quads {
		t.Run(name, func(t *testing.T) {
			for _, u0 := range samples {
				for _, v0 := range samples {
					p := q.ULine(u0).PointAt(v0)
					u, v, ok := q.UV(p)
					if !ok {
						t.Errorf("UV(%v) for (%v, %v): ok = false", p, u0, v0)
						continue
					}
					if math.Abs(u-u0) >= 0.01 || math.Abs(v-v0) >= 0.01 {
						t.Errorf("UV(%v) = (%v, %v), want (%v, %v)", p, u, v, u0, v0)
					}
				}
			}
		})
	}
}

func TestUVOutside(t *testing.T) {
	q := square(100)
	points := []mathutil.Vec3{
		{50, 150, 0},
		{50, -20, 0},
		{300, 50, 0},
	}
	for _, p := range points {
		if u, v, ok := q.UV(p); ok {
			t.Errorf("UV(%v) = (%v, %v, true), want ok = false", p, u, v)
		}
	}
}

func TestUVDegenerateQuad(t *testing.T) {
	pt := mathutil.Vec3{4, 4, 0}
	q := Quad{TL: pt, TR: pt, BL: pt, BR: pt}
	// Every u-line is invalid; the search must terminate and fail.
	if _, _, ok := q.UV(pt); ok {
		t.Error("UV() on a collapsed quad ok = true, want false")
	}
}

func TestIntBounds(t *testing.T) {
	q := Quad{
		TL: mathutil.Vec3{1.2, 3.7, 0},
		TR: mathutil.Vec3{9.1, 2.5, 0},
		BL: mathutil.Vec3{0.5, 8, 0},
		BR: mathutil.Vec3{7, 11.01, 0},
	}
	x0, y0, x1, y1 := q.IntBounds()
	if x0 != 0 || y0 != 2 || x1 != 10 || y1 != 12 {
		t.Errorf("IntBounds() = (%d, %d, %d, %d), want (0, 2, 10, 12)", x0, y0, x1, y1)
	}
}

func TestCompareDepth(t *testing.T) {
	near := square(1)
	far := square(1).Map(func(v mathutil.Vec3) mathutil.Vec3 { return v.Add(mathutil.Vec3{0, 0, 10}) })

	if got := CompareDepth(near, far); got >= 0 {
		t.Errorf("CompareDepth(near, far) = %d, want < 0", got)
	}
	if got := CompareDepth(far, near); got <= 0 {
		t.Errorf("CompareDepth(far, near) = %d, want > 0", got)
	}
	if got := CompareDepth(near, near); got != 0 {
		t.Errorf("CompareDepth(near, near) = %d, want 0", got)
	}
}

func TestTransformedRoundTrip(t *testing.T) {
	tr := mathutil.NewTransform()
	tr.Translate(mathutil.Vec3{1, -2, 5})
	tr.Rotate(mathutil.QuatFromEuler(0.3, 1.1, -0.4))
	tr.ScaleUniform(2)

	q := square(3)
	placed := q.Transformed(tr)
	if placed.TL.FuzzyEquals(q.TL) {
		t.Fatal("Transformed() left TL in place")
	}
	back := placed.InverseTransformed(tr)
	for i, c := range back.Corners() {
		if want := q.Corners()[i]; !c.FuzzyEquals(want) {
			t.Errorf("corner %d = %v, want %v", i, c, want)
		}
	}
}
