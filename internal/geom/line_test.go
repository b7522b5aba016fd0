package geom

import (
	"math"
	"testing"

	"blot/internal/mathutil"
)

func TestNewLineModes(t *testing.T) {
	tests := []struct {
		name string
		a, b mathutil.Vec3
		want LineMode
	}{
		{"point", mathutil.Vec3{3, 3, 0}, mathutil.Vec3{3, 3, 9}, Invalid},
		{"horizontal", mathutil.Vec3{0, 2, 0}, mathutil.Vec3{5, 2, 0}, Horizontal},
		{"vertical", mathutil.Vec3{1, 0, 0}, mathutil.Vec3{1, -4, 0}, Vertical},
		{"shallow", mathutil.Vec3{0, 0, 0}, mathutil.Vec3{10, 1, 0}, Diagonal},
		{"steep", mathutil.Vec3{0, 0, 0}, mathutil.Vec3{-1, 10, 0}, Diagonal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewLine(tt.a, tt.b).Mode(); got != tt.want {
				t.Errorf("NewLine().Mode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiagonalBoundAxis(t *testing.T) {
	// A steep line with a negative x step must still be bounded along y.
	l := NewLine(mathutil.Vec3{0, 0, 0}, mathutil.Vec3{-1, 10, 0})
	if got := l.Bound(mathutil.Vec3{7, 3, 0}); got != 3 {
		t.Errorf("Bound() = %v, want 3 (bounded by y)", got)
	}
	l = NewLine(mathutil.Vec3{0, 0, 0}, mathutil.Vec3{10, -1, 0})
	if got := l.Bound(mathutil.Vec3{7, 3, 0}); got != 7 {
		t.Errorf("Bound() = %v, want 7 (bounded by x)", got)
	}
}

func TestProgressReverse(t *testing.T) {
	fwd := NewLine(mathutil.Vec3{0, 0, 0}, mathutil.Vec3{10, 0, 0})
	rev := NewLine(mathutil.Vec3{10, 0, 0}, mathutil.Vec3{0, 0, 0})
	p := mathutil.Vec3{2.5, 0, 0}
	if got := fwd.Progress(p); got != 0.25 {
		t.Errorf("Progress() = %v, want 0.25", got)
	}
	if got := rev.Progress(p); got != 0.75 {
		t.Errorf("reversed Progress() = %v, want 0.75", got)
	}
}

func TestPointAtInvertsProgress(t *testing.T) {
	lines := []Line{
		NewLine(mathutil.Vec3{0, 1, 0}, mathutil.Vec3{8, 1, 0}),
		NewLine(mathutil.Vec3{2, 9, 0}, mathutil.Vec3{2, -3, 0}),
		NewLine(mathutil.Vec3{5, 1, 0}, mathutil.Vec3{-3, 4, 0}),
		NewLine(mathutil.Vec3{1, 20, 0}, mathutil.Vec3{3, 2, 0}),
	}
	for i, l := range lines {
		for _, tp := range []float64{0, 0.2, 0.5, 1} {
			p := l.PointAt(tp)
			if got := l.Progress(p); math.Abs(got-tp) > 1e-9 {
				t.Errorf("line %d: Progress(PointAt(%v)) = %v", i, tp, got)
			}
			if !l.InBounds(p) {
				t.Errorf("line %d: InBounds(PointAt(%v)) = false", i, tp)
			}
		}
	}
}

func TestSnapAndDistSqr(t *testing.T) {
	l := NewLine(mathutil.Vec3{0, 0, 0}, mathutil.Vec3{4, 4, 0})
	p := mathutil.Vec3{0, 2, 0}
	snapped, ok := l.Snap(p)
	if !ok {
		t.Fatal("Snap() ok = false, want true")
	}
	if !snapped.FuzzyEquals(mathutil.Vec3{1, 1, 0}) {
		t.Errorf("Snap() = %v, want (1, 1, 0)", snapped)
	}
	if got := l.DistSqr(p); math.Abs(got-2) > 1e-9 {
		t.Errorf("DistSqr() = %v, want 2", got)
	}

	h := NewLine(mathutil.Vec3{0, 3, 0}, mathutil.Vec3{1, 3, 0})
	if got := h.DistSqr(mathutil.Vec3{100, 5, 0}); got != 4 {
		t.Errorf("horizontal DistSqr() = %v, want 4", got)
	}
}

func TestInvalidLine(t *testing.T) {
	l := InvalidLine()
	if got := l.DistSqr(mathutil.Vec3{1, 2, 0}); !math.IsNaN(got) {
		t.Errorf("DistSqr() = %v, want NaN", got)
	}
	if _, ok := l.Snap(mathutil.Vec3{}); ok {
		t.Error("Snap() ok = true, want false")
	}
	if l.InBounds(mathutil.Vec3{}) {
		t.Error("InBounds() = true, want false")
	}
}

func TestLengthSqr(t *testing.T) {
	tests := []struct {
		a, b mathutil.Vec3
		want float64
	}{
		{mathutil.Vec3{0, 0, 0}, mathutil.Vec3{3, 4, 0}, 25},
		{mathutil.Vec3{0, 0, 0}, mathutil.Vec3{-4, 3, 0}, 25},
		{mathutil.Vec3{1, 1, 0}, mathutil.Vec3{1, 7, 0}, 36},
		{mathutil.Vec3{2, 2, 0}, mathutil.Vec3{2, 2, 0}, 0},
	}
	for _, tt := range tests {
		if got := NewLine(tt.a, tt.b).LengthSqr(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NewLine(%v, %v).LengthSqr() = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
