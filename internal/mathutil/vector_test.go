package mathutil

import (
	"math"
	"testing"
)

func TestWeaveBroadcast(t *testing.T) {
	q := NewQuat(1, 2, 3, 4)
	v := Vec3{10, 20, 30}
	add := func(a, b float64) float64 { return a + b }

	tests := []struct {
		name string
		a, b Components
		want []float64
	}{
		{"quat+vec", q, v, []float64{1, 12, 23, 34}},
		{"vec+quat", v, q, []float64{1, 12, 23, 34}},
		{"vec+vec", v, Vec3{1, 1, 1}, []float64{11, 21, 31}},
		{"quat+quat", q, q, []float64{2, 4, 6, 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Weave(tt.a, tt.b, add)
			if len(got) != len(tt.want) {
				t.Fatalf("Weave() len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Weave()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWeaveKeepsOperandOrder(t *testing.T) {
	got := Weave(Vec3{1, 1, 1}, NewQuat(0, 4, 5, 6), func(a, b float64) float64 { return a - b })
	want := []float64{0, -3, -4, -5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Weave()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCombineQuatWithVec(t *testing.T) {
	q := NewQuat(5, 1, 2, 3)
	AddVector(&q, Vec3{1, 1, 1})
	if !q.FuzzyEquals(NewQuat(5, 2, 3, 4)) {
		t.Errorf("AddVector() = %v, want (5, 2, 3, 4)", q.Components())
	}

	// The scalar slot has no counterpart and multiplies against zero.
	MulVector(&q, Vec3{2, 2, 2})
	if !q.FuzzyEquals(NewQuat(0, 4, 6, 8)) {
		t.Errorf("MulVector() = %v, want (0, 4, 6, 8)", q.Components())
	}
}

func TestCombineVecWithQuat(t *testing.T) {
	v := Vec3{1, 2, 3}
	SubVector(&v, NewQuat(100, 1, 1, 1))
	if v != (Vec3{0, 1, 2}) {
		t.Errorf("SubVector() = %v, want (0, 1, 2)", v)
	}
}

func TestDivVectorZeroDivisor(t *testing.T) {
	v := Vec3{4, 6, 8}
	DivVector(&v, Vec3{2, 0, 4})
	if v != (Vec3{2, 6, 2}) {
		t.Errorf("DivVector() = %v, want (2, 6, 2)", v)
	}
}

func TestDivTinyDivisor(t *testing.T) {
	got := Vec3{5, 6, 7}.Mul(Vec3{1e-8, 2, 3}).Div(Vec3{1e-8, 2, 3})
	if got.Sub(Vec3{5, 6, 7}).Len() > 1e-9 {
		t.Errorf("Div() = %v, want (5, 6, 7)", got)
	}
}

func TestDotBroadcast(t *testing.T) {
	got := Dot(NewQuat(9, 1, 2, 3), Vec3{1, 1, 1})
	if got != 6 {
		t.Errorf("Dot() = %v, want 6", got)
	}
	if got := Dot(Vec3{1, 2, 3}, Vec3{4, 5, 6}); got != 32 {
		t.Errorf("Dot() = %v, want 32", got)
	}
}

func TestNormalizeGeneric(t *testing.T) {
	v := Vec3{3, 0, 4}
	Normalize(&v)
	if math.Abs(Norm(v)-1) > 1e-12 {
		t.Errorf("Norm() after Normalize = %v, want 1", Norm(v))
	}

	zero := Vec3{}
	Normalize(&zero)
	if zero != (Vec3{}) {
		t.Errorf("Normalize(zero) = %v, want zero", zero)
	}
}

func TestScalarOps(t *testing.T) {
	v := Vec3{1, 2, 3}
	AddScalar(&v, 1)
	MulScalar(&v, 2)
	DivScalar(&v, 4)
	Negate(&v)
	want := Vec3{-1, -1.5, -2}
	if !v.FuzzyEquals(want) {
		t.Errorf("scalar ops = %v, want %v", v, want)
	}
}

func TestFuzzyEqualsDimensions(t *testing.T) {
	if FuzzyEquals(Vec3{1, 0, 0}, NewQuat(1, 0, 0, 0)) {
		t.Error("FuzzyEquals() across dimensions = true, want false")
	}
	if !FuzzyEquals(Vec3{1, 2, 3}, Vec3{1, 2, 3 + Epsilon/2}) {
		t.Error("FuzzyEquals() within epsilon = false, want true")
	}
}

func TestVec3Basics(t *testing.T) {
	a := Vec3{1, 0, 0}
	b := Vec3{0, 1, 0}
	if got := a.Cross(b); got != (Vec3{0, 0, 1}) {
		t.Errorf("Cross() = %v, want (0, 0, 1)", got)
	}
	if got := Lerp(a, b, 0.25); !got.FuzzyEquals(Vec3{0.75, 0.25, 0}) {
		t.Errorf("Lerp() = %v, want (0.75, 0.25, 0)", got)
	}
	if got := (Vec3{2, 4, 6}).Div(Vec3{2, 0, 3}); got != (Vec3{1, 4, 2}) {
		t.Errorf("Div() = %v, want (1, 4, 2)", got)
	}
}
