package raster

import (
	"testing"
)

// gradient fills an w×h canvas with a distinct color per pixel.
func gradient(w, h int) *BufferCanvas {
	c := NewBufferCanvas(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c.SetPixel(x, y, RGBA8{uint8(x * 30), uint8(y * 30), uint8(x*7 + y*11), 255})
		}
	}
	return c
}

// boundsChecked fails the test on any read outside the canvas.
type boundsChecked struct {
	t *testing.T
	*BufferCanvas
}

func (b boundsChecked) Pixel(x, y int) RGBA8 {
	if x < 0 || y < 0 || x >= b.Width() || y >= b.Height() {
		b.t.Fatalf("Pixel(%d, %d) outside %dx%d canvas", x, y, b.Width(), b.Height())
	}
	return b.BufferCanvas.Pixel(x, y)
}

func TestParseSampleMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SampleMode
		wantErr bool
	}{
		{"nearest", Nearest, false},
		{"Bilinear", Bilinear, false},
		{" bicubic ", Bicubic, false},
		{"trilinear", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseSampleMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSampleMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSampleMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSampleNearestExact(t *testing.T) {
	c := gradient(6, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 6; x++ {
			u := float64(x) / 5
			v := float64(y) / 4
			if got, want := Sample(c, u, v, Nearest), c.Pixel(x, y); got != want {
				t.Errorf("Sample(%v, %v, Nearest) = %v, want pixel (%d, %d) = %v", u, v, got, x, y, want)
			}
		}
	}
}

func TestSampleBilinear(t *testing.T) {
	c := NewBufferCanvas(2, 2)
	c.SetPixel(0, 0, RGBA8{0, 0, 0, 255})
	c.SetPixel(1, 0, RGBA8{100, 0, 0, 255})
	c.SetPixel(0, 1, RGBA8{0, 200, 0, 255})
	c.SetPixel(1, 1, RGBA8{100, 200, 0, 255})

	got := Sample(c, 0.5, 0.5, Bilinear)
	want := RGBA8{50, 100, 0, 255}
	if got != want {
		t.Errorf("Sample(0.5, 0.5, Bilinear) = %v, want %v", got, want)
	}
	got = Sample(c, 0.25, 0, Bilinear)
	want = RGBA8{25, 0, 0, 255}
	if got != want {
		t.Errorf("Sample(0.25, 0, Bilinear) = %v, want %v", got, want)
	}
}

func TestSampleBicubicEdge(t *testing.T) {
	c := boundsChecked{t, gradient(8, 8)}
	first := Sample(c, 0.999, 0.999, Bicubic)
	for i := 0; i < 3; i++ {
		if got := Sample(c, 0.999, 0.999, Bicubic); got != first {
			t.Fatalf("Sample(0.999, 0.999, Bicubic) = %v, then %v", first, got)
		}
	}
	// Corners and the clamped far edge stay inside the buffer too.
	for _, uv := range [][2]float64{{0, 0}, {1, 1}, {0, 1}, {1, 0}, {0.01, 0.99}} {
		Sample(c, uv[0], uv[1], Bicubic)
	}
}

func TestSampleBicubicFlat(t *testing.T) {
	c := NewBufferCanvas(4, 4)
	c.Fill(RGBA8{10, 20, 30, 255})
	if got := Sample(c, 0.37, 0.81, Bicubic); got != (RGBA8{10, 20, 30, 255}) {
		t.Errorf("Sample() on a flat canvas = %v, want (10, 20, 30, 255)", got)
	}
}

func TestSampleFallback(t *testing.T) {
	tests := []struct {
		name string
		src  Source
		u, v float64
	}{
		{"1x1", NewBufferCanvas(1, 1), 0.5, 0.5},
		{"1 wide", NewBufferCanvas(1, 8), 0.5, 0.5},
		{"negative u", gradient(4, 4), -0.1, 0.5},
		{"negative v", gradient(4, 4), 0.5, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, mode := range []SampleMode{Nearest, Bilinear, Bicubic} {
				if got := Sample(tt.src, tt.u, tt.v, mode); got != Black {
					t.Errorf("Sample(%v, %v, %v) = %v, want black", tt.u, tt.v, mode, got)
				}
			}
		})
	}
}
