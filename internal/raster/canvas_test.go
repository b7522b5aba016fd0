package raster

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/HugoSmits86/nativewebp"
)

func TestBufferCanvasPixels(t *testing.T) {
	c := NewBufferCanvas(3, 2)
	c.Fill(RGBA8{1, 2, 3, 4})
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if got := c.Pixel(x, y); got != (RGBA8{1, 2, 3, 4}) {
				t.Fatalf("Pixel(%d, %d) after Fill = %v", x, y, got)
			}
		}
	}

	c.SetPixel(2, 1, White)
	if got := c.Pixel(2, 1); got != White {
		t.Errorf("Pixel(2, 1) = %v, want white", got)
	}
	c.SetPixel(3, 0, Black)
	c.SetPixel(-1, 0, Black)
	if got := c.Pixel(5, 5); got != Transparent {
		t.Errorf("Pixel(5, 5) = %v, want transparent", got)
	}

	img := c.Image()
	if got := img.NRGBAAt(2, 1); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("Image().NRGBAAt(2, 1) = %v, want white", got)
	}
	// The view shares memory with the canvas.
	c.SetPixel(0, 0, Black)
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("Image() is not a live view: %v", got)
	}
}

func TestBufferCanvasFillOddSize(t *testing.T) {
	c := NewBufferCanvas(7, 3)
	c.Fill(RGBA8{9, 8, 7, 6})
	if got := c.Pixel(6, 2); got != (RGBA8{9, 8, 7, 6}) {
		t.Errorf("Pixel(6, 2) after Fill = %v", got)
	}
	NewBufferCanvas(0, 0).Fill(White)
}

func TestImageCanvasConverts(t *testing.T) {
	src := image.NewGray(image.Rect(10, 10, 14, 13))
	src.SetGray(11, 12, color.Gray{Y: 200})
	c := NewImageCanvas(src)
	if c.Width() != 4 || c.Height() != 3 {
		t.Fatalf("size = %dx%d, want 4x3", c.Width(), c.Height())
	}
	if got := c.Pixel(1, 2); got != (RGBA8{200, 200, 200, 255}) {
		t.Errorf("Pixel(1, 2) = %v, want (200, 200, 200, 255)", got)
	}
	c.Fill(RGBA8{5, 5, 5, 5})
	if got := c.Pixel(3, 0); got != (RGBA8{5, 5, 5, 5}) {
		t.Errorf("Pixel(3, 0) after Fill = %v", got)
	}
}

func TestImageCanvasFillExact(t *testing.T) {
	colors := []RGBA8{{5, 5, 5, 5}, {255, 0, 128, 1}, {10, 200, 30, 127}, Transparent, White}
	for _, col := range colors {
		t.Run(col.String(), func(t *testing.T) {
			c := NewImageCanvas(image.NewNRGBA(image.Rect(0, 0, 5, 3)))
			c.Fill(col)
			for y := 0; y < c.Height(); y++ {
				for x := 0; x < c.Width(); x++ {
					if got := c.Pixel(x, y); got != col {
						t.Fatalf("Pixel(%d, %d) after Fill = %v, want %v", x, y, got, col)
					}
				}
			}
		})
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	c := gradient(4, 4)

	webpPath := filepath.Join(dir, "frame.webp")
	if err := c.Save(webpPath); err != nil {
		t.Fatalf("Save(webp) error = %v", err)
	}
	f, err := os.Open(webpPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := nativewebp.DecodeConfig(f)
	if err != nil {
		t.Fatalf("DecodeConfig() error = %v", err)
	}
	if cfg.Width != 4 || cfg.Height != 4 {
		t.Errorf("saved webp = %dx%d, want 4x4", cfg.Width, cfg.Height)
	}

	if err := c.Save(filepath.Join(dir, "frame.png")); err != nil {
		t.Errorf("Save(png) error = %v", err)
	}
	if err := c.Save(filepath.Join(dir, "frame.bmp")); err == nil {
		t.Error("Save(bmp) error = nil, want unsupported extension")
	}
}

func TestShade(t *testing.T) {
	c := RGBA8{200, 101, 0, 128}
	if got := c.Shade(0.5); got != (RGBA8{100, 50, 0, 128}) {
		t.Errorf("Shade(0.5) = %v, want (100, 50, 0, 128)", got)
	}
	if got := c.Shade(2); got != (RGBA8{255, 202, 0, 128}) {
		t.Errorf("Shade(2) = %v, want (255, 202, 0, 128)", got)
	}
}
