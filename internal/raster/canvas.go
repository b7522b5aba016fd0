// Package raster provides the pixel surfaces the renderer draws into and
// samples textures from.
package raster

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// Source is a readable pixel surface.
type Source interface {
	Width() int
	Height() int
	Pixel(x, y int) RGBA8
}

// Canvas is a writable pixel surface that can be persisted and exported as
// an encodable frame.
type Canvas interface {
	Source
	SetPixel(x, y int, c RGBA8)
	Fill(c RGBA8)
	Save(path string) error
	Image() *image.NRGBA
}

// ImageCanvas wraps a decoded image. Any source image is converted to NRGBA
// once, up front.
type ImageCanvas struct {
	img *image.NRGBA
}

// NewImageCanvas converts img to straight-alpha RGBA anchored at (0, 0).
func NewImageCanvas(img image.Image) *ImageCanvas {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return &ImageCanvas{img: n}
	}
	b := img.Bounds()
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(n, n.Rect, img, b.Min, draw.Src)
	return &ImageCanvas{img: n}
}

func (c *ImageCanvas) Width() int  { return c.img.Rect.Dx() }
func (c *ImageCanvas) Height() int { return c.img.Rect.Dy() }

func (c *ImageCanvas) Pixel(x, y int) RGBA8 {
	if !(image.Point{x, y}).In(c.img.Rect) {
		return Transparent
	}
	i := c.img.PixOffset(x, y)
	p := c.img.Pix[i : i+4 : i+4]
	return RGBA8{p[0], p[1], p[2], p[3]}
}

func (c *ImageCanvas) SetPixel(x, y int, col RGBA8) {
	if !(image.Point{x, y}).In(c.img.Rect) {
		return
	}
	i := c.img.PixOffset(x, y)
	p := c.img.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = col.R, col.G, col.B, col.A
}

// Fill stores col exactly in every pixel, row by row, since the image may
// be a sub-image with a wider stride.
func (c *ImageCanvas) Fill(col RGBA8) {
	w := c.img.Rect.Dx()
	if w == 0 {
		return
	}
	for y := c.img.Rect.Min.Y; y < c.img.Rect.Max.Y; y++ {
		i := c.img.PixOffset(c.img.Rect.Min.X, y)
		row := c.img.Pix[i : i+w*4 : i+w*4]
		row[0], row[1], row[2], row[3] = col.R, col.G, col.B, col.A
		for filled := 4; filled < len(row); filled *= 2 {
			copy(row[filled:], row[:filled])
		}
	}
}

func (c *ImageCanvas) Image() *image.NRGBA { return c.img }

func (c *ImageCanvas) Save(path string) error {
	return saveImage(path, c.img)
}

func (c *ImageCanvas) String() string {
	return fmt.Sprintf("ImageCanvas(%d, %d)", c.Width(), c.Height())
}

// saveImage writes img to path, picking the encoder from the extension.
func saveImage(path string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".webp" && ext != ".png" {
		return fmt.Errorf("raster: save %s: unsupported extension %q", path, ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: save %s: %w", path, err)
	}
	defer f.Close()

	switch ext {
	case ".webp":
		err = nativewebp.Encode(f, img, nil)
	case ".png":
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("raster: encode %s: %w", path, err)
	}
	return f.Close()
}
