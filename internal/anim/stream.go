package anim

import (
	"image"
	"image/color"

	"blot/internal/raster"
)

// StreamCanvas is the encoder's canvas as seen by drawing code. Reads go
// straight to the owned canvas; writes go through Encoder.Write and are
// dropped outside a frame. It also satisfies draw.Image, so image/draw and
// x/image/font can paint onto the frame being built.
type StreamCanvas struct {
	enc *Encoder
}

var _ raster.Canvas = (*StreamCanvas)(nil)

func (s *StreamCanvas) Width() int  { return s.enc.canvas.Width() }
func (s *StreamCanvas) Height() int { return s.enc.canvas.Height() }

func (s *StreamCanvas) Pixel(x, y int) raster.RGBA8 { return s.enc.canvas.Pixel(x, y) }

func (s *StreamCanvas) SetPixel(x, y int, c raster.RGBA8) { s.enc.Write(SetPixel(x, y, c)) }

func (s *StreamCanvas) Fill(c raster.RGBA8) { s.enc.Write(Fill(c)) }

func (s *StreamCanvas) Save(path string) error { return s.enc.canvas.Save(path) }

// Image returns the owned canvas's pixels. Writing through it bypasses
// the encoder's frame window.
func (s *StreamCanvas) Image() *image.NRGBA { return s.enc.canvas.Image() }

func (s *StreamCanvas) ColorModel() color.Model { return color.NRGBAModel }

func (s *StreamCanvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.Width(), s.Height())
}

func (s *StreamCanvas) At(x, y int) color.Color { return s.Pixel(x, y).NRGBA() }

func (s *StreamCanvas) Set(x, y int, c color.Color) { s.SetPixel(x, y, raster.FromColor(c)) }
