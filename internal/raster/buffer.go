package raster

import "image"

// BufferCanvas is an owned in-memory canvas: a flat RGBA buffer of exactly
// width×height×4 bytes. Out-of-range reads return Transparent and
// out-of-range writes are dropped.
type BufferCanvas struct {
	w, h int
	pix  []uint8 // RGBA interleaved, len = w*h*4
}

// NewBufferCanvas allocates a zeroed (transparent) canvas.
func NewBufferCanvas(w, h int) *BufferCanvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &BufferCanvas{w: w, h: h, pix: make([]uint8, w*h*4)}
}

func (b *BufferCanvas) Width() int  { return b.w }
func (b *BufferCanvas) Height() int { return b.h }

func (b *BufferCanvas) offset(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return 0, false
	}
	return (y*b.w + x) * 4, true
}

func (b *BufferCanvas) Pixel(x, y int) RGBA8 {
	i, ok := b.offset(x, y)
	if !ok {
		return Transparent
	}
	p := b.pix[i : i+4 : i+4]
	return RGBA8{p[0], p[1], p[2], p[3]}
}

func (b *BufferCanvas) SetPixel(x, y int, c RGBA8) {
	i, ok := b.offset(x, y)
	if !ok {
		return
	}
	p := b.pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

func (b *BufferCanvas) Fill(c RGBA8) {
	if len(b.pix) == 0 {
		return
	}
	b.pix[0], b.pix[1], b.pix[2], b.pix[3] = c.R, c.G, c.B, c.A
	for filled := 4; filled < len(b.pix); filled *= 2 {
		copy(b.pix[filled:], b.pix[:filled])
	}
}

// Image returns an NRGBA view sharing the canvas memory.
func (b *BufferCanvas) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.pix,
		Stride: b.w * 4,
		Rect:   image.Rect(0, 0, b.w, b.h),
	}
}

func (b *BufferCanvas) Save(path string) error {
	return saveImage(path, b.Image())
}
