package anim

import (
	"bufio"
	"compress/lzw"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/draw"
)

// FrameSink receives an animation one frame at a time. WriteHeader is
// called once before the first frame; Close ends the stream.
type FrameSink interface {
	WriteHeader(width, height int) error
	WriteFrame(img image.Image, delay int) error
	Close() error
}

const (
	transparentIndex = 0
	alphaCutoff      = 128

	disposeBackground = 2
)

var errGIFClosed = errors.New("anim: gif writer closed")

// GIFWriter streams a looping GIF89a. Each frame carries its own color
// table, so nothing but the frame being written is held in memory.
type GIFWriter struct {
	w      *bufio.Writer
	dither bool

	width, height int
	started       bool
	closed        bool
	frames        int
	err           error
}

// NewGIFWriter wraps w. When dither is set, frames with more colors than a
// local table can hold are error-diffused onto the fallback palette.
func NewGIFWriter(w io.Writer, dither bool) *GIFWriter {
	return &GIFWriter{w: bufio.NewWriter(w), dither: dither}
}

// Frames returns the number of frames written so far.
func (g *GIFWriter) Frames() int { return g.frames }

func (g *GIFWriter) WriteHeader(width, height int) error {
	if g.err != nil {
		return g.err
	}
	if g.started {
		return errors.New("anim: gif header already written")
	}
	if width < 1 || height < 1 || width > 0xffff || height > 0xffff {
		return fmt.Errorf("anim: gif size %dx%d out of range", width, height)
	}
	g.width, g.height = width, height
	g.started = true

	g.write([]byte("GIF89a"))
	g.write([]byte{
		byte(width), byte(width >> 8),
		byte(height), byte(height >> 8),
		0x00, // no global color table
		0x00, // background index
		0x00, // aspect ratio
	})
	// Application extension: loop forever.
	g.write([]byte{0x21, 0xff, 0x0b})
	g.write([]byte("NETSCAPE2.0"))
	g.write([]byte{0x03, 0x01, 0x00, 0x00, 0x00})
	return g.err
}

func (g *GIFWriter) WriteFrame(img image.Image, delay int) error {
	if g.err != nil {
		return g.err
	}
	if g.closed {
		return errGIFClosed
	}
	b := img.Bounds()
	if !g.started {
		if err := g.WriteHeader(b.Dx(), b.Dy()); err != nil {
			return err
		}
	}
	if b.Dx() > g.width || b.Dy() > g.height {
		return fmt.Errorf("anim: frame %dx%d exceeds gif size %dx%d", b.Dx(), b.Dy(), g.width, g.height)
	}
	if delay < 0 {
		delay = 0
	}
	if delay > 0xffff {
		delay = 0xffff
	}

	pm := quantize(toNRGBA(img), g.dither)
	sizeBits := paletteSizeBits(len(pm.Palette))
	litWidth := sizeBits + 1
	if litWidth < 2 {
		litWidth = 2
	}

	// Graphic control extension.
	g.write([]byte{
		0x21, 0xf9, 0x04,
		disposeBackground<<2 | 0x01,
		byte(delay), byte(delay >> 8),
		transparentIndex,
		0x00,
	})

	// Image descriptor with a local color table.
	w, h := pm.Rect.Dx(), pm.Rect.Dy()
	g.write([]byte{
		0x2c,
		0x00, 0x00, 0x00, 0x00,
		byte(w), byte(w >> 8),
		byte(h), byte(h >> 8),
		0x80 | byte(sizeBits),
	})
	g.writeColorTable(pm.Palette, 1<<(sizeBits+1))

	g.write([]byte{byte(litWidth)})
	if g.err != nil {
		return g.err
	}
	bw := &blockWriter{w: g.w}
	lw := lzw.NewWriter(bw, lzw.LSB, litWidth)
	if _, err := lw.Write(pm.Pix); err != nil {
		lw.Close()
		g.err = fmt.Errorf("anim: gif frame %d: %w", g.frames, err)
		return g.err
	}
	if err := lw.Close(); err != nil {
		g.err = fmt.Errorf("anim: gif frame %d: %w", g.frames, err)
		return g.err
	}
	if err := bw.close(); err != nil {
		g.err = fmt.Errorf("anim: gif frame %d: %w", g.frames, err)
		return g.err
	}
	if err := g.w.Flush(); err != nil {
		g.err = fmt.Errorf("anim: gif frame %d: %w", g.frames, err)
		return g.err
	}
	g.frames++
	return nil
}

// Close writes the trailer. It does not close the underlying writer.
func (g *GIFWriter) Close() error {
	if g.closed {
		return g.err
	}
	g.closed = true
	if g.err != nil {
		return g.err
	}
	if !g.started {
		return errors.New("anim: gif closed before header")
	}
	g.write([]byte{0x3b})
	if g.err == nil {
		if err := g.w.Flush(); err != nil {
			g.err = fmt.Errorf("anim: gif trailer: %w", err)
		}
	}
	return g.err
}

func (g *GIFWriter) write(p []byte) {
	if g.err != nil {
		return
	}
	if _, err := g.w.Write(p); err != nil {
		g.err = fmt.Errorf("anim: gif write: %w", err)
	}
}

func (g *GIFWriter) writeColorTable(p color.Palette, size int) {
	table := make([]byte, 3*size)
	for i, c := range p {
		r, gr, b, _ := c.RGBA()
		table[3*i] = byte(r >> 8)
		table[3*i+1] = byte(gr >> 8)
		table[3*i+2] = byte(b >> 8)
	}
	g.write(table)
}

// paletteSizeBits returns n such that 2^(n+1) entries hold the palette.
func paletteSizeBits(n int) int {
	bits := 0
	for 1<<(bits+1) < n {
		bits++
	}
	return bits
}

// blockWriter splits LZW output into length-prefixed sub-blocks of at most
// 255 bytes.
type blockWriter struct {
	w   *bufio.Writer
	buf [256]byte // buf[0] holds the block length
	n   int
	err error
}

func (b *blockWriter) Write(p []byte) (int, error) {
	total := len(p)
	for len(p) > 0 {
		if b.err != nil {
			return total - len(p), b.err
		}
		c := copy(b.buf[1+b.n:], p)
		b.n += c
		p = p[c:]
		if b.n == 255 {
			b.flush()
		}
	}
	return total, b.err
}

func (b *blockWriter) flush() {
	if b.n == 0 || b.err != nil {
		return
	}
	b.buf[0] = byte(b.n)
	_, b.err = b.w.Write(b.buf[:b.n+1])
	b.n = 0
}

func (b *blockWriter) close() error {
	b.flush()
	if b.err != nil {
		return b.err
	}
	return b.w.WriteByte(0x00)
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(n, n.Rect, img, b.Min, draw.Src)
	return n
}
