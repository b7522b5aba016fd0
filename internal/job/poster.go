package job

import (
	"image"

	"golang.org/x/image/draw"

	"blot/internal/anim"
	"blot/internal/postprocess"
	"blot/internal/raster"
)

// posterSink forwards frames to next and keeps a copy of the first one.
type posterSink struct {
	next  anim.FrameSink
	first *image.NRGBA
}

func (p *posterSink) WriteHeader(w, h int) error { return p.next.WriteHeader(w, h) }

func (p *posterSink) WriteFrame(img image.Image, delay int) error {
	if p.first == nil {
		b := img.Bounds()
		p.first = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(p.first, p.first.Rect, img, b.Min, draw.Src)
	}
	return p.next.WriteFrame(img, delay)
}

func (p *posterSink) Close() error { return p.next.Close() }

// savePoster writes the captured frame to path. A fill in (0, 1] reframes
// the visible shape to cover that share of the image first.
func (p *posterSink) savePoster(path string, fill float64) error {
	img := p.first
	if img == nil {
		return nil
	}
	if fill > 0 {
		img = postprocess.Frame(img, img.Rect.Dx(), fill)
	}
	return raster.NewImageCanvas(img).Save(path)
}
