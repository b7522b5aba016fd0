package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const captionMargin = 2

var captionShadow = color.NRGBA{0, 0, 0, 160}

// Caption is a line of text stamped into the bottom-left corner of every
// frame. The glyphs are rasterized once at the font's native size and
// scaled up with nearest-neighbor so they stay crisp after supersampling.
type Caption struct {
	img   *image.NRGBA
	scale int
}

// NewCaption rasterizes text with basicfont. It returns nil for empty text.
func NewCaption(text string, scale int) *Caption {
	if text == "" {
		return nil
	}
	if scale < 1 {
		scale = 1
	}
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	m := face.Metrics()
	height := (m.Ascent + m.Descent).Ceil()

	// One extra pixel right and down for the drop shadow.
	img := image.NewNRGBA(image.Rect(0, 0, width+1, height+1))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(captionShadow),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(1), Y: m.Ascent + fixed.I(1)},
	}
	d.DrawString(text)
	d.Src = image.White
	d.Dot = fixed.Point26_6{X: 0, Y: m.Ascent}
	d.DrawString(text)

	return &Caption{img: img, scale: scale}
}

// Bounds returns where the caption lands on a canvas of the given height.
func (c *Caption) Bounds(canvasHeight int) image.Rectangle {
	w := c.img.Rect.Dx() * c.scale
	h := c.img.Rect.Dy() * c.scale
	m := captionMargin * c.scale
	return image.Rect(m, canvasHeight-m-h, m+w, canvasHeight-m)
}

// Draw composites the caption over dst.
func (c *Caption) Draw(dst draw.Image) {
	r := c.Bounds(dst.Bounds().Dy()).Add(dst.Bounds().Min)
	draw.NearestNeighbor.Scale(dst, r, c.img, c.img.Rect, draw.Over, nil)
}
