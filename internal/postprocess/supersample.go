// Package postprocess resizes and frames rendered images.
package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample shrinks img to w×h with Catmull-Rom filtering on
// premultiplied alpha, so transparent pixels do not bleed dark fringes into
// the edges of the shape. Images already within w×h are returned as is.
func Downsample(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= w && b.Dy() <= h {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Rect, premultiply(img), b, draw.Src, nil)
	return unpremultiply(dst)
}

// eachPixel calls fn with the 4-byte pixels at matching positions of two
// w×h pixel buffers, each starting at its image's top-left corner.
func eachPixel(dst []uint8, dstStride int, src []uint8, srcStride, w, h int, fn func(d, s []uint8)) {
	for y := 0; y < h; y++ {
		drow := dst[y*dstStride : y*dstStride+w*4]
		srow := src[y*srcStride : y*srcStride+w*4]
		for x := 0; x < len(drow); x += 4 {
			fn(drow[x:x+4:x+4], srow[x:x+4:x+4])
		}
	}
}

func premultiply(img *image.NRGBA) *image.RGBA {
	out := image.NewRGBA(img.Rect)
	eachPixel(out.Pix, out.Stride, img.Pix, img.Stride, img.Rect.Dx(), img.Rect.Dy(), func(d, s []uint8) {
		a := uint32(s[3])
		for c := 0; c < 3; c++ {
			d[c] = uint8((uint32(s[c])*a + 127) / 255)
		}
		d[3] = s[3]
	})
	return out
}

func unpremultiply(img *image.RGBA) *image.NRGBA {
	out := image.NewNRGBA(img.Rect)
	eachPixel(out.Pix, out.Stride, img.Pix, img.Stride, img.Rect.Dx(), img.Rect.Dy(), func(d, s []uint8) {
		a := uint32(s[3])
		d[3] = s[3]
		if a == 0 {
			return
		}
		for c := 0; c < 3; c++ {
			d[c] = uint8(min(255, (uint32(s[c])*255+a/2)/a))
		}
	})
	return out
}
