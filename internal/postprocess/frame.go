package postprocess

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// VisibleBounds returns the smallest rectangle holding every pixel with
// non-zero alpha, or an empty rectangle for a fully transparent image.
func VisibleBounds(img *image.NRGBA) image.Rectangle {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := b.Min.X; x < b.Max.X; x++ {
			if row[(x-b.Min.X)*4+3] == 0 {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}
	if maxX < minX {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// Frame crops img to its visible pixels and scales the result so its
// longer side covers fill of a size×size transparent square, centered.
func Frame(img *image.NRGBA, size int, fill float64) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, size, size))
	vis := VisibleBounds(img)
	if vis.Empty() || size <= 0 {
		return out
	}
	if fill <= 0 || fill > 1 {
		fill = 1
	}

	scale := float64(size) * fill / math.Max(float64(vis.Dx()), float64(vis.Dy()))
	w := max(1, int(float64(vis.Dx())*scale+0.5))
	h := max(1, int(float64(vis.Dy())*scale+0.5))
	x0 := (size - w) / 2
	y0 := (size - h) / 2
	dst := image.Rect(x0, y0, x0+w, y0+h)

	scaled := image.NewRGBA(out.Rect)
	draw.CatmullRom.Scale(scaled, dst, premultiply(img.SubImage(vis).(*image.NRGBA)), vis, draw.Src, nil)
	return unpremultiply(scaled)
}
