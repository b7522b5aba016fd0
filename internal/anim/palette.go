package anim

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Fallback palette levels per channel: 6×7×6 = 252 colors, leaving room
// for the transparent entry.
const (
	levelsR = 6
	levelsG = 7
	levelsB = 6
)

var cubePalette = func() color.Palette {
	p := make(color.Palette, 0, 1+levelsR*levelsG*levelsB)
	p = append(p, color.NRGBA{})
	for r := 0; r < levelsR; r++ {
		for g := 0; g < levelsG; g++ {
			for b := 0; b < levelsB; b++ {
				p = append(p, color.NRGBA{
					R: level(r, levelsR),
					G: level(g, levelsG),
					B: level(b, levelsB),
					A: 255,
				})
			}
		}
	}
	return p
}()

func level(i, n int) uint8 {
	return uint8((i*255 + (n-1)/2) / (n - 1))
}

func nearestLevel(v uint8, n int) int {
	return (int(v)*(n-1) + 127) / 255
}

func cubeIndex(r, g, b uint8) uint8 {
	ri := nearestLevel(r, levelsR)
	gi := nearestLevel(g, levelsG)
	bi := nearestLevel(b, levelsB)
	return uint8(1 + (ri*levelsG+gi)*levelsB + bi)
}

// quantize maps img onto a palette whose first entry is transparent.
// Frames with at most 255 distinct opaque colors keep them exactly;
// others fall back to a fixed color cube.
func quantize(img *image.NRGBA, dither bool) *image.Paletted {
	if pm := exactPalette(img); pm != nil {
		return pm
	}

	rect := image.Rect(0, 0, img.Rect.Dx(), img.Rect.Dy())
	pm := image.NewPaletted(rect, cubePalette)
	if dither {
		draw.FloydSteinberg.Draw(pm, rect, img, img.Rect.Min)
	}
	for y := 0; y < rect.Dy(); y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+rect.Dx()*4]
		dst := pm.Pix[y*pm.Stride : y*pm.Stride+rect.Dx()]
		for x := range dst {
			p := src[x*4 : x*4+4 : x*4+4]
			switch {
			case p[3] < alphaCutoff:
				dst[x] = transparentIndex
			case !dither || dst[x] == transparentIndex:
				dst[x] = cubeIndex(p[0], p[1], p[2])
			}
		}
	}
	return pm
}

func exactPalette(img *image.NRGBA) *image.Paletted {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	index := make(map[uint32]uint8, 256)
	pal := color.Palette{color.NRGBA{}}
	pix := make([]uint8, w*h)

	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			p := row[x*4 : x*4+4 : x*4+4]
			if p[3] < alphaCutoff {
				continue
			}
			key := uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
			i, ok := index[key]
			if !ok {
				if len(pal) == 256 {
					return nil
				}
				i = uint8(len(pal))
				index[key] = i
				pal = append(pal, color.NRGBA{p[0], p[1], p[2], 255})
			}
			pix[y*w+x] = i
		}
	}
	return &image.Paletted{
		Pix:     pix,
		Stride:  w,
		Rect:    image.Rect(0, 0, w, h),
		Palette: pal,
	}
}
