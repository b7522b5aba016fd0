package raster

import (
	"fmt"
	"math"
	"strings"
)

// SampleMode selects the texture filter.
type SampleMode uint8

const (
	Nearest SampleMode = iota
	Bilinear
	Bicubic
)

func (m SampleMode) String() string {
	switch m {
	case Nearest:
		return "nearest"
	case Bilinear:
		return "bilinear"
	case Bicubic:
		return "bicubic"
	}
	return fmt.Sprintf("SampleMode(%d)", uint8(m))
}

// ParseSampleMode accepts "nearest", "bilinear" or "bicubic" in any case.
func ParseSampleMode(s string) (SampleMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nearest":
		return Nearest, nil
	case "bilinear":
		return Bilinear, nil
	case "bicubic":
		return Bicubic, nil
	}
	return 0, fmt.Errorf("raster: unknown interpolation %q (want nearest, bilinear or bicubic)", s)
}

// edgeU is where u and v at or past 1 are pulled back to, so the last
// texel row and column are still sampled from inside the image.
const edgeU = 1 - 1e-7

// Sample reads src at texture coordinates (u, v) in [0, 1]. Canvases
// smaller than 2×2 and coordinates outside the image return opaque black.
func Sample(src Source, u, v float64, mode SampleMode) RGBA8 {
	w, h := src.Width(), src.Height()
	if w < 2 || h < 2 {
		return Black
	}
	if u >= 1 {
		u = edgeU
	}
	if v >= 1 {
		v = edgeU
	}
	us := u * float64(w-1)
	vs := v * float64(h-1)
	// NaN fails both comparisons.
	if !(us >= 0 && us < float64(w-1)) || !(vs >= 0 && vs < float64(h-1)) {
		return Black
	}

	x0, fx := math.Modf(us)
	y0, fy := math.Modf(vs)
	x, y := int(x0), int(y0)

	switch mode {
	case Nearest:
		if fx >= 0.5 {
			x++
		}
		if fy >= 0.5 {
			y++
		}
		return src.Pixel(x, y)

	case Bilinear:
		tl := src.Pixel(x, y).float()
		tr := src.Pixel(x+1, y).float()
		bl := src.Pixel(x, y+1).float()
		br := src.Pixel(x+1, y+1).float()
		top := lerpF(tl, tr, fx)
		bottom := lerpF(bl, br, fx)
		return lerpF(top, bottom, fy).round()

	case Bicubic:
		var samples [16]rgbaF
		for j := 0; j < 4; j++ {
			sy := clampIndex(y+j-1, h)
			for i := 0; i < 4; i++ {
				samples[j*4+i] = src.Pixel(clampIndex(x+i-1, w), sy).float()
			}
		}
		var rows [4]rgbaF
		for j := range rows {
			s := samples[j*4 : j*4+4]
			rows[j] = cubicF(s[0], s[1], s[2], s[3], fx)
		}
		return cubicF(rows[0], rows[1], rows[2], rows[3], fy).round()
	}
	return Black
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
