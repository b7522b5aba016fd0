package raster

import (
	"fmt"
	"image/color"
	"math"
)

// RGBA8 is a straight (non-premultiplied) 8-bit color.
type RGBA8 struct {
	R, G, B, A uint8
}

var (
	Black       = RGBA8{0, 0, 0, 255}
	White       = RGBA8{255, 255, 255, 255}
	Transparent = RGBA8{}
)

func (c RGBA8) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", c.R, c.G, c.B, c.A)
}

// NRGBA converts to the image/color equivalent.
func (c RGBA8) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromColor converts any color.Color to straight 8-bit RGBA.
func FromColor(c color.Color) RGBA8 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA8{n.R, n.G, n.B, n.A}
}

// Shade multiplies the color channels by light and floors the result.
// Alpha is kept.
func (c RGBA8) Shade(light float64) RGBA8 {
	return RGBA8{
		R: floor255(float64(c.R) * light),
		G: floor255(float64(c.G) * light),
		B: floor255(float64(c.B) * light),
		A: c.A,
	}
}

// rgbaF carries a color through interpolation in floating point.
type rgbaF [4]float64

func (c RGBA8) float() rgbaF {
	return rgbaF{float64(c.R), float64(c.G), float64(c.B), float64(c.A)}
}

func lerpF(a, b rgbaF, d float64) rgbaF {
	k := 1 - d
	var out rgbaF
	for i := range out {
		out[i] = b[i]*d + a[i]*k
	}
	return out
}

// cubicF interpolates between b and c with a four-point cubic convolution
// over samples at -1, 0, 1 and 2.
func cubicF(a, b, c, d rgbaF, x float64) rgbaF {
	var out rgbaF
	for i := range out {
		out[i] = cubic(a[i], b[i], c[i], d[i], x)
	}
	return out
}

func cubic(a, b, c, d, x float64) float64 {
	return b +
		x*(c-(2*a+3*b+d)/6) +
		x*x*((a+c-2*b)/2) +
		x*x*x*((b-c)/2+(d-a)/6)
}

func (f rgbaF) round() RGBA8 {
	return RGBA8{clamp255(f[0]), clamp255(f[1]), clamp255(f[2]), clamp255(f[3])}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func floor255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Floor(v))
}
