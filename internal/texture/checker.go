package texture

import "blot/internal/raster"

// Magenta is the lit square of the default checkerboard.
var Magenta = raster.RGBA8{255, 0, 255, 255}

// Checker returns the 4×4 magenta and black checkerboard used when no
// texture is given. The top-left square is black.
func Checker() *raster.BufferCanvas {
	c := raster.NewBufferCanvas(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			col := raster.Black
			if (x+y)%2 == 1 {
				col = Magenta
			}
			c.SetPixel(x, y, col)
		}
	}
	return c
}
