package main

import (
	"fmt"
	"io"
	"os"

	"blot/internal/raster"
	"blot/internal/texture"
)

var gridUV = []float64{0, 0.25, 0.5, 0.75, 1}

func describe(w io.Writer, path string) error {
	img, format, err := texture.Decode(path)
	if err != nil {
		return err
	}
	tex := raster.NewImageCanvas(img)
	fmt.Fprintf(w, "%s: %s %dx%d\n", path, format, tex.Width(), tex.Height())

	for _, mode := range []raster.SampleMode{raster.Nearest, raster.Bilinear, raster.Bicubic} {
		fmt.Fprintf(w, "  %s\n", mode)
		for _, v := range gridUV {
			fmt.Fprintf(w, "    v=%.2f", v)
			for _, u := range gridUV {
				fmt.Fprintf(w, " %v", raster.Sample(tex, u, v, mode))
			}
			fmt.Fprintln(w)
		}
	}
	return nil
}

func list(w io.Writer, dir string) {
	idx := texture.BuildIndex(dir)
	fmt.Fprintf(w, "%s: %d textures\n", dir, idx.Len())
	for _, p := range idx.Paths() {
		fmt.Fprintf(w, "  %s\n", p)
	}
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: texinfo <image or directory>...")
		os.Exit(2)
	}

	failed := 0
	for _, path := range os.Args[1:] {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			list(os.Stdout, path)
			continue
		}
		if err := describe(os.Stdout, path); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %v\n", err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}
