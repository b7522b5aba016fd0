// Package render spins a textured model in front of a fixed camera and
// streams the frames through an animation encoder.
package render

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"blot/internal/anim"
	"blot/internal/camera"
	"blot/internal/geom"
	"blot/internal/mathutil"
	"blot/internal/model"
	"blot/internal/raster"
)

const (
	DefaultFOV        = 22.5
	DefaultFrameRate  = 24
	DefaultFrameCount = 48

	// The spin sweeps two turns about X and one about Y per loop.
	spinTurnsX = 2
	spinTurnsY = 1
)

// Options control a spinning render. Zero values take the defaults.
type Options struct {
	// Size is the side of the square output in pixels.
	Size int
	// Supersample renders at Size×Supersample and downsamples each frame.
	Supersample int
	Mode        raster.SampleMode
	FOV         float64
	FrameRate   float64
	FrameCount  int
	Caption     string
	// Progress is called before each frame is drawn.
	Progress func(index, total int)
}

func (o *Options) defaults() {
	if o.Size <= 0 {
		o.Size = 256
	}
	if o.Supersample <= 0 {
		o.Supersample = 1
	}
	if o.FOV <= 0 {
		o.FOV = DefaultFOV
	}
	if o.FrameRate <= 0 {
		o.FrameRate = DefaultFrameRate
	}
	if o.FrameCount <= 0 {
		o.FrameCount = DefaultFrameCount
	}
}

// Summary reports what a render produced.
type Summary struct {
	Frames     int
	Faces      int
	FacesDrawn int
	// FacesDropped counts faces that failed projection and were skipped.
	FacesDropped int
	Pixels       int
	Elapsed      time.Duration
}

type depthFace struct {
	quad  geom.Quad
	index int
}

// Spinning renders m textured with tex to sink. The model's rotation is
// overwritten every frame; its translation and scale are kept. Any sink
// error aborts the render.
func Spinning(m *model.Model, tex raster.Source, sink anim.FrameSink, opts Options) (Summary, error) {
	opts.defaults()
	log := Logger()
	start := time.Now()

	renderSize := opts.Size * opts.Supersample
	cam := camera.NewCamera()
	cam.SetFOV(opts.FOV)
	cam.SetSize(float64(renderSize), float64(renderSize))

	enc := anim.NewEncoder(raster.NewBufferCanvas(renderSize, renderSize), sink, anim.Options{
		FrameRate:  opts.FrameRate,
		FrameCount: opts.FrameCount,
		OutputSize: opts.Size,
		Logger:     log,
	})
	canvas := enc.Canvas()
	caption := NewCaption(opts.Caption, opts.Supersample)

	log.Info("render started",
		slog.Int("faces", m.FaceCount()),
		slog.Int("size", opts.Size),
		slog.Int("supersample", opts.Supersample),
		slog.String("mode", opts.Mode.String()))

	sum := Summary{Faces: m.FaceCount()}
	faces := make([]depthFace, m.FaceCount())
	for {
		f, ok, err := enc.Step()
		if err != nil {
			return sum, fmt.Errorf("render: frame %d: %w", sum.Frames, err)
		}
		if !ok {
			break
		}
		if opts.Progress != nil {
			opts.Progress(f.Index, f.Total)
		}

		m.Transform.Rotation = mathutil.SpinRotation(f.Progress, spinTurnsX, spinTurnsY)
		for i := range faces {
			faces[i] = depthFace{quad: m.Face(i), index: i}
		}
		slices.SortFunc(faces, func(a, b depthFace) int { return geom.CompareDepth(a.quad, b.quad) })

		canvas.Fill(raster.Transparent)
		drawn, dropped, pixels := drawFaces(canvas, cam, m, faces, tex, opts.Mode)
		if caption != nil {
			caption.Draw(canvas)
		}
		sum.Frames++
		sum.FacesDrawn += drawn
		sum.FacesDropped += dropped
		sum.Pixels += pixels
		log.Debug("frame drawn",
			slog.Int("index", f.Index),
			slog.Int("faces", drawn),
			slog.Int("dropped", dropped),
			slog.Int("pixels", pixels))
	}

	if err := enc.Finish(); err != nil {
		return sum, fmt.Errorf("render: finish: %w", err)
	}
	sum.Elapsed = time.Since(start)
	log.Info("render finished", slog.Int("frames", sum.Frames), slog.Duration("elapsed", sum.Elapsed))
	return sum, nil
}

// drawFaces paints the nearer half of the depth-sorted faces, farthest of
// them first. On a closed convex model the far half is hidden.
func drawFaces(dst raster.Canvas, cam *camera.Camera, m *model.Model, faces []depthFace, tex raster.Source, mode raster.SampleMode) (drawn, dropped, pixels int) {
	w, h := dst.Width(), dst.Height()
	origin := m.Origin()
	eye := cam.Transform.Translation

	for i := (len(faces)+1)/2 - 1; i >= 0; i-- {
		face := faces[i]
		light := Light(face.quad.Center(), origin, eye)

		q, ok := cam.ProjectQuad(face.quad)
		if !ok {
			dropped++
			continue
		}
		drawn++

		minX, minY, maxX, maxY := q.IntBounds()
		minX, minY = max(minX, 0), max(minY, 0)
		maxX, maxY = min(maxX, w-1), min(maxY, h-1)
		for x := minX; x <= maxX; x++ {
			for y := minY; y <= maxY; y++ {
				u, v, ok := q.UV(mathutil.Vec3{float64(x), float64(y), 0})
				if !ok {
					continue
				}
				u, v = m.RemapUV(face.index, u, v)
				c := raster.Sample(tex, u, v, mode)
				if light < 1 {
					c = c.Shade(light)
				}
				dst.SetPixel(x, y, c)
				pixels++
			}
		}
	}
	return drawn, dropped, pixels
}
