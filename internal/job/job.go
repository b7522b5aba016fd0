// Package job runs one render from a resolved config: it builds the model,
// loads the texture, manages the output file and writes the optional
// poster and manifest.
package job

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"blot/internal/anim"
	"blot/internal/config"
	"blot/internal/mathutil"
	"blot/internal/model"
	"blot/internal/raster"
	"blot/internal/render"
	"blot/internal/texture"
)

// Distances from the camera the primitives are placed at so they fill
// most of the frame.
const (
	CubeDistance   = 12
	SphereDistance = 8
)

// BuildModel returns the configured primitive placed in front of the camera.
func BuildModel(cfg config.Config) (*model.Model, error) {
	var m *model.Model
	switch cfg.Object {
	case config.ObjectCube:
		m = model.Cube()
		m.Transform.Translate(mathutil.Vec3{0, 0, CubeDistance})
	case config.ObjectUVSphere:
		m = model.UVSphere(cfg.Lat, cfg.Lng)
		m.Transform.Translate(mathutil.Vec3{0, 0, SphereDistance})
	default:
		return nil, fmt.Errorf("job: unknown object %q", cfg.Object)
	}
	return m, nil
}

// LoadTexture returns the configured texture and the path it came from.
// Without a texture the default checkerboard is used. When a texture
// directory is set and the texture is not a file, it is looked up there by
// name.
func LoadTexture(cfg config.Config) (raster.Source, string, error) {
	if cfg.Texture == "" {
		return texture.Checker(), "", nil
	}
	path := cfg.Texture
	if cfg.TextureDir != "" {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			idx := texture.BuildIndex(cfg.TextureDir)
			resolved, ok := idx.Resolve(cfg.Texture)
			if !ok {
				return nil, "", &texture.LoadError{Path: cfg.Texture, Kind: texture.NotFound,
					Err: fmt.Errorf("not in %s (%d textures indexed)", cfg.TextureDir, idx.Len())}
			}
			path = resolved
		}
	}
	tex, err := texture.Load(path)
	if err != nil {
		return nil, "", err
	}
	render.Logger().Debug("texture loaded", "path", path, "width", tex.Width(), "height", tex.Height())
	return tex, path, nil
}

// Run renders cfg. Without an output path the GIF is written to a temp
// file and copied to stdout once complete, so a failed render never
// leaves a partial stream on stdout.
func Run(cfg config.Config, stdout io.Writer, progress func(index, total int)) (Manifest, error) {
	if err := cfg.Validate(); err != nil {
		return Manifest{}, err
	}
	m, err := BuildModel(cfg)
	if err != nil {
		return Manifest{}, err
	}
	tex, texPath, err := LoadTexture(cfg)
	if err != nil {
		return Manifest{}, err
	}

	f, tmp, err := createOutput(cfg.Output)
	if err != nil {
		return Manifest{}, err
	}
	if tmp {
		defer os.Remove(f.Name())
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	var sink anim.FrameSink = anim.NewGIFWriter(bw, cfg.Dither)
	poster := &posterSink{next: sink}
	if cfg.Poster != "" {
		sink = poster
	}

	start := time.Now()
	sum, err := render.Spinning(m, tex, sink, render.Options{
		Size:        cfg.Resolution,
		Supersample: cfg.Supersample,
		Mode:        cfg.SampleMode(),
		Caption:     cfg.Caption,
		Progress:    progress,
	})
	if err != nil {
		return Manifest{}, err
	}
	if err := bw.Flush(); err != nil {
		return Manifest{}, fmt.Errorf("job: write %s: %w", f.Name(), err)
	}

	out := Manifest{
		Object:        cfg.Object,
		Texture:       texPath,
		Output:        cfg.Output,
		Resolution:    cfg.Resolution,
		Supersample:   cfg.Supersample,
		Interpolation: cfg.SampleMode().String(),
		Frames:        sum.Frames,
		Faces:         sum.Faces,
		FacesDrawn:    sum.FacesDrawn,
		FacesDropped:  sum.FacesDropped,
	}
	if info, err := f.Stat(); err == nil {
		out.Bytes = info.Size()
	}

	if tmp {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return Manifest{}, fmt.Errorf("job: rewind %s: %w", f.Name(), err)
		}
		if _, err := io.Copy(stdout, f); err != nil {
			return Manifest{}, fmt.Errorf("job: copy to stdout: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return Manifest{}, fmt.Errorf("job: close %s: %w", f.Name(), err)
	}

	if cfg.Poster != "" {
		if err := poster.savePoster(cfg.Poster, cfg.PosterFill); err != nil {
			return Manifest{}, fmt.Errorf("job: poster: %w", err)
		}
		out.Poster = cfg.Poster
	}
	out.ElapsedMS = time.Since(start).Milliseconds()

	if cfg.Manifest != "" {
		if err := WriteManifest(cfg.Manifest, out); err != nil {
			return Manifest{}, err
		}
	}
	return out, nil
}

// createOutput opens path for writing, creating parent directories, or a
// temp file when path is empty.
func createOutput(path string) (*os.File, bool, error) {
	if path == "" {
		f, err := os.CreateTemp("", "blot-*.gif")
		if err != nil {
			return nil, false, fmt.Errorf("job: create temp file: %w", err)
		}
		return f, true, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, false, fmt.Errorf("job: create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, false, fmt.Errorf("job: create %s: %w", path, err)
	}
	return f, false, nil
}
