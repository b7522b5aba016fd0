package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"blot/internal/raster"
)

// Object names accepted on the command line and in config files.
const (
	ObjectCube     = "cube"
	ObjectUVSphere = "uv_sphere"
)

const (
	maxDimension   = 65535
	maxSupersample = 4
)

// Config holds every render and output setting.
type Config struct {
	// Scene
	Object        string `json:"object"`
	Texture       string `json:"texture"`
	TextureDir    string `json:"texture_dir"`
	Resolution    int    `json:"resolution"`
	Interpolation string `json:"interpolation"`
	Lat           int    `json:"lat"`
	Lng           int    `json:"lng"`
	Supersample   int    `json:"supersample"`
	Dither        bool   `json:"dither"`
	Caption       string `json:"caption"`

	// Outputs
	Output     string  `json:"output"`
	Poster     string  `json:"poster"`
	PosterFill float64 `json:"poster_fill"`
	Manifest   string  `json:"manifest"`

	Verbose bool `json:"verbose"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	// Relative paths in a config file are relative to the file.
	base := filepath.Dir(path)
	for _, p := range []*string{&cfg.Texture, &cfg.TextureDir, &cfg.Output, &cfg.Poster, &cfg.Manifest} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
	return cfg, nil
}

// Resolve applies CLI overrides, then fills empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.Object != "" {
		c.Object = flags.Object
	}
	if flags.Texture != "" {
		c.Texture = flags.Texture
	}
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Resolution > 0 || flags.Explicit["resolution"] {
		c.Resolution = flags.Resolution
	}
	if flags.Interpolation != "" {
		c.Interpolation = flags.Interpolation
	}
	if flags.Lat > 0 || flags.Explicit["lat"] {
		c.Lat = flags.Lat
	}
	if flags.Lng > 0 || flags.Explicit["lng"] {
		c.Lng = flags.Lng
	}
	if flags.Supersample > 0 || flags.Explicit["supersample"] {
		c.Supersample = flags.Supersample
	}
	if flags.Poster != "" {
		c.Poster = flags.Poster
	}
	if flags.PosterFill > 0 || flags.Explicit["poster_fill"] {
		c.PosterFill = flags.PosterFill
	}
	if flags.Manifest != "" {
		c.Manifest = flags.Manifest
	}
	if flags.Caption != "" {
		c.Caption = flags.Caption
	}
	c.Dither = c.Dither || flags.Dither
	c.Verbose = c.Verbose || flags.Verbose

	c.Object = strings.ToLower(c.Object)
	if c.Object == "uv" {
		c.Object = ObjectUVSphere
	}

	// Defaults fill settings left unset. Values given explicitly on the
	// command line are kept, even when out of range, for Validate to report.
	if c.Resolution == 0 && !flags.Explicit["resolution"] {
		c.Resolution = 256
	}
	if c.Interpolation == "" {
		c.Interpolation = raster.Bilinear.String()
	}
	if c.Lat == 0 && !flags.Explicit["lat"] {
		c.Lat = 128
	}
	if c.Lng == 0 && !flags.Explicit["lng"] {
		c.Lng = 64
	}
	if c.Supersample == 0 && !flags.Explicit["supersample"] {
		c.Supersample = 1
	}
}

// Validate reports the first setting that cannot be rendered.
func (c *Config) Validate() error {
	switch c.Object {
	case ObjectCube, ObjectUVSphere:
	case "":
		return fmt.Errorf("config: object is required (cube, uv_sphere)")
	default:
		return fmt.Errorf("config: object %q is not one of cube, uv_sphere", c.Object)
	}
	if c.Resolution < 1 || c.Resolution > maxDimension {
		return fmt.Errorf("config: resolution %d out of range 1-%d", c.Resolution, maxDimension)
	}
	if _, err := raster.ParseSampleMode(c.Interpolation); err != nil {
		return fmt.Errorf("config: interpolation: %w", err)
	}
	if c.Lat < 1 || c.Lng < 1 || c.Lat > maxDimension || c.Lng > maxDimension {
		return fmt.Errorf("config: step counts %d/%d out of range 1-%d", c.Lat, c.Lng, maxDimension)
	}
	if c.Supersample < 1 || c.Supersample > maxSupersample {
		return fmt.Errorf("config: supersample %d out of range 1-%d", c.Supersample, maxSupersample)
	}
	if c.PosterFill < 0 || c.PosterFill > 1 {
		return fmt.Errorf("config: poster_fill %g out of range 0-1", c.PosterFill)
	}
	if c.Poster != "" {
		switch strings.ToLower(filepath.Ext(c.Poster)) {
		case ".webp", ".png":
		default:
			return fmt.Errorf("config: poster %s: want a .webp or .png file", c.Poster)
		}
	}
	return nil
}

// SampleMode returns the parsed interpolation. Call after Validate.
func (c *Config) SampleMode() raster.SampleMode {
	m, _ := raster.ParseSampleMode(c.Interpolation)
	return m
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Object        string
	Texture       string
	TextureDir    string
	Output        string
	Resolution    int
	Interpolation string
	Lat, Lng      int
	Supersample   int
	Dither        bool
	Poster        string
	PosterFill    float64
	Manifest      string
	Caption       string
	Verbose       bool

	// Explicit holds the config keys (resolution, lat, lng, supersample,
	// poster_fill) whose flag was given on the command line, so an explicit
	// zero or negative value overrides the file and skips the default.
	Explicit map[string]bool
}
