package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"blot/internal/config"
	"blot/internal/job"
	"blot/internal/render"
)

const barWidth = 34

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	printTitle(stderr)

	fs := flag.NewFlagSet("blot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr, fs) }

	var f config.Flags
	var configFile string
	fs.StringVar(&configFile, "config", "", "path to a JSON config file")
	stringFlag(fs, &f.Texture, "path or name of the input texture", "texture", "t")
	stringFlag(fs, &f.Output, "path of the output GIF (default: stdout)", "out", "o")
	intFlag(fs, &f.Resolution, "GIF resolution, 1-65535 (default 256)", "resolution", "r")
	stringFlag(fs, &f.Interpolation, "nearest, bilinear or bicubic (default bilinear)", "interpolation", "i")
	fs.IntVar(&f.Lat, "lat", 0, "latitude steps for uv_sphere, at least 3 (default 128)")
	fs.IntVar(&f.Lng, "lng", 0, "longitude steps for uv_sphere, at least 3 (default 64)")
	fs.StringVar(&f.TextureDir, "texdir", "", "directory to look texture names up in")
	fs.IntVar(&f.Supersample, "supersample", 0, "render at N times the resolution and downsample (default 1)")
	fs.BoolVar(&f.Dither, "dither", false, "dither frames with more colors than the palette holds")
	fs.StringVar(&f.Poster, "poster", "", "also save the first frame as a .webp or .png still")
	fs.Float64Var(&f.PosterFill, "poster-fill", 0, "reframe the poster so the shape covers this share, 0-1")
	fs.StringVar(&f.Manifest, "manifest", "", "write a JSON summary of the render to this path")
	fs.StringVar(&f.Caption, "caption", "", "text stamped in the bottom-left corner of every frame")
	fs.BoolVar(&f.Verbose, "v", false, "debug logging")

	if len(args) == 0 {
		fs.Usage()
		return 0
	}
	// The object may come before, between or after the flags.
	if !strings.HasPrefix(args[0], "-") {
		f.Object, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return parseExit(err)
	}
	if f.Object == "" && fs.NArg() > 0 {
		f.Object = fs.Arg(0)
		if err := fs.Parse(fs.Args()[1:]); err != nil {
			return parseExit(err)
		}
	}
	if fs.NArg() > 0 {
		fs.Usage()
		fmt.Fprintf(stderr, "Error: unexpected arguments %q\n", fs.Args())
		return 1
	}
	f.Explicit = explicitFlags(fs)

	var cfg config.Config
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading config: %v\n", err)
			return 1
		}
	}
	cfg.Resolve(f)
	if err := cfg.Validate(); err != nil {
		fs.Usage()
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	render.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	out := cfg.Output
	if out == "" {
		out = "stdout"
	}
	fmt.Fprintf(stderr, "Object: %s, Resolution: %d, Interpolation: %s\n", cfg.Object, cfg.Resolution, cfg.SampleMode())
	fmt.Fprintf(stderr, "Output: %s\n", out)

	progress := func(i, total int) {
		fmt.Fprintf(stderr, "\r%s", progressLine(i, total))
	}
	man, err := job.Run(cfg, stdout, progress)
	if err != nil {
		fmt.Fprintln(stderr)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stderr, "\r%s\n", progressLine(man.Frames, man.Frames))
	fmt.Fprintf(stderr, "Done in %.1fs (%d frames, %d bytes)\n", float64(man.ElapsedMS)/1000, man.Frames, man.Bytes)
	if man.Poster != "" {
		fmt.Fprintf(stderr, "Poster: %s\n", man.Poster)
	}
	if cfg.Manifest != "" {
		fmt.Fprintf(stderr, "Manifest: %s\n", cfg.Manifest)
	}
	return 0
}

func parseExit(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	return 1
}

// flagKeys maps flag names, aliases included, to the config settings whose
// zero value is meaningful when given on the command line.
var flagKeys = map[string]string{
	"resolution":  "resolution",
	"r":           "resolution",
	"lat":         "lat",
	"lng":         "lng",
	"supersample": "supersample",
	"poster-fill": "poster_fill",
}

// explicitFlags returns the config keys of numeric flags set on the
// command line.
func explicitFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) {
		if key, ok := flagKeys[fl.Name]; ok {
			set[key] = true
		}
	})
	return set
}

func stringFlag(fs *flag.FlagSet, p *string, usage string, names ...string) {
	for _, n := range names {
		fs.StringVar(p, n, "", usage)
	}
}

func intFlag(fs *flag.FlagSet, p *int, usage string, names ...string) {
	for _, n := range names {
		fs.IntVar(p, n, 0, usage)
	}
}

// progressLine renders "cur / total [████░░░░] pct%".
func progressLine(cur, total int) string {
	if total <= 0 {
		return ""
	}
	filled := cur * barWidth / total
	pct := cur * 100 / total
	return fmt.Sprintf("%2d / %2d [%s%s] %d%%", cur, total,
		strings.Repeat("█", filled), strings.Repeat("░", barWidth-filled), pct)
}

var title = []struct {
	line    string
	r, g, b int
}{
	{` _     _       _   `, 255, 0, 255},
	{`| |__ | | ___ | |_`, 255, 0, 255},
	{`| '_ \| |/ _ \| __|`, 170, 0, 255},
	{`| |_) | | (_) | |_`, 85, 0, 255},
	{`|_.__/|_|\___/ \__|`, 0, 0, 255},
}

func printTitle(w io.Writer) {
	for _, t := range title {
		fmt.Fprintf(w, "\x1b[38;2;%d;%d;%dm%s\x1b[0m\n", t.r, t.g, t.b, t.line)
	}
	fmt.Fprintln(w)
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: blot <cube|uv_sphere> [flags]")
	fmt.Fprintln(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
}
