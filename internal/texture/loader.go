package texture

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"blot/internal/raster"
)

// ErrorKind classifies why a texture could not be loaded.
type ErrorKind uint8

const (
	NotFound ErrorKind = iota
	Unsupported
	Corrupt
)

func (k ErrorKind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case Unsupported:
		return "unsupported format"
	case Corrupt:
		return "corrupt"
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// LoadError is returned by Load for any failure.
type LoadError struct {
	Path string
	Kind ErrorKind
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("texture: %s: %s", e.Path, e.Kind)
	}
	return fmt.Sprintf("texture: %s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// IsKind reports whether err is a LoadError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Kind == kind
}

type decodeFunc func(io.Reader) (image.Image, error)

// Decoders are picked by extension rather than through image.Decode: the
// TGA format has no magic bytes and would otherwise claim arbitrary input.
var decoders = map[string]decodeFunc{
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".gif":  gif.Decode,
	".tga":  tga.Decode,
	".bmp":  bmp.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
	".webp": nativewebp.Decode,
}

var magics = []struct {
	prefix string
	ext    string
}{
	{"\x89PNG\r\n\x1a\n", ".png"},
	{"\xff\xd8\xff", ".jpg"},
	{"GIF87a", ".gif"},
	{"GIF89a", ".gif"},
	{"BM", ".bmp"},
	{"II*\x00", ".tiff"},
	{"MM\x00*", ".tiff"},
}

// sniff guesses the format of data from its leading bytes.
func sniff(head []byte) (string, bool) {
	if len(head) >= 12 && string(head[:4]) == "RIFF" && string(head[8:12]) == "WEBP" {
		return ".webp", true
	}
	for _, m := range magics {
		if bytes.HasPrefix(head, []byte(m.prefix)) {
			return m.ext, true
		}
	}
	return "", false
}

// Supported reports whether path has an extension Load decodes directly.
func Supported(path string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Load decodes the image at path into a canvas. Files with an unknown
// extension are identified by their leading bytes.
func Load(path string) (*raster.ImageCanvas, error) {
	img, _, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return raster.NewImageCanvas(img), nil
}

// Decode opens and decodes path, returning the image and the extension of
// the decoder used.
func Decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		kind := NotFound
		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, fs.ErrPermission) {
			kind = Corrupt
		}
		return nil, "", &LoadError{Path: path, Kind: kind, Err: err}
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.IsDir() {
		return nil, "", &LoadError{Path: path, Kind: Unsupported, Err: errors.New("is a directory")}
	}

	r := bufio.NewReader(f)
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		head, _ := r.Peek(12)
		sniffed, found := sniff(head)
		if !found {
			return nil, "", &LoadError{Path: path, Kind: Unsupported, Err: fmt.Errorf("unknown extension %q", ext)}
		}
		ext, decode = sniffed, decoders[sniffed]
	}

	img, err := decode(r)
	if err != nil {
		return nil, "", &LoadError{Path: path, Kind: Corrupt, Err: err}
	}
	if b := img.Bounds(); b.Empty() {
		return nil, "", &LoadError{Path: path, Kind: Corrupt, Err: fmt.Errorf("empty image %v", b)}
	}
	return img, ext, nil
}
