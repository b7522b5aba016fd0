package texture

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// extRank orders formats when one stem exists in several; lower wins.
// Lossless formats with alpha come first.
var extRank = map[string]int{
	".png":  0,
	".webp": 1,
	".tga":  2,
	".tif":  3,
	".tiff": 3,
	".gif":  4,
	".bmp":  5,
	".jpg":  6,
	".jpeg": 6,
}

// Index maps lowercase texture stems to file paths under a directory.
type Index struct {
	entries map[string]string // stem → full path
}

// BuildIndex walks dir and its subdirectories for supported textures.
// Unreadable entries are skipped.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !Supported(path) {
			return nil
		}
		stem := stemOf(path)
		existing, ok := idx.entries[stem]
		if !ok || rank(path) < rank(existing) {
			idx.entries[stem] = path
		}
		return nil
	})
	return idx
}

func stemOf(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

func rank(path string) int {
	return extRank[strings.ToLower(filepath.Ext(path))]
}

// Resolve returns the indexed path for a texture name. Directories and the
// extension in name are ignored, so "wood", "Wood.jpg" and "a/wood.png"
// all resolve to the best file with stem "wood".
func (idx *Index) Resolve(name string) (string, bool) {
	path, ok := idx.entries[stemOf(name)]
	return path, ok
}

// Paths returns every indexed path in sorted order.
func (idx *Index) Paths() []string {
	out := make([]string, 0, len(idx.entries))
	for _, p := range idx.entries {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (idx *Index) Len() int { return len(idx.entries) }
