package job

import (
	"encoding/json"
	"fmt"
	"os"
)

// Manifest records one render and where its outputs went.
type Manifest struct {
	Object        string `json:"object"`
	Texture       string `json:"texture"`
	Output        string `json:"output"`
	Poster        string `json:"poster,omitempty"`
	Resolution    int    `json:"resolution"`
	Supersample   int    `json:"supersample"`
	Interpolation string `json:"interpolation"`
	Frames        int    `json:"frames"`
	Faces         int    `json:"faces"`
	FacesDrawn    int    `json:"faces_drawn"`
	FacesDropped  int    `json:"faces_dropped"`
	Bytes         int64  `json:"bytes"`
	ElapsedMS     int64  `json:"elapsed_ms"`
}

// WriteManifest writes m as indented JSON to path.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("job: encode manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("job: write manifest %s: %w", path, err)
	}
	return nil
}
