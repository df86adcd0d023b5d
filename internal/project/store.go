package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/montage/internal/timeline"
)

// Save writes the timeline to path as a project document. The document
// is written to a temporary file first and renamed into place so a
// crash mid-write cannot truncate an existing project.
func Save(path string, tl *timeline.Timeline) error {
	data, err := Encode(tl)
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".montage-*.tmp")
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("save project: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save project: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

// Load reads a project document from path and rebuilds its timeline.
func Load(path string, opts ...timeline.Option) (*timeline.Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	tl, err := Decode(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("load project %s: %w", path, err)
	}
	return tl, nil
}
