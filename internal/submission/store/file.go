package store

import (
	"context"
	"fmt"

	"govdesk/internal/submission/models"
	"govdesk/pkg/platform/atomicfile"
)

// FileAdapter keeps the collection in a single JSON file.
type FileAdapter struct {
	path string
}

// NewFileAdapter returns an adapter for path. Nothing touches the disk until
// the first Load or Save.
func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

// Path returns the backing file.
func (a *FileAdapter) Path() string {
	return a.path
}

// Load reads the file. A missing or empty file is an empty collection.
func (a *FileAdapter) Load(ctx context.Context) ([]*models.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := atomicfile.Read(a.path)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []*models.Submission{}, nil
	}
	subs, err := decodeCollection(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", a.path, err)
	}
	return subs, nil
}

// Save replaces the file atomically, so readers never observe a partial write.
func (a *FileAdapter) Save(ctx context.Context, subs []*models.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeCollection(subs)
	if err != nil {
		return err
	}
	return atomicfile.Write(a.path, data)
}
