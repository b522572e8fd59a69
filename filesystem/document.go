package filesystem

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/roofingmaterials/roofserve"
)

// Document is a single file at a configured path. The path comes from the
// operator, not from a request, so it is opened directly and symlinks are
// followed wherever they point.
type Document struct {
	path string
}

// NewDocument creates a Document for the file at path. The file is opened on
// every call and may appear, change or disappear between calls.
func NewDocument(path string) *Document {
	return &Document{path: path}
}

// Open opens the document for reading. Returns roofserve.ErrNotFound if the
// file does not exist or is not a regular file.
func (d *Document) Open(ctx context.Context) (roofserve.Asset, io.ReadSeekCloser, error) {
	if err := ctx.Err(); err != nil {
		return roofserve.Asset{}, nil, err
	}

	f, err := os.Open(d.path)
	if err != nil {
		if isNotFound(err) {
			return roofserve.Asset{}, nil, roofserve.ErrNotFound
		}
		return roofserve.Asset{}, nil, fmt.Errorf("failed to open document: %w", err)
	}

	return openAsset(ctx, f, filepath.Base(d.path))
}
