package roofserve

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// FileStorage defines read-only access to a directory of files.
// Implementations must confine every lookup to their root directory.
//
// All methods accept a context for cancellation and timeout control.
type FileStorage interface {
	// Get opens a file for reading.
	//
	// Parameters:
	//   - ctx: Context for cancellation; reads on the returned content fail once it is done
	//   - path: Slash-separated path relative to the storage root
	//
	// Returns:
	//   - Asset: Stat information including the detected content type
	//   - io.ReadSeekCloser: File content; the caller must close it
	//   - error: ErrNotFound if the file doesn't exist, is a directory, or
	//     resolves outside the root, or other storage errors
	Get(ctx context.Context, path string) (Asset, io.ReadSeekCloser, error)

	// List recursively walks the storage root and returns every regular file.
	List(ctx context.Context) ([]ImageEntry, error)
}

// Document is a single file at an operator-configured path. Unlike
// FileStorage, the path is trusted and symlinks are followed.
type Document interface {
	// Open opens the document for reading. Returns ErrNotFound if the
	// document does not exist or is not a regular file.
	Open(ctx context.Context) (Asset, io.ReadSeekCloser, error)
}

// Service serves the image directory and the companies document.
type Service struct {
	images    FileStorage
	companies Document
}

// NewService creates a Service.
func NewService(images FileStorage, companies Document) (*Service, error) {
	if images == nil || companies == nil {
		return nil, errors.New("new service: storage cannot be nil")
	}
	return &Service{
		images:    images,
		companies: companies,
	}, nil
}

// Image opens the image at path. Paths that fail IsValidPath return
// ErrInvalidInput without touching the filesystem.
func (s *Service) Image(ctx context.Context, path string) (Asset, io.ReadSeekCloser, error) {
	if err := ctx.Err(); err != nil {
		return Asset{}, nil, fmt.Errorf("get image: %w", err)
	}

	if !IsValidPath(path) {
		return Asset{}, nil, fmt.Errorf("get image: %w", ErrInvalidInput)
	}

	asset, content, err := s.images.Get(ctx, path)
	if err != nil {
		return Asset{}, nil, fmt.Errorf("get image: %w", err)
	}

	return asset, content, nil
}

// Companies opens the companies document. The open is the existence check:
// a document removed before the call returns ErrNotFound, and one removed
// after it stays readable through the returned handle.
func (s *Service) Companies(ctx context.Context) (Asset, io.ReadSeekCloser, error) {
	if err := ctx.Err(); err != nil {
		return Asset{}, nil, fmt.Errorf("get companies: %w", err)
	}

	asset, content, err := s.companies.Open(ctx)
	if err != nil {
		return Asset{}, nil, fmt.Errorf("get companies: %w", err)
	}

	asset.ContentType = "application/json"
	return asset, content, nil
}

// ListImages returns every file under the images root.
func (s *Service) ListImages(ctx context.Context) ([]ImageEntry, error) {
	entries, err := s.images.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	return entries, nil
}
