// Package filesystem provides a read-only file system storage backend for
// roofserve. Store lookups are sandboxed with os.Root, so neither ".."
// segments nor symlinks can reach files outside the configured directory.
// Document opens a single configured file directly. Content types are
// detected from file extensions.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"syscall"

	"github.com/roofingmaterials/roofserve"
)

// Store provides read-only file system storage operations.
type Store struct {
	dir string
}

// NewFileStorage creates a new Store rooted at dir. The directory is opened
// on every call, so it may be created or replaced after the Store is built.
func NewFileStorage(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) openRoot() (*os.Root, error) {
	root, err := os.OpenRoot(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, roofserve.ErrNotFound
		}
		return nil, fmt.Errorf("open root: %w", err)
	}
	return root, nil
}

// Get opens a regular file for reading. Returns roofserve.ErrNotFound if the
// file does not exist, is not a regular file, or resolves outside the root.
// Reads on the returned content fail once ctx is done.
func (s *Store) Get(ctx context.Context, name string) (roofserve.Asset, io.ReadSeekCloser, error) {
	if err := ctx.Err(); err != nil {
		return roofserve.Asset{}, nil, err
	}

	root, err := s.openRoot()
	if err != nil {
		return roofserve.Asset{}, nil, err
	}
	// Files opened from a root stay valid after the root is closed.
	defer func() { _ = root.Close() }()

	f, err := root.Open(name)
	if err != nil {
		if isNotFound(err) {
			return roofserve.Asset{}, nil, roofserve.ErrNotFound
		}
		return roofserve.Asset{}, nil, fmt.Errorf("failed to open file: %w", err)
	}

	return openAsset(ctx, f, name)
}

// openAsset stats an opened file and wraps it for ctx-aware reads. f is
// closed on every error path.
func openAsset(ctx context.Context, f *os.File, name string) (roofserve.Asset, io.ReadSeekCloser, error) {
	info, err := f.Stat()
	if err != nil {
		closeFile(f, name)
		return roofserve.Asset{}, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if !info.Mode().IsRegular() {
		closeFile(f, name)
		return roofserve.Asset{}, nil, roofserve.ErrNotFound
	}

	asset := roofserve.Asset{
		Path:        name,
		ContentType: detectContentType(name),
		Size:        info.Size(),
		ModTime:     info.ModTime(),
	}

	return asset, &ctxFile{ctx: ctx, f: f}, nil
}

// errPathEscapes matches the text of the unexported error os.Root returns
// when a name or symlink resolves outside the root.
const errPathEscapes = "path escapes from parent"

func isNotFound(err error) bool {
	if errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return true
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) && pathErr.Err != nil && pathErr.Err.Error() == errPathEscapes {
		return true
	}
	return false
}

func closeFile(f *os.File, name string) {
	if err := f.Close(); err != nil {
		slog.Warn("failed to close file", "path", name, "err", err)
	}
}

// ctxFile aborts reads once its context is done so a transfer to a
// disconnected client stops at the next read.
type ctxFile struct {
	ctx context.Context
	f   *os.File
}

func (c *ctxFile) Read(p []byte) (n int, err error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.f.Read(p)
}

func (c *ctxFile) Seek(offset int64, whence int) (int64, error) {
	return c.f.Seek(offset, whence)
}

func (c *ctxFile) Close() error {
	return c.f.Close()
}

// List recursively walks the root directory and returns all regular files
// with their size and detected content type, sorted by path.
func (s *Store) List(ctx context.Context) ([]roofserve.ImageEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := s.openRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer func() { _ = root.Close() }()

	var entries []roofserve.ImageEntry

	err = s.walkDir(ctx, root.FS(), ".", &entries)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	return entries, nil
}

func (s *Store) walkDir(ctx context.Context, fsys fs.FS, dir string, entries *[]roofserve.ImageEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// fs.ReadDir returns entries sorted by name.
	dirEntries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}

	for _, entry := range dirEntries {
		if err := ctx.Err(); err != nil {
			return err
		}

		entryPath := path.Join(dir, entry.Name())

		if entry.IsDir() {
			if err := s.walkDir(ctx, fsys, entryPath, entries); err != nil {
				return err
			}
			continue
		}

		if !entry.Type().IsRegular() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return fmt.Errorf("walk dir: %w", err)
		}

		*entries = append(*entries, roofserve.ImageEntry{
			Path:        entryPath,
			Size:        info.Size(),
			ContentType: detectContentType(entryPath),
		})
	}

	return nil
}

func detectContentType(name string) string {
	ext := filepath.Ext(name)
	contentType := mime.TypeByExtension(ext)

	if contentType == "" {
		return "application/octet-stream"
	}

	return contentType
}
