package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nvara/traverse/internal/domain"
)

// Backend implements the backend.Backend interface for the local filesystem.
// Paths are absolute host-OS paths; the resolver has already normalized
// separators before they reach this layer.
type Backend struct{}

// New creates a new local filesystem backend
func New() *Backend {
	return &Backend{}
}

// checkPath rejects the empty path the resolver lets through. Resolution is
// total, so the rejection surfaces here at dispatch time.
func checkPath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", domain.ErrNotFound)
	}
	return nil
}

// List returns all entries directly under the given directory
func (b *Backend) List(ctx context.Context, path string) ([]domain.DirectoryEntry, error) {
	if err := checkPath(path); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, mapError(err)
	}
	if !info.IsDir() {
		return nil, domain.ErrNotDirectory
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, mapError(err)
	}

	result := make([]domain.DirectoryEntry, 0, len(entries))
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		info, err := entry.Info()
		if err != nil {
			continue // Skip entries we can't read
		}

		result = append(result, entryFromOS(filepath.Join(path, entry.Name()), info))
	}

	return result, nil
}

// Create makes a new empty file or directory under parent
func (b *Backend) Create(ctx context.Context, parent, name string, kind domain.EntryKind) error {
	if err := checkPath(parent); err != nil {
		return err
	}

	target := filepath.Join(parent, name)
	if kind == domain.EntryDirectory {
		return mapError(os.Mkdir(target, 0755))
	}

	file, err := os.OpenFile(target, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return mapError(err)
	}
	return file.Close()
}

// Rename changes the base name of path in place
func (b *Backend) Rename(ctx context.Context, path, newName string) error {
	if err := checkPath(path); err != nil {
		return err
	}

	if _, err := os.Stat(path); err != nil {
		return mapError(err)
	}

	target := filepath.Join(filepath.Dir(path), newName)
	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, newName)
	}

	return mapError(os.Rename(path, target))
}

// Remove deletes a file or directory tree
func (b *Backend) Remove(ctx context.Context, path string) error {
	if err := checkPath(path); err != nil {
		return err
	}

	if _, err := os.Lstat(path); err != nil {
		return mapError(err)
	}

	return mapError(os.RemoveAll(path))
}

// Copy duplicates src to dst. Directories are copied recursively; the
// context is checked per entry so a deep tree copy stays cancellable.
func (b *Backend) Copy(ctx context.Context, src, dst string) error {
	if err := checkPath(src); err != nil {
		return err
	}
	if err := checkPath(dst); err != nil {
		return err
	}

	info, err := os.Stat(src)
	if err != nil {
		return mapError(err)
	}
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, filepath.Base(dst))
	}

	if info.IsDir() {
		return b.copyDir(ctx, src, dst)
	}
	return b.copyFile(src, dst, info)
}

// Move relocates src to dst. Falls back to copy-and-remove when the
// rename crosses a device boundary.
func (b *Backend) Move(ctx context.Context, src, dst string) error {
	if err := checkPath(src); err != nil {
		return err
	}
	if err := checkPath(dst); err != nil {
		return err
	}

	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, filepath.Base(dst))
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		if copyErr := b.Copy(ctx, src, dst); copyErr != nil {
			return copyErr
		}
		return b.Remove(ctx, src)
	}

	return mapError(err)
}

// OpenDefault hands path to the platform's default handler
func (b *Backend) OpenDefault(ctx context.Context, path string) error {
	if err := checkPath(path); err != nil {
		return err
	}

	if _, err := os.Stat(path); err != nil {
		return mapError(err)
	}

	return OpenPath(path)
}

func (b *Backend) copyDir(ctx context.Context, src, dst string) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return mapError(err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return mapError(err)
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := b.copyDir(ctx, srcPath, dstPath); err != nil {
				return err
			}
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if err := b.copyFile(srcPath, dstPath, info); err != nil {
			return err
		}
	}

	return nil
}

// copyFile writes through a temp file and renames into place so a failed
// copy never leaves a half-written destination
func (b *Backend) copyFile(src, dst string, info os.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return mapError(err)
	}
	defer in.Close()

	tempPath := dst + ".traverse.tmp"
	out, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return mapError(err)
	}

	_, copyErr := io.Copy(out, in)
	closeErr := out.Close()

	if copyErr != nil {
		os.Remove(tempPath)
		return copyErr
	}
	if closeErr != nil {
		os.Remove(tempPath)
		return closeErr
	}

	if err := os.Rename(tempPath, dst); err != nil {
		os.Remove(tempPath)
		return mapError(err)
	}

	return nil
}

// entryFromOS converts os.FileInfo to domain.DirectoryEntry
func entryFromOS(path string, info os.FileInfo) domain.DirectoryEntry {
	kind := domain.EntryFile
	if info.IsDir() {
		kind = domain.EntryDirectory
	} else if info.Mode()&os.ModeSymlink != 0 {
		kind = domain.EntrySymlink
	}

	return domain.DirectoryEntry{
		Name:    info.Name(),
		Path:    path,
		Kind:    kind,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}

// mapError converts OS errors to domain errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if os.IsNotExist(err) {
		return domain.ErrNotFound
	}
	if os.IsPermission(err) {
		return domain.ErrPermissionDenied
	}
	if os.IsExist(err) {
		return domain.ErrAlreadyExists
	}

	return err
}
