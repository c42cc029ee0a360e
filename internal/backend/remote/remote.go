package remote

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/nvara/traverse/internal/backend/local"
	"github.com/nvara/traverse/internal/domain"
	"github.com/nvara/traverse/internal/pathspec"
)

// Backend adapts the session client to the backend.Backend interface.
// Paths on this side of the interface are remote-relative (pathspec's
// RemotePath form); listing rows are reported back in wire format so
// every entry stays addressable through the resolver.
type Backend struct {
	client   *Client
	endpoint string
}

// New creates a remote backend for the given endpoint profile
func New(profile domain.EndpointProfile) *Backend {
	return &Backend{
		client:   NewClient(profile),
		endpoint: profile.Name,
	}
}

// List returns all entries directly under the given remote directory
func (b *Backend) List(ctx context.Context, rpath string) ([]domain.DirectoryEntry, error) {
	rows, err := b.client.ListDir(ctx, rpath)
	if err != nil {
		return nil, err
	}

	result := make([]domain.DirectoryEntry, 0, len(rows))
	for _, row := range rows {
		kind := domain.EntryFile
		if row.IsDir {
			kind = domain.EntryDirectory
		}

		entryPath := row.Path
		if entryPath == "" {
			entryPath = path.Join(rpath, row.Name)
		}

		result = append(result, domain.DirectoryEntry{
			Name:    row.Name,
			Path:    pathspec.RemoteString(b.endpoint, entryPath),
			Kind:    kind,
			Size:    row.Size,
			ModTime: row.ModTime,
		})
	}

	return result, nil
}

// Create makes a new file or directory under parent
func (b *Backend) Create(ctx context.Context, parent, name string, kind domain.EntryKind) error {
	wireKind := "file"
	if kind == domain.EntryDirectory {
		wireKind = "directory"
	}
	return b.client.Create(ctx, parent, name, wireKind)
}

// Rename changes the base name of a remote entry
func (b *Backend) Rename(ctx context.Context, rpath, newName string) error {
	return b.client.Rename(ctx, rpath, newName)
}

// Remove deletes a remote entry
func (b *Backend) Remove(ctx context.Context, rpath string) error {
	return b.client.Delete(ctx, rpath)
}

// Copy duplicates src to dst on the same endpoint
func (b *Backend) Copy(ctx context.Context, src, dst string) error {
	return b.client.Copy(ctx, src, dst)
}

// Move relocates src to dst on the same endpoint
func (b *Backend) Move(ctx context.Context, src, dst string) error {
	return b.client.Move(ctx, src, dst)
}

// OpenDefault fetches the remote file into a temp copy and hands that to
// the platform's default handler. The temp copy is best-effort; it is left
// for the OS temp cleaner rather than removed while the handler reads it.
func (b *Backend) OpenDefault(ctx context.Context, rpath string) error {
	tmp, err := os.CreateTemp("", "traverse-*-"+path.Base(rpath))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProtocol, err)
	}

	fetchErr := b.client.Fetch(ctx, rpath, tmp)
	closeErr := tmp.Close()
	if fetchErr != nil {
		os.Remove(tmp.Name())
		return fetchErr
	}
	if closeErr != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", domain.ErrProtocol, closeErr)
	}

	return local.OpenPath(tmp.Name())
}
