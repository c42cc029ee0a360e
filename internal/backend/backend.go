package backend

import (
	"context"

	"github.com/nvara/traverse/internal/domain"
)

// Backend defines the operation set for storage backends
// All implementations must handle path normalization internally
// and return domain-level errors for consistent error handling.
// The router dispatches over this interface and is otherwise
// backend-agnostic.
type Backend interface {
	// List returns all entries directly under the given directory
	// Returns domain.ErrNotFound if path doesn't exist
	// Returns domain.ErrNotDirectory if path is a file
	List(ctx context.Context, path string) ([]domain.DirectoryEntry, error)

	// Create makes a new empty file or directory named name under parent
	// Returns domain.ErrAlreadyExists if the target is taken; the caller
	// may recover by retrying with an auto-suffixed name
	Create(ctx context.Context, parent, name string, kind domain.EntryKind) error

	// Rename changes the base name of path in place
	// Returns domain.ErrAlreadyExists if the new name is taken
	Rename(ctx context.Context, path, newName string) error

	// Remove deletes a file or directory tree
	// Returns domain.ErrNotFound if path doesn't exist
	Remove(ctx context.Context, path string) error

	// Copy duplicates src to dst within this backend
	Copy(ctx context.Context, src, dst string) error

	// Move relocates src to dst within this backend
	Move(ctx context.Context, src, dst string) error

	// OpenDefault hands the entry at path to the platform's default handler
	OpenDefault(ctx context.Context, path string) error
}
