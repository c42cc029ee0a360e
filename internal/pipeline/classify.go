package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/nvara/traverse/internal/domain"
	"github.com/nvara/traverse/internal/pathspec"
)

// FailureKind is the user-facing classification of a load failure
type FailureKind int

const (
	FailureUnknown FailureKind = iota
	FailurePermissionDenied
	FailureNotFound
	FailureTimeout
	FailureUnknownEndpoint
	FailureProtocol
	FailureNoAccessibleRoot
)

// String returns the string representation of the failure kind
func (k FailureKind) String() string {
	switch k {
	case FailurePermissionDenied:
		return "permission denied"
	case FailureNotFound:
		return "not found"
	case FailureTimeout:
		return "timeout"
	case FailureUnknownEndpoint:
		return "unknown endpoint"
	case FailureProtocol:
		return "protocol error"
	case FailureNoAccessibleRoot:
		return "no accessible root"
	default:
		return "unknown"
	}
}

// LoadError is a classified directory-load failure. Segment carries the
// last path segment for user messaging; WellKnownDir marks permission
// failures on recognized user directories so the caller can offer the
// manual folder picker instead of a bare error.
type LoadError struct {
	Kind         FailureKind
	Path         string
	Segment      string
	WellKnownDir bool
	cause        error
}

// Error implements the error interface
func (e *LoadError) Error() string {
	if e.cause != nil {
		return e.Kind.String() + ": " + e.cause.Error()
	}
	return e.Kind.String() + ": " + e.Path
}

// Unwrap exposes the underlying domain error for errors.Is checks
func (e *LoadError) Unwrap() error {
	return e.cause
}

// wellKnownDirNames are the user directories a permission failure gets the
// recovery hint for
var wellKnownDirNames = map[string]bool{
	"desktop":   true,
	"documents": true,
	"downloads": true,
	"pictures":  true,
	"music":     true,
	"videos":    true,
}

// Classify maps a failed load into a LoadError for the given path
func Classify(path string, err error) *LoadError {
	segment := lastSegment(path)
	classified := &LoadError{Path: path, Segment: segment, cause: err}

	switch {
	case errors.Is(err, domain.ErrPermissionDenied):
		classified.Kind = FailurePermissionDenied
		classified.WellKnownDir = isWellKnownUserDir(path)
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNotDirectory):
		classified.Kind = FailureNotFound
	case errors.Is(err, domain.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		classified.Kind = FailureTimeout
	case errors.Is(err, domain.ErrUnknownEndpoint):
		classified.Kind = FailureUnknownEndpoint
	case errors.Is(err, domain.ErrProtocol):
		classified.Kind = FailureProtocol
	case errors.Is(err, domain.ErrNoAccessibleRoot):
		classified.Kind = FailureNoAccessibleRoot
	default:
		classified.Kind = FailureUnknown
	}

	return classified
}

// isWellKnownUserDir reports whether path names one of the conventional
// user directories directly under the user's home
func isWellKnownUserDir(path string) bool {
	resolved := pathspec.Resolve(path)
	if resolved.Kind != pathspec.KindLocal {
		return false
	}

	segment := strings.ToLower(lastSegment(path))
	if !wellKnownDirNames[segment] {
		return false
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return false
	}
	return filepath.Dir(filepath.Clean(resolved.LocalPath)) == filepath.Clean(home)
}

// lastSegment extracts the final path segment of either path form
func lastSegment(path string) string {
	resolved := pathspec.Resolve(path)
	if resolved.Kind == pathspec.KindRemote {
		if resolved.RemotePath == pathspec.RootMarker {
			return resolved.Endpoint
		}
		parts := strings.Split(resolved.RemotePath, "/")
		return parts[len(parts)-1]
	}
	return filepath.Base(resolved.LocalPath)
}
