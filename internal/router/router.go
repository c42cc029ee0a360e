// Package router dispatches filesystem operations to the right backend for
// a path. The router is stateless and caches nothing: every mutating call
// that succeeds invalidates the parent listing, and re-listing is the
// caller's job.
package router

import (
	"context"
	"fmt"

	"github.com/nvara/traverse/internal/backend"
	"github.com/nvara/traverse/internal/backend/remote"
	"github.com/nvara/traverse/internal/domain"
	"github.com/nvara/traverse/internal/endpoint"
	"github.com/nvara/traverse/internal/logger"
	"github.com/nvara/traverse/internal/pathspec"
)

// RemoteFactory builds a backend for a resolved endpoint profile. Calls may
// construct a fresh session each time; backends must not share a mutable
// cursor between concurrent operations.
type RemoteFactory func(domain.EndpointProfile) backend.Backend

// Router resolves path strings and dispatches over the backend interface
type Router struct {
	registry *endpoint.Registry
	local    backend.Backend
	remotes  RemoteFactory
	log      logger.Logger
}

// New creates a router over the given registry and local backend, building
// remote backends with the default session client
func New(registry *endpoint.Registry, localBackend backend.Backend) *Router {
	return &Router{
		registry: registry,
		local:    localBackend,
		remotes: func(p domain.EndpointProfile) backend.Backend {
			return remote.New(p)
		},
		log: logger.With("component", "router"),
	}
}

// WithRemoteFactory overrides how remote backends are built (tests)
func (r *Router) WithRemoteFactory(factory RemoteFactory) *Router {
	r.remotes = factory
	return r
}

// dispatch resolves a raw path to its backend and backend-local path.
// An endpoint name absent from the registry fails here, before any
// network call is attempted.
func (r *Router) dispatch(raw string) (backend.Backend, string, error) {
	resolved := pathspec.Resolve(raw)
	switch resolved.Kind {
	case pathspec.KindRemote:
		profile, err := r.registry.Lookup(resolved.Endpoint)
		if err != nil {
			r.log.Warn("endpoint lookup failed", "endpoint", resolved.Endpoint)
			return nil, "", err
		}
		return r.remotes(profile), resolved.RemotePath, nil
	case pathspec.KindLocal:
		return r.local, resolved.LocalPath, nil
	default:
		return nil, "", fmt.Errorf("%w: unhandled path kind %v", domain.ErrProtocol, resolved.Kind)
	}
}

// List returns the directory listing for a path on either backend
func (r *Router) List(ctx context.Context, raw string) ([]domain.DirectoryEntry, error) {
	b, path, err := r.dispatch(raw)
	if err != nil {
		return nil, err
	}
	return b.List(ctx, path)
}

// Create makes a new file or directory named name under parent
func (r *Router) Create(ctx context.Context, parent, name string, kind domain.EntryKind) error {
	b, path, err := r.dispatch(parent)
	if err != nil {
		return err
	}
	return b.Create(ctx, path, name, kind)
}

// Rename changes the base name of the entry at raw
func (r *Router) Rename(ctx context.Context, raw, newName string) error {
	b, path, err := r.dispatch(raw)
	if err != nil {
		return err
	}
	return b.Rename(ctx, path, newName)
}

// Remove deletes the entry at raw
func (r *Router) Remove(ctx context.Context, raw string) error {
	b, path, err := r.dispatch(raw)
	if err != nil {
		return err
	}
	return b.Remove(ctx, path)
}

// Copy duplicates src to dst. Both must resolve to the same backend;
// a transfer that cannot complete atomically is refused up front rather
// than started and abandoned halfway.
func (r *Router) Copy(ctx context.Context, src, dst string) error {
	b, srcPath, dstPath, err := r.dispatchPair(src, dst)
	if err != nil {
		return err
	}
	return b.Copy(ctx, srcPath, dstPath)
}

// Move relocates src to dst under the same cross-backend constraint as Copy
func (r *Router) Move(ctx context.Context, src, dst string) error {
	b, srcPath, dstPath, err := r.dispatchPair(src, dst)
	if err != nil {
		return err
	}
	return b.Move(ctx, srcPath, dstPath)
}

// OpenDefault hands the entry at raw to the platform's default handler
func (r *Router) OpenDefault(ctx context.Context, raw string) error {
	b, path, err := r.dispatch(raw)
	if err != nil {
		return err
	}
	return b.OpenDefault(ctx, path)
}

// dispatchPair resolves a two-path operation, rejecting pairs that span
// different backends before either side is touched
func (r *Router) dispatchPair(src, dst string) (backend.Backend, string, string, error) {
	srcResolved := pathspec.Resolve(src)
	dstResolved := pathspec.Resolve(dst)

	if srcResolved.Kind != dstResolved.Kind {
		return nil, "", "", fmt.Errorf("%w: %s -> %s", domain.ErrCrossBackend, srcResolved.Kind, dstResolved.Kind)
	}

	switch srcResolved.Kind {
	case pathspec.KindRemote:
		if srcResolved.Endpoint != dstResolved.Endpoint {
			return nil, "", "", fmt.Errorf("%w: endpoints %s and %s",
				domain.ErrCrossBackend, srcResolved.Endpoint, dstResolved.Endpoint)
		}
		profile, err := r.registry.Lookup(srcResolved.Endpoint)
		if err != nil {
			return nil, "", "", err
		}
		return r.remotes(profile), srcResolved.RemotePath, dstResolved.RemotePath, nil
	default:
		return r.local, srcResolved.LocalPath, dstResolved.LocalPath, nil
	}
}

// SuggestName produces "name (2)", "name (3)"... candidates for recovering
// from ErrAlreadyExists on create. The extension stays attached to the end.
func SuggestName(name string, attempt int) string {
	if attempt < 2 {
		return name
	}

	base, ext := name, ""
	for i := len(name) - 1; i > 0; i-- {
		if name[i] == '.' {
			base, ext = name[:i], name[i:]
			break
		}
	}
	return fmt.Sprintf("%s (%d)%s", base, attempt, ext)
}
