// Package pipeline orchestrates directory listings: per-call timeout,
// first-run fallback-root search, hidden-entry filtering, and failure
// classification. Retrying is always the caller's decision; nothing in
// this package retries on its own.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/nvara/traverse/internal/domain"
	"github.com/nvara/traverse/internal/logger"
	"github.com/nvara/traverse/internal/router"
)

// DefaultTimeout is the listing ceiling when config supplies none
const DefaultTimeout = 10 * time.Second

// Pipeline loads directory listings through the router
type Pipeline struct {
	router  *router.Router
	timeout time.Duration
	roots   []string
	log     logger.Logger
}

// New creates a pipeline with the given per-call listing timeout.
// A zero timeout falls back to DefaultTimeout.
func New(r *router.Router, timeout time.Duration) *Pipeline {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Pipeline{
		router:  r,
		timeout: timeout,
		roots:   defaultRootCandidates(),
		log:     logger.With("component", "pipeline"),
	}
}

// WithRootCandidates overrides the fallback-root search order (tests)
func (p *Pipeline) WithRootCandidates(roots []string) *Pipeline {
	p.roots = roots
	return p
}

// Load lists path under the timeout ceiling and filters hidden entries
// unless showHidden is set. Failures come back classified; a deadline
// expiry is a Timeout, not a transport error.
func (p *Pipeline) Load(ctx context.Context, path string, showHidden bool) ([]domain.DirectoryEntry, *LoadError) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	entries, err := p.router.List(ctx, path)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: listing %s", domain.ErrTimeout, path)
		}
		classified := Classify(path, err)
		p.log.Warn("load failed", "path", path, "kind", classified.Kind.String())
		return nil, classified
	}

	return filterHidden(entries, showHidden), nil
}

// LoadInitial runs the first-run fallback search: each root candidate is
// tried in order and the first one that lists successfully wins. Returns
// the chosen path alongside its listing.
func (p *Pipeline) LoadInitial(ctx context.Context, showHidden bool) (string, []domain.DirectoryEntry, *LoadError) {
	for _, root := range p.roots {
		if root == "" {
			continue
		}
		entries, loadErr := p.Load(ctx, root, showHidden)
		if loadErr == nil {
			p.log.Info("initial root selected", "path", root)
			return root, entries, nil
		}
		if ctx.Err() != nil {
			return "", nil, loadErr
		}
	}

	err := fmt.Errorf("%w: tried %d candidates", domain.ErrNoAccessibleRoot, len(p.roots))
	return "", nil, Classify("", err)
}

// filterHidden drops entries following the hidden naming convention
func filterHidden(entries []domain.DirectoryEntry, showHidden bool) []domain.DirectoryEntry {
	if showHidden {
		return entries
	}
	visible := make([]domain.DirectoryEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsHidden() {
			continue
		}
		visible = append(visible, e)
	}
	return visible
}

// defaultRootCandidates is the ordered list the first run falls back
// through: the user's home volume first, then conventional OS roots
func defaultRootCandidates() []string {
	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, home)
	}
	if runtime.GOOS == "windows" {
		candidates = append(candidates, `C:\`)
	} else {
		candidates = append(candidates, "/")
	}
	return candidates
}
