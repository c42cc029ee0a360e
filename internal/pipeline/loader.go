package pipeline

import (
	"context"
	"sync/atomic"

	"github.com/nvara/traverse/internal/domain"
)

// Result is one completed load delivered on the loader's channel. Gen is
// the generation stamped when the load was requested; consumers accept a
// result only while its generation is still current.
type Result struct {
	Gen     int64
	Path    string
	Entries []domain.DirectoryEntry
	Err     *LoadError
}

// Loader issues asynchronous loads guarded by a monotonic generation
// counter. Navigating away while a load is pending is a soft-cancel: the
// in-flight call is left to finish and its result is discarded on arrival,
// since the transport may not support cooperative cancellation.
type Loader struct {
	pipeline *Pipeline
	gen      atomic.Int64
	results  chan Result
}

// NewLoader creates a loader over the given pipeline
func NewLoader(p *Pipeline) *Loader {
	return &Loader{
		pipeline: p,
		results:  make(chan Result, 8),
	}
}

// Results delivers completed loads, stale ones included; filter with Accept
func (l *Loader) Results() <-chan Result {
	return l.results
}

// Load starts an asynchronous load of path and returns its generation.
// A newer Load supersedes every earlier one.
func (l *Loader) Load(ctx context.Context, path string, showHidden bool) int64 {
	gen := l.gen.Add(1)

	go func() {
		entries, err := l.pipeline.Load(ctx, path, showHidden)
		l.results <- Result{Gen: gen, Path: path, Entries: entries, Err: err}
	}()

	return gen
}

// Accept reports whether a result is still current. A result that lost the
// race to a newer navigation must not overwrite state for the current path.
func (l *Loader) Accept(res Result) bool {
	return res.Gen == l.gen.Load()
}
