package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/nvara/traverse/internal/backend/local"
	"github.com/nvara/traverse/internal/endpoint"
	"github.com/nvara/traverse/internal/router"
	"github.com/nvara/traverse/internal/testutil"
)

func collectResult(t *testing.T, l *Loader, gen int64) Result {
	t.Helper()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case res := <-l.Results():
			if res.Gen == gen {
				return res
			}
		case <-deadline:
			t.Fatalf("no result for generation %d", gen)
		}
	}
}

func TestLoaderDeliversResult(t *testing.T) {
	registry := endpoint.NewRegistry()
	p := New(router.New(registry, local.New()), 0)
	l := NewLoader(p)

	dir, cleanup := testutil.TempDir(t)
	defer cleanup()
	testutil.CreateTestFile(t, dir, "a.txt", nil)

	gen := l.Load(context.Background(), dir, false)
	res := collectResult(t, l, gen)

	if res.Err != nil {
		t.Fatalf("load failed: %v", res.Err)
	}
	if res.Path != dir || len(res.Entries) != 1 {
		t.Errorf("unexpected result: path=%q entries=%d", res.Path, len(res.Entries))
	}
	if !l.Accept(res) {
		t.Error("sole result rejected as stale")
	}
}

func TestLoaderStaleResultRejected(t *testing.T) {
	fake := testutil.StartFakeRemote(t)
	fake.Delay = 300 * time.Millisecond
	registry := endpoint.NewRegistry()
	if err := registry.Register(fake.Profile("lab")); err != nil {
		t.Fatalf("register: %v", err)
	}
	p := New(router.New(registry, local.New()), 0)
	l := NewLoader(p)

	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	// Slow remote load superseded by a fast local one
	slowGen := l.Load(context.Background(), "remote:lab:.", false)
	fastGen := l.Load(context.Background(), dir, false)

	fast := collectResult(t, l, fastGen)
	slow := collectResult(t, l, slowGen)

	if !l.Accept(fast) {
		t.Error("current result rejected")
	}
	if l.Accept(slow) {
		t.Error("superseded result accepted")
	}
}

func TestLoaderErrorResult(t *testing.T) {
	registry := endpoint.NewRegistry()
	p := New(router.New(registry, local.New()), 0)
	l := NewLoader(p)

	gen := l.Load(context.Background(), "/no/such/directory", false)
	res := collectResult(t, l, gen)

	if res.Err == nil {
		t.Fatal("missing directory produced no error")
	}
	if res.Err.Kind != FailureNotFound {
		t.Errorf("kind = %v, want FailureNotFound", res.Err.Kind)
	}
}
