package pathspec

import (
	"path/filepath"
	"testing"
)

func TestResolve_RemoteBasic(t *testing.T) {
	p := Resolve("remote:nas:docs/reports")

	if p.Kind != KindRemote {
		t.Fatalf("expected KindRemote, got %v", p.Kind)
	}
	if p.Endpoint != "nas" {
		t.Errorf("expected endpoint nas, got %q", p.Endpoint)
	}
	if p.RemotePath != "docs/reports" {
		t.Errorf("expected docs/reports, got %q", p.RemotePath)
	}
}

func TestResolve_RemoteRoot(t *testing.T) {
	for _, raw := range []string{"remote:nas:", "remote:nas:.", "remote:nas"} {
		p := Resolve(raw)
		if p.Kind != KindRemote {
			t.Fatalf("%q: expected KindRemote, got %v", raw, p.Kind)
		}
		if p.RemotePath != RootMarker {
			t.Errorf("%q: expected root marker, got %q", raw, p.RemotePath)
		}
	}
}

func TestResolve_RemoteMissingName(t *testing.T) {
	// A malformed remote string must stay remote with an empty endpoint so
	// the registry lookup fails downstream; it must never fall back to local
	p := Resolve("remote::docs")

	if p.Kind != KindRemote {
		t.Fatalf("expected KindRemote, got %v", p.Kind)
	}
	if p.Endpoint != "" {
		t.Errorf("expected empty endpoint, got %q", p.Endpoint)
	}
	if p.RemotePath != "docs" {
		t.Errorf("expected docs, got %q", p.RemotePath)
	}
}

func TestResolve_RemoteNormalization(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"remote:nas:a//b", "a/b"},
		{"remote:nas:/a/b/", "a/b"},
		{"remote:nas:a/./b", "a/b"},
		{"remote:nas:a/../b", "b"},
		{"remote:nas:..", "."},
		{"remote:nas:../../etc", "etc"},
		{"remote:nas:a\\b", "a/b"},
	}

	for _, tt := range tests {
		p := Resolve(tt.raw)
		if p.RemotePath != tt.want {
			t.Errorf("Resolve(%q).RemotePath = %q, want %q", tt.raw, p.RemotePath, tt.want)
		}
	}
}

func TestResolve_LocalSeparators(t *testing.T) {
	p := Resolve("a/b/c")
	if p.Kind != KindLocal {
		t.Fatalf("expected KindLocal, got %v", p.Kind)
	}
	want := filepath.Join("a", "b", "c")
	if p.LocalPath != want {
		t.Errorf("expected %q, got %q", want, p.LocalPath)
	}

	// Backslash input is accepted as a local path too
	p = Resolve("a\\b\\c")
	if p.Kind != KindLocal {
		t.Fatalf("expected KindLocal, got %v", p.Kind)
	}
	if p.LocalPath != want {
		t.Errorf("expected %q, got %q", want, p.LocalPath)
	}
}

func TestResolve_EmptyInput(t *testing.T) {
	p := Resolve("")
	if p.Kind != KindLocal {
		t.Fatalf("expected KindLocal, got %v", p.Kind)
	}
	if p.LocalPath != "" {
		t.Errorf("expected empty local path, got %q", p.LocalPath)
	}
}

func TestResolve_RoundTripStability(t *testing.T) {
	inputs := []string{
		"",
		"/tmp/files",
		"relative/dir",
		"a\\b",
		"remote:nas:docs/reports",
		"remote:nas:",
		"remote:nas:a//b/../c",
		"remote::orphan",
		"remote:box",
	}

	for _, raw := range inputs {
		first := Resolve(raw)
		second := Resolve(first.String())
		if first != second {
			t.Errorf("round trip unstable for %q: %+v != %+v", raw, first, second)
		}
	}
}

func TestJoinAndParent_Remote(t *testing.T) {
	root := Resolve("remote:nas:.")

	child := root.Join("docs")
	if child.RemotePath != "docs" {
		t.Errorf("expected docs, got %q", child.RemotePath)
	}

	grand := child.Join("q3")
	if grand.RemotePath != "docs/q3" {
		t.Errorf("expected docs/q3, got %q", grand.RemotePath)
	}

	if got := grand.Parent().RemotePath; got != "docs" {
		t.Errorf("expected parent docs, got %q", got)
	}
	if got := root.Parent(); got != root {
		t.Errorf("root parent should stay at root, got %+v", got)
	}
}

func TestJoin_Local(t *testing.T) {
	p := Resolve("/tmp").Join("sub")
	want := filepath.Join(string(filepath.Separator)+"tmp", "sub")
	if p.LocalPath != want {
		t.Errorf("expected %q, got %q", want, p.LocalPath)
	}
}
