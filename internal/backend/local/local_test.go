package local

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nvara/traverse/internal/domain"
	"github.com/nvara/traverse/internal/testutil"
)

func TestList(t *testing.T) {
	b := New()
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()
	testutil.CreateTestFile(t, dir, "a.txt", []byte("aaa"))
	testutil.CreateTestDir(t, dir, "sub")

	entries, err := b.List(context.Background(), dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	byName := make(map[string]domain.DirectoryEntry)
	for _, e := range entries {
		byName[e.Name] = e
	}
	if byName["a.txt"].Kind != domain.EntryFile || byName["a.txt"].Size != 3 {
		t.Errorf("a.txt = %+v", byName["a.txt"])
	}
	if byName["sub"].Kind != domain.EntryDirectory {
		t.Errorf("sub = %+v", byName["sub"])
	}
	if byName["a.txt"].Path != filepath.Join(dir, "a.txt") {
		t.Errorf("entry path = %q", byName["a.txt"].Path)
	}
}

func TestListErrors(t *testing.T) {
	b := New()
	ctx := context.Background()
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()
	file := testutil.CreateTestFile(t, dir, "plain.txt", nil)

	if _, err := b.List(ctx, filepath.Join(dir, "missing")); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing dir err = %v, want ErrNotFound", err)
	}
	if _, err := b.List(ctx, file); !errors.Is(err, domain.ErrNotDirectory) {
		t.Errorf("file target err = %v, want ErrNotDirectory", err)
	}
	if _, err := b.List(ctx, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("empty path err = %v, want ErrNotFound", err)
	}
}

func TestCreate(t *testing.T) {
	b := New()
	ctx := context.Background()
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	if err := b.Create(ctx, dir, "new.txt", domain.EntryFile); err != nil {
		t.Fatalf("create file: %v", err)
	}
	if err := b.Create(ctx, dir, "newdir", domain.EntryDirectory); err != nil {
		t.Fatalf("create dir: %v", err)
	}

	if err := b.Create(ctx, dir, "new.txt", domain.EntryFile); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("duplicate file err = %v, want ErrAlreadyExists", err)
	}
	if err := b.Create(ctx, dir, "newdir", domain.EntryDirectory); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("duplicate dir err = %v, want ErrAlreadyExists", err)
	}
}

func TestRename(t *testing.T) {
	b := New()
	ctx := context.Background()
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()
	src := testutil.CreateTestFile(t, dir, "old.txt", []byte("data"))
	testutil.CreateTestFile(t, dir, "taken.txt", nil)

	if err := b.Rename(ctx, src, "taken.txt"); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("rename onto existing err = %v, want ErrAlreadyExists", err)
	}

	if err := b.Rename(ctx, src, "new.txt"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "new.txt")); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("old name still present after rename")
	}

	if err := b.Rename(ctx, filepath.Join(dir, "ghost"), "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("rename missing err = %v, want ErrNotFound", err)
	}
}

func TestRemove(t *testing.T) {
	b := New()
	ctx := context.Background()
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	sub := testutil.CreateTestDir(t, dir, "tree")
	testutil.CreateTestFile(t, sub, "leaf.txt", nil)

	if err := b.Remove(ctx, sub); err != nil {
		t.Fatalf("remove tree: %v", err)
	}
	if _, err := os.Stat(sub); !os.IsNotExist(err) {
		t.Error("removed tree still present")
	}

	if err := b.Remove(ctx, sub); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("remove missing err = %v, want ErrNotFound", err)
	}
}

func TestCopyFile(t *testing.T) {
	b := New()
	ctx := context.Background()
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()
	src := testutil.CreateTestFile(t, dir, "src.txt", []byte("payload"))
	dst := filepath.Join(dir, "dst.txt")

	if err := b.Copy(ctx, src, dst); err != nil {
		t.Fatalf("copy: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "payload" {
		t.Errorf("copied content = %q, err = %v", data, err)
	}
	// Source is untouched
	if _, err := os.Stat(src); err != nil {
		t.Errorf("source missing after copy: %v", err)
	}

	if err := b.Copy(ctx, src, dst); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("copy onto existing err = %v, want ErrAlreadyExists", err)
	}
}

func TestCopyDirRecursive(t *testing.T) {
	b := New()
	ctx := context.Background()
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	src := testutil.CreateTestDir(t, dir, "src")
	nested := testutil.CreateTestDir(t, src, "nested")
	testutil.CreateTestFile(t, src, "top.txt", []byte("top"))
	testutil.CreateTestFile(t, nested, "deep.txt", []byte("deep"))

	dst := filepath.Join(dir, "dst")
	if err := b.Copy(ctx, src, dst); err != nil {
		t.Fatalf("copy dir: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dst, "nested", "deep.txt"))
	if err != nil || string(data) != "deep" {
		t.Errorf("nested copy content = %q, err = %v", data, err)
	}
}

func TestCopyCancelled(t *testing.T) {
	b := New()
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	src := testutil.CreateTestDir(t, dir, "src")
	for i := 0; i < 5; i++ {
		testutil.CreateTestFile(t, src, "f"+string(rune('a'+i))+".txt", nil)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := b.Copy(ctx, src, filepath.Join(dir, "dst"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled copy err = %v, want context.Canceled", err)
	}
}

func TestMove(t *testing.T) {
	b := New()
	ctx := context.Background()
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()
	src := testutil.CreateTestFile(t, dir, "src.txt", []byte("data"))
	dst := filepath.Join(dir, "dst.txt")

	if err := b.Move(ctx, src, dst); err != nil {
		t.Fatalf("move: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source present after move")
	}
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("destination missing after move: %v", err)
	}

	taken := testutil.CreateTestFile(t, dir, "taken.txt", nil)
	if err := b.Move(ctx, dst, taken); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("move onto existing err = %v, want ErrAlreadyExists", err)
	}
}
