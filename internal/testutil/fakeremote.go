package testutil

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/nvara/traverse/internal/domain"
)

// FakeRemote is an in-process session server backed by a temp directory.
// It speaks the same HTTP+JSON protocol the remote backend expects, so
// backend, router, and pipeline tests exercise the real client path.
type FakeRemote struct {
	Server     *httptest.Server
	Root       string
	Username   string
	Credential string

	// Delay is applied before every response; used by timeout tests
	Delay time.Duration
}

// StartFakeRemote starts a session server over a fresh temp directory.
// Cleanup is registered on t.
func StartFakeRemote(t *testing.T) *FakeRemote {
	t.Helper()

	root, err := os.MkdirTemp("", "traverse-remote-*")
	if err != nil {
		t.Fatalf("failed to create fake remote root: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(root) })

	f := &FakeRemote{
		Root:       root,
		Username:   "tester",
		Credential: "hunter2-secret",
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Server.Close)

	return f
}

// Profile builds an endpoint profile pointing at this server
func (f *FakeRemote) Profile(name string) domain.EndpointProfile {
	u, _ := url.Parse(f.Server.URL)
	host, portStr, _ := net.SplitHostPort(u.Host)
	port, _ := strconv.Atoi(portStr)

	return domain.EndpointProfile{
		Name:       name,
		Host:       host,
		Port:       port,
		Username:   f.Username,
		Credential: f.Credential,
	}
}

func (f *FakeRemote) handle(w http.ResponseWriter, r *http.Request) {
	if f.Delay > 0 {
		select {
		case <-time.After(f.Delay):
		case <-r.Context().Done():
			return
		}
	}

	user, cred, ok := r.BasicAuth()
	if !ok || user != f.Username || cred != f.Credential {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	switch r.URL.Path {
	case "/api/v1/list":
		f.handleList(w, r)
	case "/api/v1/file":
		f.handleFile(w, r)
	case "/api/v1/create":
		f.handleCreate(w, r)
	case "/api/v1/rename":
		f.handleRename(w, r)
	case "/api/v1/delete":
		f.handleDelete(w, r)
	case "/api/v1/copy":
		f.handleTransfer(w, r, false)
	case "/api/v1/move":
		f.handleTransfer(w, r, true)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// resolve maps a remote-relative path onto the backing directory
func (f *FakeRemote) resolve(rpath string) string {
	if rpath == "" || rpath == "." {
		return f.Root
	}
	return filepath.Join(f.Root, filepath.FromSlash(rpath))
}

func (f *FakeRemote) handleList(w http.ResponseWriter, r *http.Request) {
	rpath := r.URL.Query().Get("path")
	full := f.resolve(rpath)

	entries, err := os.ReadDir(full)
	if err != nil {
		writeFSError(w, err)
		return
	}

	type wireEntry struct {
		Name    string    `json:"name"`
		Path    string    `json:"path"`
		IsDir   bool      `json:"is_dir"`
		Size    int64     `json:"size"`
		ModTime time.Time `json:"mtime"`
	}

	rows := make([]wireEntry, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		child := e.Name()
		if rpath != "" && rpath != "." {
			child = rpath + "/" + e.Name()
		}
		rows = append(rows, wireEntry{
			Name:    e.Name(),
			Path:    child,
			IsDir:   e.IsDir(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"entries": rows})
}

func (f *FakeRemote) handleFile(w http.ResponseWriter, r *http.Request) {
	full := f.resolve(r.URL.Query().Get("path"))
	file, err := os.Open(full)
	if err != nil {
		writeFSError(w, err)
		return
	}
	defer file.Close()
	io.Copy(w, file)
}

func (f *FakeRemote) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Parent string `json:"parent"`
		Name   string `json:"name"`
		Kind   string `json:"kind"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	target := filepath.Join(f.resolve(req.Parent), req.Name)
	if _, err := os.Stat(target); err == nil {
		w.WriteHeader(http.StatusConflict)
		return
	}

	var err error
	if req.Kind == "directory" {
		err = os.Mkdir(target, 0755)
	} else {
		err = os.WriteFile(target, nil, 0644)
	}
	if err != nil {
		writeFSError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeRemote) handleRename(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path    string `json:"path"`
		NewName string `json:"new_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	full := f.resolve(req.Path)
	if _, err := os.Stat(full); err != nil {
		writeFSError(w, err)
		return
	}

	target := filepath.Join(filepath.Dir(full), req.NewName)
	if _, err := os.Stat(target); err == nil {
		w.WriteHeader(http.StatusConflict)
		return
	}
	if err := os.Rename(full, target); err != nil {
		writeFSError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeRemote) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	full := f.resolve(req.Path)
	if _, err := os.Stat(full); err != nil {
		writeFSError(w, err)
		return
	}
	if err := os.RemoveAll(full); err != nil {
		writeFSError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeRemote) handleTransfer(w http.ResponseWriter, r *http.Request, move bool) {
	var req struct {
		Src string `json:"src"`
		Dst string `json:"dst"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	src, dst := f.resolve(req.Src), f.resolve(req.Dst)
	data, err := os.ReadFile(src)
	if err != nil {
		writeFSError(w, err)
		return
	}
	if _, err := os.Stat(dst); err == nil {
		w.WriteHeader(http.StatusConflict)
		return
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		writeFSError(w, err)
		return
	}
	if move {
		os.Remove(src)
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeFSError(w http.ResponseWriter, err error) {
	switch {
	case os.IsNotExist(err):
		w.WriteHeader(http.StatusNotFound)
	case os.IsPermission(err):
		w.WriteHeader(http.StatusForbidden)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
}
