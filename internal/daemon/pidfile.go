// Package daemon manages the PID file for the long-running watch process.
// One watcher per data directory keeps the endpoint catalog reloads from
// racing each other; browsing windows themselves are not serialized.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// PIDFile tracks the watch process identity on disk
type PIDFile struct {
	path string
}

// NewPIDFile creates a PID file manager for the given path
func NewPIDFile(path string) *PIDFile {
	return &PIDFile{path: path}
}

// PIDPath returns the watcher PID file location under the data directory
func PIDPath(dataDir string) (string, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return filepath.Join(dataDir, "watch.pid"), nil
}

// Write claims the PID file for the current process. A live owner is an
// error; a stale file left by a dead process is replaced.
func (p *PIDFile) Write() error {
	if _, err := os.Stat(p.path); err == nil {
		if running, _ := p.IsRunning(); running {
			return fmt.Errorf("watcher is already running (PID file exists: %s)", p.path)
		}
		os.Remove(p.path)
	}

	content := fmt.Sprintf("%d\n", os.Getpid())
	if err := os.WriteFile(p.path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// Read returns the recorded PID
func (p *PIDFile) Read() (int, error) {
	content, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("PID file does not exist: %s", p.path)
		}
		return 0, fmt.Errorf("failed to read PID file: %w", err)
	}

	pidStr := strings.TrimSpace(string(content))
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		return 0, fmt.Errorf("invalid PID in file: %s", pidStr)
	}
	return pid, nil
}

// Remove deletes the PID file; a missing file is not an error
func (p *PIDFile) Remove() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// IsRunning reports whether the recorded process is still alive
func (p *PIDFile) IsRunning() (bool, error) {
	pid, err := p.Read()
	if err != nil {
		return false, err
	}
	return isProcessRunning(pid), nil
}

// Stop signals the recorded process to terminate
func (p *PIDFile) Stop() error {
	pid, err := p.Read()
	if err != nil {
		return err
	}
	return killProcess(pid)
}
