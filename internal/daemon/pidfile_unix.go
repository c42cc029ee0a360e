//go:build !windows
// +build !windows

package daemon

import (
	"fmt"
	"os"
	"syscall"
)

// isProcessRunning probes liveness with signal 0, which delivers nothing
func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}

// killProcess asks the watcher to shut down gracefully via SIGTERM
func killProcess(pid int) error {
	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process %d: %w", pid, err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to signal process %d: %w", pid, err)
	}
	return nil
}
