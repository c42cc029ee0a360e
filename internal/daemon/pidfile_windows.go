//go:build windows
// +build windows

package daemon

import (
	"fmt"
	"os"
	"syscall"
)

// isProcessRunning probes liveness through the process exit code
func isProcessRunning(pid int) bool {
	h, err := syscall.OpenProcess(syscall.PROCESS_QUERY_INFORMATION, false, uint32(pid))
	if err != nil {
		return false
	}
	defer syscall.CloseHandle(h)

	var exitCode uint32
	if err := syscall.GetExitCodeProcess(h, &exitCode); err != nil {
		return false
	}

	// STILL_ACTIVE = 259
	return exitCode == 259
}

// killProcess terminates the watcher; Windows has no graceful signal
func killProcess(pid int) error {
	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process %d: %w", pid, err)
	}
	if err := process.Kill(); err != nil {
		return fmt.Errorf("failed to kill process %d: %w", pid, err)
	}
	return nil
}
