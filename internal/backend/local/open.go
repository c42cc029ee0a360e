package local

import (
	"os/exec"
	"runtime"
)

// OpenPath launches the platform's default handler for path. The handler
// runs detached; its exit status is not observed.
func OpenPath(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}

	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the child in the background so it doesn't linger as a zombie
	go func() { _ = cmd.Wait() }()
	return nil
}
