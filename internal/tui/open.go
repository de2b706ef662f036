package tui

import (
	"fmt"
	"os/exec"
	"runtime"
)

// OpenURL opens a URL in the default browser without waiting for it.
func OpenURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("open url: unsupported platform %s", runtime.GOOS)
	}
	return cmd.Start()
}
