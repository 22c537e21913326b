// Package sysopen holds the browser's best-effort OS integrations:
// opening a URL in the default browser and writing to the clipboard.
package sysopen

import (
	"os/exec"
	"runtime"

	"github.com/m-mizutani/goerr/v2"
)

// OpenURL opens the URL in the system's default browser. The launch is
// detached; only failures to spawn the opener are reported.
func OpenURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return goerr.Wrap(err, "failed to open browser", goerr.V("url", url))
	}
	return nil
}
