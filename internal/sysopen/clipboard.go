package sysopen

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/m-mizutani/goerr/v2"
)

// CopyClipboard places text on the system clipboard.
func CopyClipboard(text string) error {
	if err := clipboard.WriteAll(text); err == nil {
		return nil
	}
	// fallbacks for Wayland/X11
	if runtime.GOOS == "linux" {
		if exec.Command("wl-copy", text).Run() == nil {
			return nil
		}
		cmd := exec.Command("xclip", "-selection", "clipboard")
		cmd.Stdin = strings.NewReader(text)
		if cmd.Run() == nil {
			return nil
		}
	}
	return goerr.New("clipboard unavailable")
}
