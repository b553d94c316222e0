package cli

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/termgenie/termgenie/internal/ports"
)

// Clipboard copies text through whatever clipboard tool the host offers:
// pbcopy on macOS, wl-copy under Wayland, xclip under X11.
type Clipboard struct{}

func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// Enabled reports whether a usable clipboard tool was found.
func (c *Clipboard) Enabled() bool {
	name, _ := clipboardTool()
	return name != ""
}

// Copy pipes text into the clipboard tool.
func (c *Clipboard) Copy(text string) error {
	name, args := clipboardTool()
	if name == "" {
		return fmt.Errorf("no clipboard tool found (install xclip or wl-clipboard)")
	}
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

func clipboardTool() (string, []string) {
	if runtime.GOOS == "darwin" {
		return "pbcopy", nil
	}
	// Wayland sessions may carry a non-functional xclip, so check the
	// session type before falling back to X11 tools.
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		if _, err := exec.LookPath("wl-copy"); err == nil {
			return "wl-copy", nil
		}
	}
	if _, err := exec.LookPath("xclip"); err == nil {
		return "xclip", []string{"-selection", "clipboard"}
	}
	if _, err := exec.LookPath("wl-copy"); err == nil {
		return "wl-copy", nil
	}
	return "", nil
}

var _ ports.Clipboard = (*Clipboard)(nil)
