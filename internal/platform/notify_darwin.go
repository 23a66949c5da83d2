//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify displays a notification using macOS Notification Center.
func Notify(title, body string, opts Options) error {
	script := fmt.Sprintf("display notification %q with title %q", body, title)
	if opts.AppName != "" {
		script += fmt.Sprintf(" subtitle %q", opts.AppName)
	}
	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		return fmt.Errorf("osascript: %w", err)
	}
	return nil
}
