// Package notify tells the user where a selected region went.
package notify

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/regionshot/internal/config"
	"github.com/example/regionshot/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave fires when a region is written to disk.
	EventSave Event = "save"
	// EventCopy fires when a region is placed on the clipboard.
	EventCopy Event = "copy"
)

// Title is the summary line of every notification.
const Title = "RegionShot"

var templates = map[Event]string{
	EventSave: "Saved %s",
	EventCopy: "Copied %s to clipboard",
}

var notifyFn = platform.Notify

// Notifier sends OS-level notifications for the events enabled in the
// configuration.
type Notifier struct {
	enabled map[Event]bool
}

// New creates a Notifier from the [notify] configuration section.
func New(cfg config.Notify) *Notifier {
	return &Notifier{enabled: map[Event]bool{
		EventSave: cfg.Save,
		EventCopy: cfg.Copy,
	}}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Save reports a written file, using the file itself as the icon.
func (n *Notifier) Save(path string) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{AppName: Title}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy reports a region copied to the clipboard.
func (n *Notifier) Copy(r image.Rectangle) {
	if !n.enabledFor(EventCopy) {
		return
	}
	detail := fmt.Sprintf("%d×%d region", r.Dx(), r.Dy())
	n.dispatch(EventCopy, detail, platform.Options{AppName: Title})
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	body := fmt.Sprintf(templates[event], detail)
	if err := notifyFn(Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}
