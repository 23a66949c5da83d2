package capture

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
)

type platformBackend interface {
	ListMonitors() ([]MonitorInfo, error)
}

var backend = newBackend()

var errNoMonitors = errors.New("no monitors available")

// MonitorInfo describes an individual monitor in the display layout.
type MonitorInfo struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

// ListMonitors retrieves all monitors using the platform backend, falling
// back to the direct capture backend's view of the displays.
func ListMonitors() ([]MonitorInfo, error) {
	monitors, err := backend.ListMonitors()
	if err == nil && len(monitors) > 0 {
		return monitors, nil
	}
	direct, derr := directMonitors()
	if derr != nil {
		if err == nil {
			err = errNoMonitors
		}
		return nil, fmt.Errorf("%v; %w", err, derr)
	}
	return direct, nil
}

// Union returns the bounding box of all monitors.
func Union(monitors []MonitorInfo) image.Rectangle {
	var r image.Rectangle
	for i, m := range monitors {
		if i == 0 {
			r = m.Rect
			continue
		}
		r = r.Union(m.Rect)
	}
	return r
}

// FindMonitor resolves a monitor selector against the provided list.
func FindMonitor(monitors []MonitorInfo, selector string) (MonitorInfo, error) {
	if len(monitors) == 0 {
		return MonitorInfo{}, errNoMonitors
	}
	if selector == "" {
		return monitors[0], nil
	}
	sel := strings.TrimSpace(selector)
	lower := strings.ToLower(sel)
	if lower == "primary" {
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	lower = strings.TrimPrefix(lower, "#")
	if idx, err := strconv.Atoi(lower); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return MonitorInfo{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), lower) {
			return mon, nil
		}
	}
	return MonitorInfo{}, fmt.Errorf("monitor %q not found", selector)
}
