package capture

import (
	"errors"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

var errNoDisplays = errors.New("no active displays found")

// directScreenshot reads every active display and returns their union.
func directScreenshot() (*image.RGBA, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, errNoDisplays
	}
	union := screenshot.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		union = union.Union(screenshot.GetDisplayBounds(i))
	}
	img, err := screenshot.CaptureRect(union)
	if err != nil {
		return nil, fmt.Errorf("capture %v: %w", union, err)
	}
	return img, nil
}

// directMonitors describes the active displays as seen by the direct
// capture backend. The first display is reported as primary.
func directMonitors() ([]MonitorInfo, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, errNoDisplays
	}
	monitors := make([]MonitorInfo, 0, n)
	for i := 0; i < n; i++ {
		monitors = append(monitors, MonitorInfo{
			Index:   i,
			Name:    fmt.Sprintf("display-%d", i),
			Rect:    screenshot.GetDisplayBounds(i),
			Primary: i == 0,
		})
	}
	return monitors, nil
}
