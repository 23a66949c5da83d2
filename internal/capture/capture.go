// Package capture grabs the desktop for the region editor. It asks the XDG
// desktop portal first and falls back to reading the displays directly.
package capture

import (
	"fmt"
	"image"
	"image/draw"
	"log"
)

// Options controls a capture.
type Options struct {
	IncludeCursor bool
	// Display selects the monitor treated as primary; empty uses the one
	// the display server reports.
	Display string
}

// Shot is a captured desktop and the layout needed to present it.
type Shot struct {
	Image *image.RGBA
	// Primary is the primary monitor in image pixels.
	Primary image.Rectangle
}

var (
	portalScreenshotFn = portalScreenshot
	directScreenshotFn = directScreenshot
	listMonitorsFn     = ListMonitors
)

// Screenshot captures the whole desktop and resolves the primary monitor.
func Screenshot(opts Options) (*Shot, error) {
	img, err := screenshotImage(opts)
	if err != nil {
		return nil, err
	}
	shot := &Shot{Image: img, Primary: img.Bounds()}
	monitors, err := listMonitorsFn()
	if err != nil {
		log.Printf("list monitors: %v", err)
		return shot, nil
	}
	mon, err := FindMonitor(monitors, displaySelector(opts.Display))
	if err != nil {
		return nil, fmt.Errorf("select display: %w", err)
	}
	origin := Union(monitors).Min
	if r := mon.Rect.Sub(origin).Intersect(img.Bounds()); !r.Empty() {
		shot.Primary = r
	}
	return shot, nil
}

func displaySelector(s string) string {
	if s == "" {
		return "primary"
	}
	return s
}

func screenshotImage(opts Options) (*image.RGBA, error) {
	img, portalErr := portalScreenshotFn(false, opts)
	if portalErr == nil {
		return normalize(img), nil
	}
	if !isPortalUnsupportedError(portalErr) && runningOnWayland() {
		return nil, portalErr
	}
	img, err := directScreenshotFn()
	if err != nil {
		return nil, fmt.Errorf("portal screenshot: %v; direct capture fallback: %w", portalErr, err)
	}
	return normalize(img), nil
}

// normalize returns img with its origin at zero.
func normalize(img *image.RGBA) *image.RGBA {
	if img.Bounds().Min == (image.Point{}) {
		return img
	}
	dst := image.NewRGBA(image.Rectangle{Max: img.Bounds().Size()})
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
