//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"errors"
	"image"
)

var errPortalUnsupported = errors.New("portal screenshot is not supported on this platform")

func portalScreenshot(bool, Options) (*image.RGBA, error) {
	return nil, errPortalUnsupported
}

func isPortalUnsupportedError(err error) bool { return errors.Is(err, errPortalUnsupported) }
