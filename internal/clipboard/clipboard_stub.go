//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import (
	"fmt"
	"image"
)

func WriteImage(image.Image) (<-chan struct{}, error) {
	return nil, fmt.Errorf("clipboard image operations are not supported on this platform")
}

func WriteText(string) (<-chan struct{}, error) {
	return nil, fmt.Errorf("clipboard text operations are not supported on this platform")
}
