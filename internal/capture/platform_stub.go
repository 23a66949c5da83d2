//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import "fmt"

type unsupportedBackend struct{}

func newBackend() platformBackend {
	return unsupportedBackend{}
}

func (unsupportedBackend) ListMonitors() ([]MonitorInfo, error) {
	return nil, fmt.Errorf("monitor listing is not supported on this platform")
}

func runningOnWayland() bool { return false }
