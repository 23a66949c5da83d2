package capture

import (
	"errors"
	"image"
	"strings"
	"testing"
)

type fakeBackend struct {
	monitors []MonitorInfo
	err      error
}

func (f fakeBackend) ListMonitors() ([]MonitorInfo, error) { return f.monitors, f.err }

func stubCapture(t *testing.T, portal func(bool, Options) (*image.RGBA, error), direct func() (*image.RGBA, error), monitors func() ([]MonitorInfo, error)) {
	t.Helper()
	prevPortal, prevDirect, prevMonitors := portalScreenshotFn, directScreenshotFn, listMonitorsFn
	t.Cleanup(func() {
		portalScreenshotFn, directScreenshotFn, listMonitorsFn = prevPortal, prevDirect, prevMonitors
	})
	portalScreenshotFn = portal
	directScreenshotFn = direct
	listMonitorsFn = monitors
}

func twoMonitors() ([]MonitorInfo, error) {
	return []MonitorInfo{
		{Index: 0, Name: "DP-1", Rect: image.Rect(0, 0, 100, 80)},
		{Index: 1, Name: "HDMI-1", Rect: image.Rect(100, 0, 300, 100), Primary: true},
	}, nil
}

func TestScreenshotUsesPortal(t *testing.T) {
	want := image.NewRGBA(image.Rect(0, 0, 300, 100))
	stubCapture(t,
		func(bool, Options) (*image.RGBA, error) { return want, nil },
		func() (*image.RGBA, error) { t.Fatal("direct capture used"); return nil, nil },
		twoMonitors,
	)
	shot, err := Screenshot(Options{})
	if err != nil {
		t.Fatalf("Screenshot: %v", err)
	}
	if shot.Image != want {
		t.Fatal("unexpected image")
	}
	if shot.Primary != image.Rect(100, 0, 300, 100) {
		t.Fatalf("primary = %v", shot.Primary)
	}
}

func TestScreenshotDisplaySelector(t *testing.T) {
	stubCapture(t,
		func(bool, Options) (*image.RGBA, error) { return image.NewRGBA(image.Rect(0, 0, 300, 100)), nil },
		nil,
		twoMonitors,
	)
	shot, err := Screenshot(Options{Display: "dp"})
	if err != nil {
		t.Fatalf("Screenshot: %v", err)
	}
	if shot.Primary != image.Rect(0, 0, 100, 80) {
		t.Fatalf("primary = %v", shot.Primary)
	}
	if _, err := Screenshot(Options{Display: "7"}); err == nil {
		t.Fatal("expected error for unknown display")
	}
}

func TestScreenshotFallsBackToDirect(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "")
	called := false
	stubCapture(t,
		func(bool, Options) (*image.RGBA, error) { return nil, errors.New("portal failed") },
		func() (*image.RGBA, error) {
			called = true
			return image.NewRGBA(image.Rect(-50, 0, 50, 40)), nil
		},
		func() ([]MonitorInfo, error) { return nil, errors.New("no randr") },
	)
	shot, err := Screenshot(Options{})
	if err != nil {
		t.Fatalf("Screenshot: %v", err)
	}
	if !called {
		t.Fatal("direct capture not attempted")
	}
	if shot.Image.Bounds() != image.Rect(0, 0, 100, 40) {
		t.Fatalf("image bounds = %v", shot.Image.Bounds())
	}
	if shot.Primary != shot.Image.Bounds() {
		t.Fatalf("primary = %v", shot.Primary)
	}
}

func TestScreenshotFallbackFailure(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "")
	stubCapture(t,
		func(bool, Options) (*image.RGBA, error) { return nil, errors.New("portal failed") },
		func() (*image.RGBA, error) { return nil, errNoDisplays },
		twoMonitors,
	)
	_, err := Screenshot(Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errNoDisplays) || !strings.Contains(err.Error(), "direct capture fallback") {
		t.Fatalf("err = %v", err)
	}
}

func TestFindMonitor(t *testing.T) {
	monitors, _ := twoMonitors()
	tests := []struct {
		sel     string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"primary", 1, false},
		{"#1", 1, false},
		{"0", 0, false},
		{"hdmi", 1, false},
		{"5", 0, true},
		{"vga", 0, true},
	}
	for _, tt := range tests {
		got, err := FindMonitor(monitors, tt.sel)
		if (err != nil) != tt.wantErr {
			t.Errorf("FindMonitor(%q) err = %v", tt.sel, err)
			continue
		}
		if err == nil && got.Index != tt.want {
			t.Errorf("FindMonitor(%q) = %d, want %d", tt.sel, got.Index, tt.want)
		}
	}
	if _, err := FindMonitor(nil, ""); !errors.Is(err, errNoMonitors) {
		t.Fatalf("empty list err = %v", err)
	}
}

func TestUnion(t *testing.T) {
	monitors, _ := twoMonitors()
	if got := Union(monitors); got != image.Rect(0, 0, 300, 100) {
		t.Fatalf("union = %v", got)
	}
}

func TestListMonitorsPrefersBackend(t *testing.T) {
	prev := backend
	t.Cleanup(func() { backend = prev })
	monitors, _ := twoMonitors()
	backend = fakeBackend{monitors: monitors}
	got, err := ListMonitors()
	if err != nil || len(got) != 2 {
		t.Fatalf("ListMonitors = %v, %v", got, err)
	}
}
