package notify

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/regionshot/internal/config"
	"github.com/example/regionshot/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func captureNotifications(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	prev := notifyFn
	notifyFn = func(title, body string, opts platform.Options) error {
		got = append(got, sent{title, body, opts})
		return nil
	}
	t.Cleanup(func() { notifyFn = prev })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := captureNotifications(t)
	n := New(config.Notify{})
	n.Save("out.png")
	n.Copy(image.Rect(0, 0, 10, 10))
	if len(*got) != 0 {
		t.Fatalf("sent %d notifications", len(*got))
	}

	var nilNotifier *Notifier
	nilNotifier.Save("out.png")
	nilNotifier.Enable(EventSave, true)
}

func TestCopy(t *testing.T) {
	got := captureNotifications(t)
	n := New(config.Notify{Copy: true})
	n.Copy(image.Rect(5, 5, 305, 205))
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications", len(*got))
	}
	if s := (*got)[0]; s.title != Title || s.body != "Copied 300×200 region to clipboard" || s.opts.AppName != Title {
		t.Fatalf("notification = %+v", s)
	}
}

func TestSaveUsesFileAsIcon(t *testing.T) {
	got := captureNotifications(t)
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New(config.Notify{})
	n.Enable(EventSave, true)
	n.Save(path)
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications", len(*got))
	}
	s := (*got)[0]
	if s.body != "Saved "+path || s.opts.IconPath != path {
		t.Fatalf("notification = %+v", s)
	}
}

func TestDispatchErrorIsLogged(t *testing.T) {
	prev := notifyFn
	notifyFn = func(string, string, platform.Options) error { return errors.New("no bus") }
	t.Cleanup(func() { notifyFn = prev })
	New(config.Notify{Copy: true}).Copy(image.Rect(0, 0, 1, 1))
}
