package editor

import (
	"image"
	"image/color"
	"io"
	"log"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/regionshot/internal/annotate"
	"github.com/example/regionshot/internal/config"
	"github.com/example/regionshot/internal/geom"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func canvasImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), uint8(x ^ y), 255})
		}
	}
	return img
}

type done struct {
	calls     int
	res       *Result
	cancelled bool
}

func newSession(t *testing.T, img *image.RGBA, dpr float64, opts ...Option) (*Session, *clock, *done) {
	t.Helper()
	c := &clock{t: time.Unix(1000, 0)}
	d := &done{}
	base := []Option{
		WithClock(c.now),
		WithLogger(log.New(io.Discard, "", 0)),
		WithOnDone(func(res *Result, cancelled bool) {
			d.calls++
			d.res = res
			d.cancelled = cancelled
		}),
	}
	return New(Canvas{Image: img, DPR: dpr}, append(base, opts...)...), c, d
}

func press(x, y float32) mouse.Event {
	return mouse.Event{X: x, Y: y, Button: mouse.ButtonLeft, Direction: mouse.DirPress}
}

func move(x, y float32) mouse.Event {
	return mouse.Event{X: x, Y: y, Direction: mouse.DirNone}
}

func release(x, y float32) mouse.Event {
	return mouse.Event{X: x, Y: y, Button: mouse.ButtonLeft, Direction: mouse.DirRelease}
}

func keyPress(code key.Code, r rune, mods key.Modifiers) key.Event {
	return key.Event{Code: code, Rune: r, Modifiers: mods, Direction: key.DirPress}
}

func drag(s *Session, x0, y0, x1, y1 float32) {
	s.HandleMouse(press(x0, y0))
	s.HandleMouse(move(x1, y1))
	s.HandleMouse(release(x1, y1))
}

func TestDragThenEnterAccepts(t *testing.T) {
	img := canvasImage(1000, 800)
	s, _, d := newSession(t, img, 1)
	drag(s, 100, 100, 400, 300)
	if got := s.Selection(); got != geom.R(100, 100, 301, 201) {
		t.Fatalf("selection = %+v", got)
	}
	s.HandleKey(keyPress(key.CodeReturnEnter, -1, 0))
	if !s.Done() || d.calls != 1 || d.cancelled {
		t.Fatalf("done = %v, calls = %d, cancelled = %v", s.Done(), d.calls, d.cancelled)
	}
	if want := image.Rect(100, 100, 401, 301); d.res.Rect != want {
		t.Fatalf("rect = %v, want %v", d.res.Rect, want)
	}
	if got := d.res.Image.Bounds(); got != image.Rect(0, 0, 301, 201) {
		t.Fatalf("image bounds = %v", got)
	}
	if got, want := d.res.Image.RGBAAt(0, 0), img.RGBAAt(100, 100); got != want {
		t.Fatalf("cropped pixel = %v, want %v", got, want)
	}

	if s.HandleKey(keyPress(key.CodeReturnEnter, -1, 0)) || s.HandleMouse(press(10, 10)) {
		t.Fatal("events handled after the session ended")
	}
	if d.calls != 1 {
		t.Fatalf("done called %d times", d.calls)
	}
}

func TestEscapeCancels(t *testing.T) {
	s, _, d := newSession(t, canvasImage(100, 100), 1)
	s.HandleKey(keyPress(key.CodeEscape, -1, 0))
	if !s.Done() || !d.cancelled || d.res != nil {
		t.Fatalf("done = %v, cancelled = %v, res = %v", s.Done(), d.cancelled, d.res)
	}
}

func TestAcceptRefusedWithoutSelection(t *testing.T) {
	s, _, d := newSession(t, canvasImage(100, 100), 1)
	s.HandleKey(keyPress(key.CodeReturnEnter, -1, 0))
	if s.Done() || d.calls != 0 {
		t.Fatal("empty selection was accepted")
	}
}

func TestDoubleClickInsideAccepts(t *testing.T) {
	s, c, d := newSession(t, canvasImage(1000, 800), 1, WithInitialSelection(geom.R(100, 100, 300, 200)))
	s.HandleMouse(press(200, 200))
	s.HandleMouse(release(200, 200))
	c.advance(100 * time.Millisecond)
	s.HandleMouse(press(202, 201))
	if !s.Done() || d.res == nil {
		t.Fatal("double-click did not accept")
	}
	if d.res.Rect != image.Rect(100, 100, 400, 300) {
		t.Fatalf("rect = %v", d.res.Rect)
	}
}

func TestSlowSecondClickIsNotDouble(t *testing.T) {
	s, c, _ := newSession(t, canvasImage(1000, 800), 1, WithInitialSelection(geom.R(100, 100, 300, 200)))
	s.HandleMouse(press(200, 200))
	s.HandleMouse(release(200, 200))
	c.advance(DoubleClickInterval + time.Millisecond)
	s.HandleMouse(press(200, 200))
	if s.Done() {
		t.Fatal("slow second click accepted")
	}
}

func TestReleaseToCapture(t *testing.T) {
	cfg := config.New()
	cfg.ReleaseToCapture = true
	s, _, d := newSession(t, canvasImage(500, 500), 1, WithConfig(cfg))
	drag(s, 10, 10, 110, 60)
	if !s.Done() || d.res == nil {
		t.Fatal("release did not capture")
	}
	if d.res.Rect != image.Rect(10, 10, 111, 61) {
		t.Fatalf("rect = %v", d.res.Rect)
	}
	if cfg.CropRegion != d.res.Rect {
		t.Fatalf("remembered region = %v", cfg.CropRegion)
	}
}

func TestReleaseToCaptureIgnoresMove(t *testing.T) {
	cfg := config.New()
	cfg.ReleaseToCapture = true
	s, _, _ := newSession(t, canvasImage(500, 500), 1, WithConfig(cfg), WithInitialSelection(geom.R(100, 100, 100, 100)))
	drag(s, 150, 150, 160, 170)
	if s.Done() {
		t.Fatal("moving the selection captured")
	}
	if got := s.Selection(); got != geom.R(110, 120, 100, 100) {
		t.Fatalf("selection = %+v", got)
	}
}

func TestClickOutsideKeepsSelection(t *testing.T) {
	s, _, d := newSession(t, canvasImage(1000, 800), 1)
	drag(s, 100, 100, 400, 300)
	s.HandleMouse(press(700, 700))
	s.HandleMouse(release(700, 700))
	if got := s.Selection(); got != geom.R(100, 100, 301, 201) {
		t.Fatalf("selection after click = %+v", got)
	}
	if s.Done() || d.calls != 0 {
		t.Fatal("click ended the session")
	}
}

func TestDoubleClickOnEmptyCanvas(t *testing.T) {
	s, c, d := newSession(t, canvasImage(1000, 800), 1)
	s.HandleMouse(press(500, 500))
	s.HandleMouse(release(500, 500))
	c.advance(100 * time.Millisecond)
	s.HandleMouse(press(500, 500))
	s.HandleMouse(release(500, 500))
	if s.Done() || d.calls != 0 {
		t.Fatalf("double-click without a selection accepted %v", d.res)
	}
	if got := s.Selection(); !got.Empty() {
		t.Fatalf("selection = %+v", got)
	}
}

func TestReleaseToCaptureNeedsDrag(t *testing.T) {
	cfg := config.New()
	cfg.ReleaseToCapture = true
	s, _, d := newSession(t, canvasImage(500, 500), 1, WithConfig(cfg))
	s.HandleMouse(press(40, 40))
	s.HandleMouse(release(40, 40))
	if s.Done() || d.calls != 0 {
		t.Fatal("single click captured")
	}
}

func TestRememberedRegionRestored(t *testing.T) {
	cfg := config.New()
	cfg.CropRegion = image.Rect(10, 20, 110, 220)
	s, _, _ := newSession(t, canvasImage(400, 400), 2, WithConfig(cfg))
	if got := s.Selection(); got != geom.R(5, 10, 50, 100) {
		t.Fatalf("selection = %+v", got)
	}

	cfg = config.New()
	cfg.RememberRegion = false
	cfg.CropRegion = image.Rect(10, 20, 110, 220)
	s, _, _ = newSession(t, canvasImage(400, 400), 2, WithConfig(cfg))
	if !s.Selection().Empty() {
		t.Fatalf("region restored with remembering off: %+v", s.Selection())
	}
}

func TestRightClickResets(t *testing.T) {
	img := canvasImage(200, 200)
	s, _, _ := newSession(t, img, 1, WithInitialSelection(geom.R(10, 10, 100, 100)))
	s.HandleKey(keyPress(key.CodeR, 'r', 0))
	if s.Tool() != annotate.ToolRect {
		t.Fatalf("tool = %v", s.Tool())
	}
	drag(s, 20, 20, 80, 80)
	if s.Engine().Depth() != 1 {
		t.Fatalf("depth = %d", s.Engine().Depth())
	}
	if got := s.Selection(); got != geom.R(10, 10, 100, 100) {
		t.Fatalf("annotating changed the selection: %+v", got)
	}

	s.HandleMouse(mouse.Event{X: 5, Y: 5, Button: mouse.ButtonRight, Direction: mouse.DirPress})
	if !s.Selection().Empty() || s.Engine().Depth() != 0 || s.Tool() != annotate.ToolNone {
		t.Fatalf("selection = %+v, depth = %d, tool = %v", s.Selection(), s.Engine().Depth(), s.Tool())
	}
	if got := s.Engine().Image().RGBAAt(20, 20); got != img.RGBAAt(20, 20) {
		t.Fatal("annotation survived the reset")
	}
}

func TestShiftTogglesMagnifier(t *testing.T) {
	s, _, _ := newSession(t, canvasImage(300, 300), 1)
	s.HandleMouse(press(10, 10))
	s.HandleMouse(move(50, 50))
	if s.MagnifierVisible() {
		t.Fatal("magnifier shown with the option off")
	}
	s.HandleKey(key.Event{Code: key.CodeLeftShift, Modifiers: key.ModShift, Direction: key.DirPress})
	if !s.MagnifierVisible() {
		t.Fatal("shift did not show the magnifier")
	}
	s.HandleKey(key.Event{Code: key.CodeLeftShift, Direction: key.DirRelease})
	if s.MagnifierVisible() {
		t.Fatal("magnifier still shown after shift release")
	}

	cfg := config.New()
	cfg.ShowMagnifier = true
	s, _, _ = newSession(t, canvasImage(300, 300), 1, WithConfig(cfg))
	s.HandleMouse(press(10, 10))
	if !s.MagnifierVisible() {
		t.Fatal("magnifier hidden with the option on")
	}
	s.HandleKey(key.Event{Code: key.CodeRightShift, Modifiers: key.ModShift, Direction: key.DirPress})
	if s.MagnifierVisible() {
		t.Fatal("shift did not hide the magnifier")
	}
}

func TestUndoRearmsThroughTick(t *testing.T) {
	s, c, _ := newSession(t, canvasImage(200, 200), 1)
	s.HandleKey(keyPress(key.CodeL, 'l', 0))
	drag(s, 10, 10, 100, 100)
	s.HandleKey(keyPress(key.CodeZ, 'z', key.ModControl))
	if s.Tool() != annotate.ToolNone || s.Engine().Depth() != 0 {
		t.Fatalf("tool = %v, depth = %d", s.Tool(), s.Engine().Depth())
	}
	at, ok := s.NextWake()
	if !ok || !at.Equal(c.now().Add(annotate.RearmDelay)) {
		t.Fatalf("next wake = %v, %v", at, ok)
	}
	if s.Tick(at.Add(-time.Millisecond)) {
		t.Fatal("tick fired early")
	}
	if !s.Tick(at) || s.Tool() != annotate.ToolLine {
		t.Fatalf("tool after tick = %v", s.Tool())
	}
}

func TestToolShortcuts(t *testing.T) {
	s, _, _ := newSession(t, canvasImage(10, 10), 1)
	tests := []struct {
		code key.Code
		r    rune
		want annotate.Tool
	}{
		{key.CodeA, 'A', annotate.ToolArrow},
		{key.CodeC, 'c', annotate.ToolCircle},
		{key.CodeT, 't', annotate.ToolText},
		{key.CodeT, 't', annotate.ToolNone},
	}
	for _, tt := range tests {
		s.HandleKey(keyPress(tt.code, tt.r, 0))
		if s.Tool() != tt.want {
			t.Fatalf("after %q tool = %v, want %v", tt.r, s.Tool(), tt.want)
		}
	}
	s.HandleKey(keyPress(key.Code3, '3', 0))
	if w := s.Engine().Width(); w != 8 {
		t.Fatalf("width = %d", w)
	}
	s.HandleKey(keyPress(key.CodeRightSquareBracket, ']', 0))
	if idx := s.Engine().ColorIndex(); idx != 1 {
		t.Fatalf("colour index = %d", idx)
	}
}

func TestArrowKeys(t *testing.T) {
	s, _, _ := newSession(t, canvasImage(1000, 800), 1, WithInitialSelection(geom.R(100, 100, 50, 50)))
	s.HandleKey(keyPress(key.CodeRightArrow, -1, 0))
	if got := s.Selection(); got != geom.R(115, 100, 50, 50) {
		t.Fatalf("after right = %+v", got)
	}
	s.HandleKey(keyPress(key.CodeRightArrow, -1, key.ModShift))
	if got := s.Selection(); got != geom.R(116, 100, 50, 50) {
		t.Fatalf("after shift+right = %+v", got)
	}
	s.HandleKey(keyPress(key.CodeDownArrow, -1, key.ModAlt))
	if got := s.Selection(); got != geom.R(116, 100, 50, 65) {
		t.Fatalf("after alt+down = %+v", got)
	}
}

func TestRender(t *testing.T) {
	img := canvasImage(400, 300)
	s, _, _ := newSession(t, img, 1)
	dst := image.NewRGBA(img.Bounds())
	s.Render(dst)
	if dst.RGBAAt(250, 10) == img.RGBAAt(250, 10) {
		t.Fatal("frame without a selection was not masked")
	}

	s, _, _ = newSession(t, img, 1, WithInitialSelection(geom.R(100, 100, 50, 50)))
	s.Render(dst)
	if got, want := dst.RGBAAt(125, 125), img.RGBAAt(125, 125); got != want {
		t.Fatalf("inside pixel = %v, want %v", got, want)
	}
	if dst.RGBAAt(5, 295) == img.RGBAAt(5, 295) {
		t.Fatal("outside pixel was not masked")
	}
}

func TestMidHelpHiddenOncePressed(t *testing.T) {
	img := canvasImage(1000, 800)
	cfg := config.New()
	cfg.ShowMagnifier = false
	s, _, _ := newSession(t, img, 1, WithConfig(cfg))
	idle := image.NewRGBA(img.Bounds())
	s.Render(idle)

	s.HandleMouse(press(20, 20))
	if !s.Selection().Empty() {
		t.Fatalf("press alone selected %+v", s.Selection())
	}
	pressed := image.NewRGBA(img.Bounds())
	s.Render(pressed)

	box := s.renderer.MidHelpBox().Device(1)
	at := image.Pt(box.Min.X, (box.Min.Y+box.Max.Y)/2)
	if idle.RGBAAt(at.X, at.Y) == pressed.RGBAAt(at.X, at.Y) {
		t.Fatalf("help box still drawn at %v during a gesture", at)
	}
	if pressed.RGBAAt(900, 100) == img.RGBAAt(900, 100) {
		t.Fatal("canvas not masked during a gesture")
	}
}
