// Package editor composes the selection machine, the annotation engine and
// the overlay into an interactive session driven by pointer and key events.
package editor

import (
	"image"
	"image/draw"
	"log"
	"time"

	"github.com/example/regionshot/internal/annotate"
	"github.com/example/regionshot/internal/config"
	"github.com/example/regionshot/internal/geom"
	"github.com/example/regionshot/internal/overlay"
	"github.com/example/regionshot/internal/selection"
	"github.com/example/regionshot/internal/theme"
)

const (
	// DoubleClickInterval is the longest gap between two presses that
	// still counts as a double-click.
	DoubleClickInterval = 400 * time.Millisecond
	// DoubleClickDistance is how far, in logical pixels, the second press
	// may land from the first.
	DoubleClickDistance = 4
)

// Canvas is the captured image and its device pixel ratio.
type Canvas struct {
	Image *image.RGBA
	DPR   float64
}

// Result is an accepted selection. Rect is in device pixels and Image holds
// the annotated pixels inside it, with its origin at zero.
type Result struct {
	Rect  image.Rectangle
	Image *image.RGBA
}

// Session is one run of the region editor. It is not safe for concurrent
// use; frames for another goroutine are taken with Snapshot.
type Session struct {
	canvas  Canvas
	cfg     *config.Config
	theme   *theme.Theme
	logger  *log.Logger
	now     func() time.Time
	onDone  func(*Result, bool)
	primary geom.Rect
	initial *geom.Rect
	text    func() string

	machine  *selection.Machine
	engine   *annotate.Engine
	renderer *overlay.Renderer

	pointer   geom.Point
	magToggle bool
	restored  bool

	lastClick   time.Time
	lastClickAt geom.Point

	done      bool
	cancelled bool
	result    *Result

	shortcuts map[shortcut]func()
}

// Option configures a Session.
type Option func(*Session)

// WithConfig sets the behaviour options and the remembered region. The
// session writes the accepted region back into cfg when remembering is on.
func WithConfig(cfg *config.Config) Option { return func(s *Session) { s.cfg = cfg } }

// WithTheme sets the overlay colours.
func WithTheme(t *theme.Theme) Option { return func(s *Session) { s.theme = t } }

// WithInitialSelection starts with r selected. It takes precedence over a
// remembered region.
func WithInitialSelection(r geom.Rect) Option {
	return func(s *Session) { s.initial = &r }
}

// WithPrimaryDisplay sets the logical rectangle of the primary display used
// to centre the help text.
func WithPrimaryDisplay(r geom.Rect) Option { return func(s *Session) { s.primary = r } }

// WithTextSource sets where text annotations get their content.
func WithTextSource(fn func() string) Option { return func(s *Session) { s.text = fn } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(s *Session) { s.now = now } }

// WithLogger sets the logger for refused actions.
func WithLogger(l *log.Logger) Option { return func(s *Session) { s.logger = l } }

// WithOnDone is called once when the session ends, with the result or with
// cancelled set.
func WithOnDone(fn func(res *Result, cancelled bool)) Option {
	return func(s *Session) { s.onDone = fn }
}

// New returns a session over canvas.
func New(canvas Canvas, opts ...Option) *Session {
	if canvas.DPR <= 0 {
		canvas.DPR = 1
	}
	s := &Session{canvas: canvas}
	for _, o := range opts {
		o(s)
	}
	if s.cfg == nil {
		s.cfg = config.New()
	}
	if s.theme == nil {
		s.theme = theme.Default()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}

	size := canvas.Image.Bounds().Size()
	s.machine = selection.New(size, canvas.DPR)
	var eopts []annotate.Option
	if s.text != nil {
		eopts = append(eopts, annotate.WithTextSource(s.text))
	}
	s.engine = annotate.NewEngine(canvas.Image, canvas.DPR, eopts...)
	s.renderer = overlay.NewRenderer(size, canvas.DPR,
		overlay.WithTheme(s.theme),
		overlay.WithLightMask(s.cfg.LightMask),
		overlay.WithPrimary(s.primary),
	)

	switch {
	case s.initial != nil:
		s.machine.SetSelection(*s.initial)
	case s.cfg.RememberRegion && !s.cfg.CropRegion.Empty():
		s.machine.SetSelection(geom.FromDevice(s.cfg.CropRegion, canvas.DPR))
		s.restored = !s.machine.Selection().Empty()
	}
	s.shortcuts = s.defaultShortcuts()
	return s
}

// Config returns the configuration the session runs with.
func (s *Session) Config() *config.Config { return s.cfg }

// Selection returns the selected rectangle in logical coordinates.
func (s *Session) Selection() geom.Rect { return s.machine.Selection() }

// Mode returns the selection gesture in progress.
func (s *Session) Mode() selection.Mode { return s.machine.Mode() }

// Tool returns the active annotation tool.
func (s *Session) Tool() annotate.Tool { return s.engine.Tool() }

// Engine returns the annotation engine.
func (s *Session) Engine() *annotate.Engine { return s.engine }

// MagnifierVisible reports whether the magnifier is drawn.
func (s *Session) MagnifierVisible() bool {
	return s.machine.MagnifierAllowed() && s.cfg.ShowMagnifier != s.magToggle
}

// Done reports whether the session has ended.
func (s *Session) Done() bool { return s.done }

// Cancelled reports whether the session ended without a result.
func (s *Session) Cancelled() bool { return s.cancelled }

// Result returns the accepted selection, or nil.
func (s *Session) Result() *Result { return s.result }

// Accept ends the session with the current selection. It is refused, and
// returns false, when the selection is empty or the session is over.
func (s *Session) Accept() bool {
	if s.done {
		return false
	}
	sel := s.machine.Selection()
	if sel.Empty() {
		s.logger.Printf("editor: nothing selected")
		return false
	}
	src := s.engine.Image()
	rect := sel.Device(s.canvas.DPR).Intersect(src.Bounds())
	if rect.Empty() {
		s.logger.Printf("editor: selection %v is outside the canvas", sel)
		return false
	}
	out := image.NewRGBA(image.Rectangle{Max: rect.Size()})
	draw.Draw(out, out.Bounds(), src, rect.Min, draw.Src)
	if s.cfg.RememberRegion {
		s.cfg.CropRegion = rect
	}
	s.finish(&Result{Rect: rect, Image: out}, false)
	return true
}

// Cancel ends the session without a result.
func (s *Session) Cancel() {
	if s.done {
		return
	}
	s.finish(nil, true)
}

func (s *Session) finish(res *Result, cancelled bool) {
	s.done = true
	s.result = res
	s.cancelled = cancelled
	if s.onDone != nil {
		s.onDone(res, cancelled)
	}
}

// ResetSelection clears the selection and every annotation.
func (s *Session) ResetSelection() {
	s.machine.Reset()
	s.engine.Reset()
	s.magToggle = false
	s.restored = false
}

// Tick runs deferred work that is due at now and reports whether the frame
// changed.
func (s *Session) Tick(now time.Time) bool {
	if s.done {
		return false
	}
	return s.engine.Advance(now)
}

// NextWake reports when Tick next has work to do.
func (s *Session) NextWake() (time.Time, bool) {
	if s.done {
		return time.Time{}, false
	}
	return s.engine.NextDeadline()
}
