package editor

import (
	"math"
	"time"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/regionshot/internal/annotate"
	"github.com/example/regionshot/internal/geom"
	"github.com/example/regionshot/internal/selection"
)

// shortcut identifies a key press by rune or, for keys without one, code.
type shortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

func (s *Session) defaultShortcuts() map[shortcut]func() {
	m := map[shortcut]func(){
		{Code: key.CodeReturnEnter}:                  func() { s.Accept() },
		{Code: key.CodeKeypadEnter}:                  func() { s.Accept() },
		{Code: key.CodeEscape}:                       s.Cancel,
		{Rune: 'z', Modifiers: key.ModControl}:       s.undo,
		{Code: key.CodeZ, Modifiers: key.ModControl}: s.undo,
		{Rune: '['}:                                  func() { s.engine.CycleColor(-1) },
		{Rune: ']'}:                                  func() { s.engine.CycleColor(1) },
	}
	tools := map[rune]annotate.Tool{
		'l': annotate.ToolLine,
		'a': annotate.ToolArrow,
		'r': annotate.ToolRect,
		'c': annotate.ToolCircle,
		't': annotate.ToolText,
	}
	for r, t := range tools {
		m[shortcut{Rune: r}] = func() { s.engine.SelectTool(t) }
	}
	for i := range annotate.Widths() {
		m[shortcut{Rune: rune('1' + i)}] = func() { s.engine.SetWidthIndex(i) }
	}
	return m
}

// point converts a window position in device pixels to logical coordinates.
func (s *Session) point(x, y float32) geom.Point {
	return geom.Pt(float64(x)/s.canvas.DPR, float64(y)/s.canvas.DPR)
}

// HandleMouse processes a pointer event. Positions are device pixels as
// delivered by the window. It reports whether the frame needs repainting.
func (s *Session) HandleMouse(e mouse.Event) bool {
	if s.done {
		return false
	}
	p := s.point(e.X, e.Y)
	s.pointer = p
	switch e.Direction {
	case mouse.DirPress:
		switch e.Button {
		case mouse.ButtonLeft:
			s.press(p)
		case mouse.ButtonRight:
			s.ResetSelection()
		default:
			return false
		}
	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft {
			return false
		}
		s.release(p)
	case mouse.DirNone:
		switch {
		case s.engine.Drawing():
			s.engine.Move(p)
		case s.machine.Active():
			s.machine.Move(p)
		default:
			s.engine.Hover(p)
		}
	default:
		return false
	}
	return true
}

func (s *Session) undo() { s.engine.Undo(s.now()) }

func (s *Session) press(p geom.Point) {
	if s.engine.Press(p) {
		return
	}
	now := s.now()
	double := !s.lastClick.IsZero() &&
		now.Sub(s.lastClick) <= DoubleClickInterval &&
		math.Hypot(p.X-s.lastClickAt.X, p.Y-s.lastClickAt.Y) <= DoubleClickDistance
	s.lastClick, s.lastClickAt = now, p
	if sel := s.machine.Selection(); double && !sel.Empty() && sel.Contains(p) {
		s.lastClick = time.Time{}
		if s.Accept() {
			return
		}
	}
	s.machine.Press(p)
}

func (s *Session) release(p geom.Point) {
	if s.engine.Release(p) {
		return
	}
	if !s.machine.Active() {
		return
	}
	s.machine.Move(p)
	moved := s.machine.Moved()
	mode := s.machine.Release()
	if mode.Kind == selection.ModeCreating && moved && s.cfg.ReleaseToCapture {
		s.Accept()
	}
}

func isShift(c key.Code) bool {
	return c == key.CodeLeftShift || c == key.CodeRightShift
}

// HandleKey processes a key event and reports whether the frame needs
// repainting.
func (s *Session) HandleKey(e key.Event) bool {
	if s.done {
		return false
	}
	if isShift(e.Code) {
		if e.Direction == key.DirRelease {
			s.magToggle = false
		} else {
			s.magToggle = true
		}
		return true
	}
	if e.Direction == key.DirRelease {
		if e.Modifiers&key.ModShift == 0 && s.magToggle {
			s.magToggle = false
			return true
		}
		return false
	}

	if dir, ok := arrow(e.Code); ok {
		s.machine.Nudge(dir, selection.NudgeMods{
			Fine:   e.Modifiers&key.ModShift != 0,
			Resize: e.Modifiers&key.ModAlt != 0,
		})
		return true
	}

	mods := e.Modifiers & key.ModControl
	sc := shortcut{Code: e.Code, Modifiers: mods}
	if e.Rune > 0 && unicode.IsPrint(e.Rune) {
		sc = shortcut{Rune: unicode.ToLower(e.Rune), Modifiers: mods}
	}
	fn, ok := s.shortcuts[sc]
	if !ok {
		return false
	}
	fn()
	return true
}

func arrow(c key.Code) (selection.Direction, bool) {
	switch c {
	case key.CodeUpArrow:
		return selection.Up, true
	case key.CodeDownArrow:
		return selection.Down, true
	case key.CodeLeftArrow:
		return selection.LeftDir, true
	case key.CodeRightArrow:
		return selection.RightDir, true
	}
	return 0, false
}
