package selection

import (
	"image"

	"github.com/example/regionshot/internal/geom"
)

// LargeStep is the keyboard nudge distance in logical pixels. Fine nudges
// move by a single device pixel.
const LargeStep = 15

// ModeKind tags the active interaction.
type ModeKind int

const (
	ModeIdle ModeKind = iota
	ModeCreating
	ModeResizing
	ModeDragging
)

func (k ModeKind) String() string {
	switch k {
	case ModeIdle:
		return "idle"
	case ModeCreating:
		return "creating"
	case ModeResizing:
		return "resizing"
	case ModeDragging:
		return "dragging"
	}
	return "unknown"
}

// Mode is the active interaction. Handle is only meaningful while resizing.
type Mode struct {
	Kind   ModeKind
	Handle Location
}

func (m Mode) String() string {
	if m.Kind == ModeResizing {
		return "resizing " + m.Handle.String()
	}
	return m.Kind.String()
}

// Direction is an arrow key direction.
type Direction int

const (
	Up Direction = iota
	Down
	LeftDir
	RightDir
)

// Nudge modifiers.
type NudgeMods struct {
	// Fine moves by one device pixel instead of LargeStep.
	Fine bool
	// Resize moves the bottom or right edge instead of the whole rectangle.
	Resize bool
}

// Machine owns the selection rectangle and the interaction mode. Positions
// are logical; the canvas size is in device pixels.
type Machine struct {
	canvas image.Point
	dpr    float64

	sel  geom.Rect
	mode Mode

	// anchor is the fixed point of the active gesture.
	anchor geom.Point
	// origin is the selection top-left when a drag started.
	origin geom.Point
	// press is where the gesture started; moved is set once the pointer
	// leaves it.
	press geom.Point
	moved bool
}

// New returns an idle machine for a canvas of the given device size.
func New(canvas image.Point, dpr float64) *Machine {
	if dpr <= 0 {
		dpr = 1
	}
	return &Machine{canvas: canvas, dpr: dpr}
}

// Selection returns the current rectangle.
func (m *Machine) Selection() geom.Rect { return m.sel }

// SetSelection replaces the rectangle, clamped to the canvas.
func (m *Machine) SetSelection(r geom.Rect) {
	m.sel = r.Normalized().Intersect(m.Bounds())
}

// Mode returns the active interaction.
func (m *Machine) Mode() Mode { return m.mode }

// Active reports whether a pointer gesture is in progress.
func (m *Machine) Active() bool { return m.mode.Kind != ModeIdle }

// DPR returns the device pixel ratio.
func (m *Machine) DPR() float64 { return m.dpr }

// Bounds returns the canvas in logical coordinates.
func (m *Machine) Bounds() geom.Rect { return geom.Canvas(m.canvas, m.dpr) }

// MagnifierAllowed reports whether the gesture in progress benefits from
// the magnifier. Moving a whole selection does not.
func (m *Machine) MagnifierAllowed() bool {
	return m.mode.Kind == ModeCreating || m.mode.Kind == ModeResizing
}

// Press starts a gesture at p and returns where it landed.
func (m *Machine) Press(p geom.Point) Location {
	loc := Classify(p, m.sel)
	m.press, m.moved = p, false
	switch loc {
	case Outside:
		m.mode = Mode{Kind: ModeCreating}
		m.anchor = p
	case Inside:
		m.mode = Mode{Kind: ModeDragging}
		m.anchor = p
		m.origin = m.sel.TopLeft()
	default:
		m.mode = Mode{Kind: ModeResizing, Handle: loc}
		m.anchor = opposite(m.sel, loc)
	}
	return loc
}

// opposite returns the corner that stays fixed while dragging handle h.
func opposite(r geom.Rect, h Location) geom.Point {
	switch h {
	case Top, Left, TopLeft:
		return r.BottomRight()
	case Bottom, Right, BottomRight:
		return r.TopLeft()
	case TopRight:
		return r.BottomLeft()
	case BottomLeft:
		return r.TopRight()
	}
	return r.TopLeft()
}

// Move applies the active gesture for pointer position p. Until the pointer
// leaves the press point, moves onto it change nothing.
func (m *Machine) Move(p geom.Point) {
	if m.mode.Kind == ModeIdle {
		return
	}
	if !m.moved && p == m.press {
		return
	}
	m.moved = true
	switch m.mode.Kind {
	case ModeCreating:
		m.sel = m.creating(p)
	case ModeResizing:
		m.sel = m.resizing(p)
	case ModeDragging:
		m.sel = m.dragging(p)
	}
	m.sel = m.sel.Intersect(m.Bounds())
}

// creating spans anchor to p. The trailing edge gains one device pixel when
// the pointer is at or past the anchor so the pixel under the pointer is
// part of the selection.
func (m *Machine) creating(p geom.Point) geom.Rect {
	px := 1 / m.dpr
	x, w := span(m.anchor.X, p.X, px)
	y, h := span(m.anchor.Y, p.Y, px)
	return geom.R(x, y, w, h)
}

func span(anchor, pos, px float64) (float64, float64) {
	if pos >= anchor {
		return anchor, pos - anchor + px
	}
	return pos, anchor - pos
}

// resizing recomputes the rectangle from the anchor and p, on one axis for
// edge handles and both for corners.
func (m *Machine) resizing(p geom.Point) geom.Rect {
	r := m.sel
	s := geom.Span(m.anchor, p)
	switch m.mode.Handle {
	case Top, Bottom:
		r.Y, r.H = s.Y, s.H
	case Left, Right:
		r.X, r.W = s.X, s.W
	default:
		r = s
	}
	return r
}

// dragging translates the rectangle from its origin by the pointer delta.
// Overflow past the canvas shifts the anchor so the rectangle follows the
// pointer again as soon as it turns back.
func (m *Machine) dragging(p geom.Point) geom.Rect {
	size := m.sel.Device(m.dpr).Size()
	tl := p.Sub(m.anchor).Add(m.origin).Device(m.dpr)

	x, over := geom.Clamp(tl.X, m.canvas.X, size.X)
	m.anchor.X += float64(over) / m.dpr
	y, over := geom.Clamp(tl.Y, m.canvas.Y, size.Y)
	m.anchor.Y += float64(over) / m.dpr

	return m.sel.MoveTo(geom.PointFromDevice(image.Pt(x, y), m.dpr))
}

// Moved reports whether the gesture in progress has changed the selection.
func (m *Machine) Moved() bool { return m.moved }

// Release ends the gesture and returns the mode that was active.
func (m *Machine) Release() Mode {
	mode := m.mode
	m.mode = Mode{}
	m.moved = false
	if mode.Kind == ModeResizing {
		m.sel = m.sel.Normalized()
	}
	return mode
}

// Nudge moves the selection, or with mods.Resize its bottom or right edge,
// by one keyboard step. It does nothing while a gesture is in progress or
// when there is no selection.
func (m *Machine) Nudge(dir Direction, mods NudgeMods) {
	if m.Active() || m.sel.Empty() {
		return
	}
	step := LargeStep * m.dpr
	if mods.Fine {
		step = 1
	}
	size := m.sel.Device(m.dpr).Size()
	px := 1 / m.dpr

	switch dir {
	case Up, Down:
		var pos int
		if dir == Up {
			pos, _ = geom.ClampLow(geom.Round(m.sel.Top()*m.dpr - step))
		} else {
			pos, _ = geom.ClampHigh(geom.Round(m.sel.Top()*m.dpr+step), max(m.canvas.Y-size.Y, 0))
		}
		if mods.Resize {
			m.sel.H = float64(pos)*px + m.sel.H - m.sel.Y
		} else {
			m.sel.Y = float64(pos) * px
		}
	case LeftDir, RightDir:
		var pos int
		if dir == LeftDir {
			pos, _ = geom.ClampLow(geom.Round(m.sel.Left()*m.dpr - step))
		} else {
			pos, _ = geom.ClampHigh(geom.Round(m.sel.Left()*m.dpr+step), max(m.canvas.X-size.X, 0))
		}
		if mods.Resize {
			m.sel.W = float64(pos)*px + m.sel.W - m.sel.X
		} else {
			m.sel.X = float64(pos) * px
		}
	}
	m.sel = m.sel.Normalized().Intersect(m.Bounds())
}

// Reset clears the selection and ends any gesture.
func (m *Machine) Reset() {
	m.sel.W, m.sel.H = 0, 0
	m.mode = Mode{}
	m.moved = false
}
