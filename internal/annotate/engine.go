package annotate

import (
	"image"
	"image/color"
	"time"

	"github.com/example/regionshot/internal/geom"
)

// Engine owns the working raster and draws annotations onto it. Positions
// passed in are logical; the raster is in device pixels.
type Engine struct {
	raster *image.RGBA
	dpr    float64

	history History
	rearm   Rearm

	tool     Tool
	colorIdx int
	widthIdx int

	pending *Shape
	hover   *geom.Point
	text    func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithColorIndex selects the initial palette colour.
func WithColorIndex(idx int) Option { return func(e *Engine) { e.colorIdx = idx } }

// WithWidthIndex selects the initial stroke width.
func WithWidthIndex(idx int) Option { return func(e *Engine) { e.widthIdx = idx } }

// WithTextSource sets the function read when a text annotation is
// committed.
func WithTextSource(fn func() string) Option { return func(e *Engine) { e.text = fn } }

// NewEngine returns an engine drawing onto a private copy of img.
func NewEngine(img *image.RGBA, dpr float64, opts ...Option) *Engine {
	if dpr <= 0 {
		dpr = 1
	}
	e := &Engine{
		raster:   cloneRGBA(img),
		dpr:      dpr,
		colorIdx: defaultColorIndex,
		widthIdx: defaultWidthIndex,
	}
	for _, o := range opts {
		o(e)
	}
	e.colorIdx = clampColorIndex(e.colorIdx)
	e.widthIdx = clampWidthIndex(e.widthIdx)
	return e
}

// Image returns the working raster. It is replaced, never modified in
// place, by commits and undo.
func (e *Engine) Image() *image.RGBA { return e.raster }

// Tool returns the active tool.
func (e *Engine) Tool() Tool { return e.tool }

// Active reports whether pointer events belong to the engine.
func (e *Engine) Active() bool { return e.tool != ToolNone }

// Drawing reports whether a shape is in progress.
func (e *Engine) Drawing() bool { return e.pending != nil }

// SelectTool activates t, or deactivates it when it is already active.
// A pending re-arm is dropped.
func (e *Engine) SelectTool(t Tool) {
	e.rearm.Cancel()
	e.pending = nil
	if e.tool == t {
		e.tool = ToolNone
	} else {
		e.tool = t
	}
	if e.tool != ToolText {
		e.hover = nil
	}
}

// ColorIndex returns the selected palette index.
func (e *Engine) ColorIndex() int { return e.colorIdx }

// SetColorIndex selects a palette colour; out of range values select the
// default.
func (e *Engine) SetColorIndex(idx int) { e.colorIdx = clampColorIndex(idx) }

// CycleColor moves the palette selection by delta, wrapping around.
func (e *Engine) CycleColor(delta int) {
	n := len(paletteNames)
	e.colorIdx = ((e.colorIdx+delta)%n + n) % n
}

// Color returns the selected colour.
func (e *Engine) Color() color.RGBA { return Palette()[e.colorIdx].Color }

// WidthIndex returns the selected width index.
func (e *Engine) WidthIndex() int { return e.widthIdx }

// SetWidthIndex selects a stroke width; out of range values select the
// default.
func (e *Engine) SetWidthIndex(idx int) { e.widthIdx = clampWidthIndex(idx) }

// Width returns the selected stroke width.
func (e *Engine) Width() int { return widths[e.widthIdx] }

func (e *Engine) shapeAt(p geom.Point) *Shape {
	return &Shape{Tool: e.tool, From: p, To: p, Color: e.Color(), Width: e.Width()}
}

// Press begins a shape at p and reports whether the engine consumed the
// event. A pending re-arm is cancelled first, so a press during the re-arm
// delay is left to the caller with no tool active.
func (e *Engine) Press(p geom.Point) bool {
	e.rearm.Cancel()
	if e.tool == ToolNone {
		return false
	}
	e.pending = e.shapeAt(p)
	return true
}

// Move extends the pending shape to p. Text is re-anchored instead.
func (e *Engine) Move(p geom.Point) bool {
	if e.pending == nil {
		return false
	}
	if e.pending.Tool == ToolText {
		e.pending.From = p
	}
	e.pending.To = p
	return true
}

// Hover tracks the pointer while no button is held so the text tool can
// preview its anchor.
func (e *Engine) Hover(p geom.Point) {
	if e.tool == ToolText && e.pending == nil {
		e.hover = &p
	}
}

// Release commits the pending shape ending at p. The current raster is
// pushed onto the history and a modified copy replaces it. Every release
// commits, including zero-length and zero-area shapes.
func (e *Engine) Release(p geom.Point) bool {
	if e.pending == nil {
		return false
	}
	e.Move(p)
	s := *e.pending
	e.pending = nil
	if s.Tool == ToolText && e.text != nil {
		s.Text = e.text()
	}
	e.commit(s)
	return true
}

func (e *Engine) commit(s Shape) {
	next := cloneRGBA(e.raster)
	s.Draw(next, e.dpr)
	e.history.Push(e.raster)
	e.raster = next
}

// Pending returns the shape in progress.
func (e *Engine) Pending() (Shape, bool) {
	if e.pending == nil {
		return Shape{}, false
	}
	return *e.pending, true
}

// Undo restores the raster from before the latest commit. The active tool
// is disarmed and scheduled to return RearmDelay after now. Undo with an
// empty history does nothing and returns false.
func (e *Engine) Undo(now time.Time) bool {
	prev, ok := e.history.Pop()
	if !ok {
		return false
	}
	e.pending = nil
	if e.tool != ToolNone {
		e.rearm.Schedule(e.tool, now.Add(RearmDelay))
	}
	e.tool = ToolNone
	e.raster = prev
	return true
}

// Advance fires a due re-arm and reports whether the tool changed.
func (e *Engine) Advance(now time.Time) bool {
	t, ok := e.rearm.Fire(now)
	if !ok {
		return false
	}
	e.tool = t
	return true
}

// NextDeadline reports when Advance next needs to be called.
func (e *Engine) NextDeadline() (time.Time, bool) { return e.rearm.Deadline() }

// Depth returns the number of undoable commits.
func (e *Engine) Depth() int { return e.history.Len() }

// Reset restores the raster from before the first commit, clears the
// history and deactivates the tool.
func (e *Engine) Reset() {
	if first, ok := e.history.Oldest(); ok {
		e.raster = first
	}
	e.history.Clear()
	e.rearm.Cancel()
	e.tool = ToolNone
	e.pending = nil
	e.hover = nil
}

// Preview is a copy of the in-progress drawing, safe to render while the
// engine keeps handling events.
type Preview struct {
	shape  *Shape
	anchor bool
	dpr    float64
}

// Preview captures the pending shape, or the text anchor while hovering with
// the text tool.
func (e *Engine) Preview() Preview {
	pv := Preview{dpr: e.dpr}
	switch {
	case e.pending != nil:
		s := *e.pending
		pv.shape = &s
	case e.hover != nil && e.tool == ToolText && e.text != nil:
		pv.shape = e.shapeAt(*e.hover)
		pv.anchor = true
	default:
		return pv
	}
	if pv.shape.Tool == ToolText && e.text != nil {
		pv.shape.Text = e.text()
	}
	return pv
}

// Empty reports whether there is nothing to draw.
func (p Preview) Empty() bool { return p.shape == nil }

// Draw renders the preview onto dst, which has the raster's geometry.
// Shapes being drawn carry their measurement label.
func (p Preview) Draw(dst *image.RGBA) {
	switch {
	case p.shape == nil:
	case p.anchor:
		p.shape.Draw(dst, p.dpr)
	default:
		p.shape.DrawPreview(dst, p.dpr)
	}
}

// DrawPreview renders the current preview onto dst.
func (e *Engine) DrawPreview(dst *image.RGBA) { e.Preview().Draw(dst) }
