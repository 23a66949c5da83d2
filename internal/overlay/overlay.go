// Package overlay draws the selection decorations on top of the captured
// image: the outside mask, the border and handles, the size tooltip and the
// help panels.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/example/regionshot/internal/geom"
	"github.com/example/regionshot/internal/textface"
	"github.com/example/regionshot/internal/theme"
)

const (
	// HandlesMinSize is the smallest selection side, in logical pixels,
	// that gets resize handles.
	HandlesMinSize = 20
	// TooltipInsideMin is the smallest selection side for which the size
	// tooltip is drawn inside the selection.
	TooltipInsideMin = 100

	cornerHandleRadius = 8
	edgeHandleRadius   = 5

	helpFontSize    = 10
	midHelpFontSize = 12
	tooltipFontSize = 10

	tooltipPadX   = 5
	tooltipPadY   = 4
	tooltipMargin = 2

	midHelpPad    = 20
	midHelpBorder = 2
	midHelpRadius = 4
)

// Renderer draws overlay elements into device pixel frames.
type Renderer struct {
	theme     *theme.Theme
	lightMask bool
	dpr       float64
	view      geom.Rect
	primary   geom.Rect
	help      *HelpCache
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTheme sets the colours.
func WithTheme(t *theme.Theme) Option { return func(r *Renderer) { r.theme = t } }

// WithLightMask selects the light mask colour.
func WithLightMask(on bool) Option { return func(r *Renderer) { r.lightMask = on } }

// WithPrimary sets the logical rectangle of the primary display. Help panels
// are centred on it.
func WithPrimary(p geom.Rect) Option { return func(r *Renderer) { r.primary = p } }

// NewRenderer returns a renderer for a device canvas of the given size.
func NewRenderer(canvas image.Point, dpr float64, opts ...Option) *Renderer {
	if dpr <= 0 {
		dpr = 1
	}
	r := &Renderer{dpr: dpr, view: geom.Canvas(canvas, dpr)}
	for _, o := range opts {
		o(r)
	}
	if r.theme == nil {
		r.theme = theme.Default()
	}
	if r.primary.Empty() {
		r.primary = r.view
	}
	r.help = NewHelpCache(r.measurer(helpFontSize))
	return r
}

// Theme returns the colours in use.
func (r *Renderer) Theme() *theme.Theme { return r.theme }

// HelpCache returns the bottom help layout cache.
func (r *Renderer) HelpCache() *HelpCache { return r.help }

func (r *Renderer) measurer(size float64) Measurer {
	face := textface.FaceOrFallback(size * r.dpr)
	return func(text string) (float64, float64) {
		w, h, _ := textface.Measure(face, text)
		return float64(w) / r.dpr, float64(h) / r.dpr
	}
}

func (r *Renderer) drawText(dst *image.RGBA, size float64, at geom.Point, text string, col color.Color) {
	p := at.Device(r.dpr)
	textface.Draw(dst, textface.FaceOrFallback(size*r.dpr), p.X, p.Y, text, col)
}

// DrawMask darkens everything outside sel.
func (r *Renderer) DrawMask(dst *image.RGBA, sel geom.Rect) {
	col := image.NewUniform(r.theme.MaskColor(r.lightMask))
	b := dst.Bounds()
	if sel.Empty() {
		draw.Draw(dst, b, col, image.Point{}, draw.Over)
		return
	}
	s := sel.Device(r.dpr)
	for _, part := range []image.Rectangle{
		image.Rect(b.Min.X, b.Min.Y, b.Max.X, s.Min.Y),
		image.Rect(s.Max.X, s.Min.Y, b.Max.X, s.Max.Y),
		image.Rect(b.Min.X, s.Max.Y, b.Max.X, b.Max.Y),
		image.Rect(b.Min.X, s.Min.Y, s.Min.X, s.Max.Y),
	} {
		if part = part.Intersect(b); !part.Empty() {
			draw.Draw(dst, part, col, image.Point{}, draw.Over)
		}
	}
}

// DrawBorder outlines sel with a one device pixel stroke along its inner
// edge.
func (r *Renderer) DrawBorder(dst *image.RGBA, sel geom.Rect) {
	s := sel.Device(r.dpr)
	if s.Empty() {
		return
	}
	col := image.NewUniform(r.theme.Stroke)
	for _, edge := range []image.Rectangle{
		image.Rect(s.Min.X, s.Min.Y, s.Max.X, s.Min.Y+1),
		image.Rect(s.Min.X, s.Max.Y-1, s.Max.X, s.Max.Y),
		image.Rect(s.Min.X, s.Min.Y, s.Min.X+1, s.Max.Y),
		image.Rect(s.Max.X-1, s.Min.Y, s.Max.X, s.Max.Y),
	} {
		draw.Draw(dst, edge, col, image.Point{}, draw.Src)
	}
}

// HandlesVisible reports whether sel is large enough to carry handles.
func HandlesVisible(sel geom.Rect) bool {
	return sel.W > HandlesMinSize && sel.H > HandlesMinSize
}

// DrawHandles draws quarter disks in the corners of sel and half disks at
// the middle of each edge, clipped to the selection.
func (r *Renderer) DrawHandles(dst *image.RGBA, sel geom.Rect) {
	if !HandlesVisible(sel) {
		return
	}
	clip := sel.Device(r.dpr).Intersect(dst.Bounds())
	corner := geom.Round(cornerHandleRadius * r.dpr)
	edge := geom.Round(edgeHandleRadius * r.dpr)
	for _, c := range []geom.Point{sel.TopLeft(), sel.TopRight(), sel.BottomLeft(), sel.BottomRight()} {
		fillDisk(dst, clip, c.Device(r.dpr), corner, r.theme.Stroke)
	}
	mid := sel.Center()
	for _, c := range []geom.Point{
		geom.Pt(mid.X, sel.Top()), geom.Pt(sel.Right(), mid.Y),
		geom.Pt(mid.X, sel.Bottom()), geom.Pt(sel.Left(), mid.Y),
	} {
		fillDisk(dst, clip, c.Device(r.dpr), edge, r.theme.Stroke)
	}
}

// TooltipText returns the device pixel size of sel as shown in the tooltip.
func TooltipText(sel geom.Rect, dpr float64) string {
	s := sel.Device(dpr)
	return fmt.Sprintf("%d×%d", s.Dx(), s.Dy())
}

// TooltipBox places a label of the given logical text size for sel. Large
// selections hold the label in their middle; otherwise it sits above the
// selection, or below it when there is no room above.
func TooltipBox(sel geom.Rect, textW, textH float64, view geom.Rect) geom.Rect {
	boxW := textW + 2*tooltipPadX
	boxH := textH + 2*tooltipPadY
	x := math.Floor(sel.X + (sel.W-textW)/2 - tooltipPadX)
	x = math.Max(view.X, math.Min(x, view.Right()-boxW))

	var y float64
	if sel.W >= TooltipInsideMin && sel.H >= TooltipInsideMin {
		y = math.Floor(sel.Y + (sel.H-boxH)/2)
	} else {
		y = sel.Y - boxH - tooltipMargin
		if y < view.Y {
			y = sel.Bottom() + tooltipMargin
		}
	}
	return geom.R(x, y, boxW, boxH)
}

// DrawTooltip draws the selection size label.
func (r *Renderer) DrawTooltip(dst *image.RGBA, sel geom.Rect) {
	if sel.Empty() {
		return
	}
	text := TooltipText(sel, r.dpr)
	tw, th := r.measurer(tooltipFontSize)(text)
	box := TooltipBox(sel, tw, th, r.view)
	r.drawLabelBox(dst, box.Device(r.dpr), 1)
	r.drawText(dst, tooltipFontSize, geom.Pt(box.X+tooltipPadX, box.Y+tooltipPadY), text, r.theme.LabelForeground)
}

func (r *Renderer) drawLabelBox(dst *image.RGBA, box image.Rectangle, border int) {
	draw.Draw(dst, box, image.NewUniform(r.theme.LabelBackground), image.Point{}, draw.Over)
	fg := image.NewUniform(r.theme.LabelForeground)
	for _, edge := range []image.Rectangle{
		image.Rect(box.Min.X, box.Min.Y, box.Max.X, box.Min.Y+border),
		image.Rect(box.Min.X, box.Max.Y-border, box.Max.X, box.Max.Y),
		image.Rect(box.Min.X, box.Min.Y, box.Min.X+border, box.Max.Y),
		image.Rect(box.Max.X-border, box.Min.Y, box.Max.X, box.Max.Y),
	} {
		draw.Draw(dst, edge, fg, image.Point{}, draw.Src)
	}
}

// DrawBottomHelp draws the shortcut panel for v. It is skipped, returning
// false, when sel overlaps the panel.
func (r *Renderer) DrawBottomHelp(dst *image.RGBA, sel geom.Rect, v HelpVariant) bool {
	l := r.help.Layout(v, r.view, r.primary, r.dpr)
	if sel.Intersects(l.Border) {
		return false
	}
	r.drawLabelBox(dst, l.Border.Device(r.dpr), 1)
	for _, t := range l.Labels {
		r.drawText(dst, helpFontSize, t.At, t.Text, r.theme.LabelForeground)
	}
	for _, t := range l.Values {
		r.drawText(dst, helpFontSize, t.At, t.Text, r.theme.LabelForeground)
	}
	return true
}

// MidHelpBox returns the logical box of the centred help shown while nothing
// is selected.
func (r *Renderer) MidHelpBox() geom.Rect {
	tw, th := r.midHelpSize()
	pos := geom.Pt(math.Floor((r.primary.W-tw)/2)+r.primary.X, math.Floor((r.view.H-th)/2))
	return geom.R(pos.X-midHelpPad, pos.Y-midHelpPad, tw+2*midHelpPad, th+2*midHelpPad)
}

func (r *Renderer) midHelpSize() (w, h float64) {
	m := r.measurer(midHelpFontSize)
	for _, line := range strings.Split(MidHelpText, "\n") {
		lw, lh := m(line)
		w = math.Max(w, lw)
		h += lh
	}
	return w, h
}

// DrawMidHelp masks the whole frame and draws the centred instructions.
func (r *Renderer) DrawMidHelp(dst *image.RGBA) {
	r.DrawMask(dst, geom.Rect{})
	box := r.MidHelpBox()
	dev := box.Device(r.dpr)
	radius := geom.Round(midHelpRadius * r.dpr)
	border := max(geom.Round(midHelpBorder*r.dpr), 1)
	fillRoundedRect(dst, dev, radius, r.theme.LabelForeground)
	fillRoundedRect(dst, dev.Inset(border), max(radius-border, 0), r.theme.LabelBackground)

	m := r.measurer(midHelpFontSize)
	tw, _ := r.midHelpSize()
	y := box.Y + midHelpPad
	for _, line := range strings.Split(MidHelpText, "\n") {
		lw, lh := m(line)
		x := box.X + midHelpPad + math.Floor((tw-lw)/2)
		r.drawText(dst, midHelpFontSize, geom.Pt(x, y), line, r.theme.LabelForeground)
		y += lh
	}
}
