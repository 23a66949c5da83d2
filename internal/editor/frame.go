package editor

import (
	"context"
	"image"
	"image/draw"

	"github.com/example/regionshot/internal/annotate"
	"github.com/example/regionshot/internal/geom"
	"github.com/example/regionshot/internal/magnifier"
	"github.com/example/regionshot/internal/overlay"
)

// Frame is everything needed to paint one frame. It shares only immutable
// state with the session and can be rendered on another goroutine.
type Frame struct {
	image     *image.RGBA
	dpr       float64
	selection geom.Rect
	pointer   geom.Point
	gesture   bool
	handles   bool
	magnifier bool
	help      overlay.HelpVariant
	preview   annotate.Preview
	renderer  *overlay.Renderer
}

// Snapshot captures the current frame.
func (s *Session) Snapshot() Frame {
	sel := s.machine.Selection()
	return Frame{
		image:     s.engine.Image(),
		dpr:       s.canvas.DPR,
		selection: sel,
		pointer:   s.pointer,
		gesture:   s.machine.Active(),
		handles:   !s.machine.Active() && overlay.HandlesVisible(sel),
		magnifier: s.MagnifierVisible(),
		help:      overlay.VariantFor(s.cfg.ReleaseToCapture, s.cfg.RememberRegion, s.restored),
		preview:   s.engine.Preview(),
		renderer:  s.renderer,
	}
}

// Size returns the frame size in device pixels.
func (f Frame) Size() image.Point { return f.image.Bounds().Size() }

// Render paints the frame into dst, which must cover the canvas in device
// pixels. It stops early and returns the context error when ctx is done.
func (f Frame) Render(ctx context.Context, dst *image.RGBA) error {
	draw.Draw(dst, f.image.Bounds(), f.image, f.image.Bounds().Min, draw.Src)
	if err := ctx.Err(); err != nil {
		return err
	}

	r := f.renderer
	if f.selection.Empty() && !f.gesture {
		r.DrawMidHelp(dst)
	} else {
		r.DrawMask(dst, f.selection)
		r.DrawBorder(dst, f.selection)
		r.DrawTooltip(dst, f.selection)
		if err := ctx.Err(); err != nil {
			return err
		}
		switch {
		case f.handles:
			r.DrawHandles(dst, f.selection)
		case f.magnifier:
			th := r.Theme()
			s := magnifier.Compute(f.pointer, f.Size(), f.dpr)
			magnifier.Draw(dst, f.image, s, f.dpr, th.LabelForeground, th.Cross)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		r.DrawBottomHelp(dst, f.selection, f.help)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	f.preview.Draw(dst)
	return nil
}

// Render paints the current state into dst.
func (s *Session) Render(dst *image.RGBA) {
	_ = s.Snapshot().Render(context.Background(), dst)
}
