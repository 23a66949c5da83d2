// Package magnifier computes and draws the zoomed pixel preview shown next
// to the pointer while a selection edge is being placed.
package magnifier

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/example/regionshot/internal/geom"
)

const (
	// Zoom is the size, in logical pixels, of one magnified device pixel.
	Zoom = 5
	// Half is the number of device pixels sampled on each side of the
	// pointer.
	Half = 16
	// Pixels is the side of the sampled square.
	Pixels = 2*Half + 1
	// Offset is the gap between the pointer and the magnifier.
	Offset = 32
)

// Sample is the geometry of one magnifier frame.
type Sample struct {
	// Source is the sampled square in device pixels, kept inside the canvas.
	Source image.Rectangle
	// Shift is how far Source was pushed to stay inside the canvas:
	// positive when pushed right or down.
	Shift image.Point
	// Center is where the magnifier is placed, in logical coordinates.
	Center geom.Point
	// Block is the zoomed image area and Border the frame around it.
	Block  geom.Rect
	Border geom.Rect
	// Cross holds the top, right, bottom and left cross-hair bars. They
	// meet at the magnified pointer pixel and are shortened by Shift.
	Cross [4]geom.Rect
}

// Compute returns the sample for a pointer at p over a canvas of the given
// device size.
func Compute(p geom.Point, canvas image.Point, dpr float64) Sample {
	if dpr <= 0 {
		dpr = 1
	}
	var s Sample
	x, sx := clampAxis(int(p.X*dpr)-Half, canvas.X)
	y, sy := clampAxis(int(p.Y*dpr)-Half, canvas.Y)
	s.Source = image.Rect(x, y, x+Pixels, y+Pixels).Intersect(image.Rectangle{Max: canvas})
	s.Shift = image.Pt(sx, sy)

	view := geom.Canvas(canvas, dpr)
	half := float64(Pixels*Zoom) / 2
	s.Center = geom.Pt(place(p.X, view.W, half), place(p.Y, view.H, half))

	const z = Zoom
	c := s.Center
	ox, oy := float64(-sx), float64(-sy)
	s.Block = geom.R(c.X-z*(Half+0.5), c.Y-z*(Half+0.5), Pixels*z, Pixels*z)
	s.Border = s.Block.Inset(1, 1)
	s.Cross = [4]geom.Rect{
		geom.R(c.X+z*(ox-0.5), c.Y-z*(Half+0.5), z, z*(Half+oy)),
		geom.R(c.X+z*(0.5+ox), c.Y+z*(oy-0.5), z*(Half-ox), z),
		geom.R(c.X+z*(ox-0.5), c.Y+z*(0.5+oy), z, z*(Half-oy)),
		geom.R(c.X-z*(Half+0.5), c.Y+z*(oy-0.5), z*(Half+ox), z),
	}
	return s
}

// clampAxis keeps a sample start inside [0, extent-Pixels] and returns the
// shift that was applied.
func clampAxis(v, extent int) (int, int) {
	if v < 0 {
		return 0, -v
	}
	if maxV := extent - Pixels; v > maxV {
		maxV = max(maxV, 0)
		return maxV, maxV - v
	}
	return v, 0
}

// place puts the magnifier after the pointer, or before it when it would
// run past the end of the view.
func place(pos, extent, half float64) float64 {
	at := pos + Offset + half
	if at > extent-half {
		at = pos - Offset - half
	}
	return at
}

// Draw renders s onto dst, a device pixel frame, sampling src.
func Draw(dst *image.RGBA, src image.Image, s Sample, dpr float64, border, cross color.Color) {
	draw.Draw(dst, s.Border.Device(dpr), image.NewUniform(border), image.Point{}, draw.Src)
	xdraw.NearestNeighbor.Scale(dst, s.Block.Device(dpr), src, s.Source, draw.Src, nil)
	for _, r := range s.Cross {
		if r.Empty() {
			continue
		}
		draw.Draw(dst, r.Device(dpr), image.NewUniform(cross), image.Point{}, draw.Over)
	}
}
