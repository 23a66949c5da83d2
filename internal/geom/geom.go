// Package geom provides the logical rectangle type shared by the editor
// components and the helpers that move values between logical and device
// coordinates.
package geom

import (
	"image"
	"math"
)

// Point is a position in logical coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul returns p scaled by k.
func (p Point) Mul(k float64) Point { return Point{p.X * k, p.Y * k} }

// Device converts p to device pixels, rounding to the nearest pixel.
func (p Point) Device(dpr float64) image.Point {
	return image.Pt(Round(p.X*dpr), Round(p.Y*dpr))
}

// PointFromDevice converts a device pixel position to logical coordinates.
func PointFromDevice(p image.Point, dpr float64) Point {
	return Point{float64(p.X) / dpr, float64(p.Y) / dpr}
}

// Rect is an axis aligned rectangle in logical coordinates. A rectangle with
// a non-positive width or height is empty.
type Rect struct {
	X, Y, W, H float64
}

// R is shorthand for Rect{X: x, Y: y, W: w, H: h}.
func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// Span returns the normalized rectangle with corners a and b.
func Span(a, b Point) Rect {
	return Rect{
		X: math.Min(a.X, b.X),
		Y: math.Min(a.Y, b.Y),
		W: math.Abs(b.X - a.X),
		H: math.Abs(b.Y - a.Y),
	}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

func (r Rect) TopLeft() Point     { return Point{r.X, r.Y} }
func (r Rect) TopRight() Point    { return Point{r.Right(), r.Y} }
func (r Rect) BottomLeft() Point  { return Point{r.X, r.Bottom()} }
func (r Rect) BottomRight() Point { return Point{r.Right(), r.Bottom()} }

// Center returns the midpoint of r.
func (r Rect) Center() Point { return Point{r.X + r.W/2, r.Y + r.H/2} }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Normalized returns r with a non-negative width and height, flipping the
// edges that were inverted.
func (r Rect) Normalized() Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// Contains reports whether p lies within r. All four edges are inclusive.
func (r Rect) Contains(p Point) bool {
	if r.Empty() {
		return false
	}
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Intersects reports whether r and s share a region of positive area.
func (r Rect) Intersects(s Rect) bool {
	if r.Empty() || s.Empty() {
		return false
	}
	return r.X < s.Right() && s.X < r.Right() && r.Y < s.Bottom() && s.Y < r.Bottom()
}

// Intersect returns the largest rectangle contained by both r and s. When
// they do not overlap the result is empty and positioned inside s.
func (r Rect) Intersect(s Rect) Rect {
	x0 := math.Max(r.X, s.X)
	y0 := math.Max(r.Y, s.Y)
	x1 := math.Min(r.Right(), s.Right())
	y1 := math.Min(r.Bottom(), s.Bottom())
	if x1 < x0 || y1 < y0 {
		return Rect{
			X: math.Min(math.Max(r.X, s.X), s.Right()),
			Y: math.Min(math.Max(r.Y, s.Y), s.Bottom()),
		}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// MoveTo returns r translated so its top-left corner is p.
func (r Rect) MoveTo(p Point) Rect {
	r.X, r.Y = p.X, p.Y
	return r
}

// Translate returns r shifted by d.
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Inset returns r grown by dx on the left and right and dy on the top and
// bottom. Negative values shrink the rectangle.
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{r.X - dx, r.Y - dy, r.W + 2*dx, r.H + 2*dy}
}

// Device converts r to device pixels. Position and size are rounded
// independently so the device size does not depend on the position.
func (r Rect) Device(dpr float64) image.Rectangle {
	x := Round(r.X * dpr)
	y := Round(r.Y * dpr)
	return image.Rect(x, y, x+Round(r.W*dpr), y+Round(r.H*dpr))
}

// FromDevice converts a device pixel rectangle to logical coordinates.
func FromDevice(r image.Rectangle, dpr float64) Rect {
	return Rect{
		X: float64(r.Min.X) / dpr,
		Y: float64(r.Min.Y) / dpr,
		W: float64(r.Dx()) / dpr,
		H: float64(r.Dy()) / dpr,
	}
}

// Round rounds half away from zero.
func Round(v float64) int { return int(math.Round(v)) }
