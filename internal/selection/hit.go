// Package selection implements the selection rectangle state machine: hit
// testing against the eight resize handles, creation, resizing, dragging and
// keyboard nudging, all clamped to the canvas.
package selection

import (
	"math"

	"github.com/example/regionshot/internal/geom"
)

// HandleTolerance is the widest grab band, in logical pixels, around each
// edge of the selection.
const HandleTolerance = 20

// Location classifies a pointer position relative to the selection.
type Location int

const (
	Outside Location = iota
	Inside
	Top
	Bottom
	Left
	Right
	TopLeft
	TopRight
	BottomLeft
	BottomRight
)

var locationNames = [...]string{
	Outside:     "outside",
	Inside:      "inside",
	Top:         "top",
	Bottom:      "bottom",
	Left:        "left",
	Right:       "right",
	TopLeft:     "top-left",
	TopRight:    "top-right",
	BottomLeft:  "bottom-left",
	BottomRight: "bottom-right",
}

func (l Location) String() string {
	if l < 0 || int(l) >= len(locationNames) {
		return "unknown"
	}
	return locationNames[l]
}

// IsHandle reports whether l is one of the eight resize handles.
func (l Location) IsHandle() bool { return l >= Top && l <= BottomRight }

// IsCorner reports whether l is one of the four corner handles.
func (l Location) IsCorner() bool { return l >= TopLeft && l <= BottomRight }

// Tolerance returns the grab band for a selection extent on one axis. Small
// selections get proportionally narrower bands so the handles never overlap.
func Tolerance(extent float64) float64 {
	return math.Min(HandleTolerance, extent/2)
}

// Classify maps p to a location relative to sel. Top is tested before
// bottom and right before left; a position inside both an edge band and a
// corner band is the corner.
func Classify(p geom.Point, sel geom.Rect) Location {
	if !sel.Contains(p) {
		return Outside
	}
	ver := Tolerance(sel.H)
	hor := Tolerance(sel.W)

	withinTop := within(p.Y-sel.Top(), ver)
	withinRight := within(sel.Right()-p.X, hor)
	withinBottom := !withinTop && within(sel.Bottom()-p.Y, ver)
	withinLeft := !withinRight && within(p.X-sel.Left(), hor)

	switch {
	case withinTop && withinRight:
		return TopRight
	case withinTop && withinLeft:
		return TopLeft
	case withinTop:
		return Top
	case withinBottom && withinRight:
		return BottomRight
	case withinBottom && withinLeft:
		return BottomLeft
	case withinBottom:
		return Bottom
	case withinRight:
		return Right
	case withinLeft:
		return Left
	}
	return Inside
}

func within(d, band float64) bool { return d >= 0 && d <= band }
