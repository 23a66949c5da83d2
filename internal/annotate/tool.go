// Package annotate implements the annotation engine: tool selection, the
// colour and width palette, the pending shape, raster commits with a
// snapshot undo stack and the deferred tool re-arm after undo.
package annotate

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// Tool is the active annotation tool. ToolNone leaves pointer events to the
// selection.
type Tool int

const (
	ToolNone Tool = iota
	ToolLine
	ToolArrow
	ToolRect
	ToolCircle
	ToolText
)

var toolNames = [...]string{
	ToolNone:   "none",
	ToolLine:   "line",
	ToolArrow:  "arrow",
	ToolRect:   "rect",
	ToolCircle: "circle",
	ToolText:   "text",
}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return "unknown"
	}
	return toolNames[t]
}

// ParseTool returns the tool with the given name.
func ParseTool(name string) (Tool, bool) {
	for i, n := range toolNames {
		if n == name {
			return Tool(i), true
		}
	}
	return ToolNone, false
}

// segment reports whether the tool draws a two point segment.
func (t Tool) segment() bool { return t == ToolLine || t == ToolArrow }

// boxed reports whether the tool draws inside a two corner box.
func (t Tool) boxed() bool { return t == ToolRect || t == ToolCircle }

// PaletteColor is a named annotation colour.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

var paletteNames = []string{
	"magenta",
	"darkmagenta",
	"red",
	"darkred",
	"blue",
	"darkblue",
	"cyan",
	"darkcyan",
	"orange",
	"fuchsia",
	"tomato",
	"purple",
	"yellow",
	"green",
	"darkgreen",
	"gray",
	"silver",
	"black",
	"white",
	"pink",
	"deeppink",
	"hotpink",
	"goldenrod",
	"darkgoldenrod",
	"palegoldenrod",
}

var widths = []int{2, 4, 8}

const (
	defaultColorIndex = 0
	defaultWidthIndex = 0
)

// Palette returns the annotation colours in display order.
func Palette() []PaletteColor {
	out := make([]PaletteColor, len(paletteNames))
	for i, n := range paletteNames {
		out[i] = PaletteColor{Name: n, Color: colornames.Map[n]}
	}
	return out
}

// Widths returns the available stroke widths in logical pixels.
func Widths() []int {
	out := make([]int, len(widths))
	copy(out, widths)
	return out
}

// ColorIndex returns the palette index of the named colour.
func ColorIndex(name string) (int, bool) {
	for i, n := range paletteNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

func clampColorIndex(idx int) int {
	if idx < 0 || idx >= len(paletteNames) {
		return defaultColorIndex
	}
	return idx
}

func clampWidthIndex(idx int) int {
	if idx < 0 || idx >= len(widths) {
		return defaultWidthIndex
	}
	return idx
}
