package theme

import (
	"image/color"
)

// Theme defines the colours of the selection overlay.
type Theme struct {
	Name string

	// Selection
	Stroke color.RGBA // Selection border and resize handles
	Cross  color.RGBA // Magnifier cross-hair

	// Mask drawn over everything outside the selection
	Mask      color.RGBA
	MaskLight color.RGBA // Used when the light mask option is on

	// Labels: size tooltip, help text, magnifier frame
	LabelBackground color.RGBA
	LabelForeground color.RGBA
}

// Default returns the hardcoded default theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:            "Default",
		Stroke:          color.RGBA{61, 174, 233, 255},
		Cross:           color.RGBA{42, 121, 163, 178},
		Mask:            color.RGBA{0, 0, 0, 38},
		MaskLight:       color.RGBA{100, 100, 100, 100},
		LabelBackground: color.RGBA{203, 204, 205, 217},
		LabelForeground: color.RGBA{35, 38, 41, 255},
	}
}

// MaskColor returns the mask colour for the light or dark variant.
func (t *Theme) MaskColor(light bool) color.RGBA {
	if light {
		return t.MaskLight
	}
	return t.Mask
}
