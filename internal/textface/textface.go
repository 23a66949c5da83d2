// Package textface caches Go Regular font faces by point size and provides
// measuring and drawing helpers for labels rendered onto RGBA buffers.
package textface

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	parseOnce sync.Once
	regular   *opentype.Font
	parseErr  error

	faces sync.Map // map[float64]*sharedFace
)

// sharedFace is a cached face used from more than one goroutine. An
// opentype face keeps glyph buffers between calls, so Measure and Draw hold
// mu for the whole call.
type sharedFace struct {
	font.Face
	mu sync.Mutex
}

// lock returns the face to draw with and the function that releases it.
func lock(face font.Face) (font.Face, func()) {
	sf, ok := face.(*sharedFace)
	if !ok {
		return face, func() {}
	}
	sf.mu.Lock()
	return sf.Face, sf.mu.Unlock
}

// Face returns the Go Regular face at the given point size. Faces are
// created once per size and shared; use them through Measure and Draw,
// which serialise access.
func Face(size float64) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid font size %v", size)
	}
	if face, ok := faces.Load(size); ok {
		return face.(font.Face), nil
	}
	parseOnce.Do(func() {
		regular, parseErr = opentype.Parse(goregular.TTF)
	})
	if parseErr != nil {
		return nil, fmt.Errorf("parse font: %w", parseErr)
	}
	face, err := opentype.NewFace(regular, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	actual, _ := faces.LoadOrStore(size, &sharedFace{Face: face})
	return actual.(font.Face), nil
}

// FaceOrFallback returns Face(size), or the built in 7x13 face when the
// font cannot be loaded.
func FaceOrFallback(size float64) font.Face {
	face, err := Face(size)
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

// Measure returns the advance width of text and the line height of face.
// ascent is the offset from the top of the line to the baseline.
func Measure(face font.Face, text string) (width, height, ascent int) {
	face, unlock := lock(face)
	defer unlock()
	d := &font.Drawer{Face: face}
	width = d.MeasureString(text).Ceil()
	m := face.Metrics()
	ascent = m.Ascent.Ceil()
	height = ascent + m.Descent.Ceil()
	return
}

// Draw renders text with the top-left of its line box at (x, y).
func Draw(dst *image.RGBA, face font.Face, x, y int, text string, col color.Color) {
	face, unlock := lock(face)
	defer unlock()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

// DrawBaseline renders text with its baseline origin at (x, y).
func DrawBaseline(dst *image.RGBA, face font.Face, x, y int, text string, col color.Color) {
	face, unlock := lock(face)
	defer unlock()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
