// Package render post-processes an exported region before it is written out.
package render

import (
	"image"
	"image/color"
	"image/draw"
)

// Shadow describes a soft drop shadow placed behind an exported region.
type Shadow struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadow returns the shadow used by -shadow when no tuning flags are
// given.
func DefaultShadow() Shadow {
	return Shadow{Radius: 24, Offset: image.Pt(16, 16), Opacity: 0.55}
}

// Apply composites img over its blurred silhouette. The result has a zero
// origin; the returned point is where img's top-left corner landed.
func (s Shadow) Apply(img *image.RGBA) (*image.RGBA, image.Point) {
	if img == nil || img.Bounds().Empty() || s.Opacity <= 0 {
		return img, image.Point{}
	}
	opacity := min(s.Opacity, 1)
	radius := max(s.Radius, 0)

	src := img.Bounds()
	padded := src.Inset(-radius)
	shadow := padded.Add(s.Offset)
	canvas := src.Union(shadow)

	mask := silhouette(img, padded)
	blurred := boxBlur(mask, radius)

	dst := image.NewRGBA(canvas.Sub(canvas.Min))
	alpha := uint8(opacity*255 + 0.5)
	if alpha > 0 {
		at := shadow.Min.Sub(canvas.Min)
		draw.DrawMask(dst, blurred.Bounds().Add(at), image.NewUniform(color.RGBA{A: alpha}), image.Point{}, blurred, image.Point{}, draw.Over)
	}
	origin := src.Min.Sub(canvas.Min)
	draw.Draw(dst, src.Sub(canvas.Min), img, src.Min, draw.Over)
	return dst, origin
}

// silhouette copies img's alpha channel into a zero-origin mask sized to
// frame.
func silhouette(img *image.RGBA, frame image.Rectangle) *image.Gray {
	mask := image.NewGray(frame.Sub(frame.Min))
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if a := img.RGBAAt(x, y).A; a != 0 {
				mask.SetGray(x-frame.Min.X, y-frame.Min.Y, color.Gray{Y: a})
			}
		}
	}
	return mask
}

// boxBlur applies a separable box blur of the given radius.
func boxBlur(src *image.Gray, radius int) *image.Gray {
	out := image.NewGray(src.Bounds())
	if radius <= 0 {
		copy(out.Pix, src.Pix)
		return out
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	tmp := image.NewGray(src.Bounds())
	for y := 0; y < h; y++ {
		row := y * src.Stride
		blurLine(src.Pix[row:], tmp.Pix[row:], w, 1, radius)
	}
	for x := 0; x < w; x++ {
		blurLine(tmp.Pix[x:], out.Pix[x:], h, tmp.Stride, radius)
	}
	return out
}

// blurLine averages n samples spaced stride apart over a window of
// 2*radius+1, shrinking the window at the ends.
func blurLine(in, out []uint8, n, stride, radius int) {
	prefix := make([]int, n+1)
	for i := 0; i < n; i++ {
		prefix[i+1] = prefix[i] + int(in[i*stride])
	}
	for i := 0; i < n; i++ {
		lo := max(i-radius, 0)
		hi := min(i+radius, n-1)
		out[i*stride] = uint8((prefix[hi+1] - prefix[lo]) / (hi - lo + 1))
	}
}
