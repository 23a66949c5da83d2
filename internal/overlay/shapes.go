package overlay

import (
	"image"
	"image/color"
	"image/draw"
)

// fillDisk paints the part of the disk centred at c that falls inside clip.
func fillDisk(img *image.RGBA, clip image.Rectangle, c image.Point, r int, col color.RGBA) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			p := image.Pt(c.X+dx, c.Y+dy)
			if p.In(clip) {
				img.SetRGBA(p.X, p.Y, col)
			}
		}
	}
}

// fillRoundedRect blends col over rect with corners of radius r cut round.
func fillRoundedRect(img *image.RGBA, rect image.Rectangle, r int, col color.RGBA) {
	if rect.Empty() {
		return
	}
	r = min(r, rect.Dx()/2, rect.Dy()/2)
	src := image.NewUniform(col)
	if r <= 0 {
		draw.Draw(img, rect, src, image.Point{}, draw.Over)
		return
	}
	mask := image.NewAlpha(rect)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if insideRounded(rect, r, x, y) {
				mask.Pix[mask.PixOffset(x, y)] = 0xff
			}
		}
	}
	draw.DrawMask(img, rect, src, image.Point{}, mask, rect.Min, draw.Over)
}

func insideRounded(rect image.Rectangle, r, x, y int) bool {
	cx, cy := x, y
	switch {
	case x < rect.Min.X+r:
		cx = rect.Min.X + r
	case x >= rect.Max.X-r:
		cx = rect.Max.X - r - 1
	}
	switch {
	case y < rect.Min.Y+r:
		cy = rect.Min.Y + r
	case y >= rect.Max.Y-r:
		cy = rect.Max.Y - r - 1
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}
