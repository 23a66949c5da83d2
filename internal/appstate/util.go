package appstate

import (
	"image"

	"golang.org/x/mobile/event/mouse"
)

// fitRect returns the largest rectangle with the aspect ratio of canvas that
// fits inside a window of size win, centred in it.
func fitRect(canvas, win image.Point) image.Rectangle {
	if canvas.X <= 0 || canvas.Y <= 0 {
		return image.Rectangle{}
	}
	w, h := win.X, canvas.Y*win.X/canvas.X
	if h > win.Y {
		w, h = canvas.X*win.Y/canvas.Y, win.Y
	}
	x0 := (win.X - w) / 2
	y0 := (win.Y - h) / 2
	return image.Rect(x0, y0, x0+w, y0+h)
}

// toCanvas maps a pointer position in window pixels onto the canvas when
// the frame is letterboxed into a window of a different size.
func toCanvas(e mouse.Event, win, canvas image.Point) mouse.Event {
	if win == canvas || win.X <= 0 || win.Y <= 0 {
		return e
	}
	r := fitRect(canvas, win)
	if r.Empty() {
		return e
	}
	e.X = (e.X - float32(r.Min.X)) * float32(canvas.X) / float32(r.Dx())
	e.Y = (e.Y - float32(r.Min.Y)) * float32(canvas.Y) / float32(r.Dy())
	return e
}
