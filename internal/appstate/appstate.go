package appstate

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"

	xdraw "golang.org/x/image/draw"

	"golang.org/x/exp/shiny/screen"

	"github.com/example/regionshot/internal/editor"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

var backdrop = color.RGBA{0, 0, 0, 255}

type paintState struct {
	frame  editor.Frame
	width  int
	height int
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	size := st.frame.Size()
	b, err := s.NewBuffer(size)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	if err := st.frame.Render(ctx, b.RGBA()); err != nil {
		return
	}

	win := image.Pt(st.width, st.height)
	if win == size || win.X <= 0 || win.Y <= 0 {
		w.Upload(image.Point{}, b, b.Bounds())
		w.Publish()
		return
	}

	// The window manager gave us a different size; letterbox the frame.
	wb, err := s.NewBuffer(win)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer wb.Release()
	draw.Draw(wb.RGBA(), wb.Bounds(), image.NewUniform(backdrop), image.Point{}, draw.Src)
	if ctx.Err() != nil {
		return
	}
	xdraw.ApproxBiLinear.Scale(wb.RGBA(), fitRect(size, win), b.RGBA(), b.Bounds(), draw.Src, nil)
	w.Upload(image.Point{}, wb, wb.Bounds())
	w.Publish()
}
