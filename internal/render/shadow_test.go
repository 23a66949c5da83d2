package render

import (
	"image"
	"image/color"
	"testing"
)

func TestShadowExpandsBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	subject := image.Pt(5, 5)
	img.Set(subject.X, subject.Y, color.RGBA{R: 255, A: 255})

	s := Shadow{Radius: 4, Offset: image.Pt(8, 6), Opacity: 0.5}
	out, origin := s.Apply(img)
	if want := image.Rect(0, 0, 22, 20); !out.Bounds().Eq(want) {
		t.Fatalf("bounds = %v, want %v", out.Bounds(), want)
	}
	if origin != (image.Point{}) {
		t.Fatalf("origin = %v", origin)
	}
	at := subject.Add(s.Offset)
	if out.RGBAAt(at.X, at.Y).A == 0 {
		t.Fatalf("expected shadow alpha at %v", at)
	}
	if got := out.RGBAAt(subject.X, subject.Y); got != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("subject pixel = %+v", got)
	}
}

func TestShadowNegativeOffsetShiftsContent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	s := Shadow{Radius: 0, Offset: image.Pt(-3, -2), Opacity: 1}
	out, origin := s.Apply(img)
	if origin != image.Pt(3, 2) {
		t.Fatalf("origin = %v", origin)
	}
	if want := image.Rect(0, 0, 7, 6); !out.Bounds().Eq(want) {
		t.Fatalf("bounds = %v, want %v", out.Bounds(), want)
	}
}

func TestShadowDisabledWhenTransparent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, fill)
		}
	}
	out, _ := Shadow{Radius: 12, Offset: image.Pt(20, 10), Opacity: 0}.Apply(img)
	if out != img {
		t.Fatal("expected the input image back")
	}
}

func TestShadowBlurSpreads(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{A: 255})
	s := Shadow{Radius: 2, Offset: image.Pt(3, 0), Opacity: 1}

	out, _ := s.Apply(img)
	base := s.Offset
	if out.RGBAAt(base.X, base.Y).A == 0 {
		t.Fatal("expected alpha at base shadow location")
	}
	if out.RGBAAt(base.X+1, base.Y).A == 0 {
		t.Fatal("expected blurred alpha to reach neighbour")
	}
}

func TestBlurLine(t *testing.T) {
	in := []uint8{0, 0, 90, 0, 0}
	out := make([]uint8, len(in))
	blurLine(in, out, len(in), 1, 1)
	want := []uint8{0, 30, 30, 30, 0}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out = %v, want %v", out, want)
		}
	}
}
