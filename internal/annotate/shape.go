package annotate

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/regionshot/internal/geom"
	"github.com/example/regionshot/internal/textface"
)

const (
	// arrowHeadScale multiplies the stroke width to get the head length.
	arrowHeadScale = 5
	// arrowHeadAngle is the spread of each head stroke from the shaft.
	arrowHeadAngle = math.Pi / 6
	// textScale multiplies the stroke width to get the text point size.
	textScale = 5
	// labelMinScale hides segment labels on strokes shorter than this many
	// widths.
	labelMinScale = 5
)

var (
	labelBackground = color.RGBA{255, 255, 255, 217}
	labelPadding    = image.Pt(5, 4)
)

// Shape is an annotation primitive in logical coordinates. Segments run
// From -> To; boxes span From and To; text is anchored at From.
type Shape struct {
	Tool  Tool
	From  geom.Point
	To    geom.Point
	Text  string
	Color color.RGBA
	Width int
}

func vec(p geom.Point, dpr float64) r2.Vec { return r2.Vec{X: p.X * dpr, Y: p.Y * dpr} }

// stroke returns the pen width in device pixels.
func (s Shape) stroke(dpr float64) int {
	return max(geom.Round(float64(s.Width)*dpr), 1)
}

// Length returns the segment length in device pixels.
func (s Shape) Length(dpr float64) float64 {
	return r2.Norm(r2.Sub(vec(s.To, dpr), vec(s.From, dpr)))
}

// Angle returns the segment direction in degrees within [0, 360). Zero
// points right and angles grow clockwise on screen.
func (s Shape) Angle(dpr float64) float64 {
	v := r2.Sub(vec(s.To, dpr), vec(s.From, dpr))
	n := r2.Norm(v)
	if n == 0 {
		return 0
	}
	a := math.Acos(math.Max(-1, math.Min(1, v.X/n))) * 180 / math.Pi
	if v.Y < 0 {
		a = 360 - a
	}
	if a >= 360 {
		a -= 360
	}
	return a
}

// ArrowHead returns the far ends of the two head strokes, in device
// pixels. ok is false when the segment is too short to carry a head.
func (s Shape) ArrowHead(dpr float64) (left, right r2.Vec, ok bool) {
	width := float64(s.stroke(dpr))
	from, to := vec(s.From, dpr), vec(s.To, dpr)
	back := r2.Sub(from, to)
	if r2.Norm(back) <= 2*width {
		return r2.Vec{}, r2.Vec{}, false
	}
	u := r2.Unit(back)
	size := width * arrowHeadScale
	left = r2.Add(to, r2.Scale(size, rotate(u, arrowHeadAngle)))
	right = r2.Add(to, r2.Scale(size, rotate(u, -arrowHeadAngle)))
	return left, right, true
}

func rotate(v r2.Vec, a float64) r2.Vec {
	sin, cos := math.Sincos(a)
	return r2.Vec{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// Box returns the device pixel box with inclusive corners spanned by the
// shape.
func (s Shape) Box(dpr float64) (image.Point, image.Point) {
	a, b := s.From.Device(dpr), s.To.Device(dpr)
	return image.Pt(min(a.X, b.X), min(a.Y, b.Y)), image.Pt(max(a.X, b.X), max(a.Y, b.Y))
}

// TextSize returns the text point size in device pixels.
func (s Shape) TextSize(dpr float64) float64 {
	return float64(s.Width*textScale) * dpr
}

// Label returns the measurement shown while the shape is being drawn, or an
// empty string when the shape has none.
func (s Shape) Label(dpr float64) string {
	switch {
	case s.Tool.segment():
		l := s.Length(dpr)
		if l <= float64(s.stroke(dpr)*labelMinScale) {
			return ""
		}
		return fmt.Sprintf("%d@%d°", int(l), int(s.Angle(dpr)))
	case s.Tool.boxed():
		a, b := s.Box(dpr)
		return fmt.Sprintf("%d×%d", b.X-a.X, b.Y-a.Y)
	}
	return ""
}

// Draw renders the committed form of the shape onto img, which is in device
// pixels.
func (s Shape) Draw(img *image.RGBA, dpr float64) {
	w := s.stroke(dpr)
	switch s.Tool {
	case ToolLine, ToolArrow:
		a, b := s.From.Device(dpr), s.To.Device(dpr)
		drawLine(img, a.X, a.Y, b.X, b.Y, s.Color, w)
		if s.Tool != ToolArrow {
			return
		}
		if l, r, ok := s.ArrowHead(dpr); ok {
			drawLine(img, b.X, b.Y, geom.Round(l.X), geom.Round(l.Y), s.Color, w)
			drawLine(img, b.X, b.Y, geom.Round(r.X), geom.Round(r.Y), s.Color, w)
		}
	case ToolRect:
		a, b := s.Box(dpr)
		drawBox(img, a, b, s.Color, w)
	case ToolCircle:
		a, b := s.Box(dpr)
		drawEllipse(img, (a.X+b.X)/2, (a.Y+b.Y)/2, (b.X-a.X)/2, (b.Y-a.Y)/2, s.Color, w)
	case ToolText:
		if s.Text == "" {
			return
		}
		p := s.From.Device(dpr)
		textface.Draw(img, textface.FaceOrFallback(s.TextSize(dpr)), p.X, p.Y, s.Text, s.Color)
	}
}

// DrawPreview renders the shape followed by its measurement label.
func (s Shape) DrawPreview(img *image.RGBA, dpr float64) {
	s.Draw(img, dpr)
	label := s.Label(dpr)
	if label == "" {
		return
	}
	face := textface.FaceOrFallback(12 * dpr)
	tw, th, _ := textface.Measure(face, label)
	var at image.Point
	if s.Tool.boxed() {
		_, at = s.Box(dpr)
	} else {
		at = s.To.Device(dpr)
	}
	at = at.Add(image.Pt(s.stroke(dpr), s.stroke(dpr)))
	box := image.Rect(at.X, at.Y, at.X+tw+2*labelPadding.X, at.Y+th+2*labelPadding.Y)
	if box.Max.X > img.Bounds().Max.X {
		box = box.Sub(image.Pt(box.Max.X-img.Bounds().Max.X, 0))
	}
	if box.Max.Y > img.Bounds().Max.Y {
		box = box.Sub(image.Pt(0, box.Max.Y-img.Bounds().Max.Y))
	}
	fillRect(img, box, labelBackground)
	textface.Draw(img, face, box.Min.X+labelPadding.X, box.Min.Y+labelPadding.Y, label, s.Color)
}
