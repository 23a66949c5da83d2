package selection

import (
	"image"
	"math"
	"testing"

	"github.com/example/regionshot/internal/geom"
)

func TestClassify(t *testing.T) {
	sel := geom.R(100, 100, 300, 200)
	tests := []struct {
		p    geom.Point
		want Location
	}{
		{geom.Pt(50, 50), Outside},
		{geom.Pt(250, 200), Inside},
		{geom.Pt(100, 100), TopLeft},
		{geom.Pt(400, 100), TopRight},
		{geom.Pt(100, 300), BottomLeft},
		{geom.Pt(400, 300), BottomRight},
		{geom.Pt(250, 110), Top},
		{geom.Pt(250, 290), Bottom},
		{geom.Pt(110, 200), Left},
		{geom.Pt(390, 200), Right},
		{geom.Pt(250, 121), Inside},
		{geom.Pt(401, 200), Outside},
	}
	for _, tt := range tests {
		if got := Classify(tt.p, sel); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestClassifySmallSelection(t *testing.T) {
	// A 10x10 selection has 5px bands, so the centre sits in every band
	// and top wins over bottom, right over left.
	sel := geom.R(0, 0, 10, 10)
	if got := Classify(geom.Pt(5, 5), sel); got != TopRight {
		t.Fatalf("centre = %v, want top-right", got)
	}
	if got := Classify(geom.Pt(5.5, 5.5), sel); got != BottomRight {
		t.Fatalf("just past centre = %v, want bottom-right", got)
	}
}

func TestToleranceNeverExceedsHalfExtent(t *testing.T) {
	for extent := 0.0; extent <= 200; extent += 0.5 {
		tol := Tolerance(extent)
		if tol > extent/2 || tol > HandleTolerance {
			t.Fatalf("Tolerance(%v) = %v", extent, tol)
		}
		if want := math.Min(20, extent/2); tol != want {
			t.Fatalf("Tolerance(%v) = %v, want %v", extent, tol, want)
		}
	}
}

func TestCreateFromOutside(t *testing.T) {
	m := New(image.Pt(1000, 800), 1)
	if loc := m.Press(geom.Pt(100, 100)); loc != Outside {
		t.Fatalf("press = %v", loc)
	}
	if !m.MagnifierAllowed() {
		t.Fatal("magnifier should be allowed while creating")
	}
	m.Move(geom.Pt(400, 300))
	if got := m.Selection(); got != geom.R(100, 100, 301, 201) {
		t.Fatalf("selection = %+v", got)
	}
	if mode := m.Release(); mode.Kind != ModeCreating {
		t.Fatalf("released mode = %v", mode)
	}
	if m.Active() {
		t.Fatal("machine still active after release")
	}
}

func TestCreateBackwards(t *testing.T) {
	m := New(image.Pt(1000, 800), 2)
	m.Press(geom.Pt(300, 300))
	m.Move(geom.Pt(100, 200))
	if got := m.Selection(); got != geom.R(100, 200, 200, 100) {
		t.Fatalf("selection = %+v", got)
	}
	m.Move(geom.Pt(300, 300))
	if got := m.Selection(); got != geom.R(300, 300, 0.5, 0.5) {
		t.Fatalf("selection at anchor = %+v", got)
	}
}

func TestResizeTopLeft(t *testing.T) {
	m := New(image.Pt(1000, 800), 1)
	m.SetSelection(geom.R(100, 100, 300, 200))
	if loc := m.Press(geom.Pt(100, 100)); loc != TopLeft {
		t.Fatalf("press = %v", loc)
	}
	m.Move(geom.Pt(50, 50))
	m.Release()
	got := m.Selection()
	if got.TopLeft() != geom.Pt(50, 50) || got.BottomRight() != geom.Pt(400, 300) {
		t.Fatalf("selection = %+v", got)
	}
}

func TestResizeEdgeKeepsOtherAxis(t *testing.T) {
	m := New(image.Pt(1000, 800), 1)
	m.SetSelection(geom.R(100, 100, 300, 200))
	if loc := m.Press(geom.Pt(250, 295)); loc != Bottom {
		t.Fatalf("press = %v", loc)
	}
	m.Move(geom.Pt(900, 50))
	m.Release()
	if got := m.Selection(); got != geom.R(100, 50, 300, 50) {
		t.Fatalf("selection = %+v", got)
	}
}

func TestResizeOppositeCornersReverse(t *testing.T) {
	start := geom.R(100, 100, 300, 200)
	m := New(image.Pt(1000, 800), 1)
	m.SetSelection(start)

	m.Press(geom.Pt(100, 100))
	m.Move(geom.Pt(500, 450))
	m.Release()
	first := m.Selection()
	if first != geom.R(400, 300, 100, 150) {
		t.Fatalf("first resize = %+v", first)
	}

	if loc := m.Press(geom.Pt(500, 450)); loc != BottomRight {
		t.Fatalf("second press = %v", loc)
	}
	m.Move(geom.Pt(100, 100))
	m.Release()
	if got := m.Selection(); got != start {
		t.Fatalf("reverse resize = %+v, want %+v", got, start)
	}
}

func TestDragStaysInsideCanvas(t *testing.T) {
	for _, dpr := range []float64{1, 1.25, 2} {
		canvas := image.Pt(1000, 800)
		m := New(canvas, dpr)
		m.SetSelection(geom.R(100, 100, 200, 150))
		m.Press(geom.Pt(150, 150))
		path := []geom.Point{
			geom.Pt(-500, -500), geom.Pt(2000, 40), geom.Pt(900, 2000),
			geom.Pt(-30, 700), geom.Pt(333.3, 222.2), geom.Pt(5000, 5000),
		}
		for _, p := range path {
			m.Move(p)
			d := m.Selection().Device(dpr)
			if !d.In(image.Rectangle{Max: canvas}) {
				t.Fatalf("dpr %v: selection %v escaped canvas after move to %v", dpr, d, p)
			}
		}
		m.Release()
	}
}

func TestDragDoesNotStick(t *testing.T) {
	m := New(image.Pt(1000, 800), 1)
	m.SetSelection(geom.R(100, 100, 300, 200))
	if loc := m.Press(geom.Pt(200, 200)); loc != Inside {
		t.Fatalf("press = %v", loc)
	}
	if m.MagnifierAllowed() {
		t.Fatal("magnifier must be off while dragging")
	}
	m.Move(geom.Pt(-500, 200))
	if got := m.Selection().X; got != 0 {
		t.Fatalf("x after overshoot = %v", got)
	}
	m.Move(geom.Pt(-490, 200))
	if got := m.Selection().X; got != 10 {
		t.Fatalf("x after turning back = %v, want 10", got)
	}
}

func TestCreationClampedToCanvas(t *testing.T) {
	m := New(image.Pt(200, 100), 1)
	m.Press(geom.Pt(150, 50))
	m.Move(geom.Pt(400, 300))
	if got := m.Selection(); got != geom.R(150, 50, 50, 50) {
		t.Fatalf("selection = %+v", got)
	}
}

func TestNudge(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
		mods NudgeMods
		want geom.Rect
	}{
		{"up", Up, NudgeMods{}, geom.R(100, 85, 300, 200)},
		{"down fine", Down, NudgeMods{Fine: true}, geom.R(100, 101, 300, 200)},
		{"left", LeftDir, NudgeMods{}, geom.R(85, 100, 300, 200)},
		{"right", RightDir, NudgeMods{}, geom.R(115, 100, 300, 200)},
		{"shrink height", Up, NudgeMods{Resize: true}, geom.R(100, 100, 300, 185)},
		{"grow width", RightDir, NudgeMods{Resize: true}, geom.R(100, 100, 315, 200)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(image.Pt(1000, 800), 1)
			m.SetSelection(geom.R(100, 100, 300, 200))
			m.Nudge(tt.dir, tt.mods)
			if got := m.Selection(); got != tt.want {
				t.Fatalf("selection = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNudgeClampsAtEdges(t *testing.T) {
	m := New(image.Pt(1000, 800), 1)
	m.SetSelection(geom.R(5, 790, 100, 10))
	m.Nudge(LeftDir, NudgeMods{})
	m.Nudge(Down, NudgeMods{})
	if got := m.Selection(); got != geom.R(0, 790, 100, 10) {
		t.Fatalf("selection = %+v", got)
	}
}

func TestNudgeIgnoredWhileDragging(t *testing.T) {
	m := New(image.Pt(1000, 800), 1)
	m.SetSelection(geom.R(100, 100, 300, 200))
	m.Press(geom.Pt(200, 200))
	m.Nudge(RightDir, NudgeMods{})
	if got := m.Selection(); got != geom.R(100, 100, 300, 200) {
		t.Fatalf("selection = %+v", got)
	}
}

func TestReset(t *testing.T) {
	m := New(image.Pt(1000, 800), 1)
	m.SetSelection(geom.R(100, 100, 300, 200))
	m.Reset()
	if !m.Selection().Empty() {
		t.Fatalf("selection not cleared: %+v", m.Selection())
	}
	if loc := m.Press(geom.Pt(150, 150)); loc != Outside {
		t.Fatalf("press after reset = %v", loc)
	}
}

func TestClickWithoutMoveKeepsSelection(t *testing.T) {
	m := New(image.Pt(1000, 800), 1)
	m.SetSelection(geom.R(100, 100, 300, 200))
	if loc := m.Press(geom.Pt(700, 700)); loc != Outside {
		t.Fatalf("press = %v", loc)
	}
	m.Move(geom.Pt(700, 700))
	if m.Moved() {
		t.Fatal("move onto the press point counted as movement")
	}
	if mode := m.Release(); mode.Kind != ModeCreating {
		t.Fatalf("released mode = %v", mode)
	}
	if got := m.Selection(); got != geom.R(100, 100, 300, 200) {
		t.Fatalf("selection = %+v", got)
	}

	m.Press(geom.Pt(700, 700))
	m.Move(geom.Pt(710, 720))
	if !m.Moved() {
		t.Fatal("move away from the press point not recorded")
	}
	m.Release()
	if m.Moved() {
		t.Fatal("moved survives release")
	}
	if got := m.Selection(); got != geom.R(700, 700, 11, 21) {
		t.Fatalf("selection after drag = %+v", got)
	}
}

func TestResizeIsPureSpan(t *testing.T) {
	m := New(image.Pt(1000, 800), 1)
	m.SetSelection(geom.R(100, 100, 300, 200))
	if loc := m.Press(geom.Pt(400, 300)); loc != BottomRight {
		t.Fatalf("press = %v", loc)
	}
	m.Move(geom.Pt(450, 350))
	m.Release()
	if got := m.Selection(); got != geom.R(100, 100, 350, 250) {
		t.Fatalf("selection = %+v", got)
	}
}
