package geom

import (
	"image"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name         string
		v, ext, size int
		want, over   int
	}{
		{"inside", 10, 100, 20, 10, 0},
		{"below zero", -7, 100, 20, 0, -7},
		{"past end", 95, 100, 20, 80, 15},
		{"at end", 80, 100, 20, 80, 0},
		{"larger than extent", 5, 100, 120, 0, 5},
		{"zero", 0, 100, 120, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, over := Clamp(tt.v, tt.ext, tt.size)
			if got != tt.want || over != tt.over {
				t.Errorf("Clamp(%d, %d, %d) = %d, %d; want %d, %d", tt.v, tt.ext, tt.size, got, over, tt.want, tt.over)
			}
		})
	}
}

func TestRectDeviceRoundTrip(t *testing.T) {
	r := R(10.5, 20, 100, 50.25)
	d := r.Device(2)
	if want := image.Rect(21, 40, 221, 141); d != want {
		t.Fatalf("Device = %v, want %v", d, want)
	}
	back := FromDevice(d, 2)
	if back != R(10.5, 20, 100, 50.5) {
		t.Fatalf("FromDevice = %+v", back)
	}
}

func TestContainsInclusive(t *testing.T) {
	r := R(10, 10, 20, 20)
	for _, p := range []Point{Pt(10, 10), Pt(30, 30), Pt(30, 10), Pt(20, 20)} {
		if !r.Contains(p) {
			t.Errorf("expected %v inside %v", p, r)
		}
	}
	for _, p := range []Point{Pt(9.9, 10), Pt(30.1, 20), Pt(20, 31)} {
		if r.Contains(p) {
			t.Errorf("expected %v outside %v", p, r)
		}
	}
	if (Rect{X: 5, Y: 5}).Contains(Pt(5, 5)) {
		t.Error("empty rect must not contain its origin")
	}
}

func TestNormalized(t *testing.T) {
	got := R(100, 100, -40, -60).Normalized()
	if got != R(60, 40, 40, 60) {
		t.Fatalf("Normalized = %+v", got)
	}
	if Span(Pt(400, 300), Pt(100, 100)) != R(100, 100, 300, 200) {
		t.Fatalf("Span mismatch")
	}
}

func TestIntersect(t *testing.T) {
	canvas := R(0, 0, 100, 80)
	if got := R(-10, 70, 50, 50).Intersect(canvas); got != R(0, 70, 40, 10) {
		t.Fatalf("Intersect = %+v", got)
	}
	got := R(150, 10, 10, 10).Intersect(canvas)
	if !got.Empty() || got.X != 100 {
		t.Fatalf("disjoint Intersect = %+v", got)
	}
	if R(0, 0, 10, 10).Intersects(R(10, 0, 10, 10)) {
		t.Fatal("touching rects must not intersect")
	}
}
