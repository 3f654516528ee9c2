package vpath

import (
	"math"
	"testing"
)

func TestPathBuilder_Basic(t *testing.T) {
	path := BuildPath().
		MoveTo(0, 0).
		LineTo(100, 0).
		QuadTo(150, 50, 100, 100).
		CubicTo(75, 120, 25, 120, 0, 100).
		Close().
		Build()

	if path == nil {
		t.Fatal("expected non-nil path")
	}
	if count := path.Len(); count != 5 {
		t.Errorf("expected 5 commands, got %d", count)
	}
	if segs := path.Segments(); len(segs) != 3 {
		t.Errorf("expected 3 segments, got %d", len(segs))
	}
}

func TestPathBuilder_Shapes(t *testing.T) {
	tests := []struct {
		name    string
		builder func() *PathBuilder
		want    int
	}{
		{"Rect", func() *PathBuilder { return BuildPath().Rect(0, 0, 100, 100) }, 5},
		{"Circle", func() *PathBuilder { return BuildPath().Circle(50, 50, 25) }, 6},
		{"Arc", func() *PathBuilder { return BuildPath().Arc(0, 0, 10, 0, math.Pi) }, 3},
		{"Polygon5", func() *PathBuilder { return BuildPath().Polygon(50, 50, 25, 5) }, 6},
		{"Polygon2", func() *PathBuilder { return BuildPath().Polygon(50, 50, 25, 2) }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.builder().Build()
			if count := path.Len(); count != tt.want {
				t.Errorf("expected %d commands, got %d", tt.want, count)
			}
		})
	}
}

func TestPathBuilder_PolygonVertices(t *testing.T) {
	path := BuildPath().Polygon(0, 0, 10, 4).Build()

	first := path.Commands()[0].(MoveTo).Point
	if first.Distance(Pt(0, -10)) > 1e-12 {
		t.Errorf("first vertex = %v, want top (0,-10)", first)
	}
	for _, seg := range path.SegmentsWith(CloseLine) {
		if l := seg.(Line).Length(); math.Abs(l-10*math.Sqrt2) > 1e-9 {
			t.Errorf("edge length %v, want %v", l, 10*math.Sqrt2)
		}
	}
}

func TestPathBuilder_Chaining(t *testing.T) {
	path := BuildPath().
		Circle(100, 100, 50).
		Rect(200, 50, 100, 100).
		Polygon(400, 100, 40, 6).
		Build()

	if got := len(path.Subpaths()); got != 3 {
		t.Errorf("expected 3 sub-paths, got %d", got)
	}
}
