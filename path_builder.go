package vpath

import "math"

// PathBuilder wraps a Path with chainable methods.
//
//	p := vpath.BuildPath().
//	    MoveTo(0, 0).
//	    LineTo(10, 0).
//	    QuadTo(20, 0, 20, 10).
//	    Close().
//	    Build()
type PathBuilder struct {
	path *Path
}

// BuildPath starts a builder over a new empty path.
func BuildPath() *PathBuilder {
	return &PathBuilder{path: NewPath()}
}

// MoveTo begins a new sub-path.
func (b *PathBuilder) MoveTo(x, y float64) *PathBuilder {
	b.path.MoveTo(x, y)
	return b
}

// LineTo appends a straight line.
func (b *PathBuilder) LineTo(x, y float64) *PathBuilder {
	b.path.LineTo(x, y)
	return b
}

// QuadTo appends a quadratic curve.
func (b *PathBuilder) QuadTo(cx, cy, x, y float64) *PathBuilder {
	b.path.QuadTo(cx, cy, x, y)
	return b
}

// CubicTo appends a cubic curve.
func (b *PathBuilder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *PathBuilder {
	b.path.CubicTo(c1x, c1y, c2x, c2y, x, y)
	return b
}

// Close appends a Close marker.
func (b *PathBuilder) Close() *PathBuilder {
	b.path.Close()
	return b
}

// Rect appends a closed rectangle.
func (b *PathBuilder) Rect(x, y, w, h float64) *PathBuilder {
	b.path.Rectangle(x, y, w, h)
	return b
}

// Circle appends a closed circle.
func (b *PathBuilder) Circle(cx, cy, r float64) *PathBuilder {
	b.path.Circle(cx, cy, r)
	return b
}

// Arc appends a circular arc; see Path.Arc.
func (b *PathBuilder) Arc(cx, cy, r, angle1, angle2 float64) *PathBuilder {
	b.path.Arc(cx, cy, r, angle1, angle2)
	return b
}

// Polygon appends a closed regular polygon with its first vertex at the
// top. Fewer than three sides appends nothing.
func (b *PathBuilder) Polygon(cx, cy, radius float64, sides int) *PathBuilder {
	if sides < 3 {
		return b
	}
	step := 2 * math.Pi / float64(sides)
	for i := range sides {
		sin, cos := math.Sincos(-math.Pi/2 + float64(i)*step)
		x, y := cx+radius*cos, cy+radius*sin
		if i == 0 {
			b.path.MoveTo(x, y)
		} else {
			b.path.LineTo(x, y)
		}
	}
	b.path.Close()
	return b
}

// Build returns the constructed path.
func (b *PathBuilder) Build() *Path {
	return b.path
}
