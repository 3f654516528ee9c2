package vpath

import (
	"iter"
	"math"
)

// Rect is an axis-aligned rectangle with Min <= Max component-wise.
type Rect struct {
	Min, Max Point
}

// Union returns the smallest rectangle containing r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// SegmentKind identifies the concrete type of a Segment.
type SegmentKind uint8

const (
	// KindLine is a straight segment.
	KindLine SegmentKind = iota
	// KindQuad is a quadratic Bezier segment.
	KindQuad
	// KindCubic is a cubic Bezier segment.
	KindCubic
)

// String returns the kind name.
func (k SegmentKind) String() string {
	switch k {
	case KindLine:
		return "Line"
	case KindQuad:
		return "Quad"
	case KindCubic:
		return "Cubic"
	default:
		return "Unknown"
	}
}

// Segment is one geometric primitive derived from a drawing command.
// Every segment carries its own start point, so a segment can be
// processed without knowledge of the commands before it.
type Segment interface {
	Kind() SegmentKind
	Start() Point
	End() Point
	Eval(t float64) Point
	isSegment()
}

// -------------------------------------------------------------------
// Line
// -------------------------------------------------------------------

// Line is a straight segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

func (Line) isSegment() {}

// Kind returns KindLine.
func (Line) Kind() SegmentKind { return KindLine }

// Start returns P0.
func (l Line) Start() Point { return l.P0 }

// End returns P1.
func (l Line) End() Point { return l.P1 }

// Eval returns the point at parameter t in [0, 1].
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Length returns the length of the segment.
func (l Line) Length() float64 {
	return l.P0.Distance(l.P1)
}

// -------------------------------------------------------------------
// QuadBez
// -------------------------------------------------------------------

// QuadBez is a quadratic Bezier curve: start P0, control P1, end P2.
type QuadBez struct {
	P0, P1, P2 Point
}

func (QuadBez) isSegment() {}

// Kind returns KindQuad.
func (QuadBez) Kind() SegmentKind { return KindQuad }

// Start returns P0.
func (q QuadBez) Start() Point { return q.P0 }

// End returns P2.
func (q QuadBez) End() Point { return q.P2 }

// Eval evaluates the curve at t in [0, 1].
func (q QuadBez) Eval(t float64) Point {
	mt := 1 - t
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Raise returns the exact cubic representation of q (degree elevation):
// the inner control points sit two thirds of the way from each end point
// towards the quadratic control point.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		P0: q.P0,
		P1: q.P0.Lerp(q.P1, 2.0/3.0),
		P2: q.P2.Lerp(q.P1, 2.0/3.0),
		P3: q.P2,
	}
}

// -------------------------------------------------------------------
// CubicBez
// -------------------------------------------------------------------

// CubicBez is a cubic Bezier curve: start P0, controls P1 and P2, end P3.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

func (CubicBez) isSegment() {}

// Kind returns KindCubic.
func (CubicBez) Kind() SegmentKind { return KindCubic }

// Start returns P0.
func (c CubicBez) Start() Point { return c.P0 }

// End returns P3.
func (c CubicBez) End() Point { return c.P3 }

// Eval evaluates the curve at t in [0, 1].
func (c CubicBez) Eval(t float64) Point {
	mt := 1 - t
	mt2 := mt * mt
	t2 := t * t
	a := mt2 * mt
	b := 3 * mt2 * t
	d := 3 * mt * t2
	e := t2 * t
	return Point{
		X: a*c.P0.X + b*c.P1.X + d*c.P2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + d*c.P2.Y + e*c.P3.Y,
	}
}

// Subdivide splits the curve at t=0.5 with de Casteljau's construction.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	p01 := c.P0.Mid(c.P1)
	p12 := c.P1.Mid(c.P2)
	p23 := c.P2.Mid(c.P3)
	p012 := p01.Mid(p12)
	p123 := p12.Mid(p23)
	mid := p012.Mid(p123)

	return CubicBez{P0: c.P0, P1: p01, P2: p012, P3: mid},
		CubicBez{P0: mid, P1: p123, P2: p23, P3: c.P3}
}

// -------------------------------------------------------------------
// Segment conversion
// -------------------------------------------------------------------

// ClosePolicy selects how Close commands are treated during segment
// conversion.
type ClosePolicy uint8

const (
	// CloseMarker treats Close as a pure marker: no segment is emitted
	// and the current point does not move.
	CloseMarker ClosePolicy = iota

	// CloseLine emits a Line from the current point back to the start of
	// the sub-path when the two differ, and makes the sub-path start the
	// current point.
	CloseLine
)

// segmentFold is the accumulator threaded through segment conversion.
type segmentFold struct {
	current Point
	start   Point
	policy  ClosePolicy
}

// step consumes one command and returns the next state together with the
// segment the command produces, or nil.
func (f segmentFold) step(cmd PathCommand) (segmentFold, Segment) {
	switch c := cmd.(type) {
	case MoveTo:
		f.current = c.Point
		f.start = c.Point
		return f, nil
	case LineTo:
		seg := Line{P0: f.current, P1: c.Point}
		f.current = c.Point
		return f, seg
	case QuadTo:
		seg := QuadBez{P0: f.current, P1: c.Control, P2: c.Point}
		f.current = c.Point
		return f, seg
	case CubicTo:
		seg := CubicBez{P0: f.current, P1: c.Control1, P2: c.Control2, P3: c.Point}
		f.current = c.Point
		return f, seg
	case Close:
		if f.policy != CloseLine {
			return f, nil
		}
		var seg Segment
		if f.current != f.start {
			seg = Line{P0: f.current, P1: f.start}
		}
		f.current = f.start
		return f, seg
	}
	return f, nil
}

// SegmentSeq yields the segments of p in command order, converting Close
// according to policy. The first segment starts at the origin unless the
// path begins with MoveTo.
func (p *Path) SegmentSeq(policy ClosePolicy) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		state := segmentFold{policy: policy}
		for _, cmd := range p.commands {
			var seg Segment
			state, seg = state.step(cmd)
			if seg != nil && !yield(seg) {
				return
			}
		}
	}
}

// SegmentsWith converts the path into segments using the given close
// policy.
func (p *Path) SegmentsWith(policy ClosePolicy) []Segment {
	segments := make([]Segment, 0, len(p.commands))
	for seg := range p.SegmentSeq(policy) {
		segments = append(segments, seg)
	}
	return segments
}

// Segments converts the path into one segment per LineTo, QuadTo and
// CubicTo, each anchored at the end of the previous drawing command.
// Close commands are markers only (CloseMarker); use SegmentsWith with
// CloseLine to obtain explicit closing edges.
func (p *Path) Segments() []Segment {
	return p.SegmentsWith(CloseMarker)
}
