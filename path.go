package vpath

import "math"

// PathCommand is a single drawing command stored in a Path.
// The concrete types are MoveTo, LineTo, QuadTo, CubicTo and Close.
type PathCommand interface {
	isPathCommand()
}

// MoveTo starts a new sub-path at Point without drawing.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathCommand() {}

// LineTo draws a straight line from the current point to Point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathCommand() {}

// QuadTo draws a quadratic Bezier curve through Control to Point.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathCommand() {}

// CubicTo draws a cubic Bezier curve through Control1 and Control2 to Point.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathCommand() {}

// Close marks the current sub-path as closed.
// How (and whether) a closing edge is produced is decided by the
// ClosePolicy used during segment conversion.
type Close struct{}

func (Close) isPathCommand() {}

// endPoint returns the terminal point of a drawing command.
// ok is false for Close, which has none.
func endPoint(cmd PathCommand) (pt Point, ok bool) {
	switch c := cmd.(type) {
	case MoveTo:
		return c.Point, true
	case LineTo:
		return c.Point, true
	case QuadTo:
		return c.Point, true
	case CubicTo:
		return c.Point, true
	}
	return Point{}, false
}

// Path is an ordered, append-only sequence of drawing commands.
//
// The zero value is an empty path ready to use. A Path must not be
// mutated while a slice returned by Commands is in use, and it is not
// safe for concurrent mutation.
type Path struct {
	commands []PathCommand
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{
		commands: make([]PathCommand, 0, 16),
	}
}

// MoveTo begins a new sub-path at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.commands = append(p.commands, MoveTo{Point: Pt(x, y)})
}

// LineTo appends a straight line to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.commands = append(p.commands, LineTo{Point: Pt(x, y)})
}

// QuadTo appends a quadratic Bezier curve with control point (cx, cy)
// ending at (x, y).
func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.commands = append(p.commands, QuadTo{Control: Pt(cx, cy), Point: Pt(x, y)})
}

// CubicTo appends a cubic Bezier curve with control points (c1x, c1y) and
// (c2x, c2y) ending at (x, y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.commands = append(p.commands, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    Pt(x, y),
	})
}

// Close appends a Close marker.
func (p *Path) Close() {
	p.commands = append(p.commands, Close{})
}

// Append appends already-built commands in order. It is the entry point
// for producers that translate foreign outline formats.
func (p *Path) Append(cmds ...PathCommand) {
	p.commands = append(p.commands, cmds...)
}

// Commands returns the command sequence. The slice is owned by the path
// and must not be modified.
func (p *Path) Commands() []PathCommand {
	return p.commands
}

// Len returns the number of commands.
func (p *Path) Len() int {
	return len(p.commands)
}

// IsEmpty reports whether the path holds no commands.
func (p *Path) IsEmpty() bool {
	return len(p.commands) == 0
}

// Clear removes all commands, keeping the allocated storage.
func (p *Path) Clear() {
	p.commands = p.commands[:0]
}

// Clone returns an independent copy of the path.
func (p *Path) Clone() *Path {
	cmds := make([]PathCommand, len(p.commands))
	copy(cmds, p.commands)
	return &Path{commands: cmds}
}

// CurrentPoint returns the point the next drawing command would start
// from. Close does not move the current point, matching Segments.
// An empty path reports the origin.
func (p *Path) CurrentPoint() Point {
	for i := len(p.commands) - 1; i >= 0; i-- {
		if pt, ok := endPoint(p.commands[i]); ok {
			return pt
		}
	}
	return Point{}
}

// Transform returns a new path with every point mapped through m.
func (p *Path) Transform(m Matrix) *Path {
	out := &Path{commands: make([]PathCommand, 0, len(p.commands))}
	for _, cmd := range p.commands {
		switch c := cmd.(type) {
		case MoveTo:
			out.commands = append(out.commands, MoveTo{Point: m.TransformPoint(c.Point)})
		case LineTo:
			out.commands = append(out.commands, LineTo{Point: m.TransformPoint(c.Point)})
		case QuadTo:
			out.commands = append(out.commands, QuadTo{
				Control: m.TransformPoint(c.Control),
				Point:   m.TransformPoint(c.Point),
			})
		case CubicTo:
			out.commands = append(out.commands, CubicTo{
				Control1: m.TransformPoint(c.Control1),
				Control2: m.TransformPoint(c.Control2),
				Point:    m.TransformPoint(c.Point),
			})
		case Close:
			out.commands = append(out.commands, c)
		}
	}
	return out
}

// Subpaths splits the path at every MoveTo. Each returned path starts
// with a MoveTo; commands issued before the first MoveTo are given an
// explicit MoveTo to the origin.
func (p *Path) Subpaths() []*Path {
	var result []*Path
	var cur *Path
	for _, cmd := range p.commands {
		if mv, ok := cmd.(MoveTo); ok {
			cur = &Path{commands: []PathCommand{mv}}
			result = append(result, cur)
			continue
		}
		if cur == nil {
			cur = &Path{commands: []PathCommand{MoveTo{}}}
			result = append(result, cur)
		}
		cur.commands = append(cur.commands, cmd)
	}
	return result
}

// Bounds returns the bounding box of all points stored in the path,
// control points included. ok is false for a path without points.
func (p *Path) Bounds() (r Rect, ok bool) {
	add := func(pt Point) {
		if !ok {
			r = Rect{Min: pt, Max: pt}
			ok = true
			return
		}
		r = r.Union(Rect{Min: pt, Max: pt})
	}
	for _, cmd := range p.commands {
		switch c := cmd.(type) {
		case MoveTo:
			add(c.Point)
		case LineTo:
			add(c.Point)
		case QuadTo:
			add(c.Control)
			add(c.Point)
		case CubicTo:
			add(c.Control1)
			add(c.Control2)
			add(c.Point)
		}
	}
	return r, ok
}

// Rectangle appends a closed axis-aligned rectangle.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// kappa places cubic control points for a quarter circle: 4/3*(sqrt(2)-1).
const kappa = 0.5522847498307936

// Circle appends a closed circle made of four cubic curves.
func (p *Path) Circle(cx, cy, r float64) {
	p.Ellipse(cx, cy, r, r)
}

// Ellipse appends a closed axis-aligned ellipse made of four cubic curves.
func (p *Path) Ellipse(cx, cy, rx, ry float64) {
	ox := rx * kappa
	oy := ry * kappa

	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	p.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	p.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	p.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	p.Close()
}

// Arc appends a circular arc around (cx, cy) from angle1 to angle2
// (radians, increasing). An empty path gets a MoveTo to the arc start;
// otherwise a LineTo joins the current point to the arc start when they
// differ.
func (p *Path) Arc(cx, cy, r, angle1, angle2 float64) {
	for angle2 < angle1 {
		angle2 += 2 * math.Pi
	}

	start := Pt(cx+r*math.Cos(angle1), cy+r*math.Sin(angle1))
	switch {
	case p.IsEmpty():
		p.MoveTo(start.X, start.Y)
	case p.CurrentPoint() != start:
		p.LineTo(start.X, start.Y)
	}

	// At most a quarter turn per cubic.
	n := int(math.Ceil((angle2 - angle1) / (math.Pi / 2)))
	if n == 0 {
		return
	}
	step := (angle2 - angle1) / float64(n)
	for i := range n {
		a1 := angle1 + float64(i)*step
		p.arcSegment(cx, cy, r, a1, a1+step)
	}
}

// arcSegment appends one cubic approximating an arc of at most 90 degrees.
func (p *Path) arcSegment(cx, cy, r, a1, a2 float64) {
	half := (a2 - a1) / 2
	k := 4.0 / 3.0 * math.Tan(half/2)

	sin1, cos1 := math.Sincos(a1)
	sin2, cos2 := math.Sincos(a2)

	p.CubicTo(
		cx+r*(cos1-k*sin1), cy+r*(sin1+k*cos1),
		cx+r*(cos2+k*sin2), cy+r*(sin2-k*cos2),
		cx+r*cos2, cy+r*sin2,
	)
}
