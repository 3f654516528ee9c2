// Package geompath converts between vpath paths and the path types of
// seehuhn.de/go/geom.
//
// The geom representation stores commands and coordinates in two flat
// slices (path.Data) or streams them through an iterator (path.Path).
// Both carry the same five commands as vpath, so conversion is lossless in
// either direction.
package geompath

import (
	"errors"
	"fmt"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"github.com/gogpu/vpath"
)

// ErrMalformed is returned by FromData when the coordinate slice does not
// match the command slice.
var ErrMalformed = errors.New("geompath: malformed path data")

// coordCount returns the number of coordinates consumed by cmd.
func coordCount(cmd path.Command) (int, bool) {
	switch cmd {
	case path.CmdMoveTo, path.CmdLineTo:
		return 1, true
	case path.CmdQuadTo:
		return 2, true
	case path.CmdCubeTo:
		return 3, true
	case path.CmdClose:
		return 0, true
	}
	return 0, false
}

// FromData converts geom path data into a vpath path.
func FromData(d *path.Data) (*vpath.Path, error) {
	p := vpath.NewPath()
	if d == nil {
		return p, nil
	}
	idx := 0
	for i, cmd := range d.Cmds {
		n, ok := coordCount(cmd)
		if !ok {
			return nil, fmt.Errorf("%w: unknown command %d at %d", ErrMalformed, cmd, i)
		}
		if idx+n > len(d.Coords) {
			return nil, fmt.Errorf("%w: command %d needs %d coordinates, %d left",
				ErrMalformed, i, n, len(d.Coords)-idx)
		}
		p.Append(command(cmd, d.Coords[idx:idx+n]))
		idx += n
	}
	if idx != len(d.Coords) {
		return nil, fmt.Errorf("%w: %d trailing coordinates", ErrMalformed, len(d.Coords)-idx)
	}
	return p, nil
}

// FromPath drains a geom path iterator into a vpath path.
func FromPath(it path.Path) *vpath.Path {
	p := vpath.NewPath()
	for cmd, pts := range it {
		if c := command(cmd, pts); c != nil {
			p.Append(c)
		}
	}
	return p
}

// command builds the vpath command for cmd; pts must hold the number of
// coordinates given by coordCount.
func command(cmd path.Command, pts []vec.Vec2) vpath.PathCommand {
	switch cmd {
	case path.CmdMoveTo:
		return vpath.MoveTo{Point: point(pts[0])}
	case path.CmdLineTo:
		return vpath.LineTo{Point: point(pts[0])}
	case path.CmdQuadTo:
		return vpath.QuadTo{Control: point(pts[0]), Point: point(pts[1])}
	case path.CmdCubeTo:
		return vpath.CubicTo{
			Control1: point(pts[0]),
			Control2: point(pts[1]),
			Point:    point(pts[2]),
		}
	case path.CmdClose:
		return vpath.Close{}
	}
	return nil
}

// ToData converts p into geom path data.
func ToData(p *vpath.Path) *path.Data {
	d := &path.Data{}
	for _, cmd := range p.Commands() {
		switch c := cmd.(type) {
		case vpath.MoveTo:
			d.MoveTo(vec2(c.Point))
		case vpath.LineTo:
			d.LineTo(vec2(c.Point))
		case vpath.QuadTo:
			d.QuadTo(vec2(c.Control), vec2(c.Point))
		case vpath.CubicTo:
			d.CubeTo(vec2(c.Control1), vec2(c.Control2), vec2(c.Point))
		case vpath.Close:
			d.Close()
		}
	}
	return d
}

// Iter returns a geom iterator over p. The iterator reads p lazily, so p
// must not be modified while it runs.
func Iter(p *vpath.Path) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [3]vec.Vec2
		for _, cmd := range p.Commands() {
			var ok bool
			switch c := cmd.(type) {
			case vpath.MoveTo:
				buf[0] = vec2(c.Point)
				ok = yield(path.CmdMoveTo, buf[:1])
			case vpath.LineTo:
				buf[0] = vec2(c.Point)
				ok = yield(path.CmdLineTo, buf[:1])
			case vpath.QuadTo:
				buf[0], buf[1] = vec2(c.Control), vec2(c.Point)
				ok = yield(path.CmdQuadTo, buf[:2])
			case vpath.CubicTo:
				buf[0], buf[1], buf[2] = vec2(c.Control1), vec2(c.Control2), vec2(c.Point)
				ok = yield(path.CmdCubeTo, buf[:3])
			case vpath.Close:
				ok = yield(path.CmdClose, nil)
			default:
				ok = true
			}
			if !ok {
				return
			}
		}
	}
}

func point(v vec.Vec2) vpath.Point { return vpath.Pt(v.X, v.Y) }

func vec2(p vpath.Point) vec.Vec2 { return vec.Vec2{X: p.X, Y: p.Y} }
