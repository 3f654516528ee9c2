package vpath

// Polyline is the flattened form of one sub-path.
type Polyline struct {
	Points []Point
	// Closed is set when the sub-path ended with Close. The closing edge
	// from the last point back to the first is implied, not stored.
	Closed bool
}

// Length returns the total length of the polyline edges, including the
// implied closing edge when Closed is set.
func (pl Polyline) Length() float64 {
	var total float64
	for i := 1; i < len(pl.Points); i++ {
		total += pl.Points[i-1].Distance(pl.Points[i])
	}
	if pl.Closed && len(pl.Points) > 1 {
		total += pl.Points[len(pl.Points)-1].Distance(pl.Points[0])
	}
	return total
}

// appendJoined appends pts to dst, dropping pts[0] when it repeats the
// last point of dst.
func appendJoined(dst, pts []Point) []Point {
	if len(dst) > 0 && len(pts) > 0 && dst[len(dst)-1] == pts[0] {
		pts = pts[1:]
	}
	return append(dst, pts...)
}

// FlattenPath flattens every segment of p (see Path.Segments) and
// concatenates the results in segment order. Where one segment starts at
// the point the previous one ended, the shared point appears once.
// Sub-path boundaries are not marked; use FlattenSubpaths to keep them.
func (s Subdivider) FlattenPath(p *Path) ([]Point, Stats) {
	var (
		points []Point
		stats  Stats
	)
	for seg := range p.SegmentSeq(CloseMarker) {
		pts, st := s.Flatten(seg)
		points = appendJoined(points, pts)
		stats = stats.Add(st)
	}
	Logger().Debug("vpath: flattened path",
		"commands", p.Len(),
		"points", len(points),
		"maxDepth", stats.MaxDepth)
	return points, stats
}

// FlattenSubpaths flattens p into one Polyline per sub-path. A sub-path
// made of a lone MoveTo yields a single-point polyline.
func (s Subdivider) FlattenSubpaths(p *Path) ([]Polyline, Stats) {
	var (
		result []Polyline
		stats  Stats
	)
	for _, sp := range p.Subpaths() {
		cmds := sp.Commands()
		pl := Polyline{
			Points: []Point{cmds[0].(MoveTo).Point},
		}
		if _, ok := cmds[len(cmds)-1].(Close); ok {
			pl.Closed = true
		}
		for seg := range sp.SegmentSeq(CloseMarker) {
			pts, st := s.Flatten(seg)
			pl.Points = appendJoined(pl.Points, pts)
			stats = stats.Add(st)
		}
		result = append(result, pl)
	}
	return result, stats
}
