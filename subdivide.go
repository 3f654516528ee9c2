package vpath

import (
	"fmt"
	"math"
)

// Adaptive Bezier subdivision after Maxim Shemanarev's Anti-Grain Geometry:
// http://agg.sourceforge.net/antigrain.com/research/adaptive_bezier/index.html

const (
	// DefaultApproximationScale keeps the flattened curve within half a
	// path unit of the true curve.
	DefaultApproximationScale = 1.0

	// DefaultRecursionLimit is the subdivision depth used when
	// RecursionLimit is zero.
	DefaultRecursionLimit = 32

	// MaxRecursionLimit is the deepest subdivision a Subdivider accepts.
	MaxRecursionLimit = 32

	collinearityEpsilon   = 1e-30
	angleToleranceEpsilon = 0.01
)

// Subdivider flattens Bezier segments into points. It is a plain value
// with no mutable state, so one Subdivider may be shared by any number of
// goroutines.
//
// A zero ApproximationScale or RecursionLimit selects the default.
type Subdivider struct {
	// ApproximationScale sets the flatness target: the squared distance
	// tolerance is (0.5/ApproximationScale)^2.
	ApproximationScale float64

	// AngleTolerance in radians. The angle test runs only when it is at
	// least 0.01.
	AngleTolerance float64

	// CuspLimit in radians. Zero disables cusp handling.
	CuspLimit float64

	// RecursionLimit is the maximum subdivision depth.
	RecursionLimit int
}

// DefaultSubdivider returns a Subdivider with scale 1, angle test and cusp
// handling disabled, and recursion limit 32.
func DefaultSubdivider() Subdivider {
	return Subdivider{
		ApproximationScale: DefaultApproximationScale,
		RecursionLimit:     DefaultRecursionLimit,
	}
}

// NewSubdivider returns the default Subdivider modified by opts, or an
// error if the resulting configuration is invalid.
func NewSubdivider(opts ...Option) (Subdivider, error) {
	s := DefaultSubdivider()
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.Validate(); err != nil {
		return Subdivider{}, err
	}
	return s, nil
}

// Validate reports whether the configuration can be used.
func (s Subdivider) Validate() error {
	if s.ApproximationScale < 0 || math.IsNaN(s.ApproximationScale) || math.IsInf(s.ApproximationScale, 0) {
		return ErrInvalidScale
	}
	if !finiteNonNegative(s.AngleTolerance) || !finiteNonNegative(s.CuspLimit) {
		return ErrInvalidAngle
	}
	if s.RecursionLimit < 0 || s.RecursionLimit > MaxRecursionLimit {
		return fmt.Errorf("%w: %d", ErrInvalidRecursionLimit, s.RecursionLimit)
	}
	return nil
}

func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

// DistanceToleranceSquare returns (0.5/ApproximationScale)^2.
func (s Subdivider) DistanceToleranceSquare() float64 {
	scale := s.ApproximationScale
	if scale == 0 {
		scale = DefaultApproximationScale
	}
	d := 0.5 / scale
	return d * d
}

func (s Subdivider) recursionLimit() int {
	if s.RecursionLimit == 0 {
		return DefaultRecursionLimit
	}
	return s.RecursionLimit
}

// Stats describes the work done by one flattening call.
type Stats struct {
	// Calls counts invocations of the recursive step, including those
	// rejected by the recursion limit.
	Calls int
	// MaxDepth is the deepest level that was evaluated.
	MaxDepth int
	// LimitHits counts sub-curves abandoned at the recursion limit; a
	// non-zero value means the result may be coarser than requested.
	LimitHits int
	// NonFinite counts sub-curves abandoned because their flatness could
	// not be evaluated (NaN or overflow in the control points).
	NonFinite int
}

// Add returns the element-wise combination of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Calls:     s.Calls + o.Calls,
		MaxDepth:  max(s.MaxDepth, o.MaxDepth),
		LimitHits: s.LimitHits + o.LimitHits,
		NonFinite: s.NonFinite + o.NonFinite,
	}
}

// subdivision is the per-curve context. It owns points until finish hands
// them to the caller.
type subdivision struct {
	distanceToleranceSquare float64
	angleTolerance          float64
	cuspLimit               float64
	recursionLimit          int

	points []Point
	stats  Stats
}

func (s Subdivider) newSubdivision() *subdivision {
	return &subdivision{
		distanceToleranceSquare: s.DistanceToleranceSquare(),
		angleTolerance:          s.AngleTolerance,
		cuspLimit:               s.CuspLimit,
		recursionLimit:          s.recursionLimit(),
	}
}

// Cubic runs the adaptive subdivision on c and returns the points it
// emits, in curve order. The result never contains c.P0 and is not
// guaranteed to end with c.P3; use Flatten for a complete polyline.
func (s Subdivider) Cubic(c CubicBez) ([]Point, Stats) {
	sub := s.newSubdivision()
	sub.recursiveBezier(c.P0, c.P1, c.P2, c.P3, 0)
	if sub.stats.LimitHits > 0 || sub.stats.NonFinite > 0 {
		Logger().Debug("vpath: cubic approximation degraded",
			"limit", sub.recursionLimit,
			"limitHits", sub.stats.LimitHits,
			"nonFinite", sub.stats.NonFinite)
	}
	return sub.points, sub.stats
}

// FlattenCubicSegment is Cubic for a segment known to be a CubicBez.
// Passing any other kind is a programming error and panics.
func (s Subdivider) FlattenCubicSegment(seg Segment) ([]Point, Stats) {
	c, ok := seg.(CubicBez)
	if !ok {
		panic(fmt.Sprintf("vpath: FlattenCubicSegment called with %v segment", kindOf(seg)))
	}
	return s.Cubic(c)
}

func kindOf(seg Segment) string {
	if seg == nil {
		return "nil"
	}
	return seg.Kind().String()
}

// Flatten returns a gap-free polyline for seg: its start point, the
// subdivision output, and its exact end point. Lines are returned as their
// two end points; quadratic curves are raised to cubics first.
func (s Subdivider) Flatten(seg Segment) ([]Point, Stats) {
	switch c := seg.(type) {
	case Line:
		return []Point{c.P0, c.P1}, Stats{}
	case QuadBez:
		return s.flattenCubic(c.Raise())
	case CubicBez:
		return s.flattenCubic(c)
	}
	panic(fmt.Sprintf("vpath: Flatten called with %v segment", kindOf(seg)))
}

func (s Subdivider) flattenCubic(c CubicBez) ([]Point, Stats) {
	interior, stats := s.Cubic(c)
	points := make([]Point, 0, len(interior)+2)
	points = append(points, c.P0)
	for _, pt := range interior {
		if pt != points[len(points)-1] {
			points = append(points, pt)
		}
	}
	if points[len(points)-1] != c.P3 || len(points) == 1 {
		points = append(points, c.P3)
	}
	return points, stats
}

// recursiveBezier appends the points approximating the cubic p1..p4 at
// depth level.
func (sub *subdivision) recursiveBezier(p1, p2, p3, p4 Point, level int) {
	sub.stats.Calls++
	if level > sub.recursionLimit {
		sub.stats.LimitHits++
		return
	}
	sub.stats.MaxDepth = max(sub.stats.MaxDepth, level)

	// Midpoints of the control polygon, then of those, then the curve
	// midpoint p1234.
	p12 := p1.Mid(p2)
	p23 := p2.Mid(p3)
	p34 := p3.Mid(p4)
	p123 := p12.Mid(p23)
	p234 := p23.Mid(p34)
	p1234 := p123.Mid(p234)

	// Try to approximate the whole curve by the chord p1-p4.
	dx := p4.X - p1.X
	dy := p4.Y - p1.Y
	chordSq := dx*dx + dy*dy

	d2 := math.Abs((p2.X-p4.X)*dy - (p2.Y-p4.Y)*dx)
	d3 := math.Abs((p3.X-p4.X)*dy - (p3.Y-p4.Y)*dx)

	if !finite(d2) || !finite(d3) || !finite(chordSq) {
		sub.stats.NonFinite++
		return
	}

	switch {
	case d2 <= collinearityEpsilon && d3 <= collinearityEpsilon:
		// All collinear, or p1 == p4.
		if chordSq == 0 {
			d2 = p1.DistanceSquared(p2)
			d3 = p4.DistanceSquared(p3)
		} else {
			k := 1 / chordSq
			t2 := k * ((p2.X-p1.X)*dx + (p2.Y-p1.Y)*dy)
			t3 := k * ((p3.X-p1.X)*dx + (p3.Y-p1.Y)*dy)
			if t2 > 0 && t2 < 1 && t3 > 0 && t3 < 1 {
				// Simple collinear case 1---2---3---4: the end points
				// already describe it.
				return
			}
			d2 = projectedDistanceSquared(p2, p1, p4, t2, dx, dy)
			d3 = projectedDistanceSquared(p3, p1, p4, t3, dx, dy)
		}
		if d2 > d3 {
			if d2 < sub.distanceToleranceSquare {
				sub.points = append(sub.points, p2)
				return
			}
		} else if d3 < sub.distanceToleranceSquare {
			sub.points = append(sub.points, p3)
			return
		}

	case d2 <= collinearityEpsilon:
		// p1, p2, p4 collinear; p3 is significant.
		if d3*d3 <= sub.distanceToleranceSquare*chordSq {
			if sub.angleTolerance < angleToleranceEpsilon {
				sub.points = append(sub.points, p23)
				return
			}
			da := turnAngle(p2, p3, p4)
			if da < sub.angleTolerance {
				sub.points = append(sub.points, p23)
				return
			}
			if sub.cuspLimit != 0 && da > sub.cuspLimit {
				sub.points = append(sub.points, p3)
				return
			}
		}

	case d3 <= collinearityEpsilon:
		// p1, p3, p4 collinear; p2 is significant.
		if d2*d2 <= sub.distanceToleranceSquare*chordSq {
			if sub.angleTolerance < angleToleranceEpsilon {
				sub.points = append(sub.points, p23)
				return
			}
			da := turnAngle(p1, p2, p3)
			if da < sub.angleTolerance {
				sub.points = append(sub.points, p23)
				return
			}
			if sub.cuspLimit != 0 && da > sub.cuspLimit {
				sub.points = append(sub.points, p2)
				return
			}
		}

	default:
		// Regular case.
		if (d2+d3)*(d2+d3) <= sub.distanceToleranceSquare*chordSq {
			if sub.angleTolerance < angleToleranceEpsilon {
				sub.points = append(sub.points, p23)
				return
			}
			da1 := turnAngle(p1, p2, p3)
			da2 := turnAngle(p2, p3, p4)
			if da1+da2 < sub.angleTolerance {
				sub.points = append(sub.points, p23)
				return
			}
			if sub.cuspLimit != 0 {
				if da1 > sub.cuspLimit {
					sub.points = append(sub.points, p2)
					return
				}
				if da2 > sub.cuspLimit {
					sub.points = append(sub.points, p3)
					return
				}
			}
		}
	}

	sub.recursiveBezier(p1, p12, p123, p1234, level+1)
	sub.recursiveBezier(p1234, p234, p34, p4, level+1)
}

// projectedDistanceSquared measures how far p lies from the chord a-b
// given its projection parameter t: beyond an end point the distance to
// that end point, otherwise the distance to the foot of the perpendicular.
func projectedDistanceSquared(p, a, b Point, t, dx, dy float64) float64 {
	switch {
	case t <= 0:
		return p.DistanceSquared(a)
	case t >= 1:
		return p.DistanceSquared(b)
	default:
		return p.DistanceSquared(Pt(a.X+t*dx, a.Y+t*dy))
	}
}

// turnAngle returns the change of direction at b along a-b-c, in [0, pi].
func turnAngle(a, b, c Point) float64 {
	da := math.Abs(math.Atan2(c.Y-b.Y, c.X-b.X) - math.Atan2(b.Y-a.Y, b.X-a.X))
	if da >= math.Pi {
		da = 2*math.Pi - da
	}
	return da
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
