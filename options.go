package vpath

// Option configures a Subdivider created by NewSubdivider.
//
// Example:
//
//	s, err := vpath.NewSubdivider(
//	    vpath.WithApproximationScale(4), // device pixels per path unit
//	    vpath.WithAngleTolerance(0.2),
//	    vpath.WithCuspLimit(0.5),
//	)
type Option func(*Subdivider)

// WithApproximationScale sets the ratio between path units and the units
// the flatness target of half a unit is measured in. Increase it when the
// path will be magnified.
func WithApproximationScale(scale float64) Option {
	return func(s *Subdivider) {
		s.ApproximationScale = scale
	}
}

// WithAngleTolerance enables the tangent-angle test. Values below 0.01
// radians leave it disabled.
func WithAngleTolerance(radians float64) Option {
	return func(s *Subdivider) {
		s.AngleTolerance = radians
	}
}

// WithCuspLimit enables cusp handling: a joint whose tangent turns by more
// than radians ends subdivision at that control point. Zero disables it.
func WithCuspLimit(radians float64) Option {
	return func(s *Subdivider) {
		s.CuspLimit = radians
	}
}

// WithRecursionLimit caps the subdivision depth. It must lie in
// [0, MaxRecursionLimit]; zero selects DefaultRecursionLimit.
func WithRecursionLimit(limit int) Option {
	return func(s *Subdivider) {
		s.RecursionLimit = limit
	}
}
