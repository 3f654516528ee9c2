package vpath

import "errors"

// Sentinel errors returned by Subdivider validation.
var (
	// ErrInvalidScale is returned when ApproximationScale is negative or
	// not finite.
	ErrInvalidScale = errors.New("vpath: approximation scale must be non-negative and finite (0 selects the default)")

	// ErrInvalidAngle is returned when AngleTolerance or CuspLimit is
	// negative or not finite.
	ErrInvalidAngle = errors.New("vpath: angle tolerance and cusp limit must be finite and non-negative")

	// ErrInvalidRecursionLimit is returned when RecursionLimit is outside
	// [0, MaxRecursionLimit].
	ErrInvalidRecursionLimit = errors.New("vpath: recursion limit out of range")
)
