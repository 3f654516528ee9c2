// Package vpath is a vector path model with adaptive curve flattening.
//
// # Overview
//
// A Path records drawing commands (MoveTo, LineTo, QuadTo, CubicTo, Close)
// in order. Segments converts the commands into self-contained geometric
// segments (Line, QuadBez, CubicBez), and a Subdivider flattens those into
// points within a configurable tolerance, ready for a triangulator or
// rasterizer.
//
// # Quick Start
//
//	p := vpath.NewPath()
//	p.MoveTo(0, 0)
//	p.LineTo(10, 0)
//	p.QuadTo(20, 0, 20, 10)
//	p.CubicTo(10, 10, 0, 10, 0, 0)
//	p.Close()
//
//	s := vpath.DefaultSubdivider()
//	polylines, _ := s.FlattenSubpaths(p)
//
// # Flattening
//
// Curves are flattened with adaptive de Casteljau subdivision as described
// for Anti-Grain Geometry. ApproximationScale sets the distance tolerance,
// AngleTolerance and CuspLimit refine behavior near sharp turns, and
// RecursionLimit bounds the depth (and thus the stack) no matter how
// pathological the control points are. Reaching the limit is not an
// error; it is reported through Stats.
//
// Subdivider.Cubic exposes the raw subdivision output, which omits the
// curve's start point and may omit its end point. Subdivider.Flatten always
// returns the exact start and end points around that output.
//
// # Close
//
// Segments treats Close as a marker and emits nothing for it. Callers that
// want an explicit closing edge use SegmentsWith(CloseLine).
//
// # Concurrency
//
// Subdivider is an immutable value and may be shared. A Path must not be
// mutated concurrently; distinct paths can be flattened in parallel.
//
// # Sub-packages
//
//   - glyph: builds paths from font outlines (x/image sfnt, go-text)
//   - geompath: converts to and from seehuhn.de/go/geom paths
//   - raster: fills flattened polylines into alpha masks
//   - mesh: packs flattened polylines into GPU vertex and index data
package vpath
