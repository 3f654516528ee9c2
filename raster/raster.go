// Package raster fills flattened vpath polylines into alpha coverage masks
// using the signed-area accumulator from golang.org/x/image/vector.
//
// Every polyline is treated as a closed contour, whether or not its
// Closed flag is set, and overlapping contours combine with the non-zero
// winding rule.
package raster

import (
	"errors"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/vpath"
)

// ErrEmptyBounds is returned by Fit when the polylines contain no finite
// points to size the mask from.
var ErrEmptyBounds = errors.New("raster: polylines have no finite points")

// Mask fills pls into a width×height alpha mask. Coordinates are pixels
// with the origin at the top-left corner.
func Mask(pls []vpath.Polyline, width, height int) *image.Alpha {
	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return dst
	}
	z := vector.NewRasterizer(width, height)
	z.DrawOp = draw.Src
	addPolylines(z, pls, vpath.Point{})
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// Fit fills pls into a mask just large enough to hold them plus margin
// pixels on every side. The returned offset is the translation that was
// applied to the polylines: a point p lands at p+offset in the mask.
func Fit(pls []vpath.Polyline, margin int) (*image.Alpha, vpath.Point, error) {
	r, ok := bounds(pls)
	if !ok {
		return nil, vpath.Point{}, ErrEmptyBounds
	}
	margin = max(margin, 0)
	minX := math.Floor(r.Min.X)
	minY := math.Floor(r.Min.Y)
	width := int(math.Ceil(r.Max.X)-minX) + 2*margin
	height := int(math.Ceil(r.Max.Y)-minY) + 2*margin
	width, height = max(width, 1), max(height, 1)

	offset := vpath.Pt(float64(margin)-minX, float64(margin)-minY)

	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	z := vector.NewRasterizer(width, height)
	z.DrawOp = draw.Src
	addPolylines(z, pls, offset)
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})

	vpath.Logger().Debug("raster: filled mask",
		"polylines", len(pls),
		"width", width,
		"height", height)
	return dst, offset, nil
}

// Coverage returns the covered area of m in pixels, counting a fully
// opaque pixel as one.
func Coverage(m *image.Alpha) float64 {
	var sum uint64
	for _, a := range m.Pix {
		sum += uint64(a)
	}
	return float64(sum) / 255
}

func addPolylines(z *vector.Rasterizer, pls []vpath.Polyline, offset vpath.Point) {
	for _, pl := range pls {
		if len(pl.Points) < 3 {
			continue
		}
		first := pl.Points[0].Add(offset)
		z.MoveTo(float32(first.X), float32(first.Y))
		for _, p := range pl.Points[1:] {
			p = p.Add(offset)
			z.LineTo(float32(p.X), float32(p.Y))
		}
		z.ClosePath()
	}
}

func bounds(pls []vpath.Polyline) (vpath.Rect, bool) {
	var (
		r  vpath.Rect
		ok bool
	)
	for _, pl := range pls {
		for _, p := range pl.Points {
			if !p.IsFinite() {
				continue
			}
			pr := vpath.Rect{Min: p, Max: p}
			if !ok {
				r, ok = pr, true
				continue
			}
			r = r.Union(pr)
		}
	}
	return r, ok
}
