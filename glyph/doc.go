// Package glyph builds vpath paths from font outlines.
//
// Font reads TrueType and OpenType files with golang.org/x/image/font/sfnt
// and lays out single-direction text with pair kerning. Shaper runs the
// HarfBuzz port from github.com/go-text/typesetting, so ligatures,
// mark positioning and right-to-left scripts come out right.
//
// Both produce paths in pixel units with the Y axis pointing down and the
// baseline at y=0, the convention of image coordinates. Every contour is
// closed with a Close command.
//
//	f, err := glyph.Parse(goregular.TTF)
//	if err != nil {
//	    return err
//	}
//	p, err := f.Text("Hello", 32)
//	...
//	pts, _ := vpath.DefaultSubdivider().FlattenSubpaths(p)
//
// Glyph outlines are cached per font and size; the paths handed to callers
// are copies and may be modified freely.
package glyph
