package glyph

import "errors"

var (
	// ErrEmptyFontData is returned when Parse or NewShaper get no bytes.
	ErrEmptyFontData = errors.New("glyph: empty font data")

	// ErrNoGlyph is returned when the font has no glyph for a rune.
	ErrNoGlyph = errors.New("glyph: rune not covered by font")

	// ErrNotOutline is returned for glyphs stored as bitmaps or SVG
	// documents instead of vector outlines.
	ErrNotOutline = errors.New("glyph: glyph has no vector outline")

	// ErrInvalidSize is returned for a non-positive or non-finite size.
	ErrInvalidSize = errors.New("glyph: size must be positive and finite")
)
