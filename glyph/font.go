package glyph

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/vpath"
	"github.com/gogpu/vpath/internal/lru"
)

// outlineKey identifies a glyph outline at one pixel size.
type outlineKey struct {
	gid  sfnt.GlyphIndex
	ppem fixed.Int26_6
}

// Font produces glyph paths from an SFNT (TrueType or OpenType) font.
// It is safe for concurrent use.
type Font struct {
	sf    *sfnt.Font
	bufs  sync.Pool
	cache *lru.Cache[outlineKey, *vpath.Path]
}

// Parse parses font data. The data must not be modified afterwards.
func Parse(data []byte, opts ...Option) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("glyph: failed to parse font: %w", err)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	f := &Font{
		sf:    sf,
		cache: lru.New[outlineKey, *vpath.Path](cfg.cacheCapacity),
	}
	f.bufs.New = func() any { return new(sfnt.Buffer) }
	return f, nil
}

// sfnt.Buffer is not safe for concurrent use; each call borrows one.
func (f *Font) buffer() *sfnt.Buffer {
	return f.bufs.Get().(*sfnt.Buffer)
}

// Name returns the font family name, or "" if the font has none.
func (f *Font) Name() string {
	buf := f.buffer()
	defer f.bufs.Put(buf)

	name, err := f.sf.Name(buf, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return f.sf.NumGlyphs()
}

// Index returns the glyph index for r. Runes mapped to the .notdef glyph
// report ErrNoGlyph.
func (f *Font) Index(r rune) (sfnt.GlyphIndex, error) {
	buf := f.buffer()
	defer f.bufs.Put(buf)

	gid, err := f.sf.GlyphIndex(buf, r)
	if err != nil {
		return 0, fmt.Errorf("glyph: lookup %q: %w", r, err)
	}
	if gid == 0 {
		return 0, fmt.Errorf("%w: %q", ErrNoGlyph, r)
	}
	return gid, nil
}

// Glyph returns the outline of r at size pixels per em, with its origin
// on the baseline at (0, 0).
func (f *Font) Glyph(r rune, size float64) (*vpath.Path, error) {
	gid, err := f.Index(r)
	if err != nil {
		return nil, err
	}
	return f.GlyphPath(gid, size)
}

// GlyphPath is Glyph for a glyph index.
func (f *Font) GlyphPath(gid sfnt.GlyphIndex, size float64) (*vpath.Path, error) {
	em, err := ppem(size)
	if err != nil {
		return nil, err
	}
	p, err := f.outline(gid, em)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

// outline returns the shared cached path; callers must not modify it.
func (f *Font) outline(gid sfnt.GlyphIndex, em fixed.Int26_6) (*vpath.Path, error) {
	return f.cache.GetOrCreate(outlineKey{gid: gid, ppem: em}, func() (*vpath.Path, error) {
		buf := f.buffer()
		defer f.bufs.Put(buf)

		segs, err := f.sf.LoadGlyph(buf, gid, em, nil)
		switch {
		case errors.Is(err, sfnt.ErrColoredGlyph):
			return nil, fmt.Errorf("%w: glyph %d", ErrNotOutline, gid)
		case err != nil:
			return nil, fmt.Errorf("glyph: load glyph %d: %w", gid, err)
		}
		return sfntPath(segs), nil
	})
}

// Advance returns the horizontal advance of gid at size pixels per em.
func (f *Font) Advance(gid sfnt.GlyphIndex, size float64) (float64, error) {
	em, err := ppem(size)
	if err != nil {
		return 0, err
	}
	buf := f.buffer()
	defer f.bufs.Put(buf)

	adv, err := f.sf.GlyphAdvance(buf, gid, em, font.HintingNone)
	if err != nil {
		return 0, fmt.Errorf("glyph: advance of glyph %d: %w", gid, err)
	}
	return fixedToFloat(adv), nil
}

// Metrics returns the ascent and descent at size pixels per em, both as
// positive distances from the baseline.
func (f *Font) Metrics(size float64) (ascent, descent float64, err error) {
	em, err := ppem(size)
	if err != nil {
		return 0, 0, err
	}
	buf := f.buffer()
	defer f.bufs.Put(buf)

	m, err := f.sf.Metrics(buf, em, font.HintingNone)
	if err != nil {
		return 0, 0, fmt.Errorf("glyph: metrics: %w", err)
	}
	return fixedToFloat(m.Ascent), fixedToFloat(m.Descent), nil
}

// Text lays s out left to right on the baseline y=0, applying pair
// kerning from the font's kern table when present.
func (f *Font) Text(s string, size float64) (*vpath.Path, error) {
	p, _, err := f.layout(s, size)
	return p, err
}

// Width returns the advance width of s as laid out by Text.
func (f *Font) Width(s string, size float64) (float64, error) {
	_, w, err := f.layout(s, size)
	return w, err
}

func (f *Font) layout(s string, size float64) (*vpath.Path, float64, error) {
	em, err := ppem(size)
	if err != nil {
		return nil, 0, err
	}

	out := vpath.NewPath()
	var (
		x    float64
		prev sfnt.GlyphIndex
	)
	for _, r := range s {
		gid, err := f.Index(r)
		if err != nil {
			return nil, 0, err
		}
		if prev != 0 {
			x += f.kern(prev, gid, em)
		}
		g, err := f.outline(gid, em)
		if err != nil {
			return nil, 0, err
		}
		if !g.IsEmpty() {
			out.Append(g.Transform(vpath.Translate(x, 0)).Commands()...)
		}
		adv, err := f.Advance(gid, size)
		if err != nil {
			return nil, 0, err
		}
		x += adv
		prev = gid
	}
	return out, x, nil
}

// kern returns the pair adjustment, or zero when the font has none.
func (f *Font) kern(a, b sfnt.GlyphIndex, em fixed.Int26_6) float64 {
	buf := f.buffer()
	defer f.bufs.Put(buf)

	k, err := f.sf.Kern(buf, a, b, em, font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat(k)
}

// CacheStats reports the outline cache counters.
func (f *Font) CacheStats() CacheStats {
	return cacheStats(f.cache.Stats())
}

// sfntPath converts loaded segments, already scaled to pixels with Y down,
// into a path. sfnt contours are implicitly closed.
func sfntPath(segs []sfnt.Segment) *vpath.Path {
	p := vpath.NewPath()
	for i, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if i > 0 {
				p.Close()
			}
			p.Append(vpath.MoveTo{Point: fixedPoint(s.Args[0])})
		case sfnt.SegmentOpLineTo:
			p.Append(vpath.LineTo{Point: fixedPoint(s.Args[0])})
		case sfnt.SegmentOpQuadTo:
			p.Append(vpath.QuadTo{
				Control: fixedPoint(s.Args[0]),
				Point:   fixedPoint(s.Args[1]),
			})
		case sfnt.SegmentOpCubeTo:
			p.Append(vpath.CubicTo{
				Control1: fixedPoint(s.Args[0]),
				Control2: fixedPoint(s.Args[1]),
				Point:    fixedPoint(s.Args[2]),
			})
		}
	}
	if len(segs) > 0 {
		p.Close()
	}
	return p
}

func ppem(size float64) (fixed.Int26_6, error) {
	if !(size > 0) || math.IsInf(size, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	return fixed.Int26_6(math.Round(size * 64)), nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func fixedPoint(p fixed.Point26_6) vpath.Point {
	return vpath.Pt(fixedToFloat(p.X), fixedToFloat(p.Y))
}
