package glyph

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/vpath"
	"github.com/gogpu/vpath/internal/lru"
)

// Run is the result of shaping one string.
type Run struct {
	// Path holds the positioned glyph outlines.
	Path *vpath.Path
	// Advance is the pen displacement after the last glyph.
	Advance float64
	// Glyphs is the number of glyphs produced by shaping; ligatures make
	// it smaller than the rune count.
	Glyphs int
	// RTL is set when the paragraph direction was resolved as
	// right-to-left.
	RTL bool
}

// Shaper shapes text with HarfBuzz rules and converts the result to paths.
// It is safe for concurrent use.
type Shaper struct {
	font     *font.Font
	upem     float64
	language language.Language

	// shaping.HarfbuzzShaper keeps scratch buffers and is not safe for
	// concurrent use.
	shapers sync.Pool

	// Outlines in font units, Y up.
	cache *lru.Cache[font.GID, *vpath.Path]
}

// NewShaper parses font data for shaping.
func NewShaper(data []byte, opts ...Option) (*Shaper, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("glyph: failed to parse font: %w", err)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Shaper{
		font:     face.Font,
		upem:     float64(face.Upem()),
		language: language.NewLanguage("en"),
		cache:    lru.New[font.GID, *vpath.Path](cfg.cacheCapacity),
	}
	s.shapers.New = func() any { return &shaping.HarfbuzzShaper{} }
	return s, nil
}

// Shape shapes text at size pixels per em. The paragraph direction is
// taken from the first strong character; the whole string is shaped as
// one run in that direction. Glyphs missing from the font are skipped and
// logged at warn level.
func (s *Shaper) Shape(text string, size float64) (Run, error) {
	em, err := ppem(size)
	if err != nil {
		return Run{}, err
	}
	if text == "" {
		return Run{Path: vpath.NewPath()}, nil
	}

	runes := []rune(text)
	dir := paragraphDirection(text)
	face := font.NewFace(s.font)

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      face,
		Size:      em,
		Script:    detectScript(runes),
		Language:  s.language,
	}

	hb := s.shapers.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.shapers.Put(hb)

	scale := fixedToFloat(em) / s.upem
	out := vpath.NewPath()
	var pen float64
	for _, g := range output.Glyphs {
		x := pen + fixedToFloat(g.XOffset)
		y := -fixedToFloat(g.YOffset)
		pen += fixedToFloat(g.Advance)

		if g.GlyphID == 0 {
			vpath.Logger().Warn("glyph: missing glyph in shaped run",
				"cluster", g.TextIndex(),
				"rune", string(runes[g.TextIndex()]))
			continue
		}
		outline, err := s.outline(face, g.GlyphID)
		if err != nil {
			return Run{}, err
		}
		if outline.IsEmpty() {
			continue
		}
		// Font units are Y up; flip into image space while scaling.
		m := vpath.Translate(x, y).Multiply(vpath.Scale(scale, -scale))
		out.Append(outline.Transform(m).Commands()...)
	}

	return Run{
		Path:    out,
		Advance: pen,
		Glyphs:  len(output.Glyphs),
		RTL:     dir == di.DirectionRTL,
	}, nil
}

// outline returns the cached font-unit outline for gid.
func (s *Shaper) outline(face *font.Face, gid font.GID) (*vpath.Path, error) {
	return s.cache.GetOrCreate(gid, func() (*vpath.Path, error) {
		data, ok := face.GlyphData(gid).(font.GlyphOutline)
		if !ok {
			return nil, fmt.Errorf("%w: glyph %d", ErrNotOutline, gid)
		}
		return outlinePath(data), nil
	})
}

// CacheStats reports the outline cache counters.
func (s *Shaper) CacheStats() CacheStats {
	return cacheStats(s.cache.Stats())
}

// outlinePath converts a go-text outline (font units, Y up) into a path.
func outlinePath(o font.GlyphOutline) *vpath.Path {
	p := vpath.NewPath()
	for i, seg := range o.Segments {
		switch seg.Op {
		case opentype.SegmentOpMoveTo:
			if i > 0 {
				p.Close()
			}
			p.Append(vpath.MoveTo{Point: segmentPoint(seg.Args[0].X, seg.Args[0].Y)})
		case opentype.SegmentOpLineTo:
			p.Append(vpath.LineTo{Point: segmentPoint(seg.Args[0].X, seg.Args[0].Y)})
		case opentype.SegmentOpQuadTo:
			p.Append(vpath.QuadTo{
				Control: segmentPoint(seg.Args[0].X, seg.Args[0].Y),
				Point:   segmentPoint(seg.Args[1].X, seg.Args[1].Y),
			})
		case opentype.SegmentOpCubeTo:
			p.Append(vpath.CubicTo{
				Control1: segmentPoint(seg.Args[0].X, seg.Args[0].Y),
				Control2: segmentPoint(seg.Args[1].X, seg.Args[1].Y),
				Point:    segmentPoint(seg.Args[2].X, seg.Args[2].Y),
			})
		}
	}
	if len(o.Segments) > 0 {
		p.Close()
	}
	return p
}

func segmentPoint(x, y float32) vpath.Point {
	return vpath.Pt(float64(x), float64(y))
}

// paragraphDirection applies rules P2 and P3 of the Unicode bidi
// algorithm: the first strong character sets the direction, left-to-right
// when there is none.
func paragraphDirection(text string) di.Direction {
	for _, r := range text {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return di.DirectionLTR
		case bidi.R, bidi.AL:
			return di.DirectionRTL
		}
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
