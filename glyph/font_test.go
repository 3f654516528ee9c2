package glyph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/vpath"
)

func loadGoRegular(t testing.TB) *Font {
	t.Helper()
	f, err := Parse(goregular.TTF)
	require.NoError(t, err)
	return f
}

func TestParse(t *testing.T) {
	_, err := Parse(nil)
	assert.ErrorIs(t, err, ErrEmptyFontData)

	_, err = Parse([]byte("not a font"))
	assert.Error(t, err)

	f := loadGoRegular(t)
	assert.Equal(t, "Go", f.Name())
	assert.Greater(t, f.NumGlyphs(), 100)
}

func TestFontGlyph(t *testing.T) {
	f := loadGoRegular(t)

	p, err := f.Glyph('A', 32)
	require.NoError(t, err)
	require.False(t, p.IsEmpty())

	cmds := p.Commands()
	assert.IsType(t, vpath.MoveTo{}, cmds[0])
	assert.IsType(t, vpath.Close{}, cmds[len(cmds)-1])

	r, ok := p.Bounds()
	require.True(t, ok)
	// Y points down: the glyph sits above the baseline.
	assert.LessOrEqual(t, r.Max.Y, 0.5)
	assert.Less(t, r.Min.Y, -15.0)
	assert.GreaterOrEqual(t, r.Min.X, -1.0)

	adv, err := f.Advance(mustIndex(t, f, 'A'), 32)
	require.NoError(t, err)
	assert.LessOrEqual(t, r.Max.X, adv+1)
}

func TestFontGlyphClosesEveryContour(t *testing.T) {
	f := loadGoRegular(t)

	p, err := f.Glyph('o', 48)
	require.NoError(t, err)

	pls, stats := vpath.DefaultSubdivider().FlattenSubpaths(p)
	require.Len(t, pls, 2, "'o' has an outer and an inner contour")
	for _, pl := range pls {
		assert.True(t, pl.Closed)
		assert.Greater(t, len(pl.Points), 8)
	}
	assert.Zero(t, stats.LimitHits)
}

func TestFontGlyphErrors(t *testing.T) {
	f := loadGoRegular(t)

	_, err := f.Glyph('\U0010FFFD', 12)
	assert.ErrorIs(t, err, ErrNoGlyph)

	for _, size := range []float64{0, -3, math.NaN(), math.Inf(1)} {
		_, err := f.Glyph('A', size)
		assert.ErrorIs(t, err, ErrInvalidSize, "size %v", size)
	}
}

func TestFontGlyphSpaceIsEmpty(t *testing.T) {
	f := loadGoRegular(t)

	p, err := f.Glyph(' ', 16)
	require.NoError(t, err)
	assert.True(t, p.IsEmpty())

	adv, err := f.Advance(mustIndex(t, f, ' '), 16)
	require.NoError(t, err)
	assert.Greater(t, adv, 0.0)
}

func TestFontGlyphReturnsCopies(t *testing.T) {
	f := loadGoRegular(t)

	a, err := f.Glyph('B', 20)
	require.NoError(t, err)
	n := a.Len()
	a.LineTo(1000, 1000)

	b, err := f.Glyph('B', 20)
	require.NoError(t, err)
	assert.Equal(t, n, b.Len())

	st := f.CacheStats()
	assert.Equal(t, uint64(1), st.Misses)
	assert.Equal(t, uint64(1), st.Hits)
	assert.Equal(t, 1, st.Entries)
}

func TestFontText(t *testing.T) {
	f := loadGoRegular(t)

	p, err := f.Text("Hi", 24)
	require.NoError(t, err)

	h, err := f.Glyph('H', 24)
	require.NoError(t, err)
	assert.Equal(t, len(h.Subpaths())+len(mustGlyph(t, f, 'i', 24).Subpaths()), len(p.Subpaths()))

	w, err := f.Width("Hi", 24)
	require.NoError(t, err)
	r, ok := p.Bounds()
	require.True(t, ok)
	assert.Greater(t, w, r.Width())

	_, err = f.Text("H\U0010FFFD", 24)
	assert.ErrorIs(t, err, ErrNoGlyph)
}

func TestFontMetrics(t *testing.T) {
	f := loadGoRegular(t)
	ascent, descent, err := f.Metrics(100)
	require.NoError(t, err)
	assert.InDelta(t, 90, ascent, 15)
	assert.InDelta(t, 20, descent, 10)
}

func mustIndex(t *testing.T, f *Font, r rune) sfnt.GlyphIndex {
	t.Helper()
	gid, err := f.Index(r)
	require.NoError(t, err)
	return gid
}

func mustGlyph(t *testing.T, f *Font, r rune, size float64) *vpath.Path {
	t.Helper()
	p, err := f.Glyph(r, size)
	require.NoError(t, err)
	return p
}
