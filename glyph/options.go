package glyph

import "github.com/gogpu/vpath/internal/lru"

type config struct {
	cacheCapacity int
}

func defaultConfig() config {
	return config{cacheCapacity: lru.DefaultCapacity}
}

// Option configures a Font or Shaper.
type Option func(*config)

// WithCacheCapacity sets how many glyph outlines are kept per cache shard.
// Values below one select the default.
func WithCacheCapacity(n int) Option {
	return func(c *config) {
		c.cacheCapacity = n
	}
}

// CacheStats reports glyph cache activity.
type CacheStats struct {
	Entries   int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

func cacheStats(s lru.Stats) CacheStats {
	return CacheStats{
		Entries:   s.Len,
		Hits:      s.Hits,
		Misses:    s.Misses,
		Evictions: s.Evictions,
	}
}
