package main

import (
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/vpath"
	"github.com/gogpu/vpath/glyph"
	"github.com/gogpu/vpath/mesh"
	"github.com/gogpu/vpath/raster"
)

type sceneFunc func(cfg Config) (*vpath.Path, error)

var scenes = map[string]sceneFunc{
	"example": exampleScene,
	"circle":  circleScene,
	"text":    textScene,
	"shaped":  shapedScene,
}

// exampleScene mixes every command kind in one closed sub-path.
func exampleScene(Config) (*vpath.Path, error) {
	return vpath.BuildPath().
		MoveTo(0, 0).
		LineTo(10, 0).
		QuadTo(20, 0, 20, 10).
		CubicTo(10, 10, 0, 10, 0, 0).
		Close().
		Build().
		Transform(vpath.Scale(10, 10)), nil
}

func circleScene(Config) (*vpath.Path, error) {
	return vpath.BuildPath().
		Circle(100, 100, 80).
		Polygon(100, 100, 40, 5).
		Build(), nil
}

var (
	goFont   = sync.OnceValues(func() (*glyph.Font, error) { return glyph.Parse(goregular.TTF) })
	goShaper = sync.OnceValues(func() (*glyph.Shaper, error) { return glyph.NewShaper(goregular.TTF) })
)

func textScene(cfg Config) (*vpath.Path, error) {
	f, err := goFont()
	if err != nil {
		return nil, err
	}
	return f.Text(cfg.Text, cfg.FontSize)
}

func shapedScene(cfg Config) (*vpath.Path, error) {
	s, err := goShaper()
	if err != nil {
		return nil, err
	}
	run, err := s.Shape(cfg.Text, cfg.FontSize)
	if err != nil {
		return nil, err
	}
	return run.Path, nil
}

// result summarizes one rendered scene.
type result struct {
	Name      string
	File      string
	Polylines int
	Points    int
	Edges     int
	Coverage  float64
	Stats     vpath.Stats
}

// renderAll flattens and rasterizes the configured scenes concurrently and
// writes one PNG per scene into cfg.OutDir. Results keep the scene order.
func renderAll(ctx context.Context, sub vpath.Subdivider, cfg Config) ([]result, error) {
	results := make([]result, len(cfg.Scenes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range cfg.Scenes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := renderScene(sub, cfg, name)
			if err != nil {
				return fmt.Errorf("scene %s: %w", name, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func renderScene(sub vpath.Subdivider, cfg Config, name string) (result, error) {
	build, ok := scenes[name]
	if !ok {
		return result{}, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	p, err := build(cfg)
	if err != nil {
		return result{}, err
	}

	pls, stats := sub.FlattenSubpaths(p)
	r := result{Name: name, Polylines: len(pls), Stats: stats}
	for _, pl := range pls {
		r.Points += len(pl.Points)
	}

	m, err := mesh.Outline(pls)
	if err != nil {
		return result{}, err
	}
	r.Edges = len(m.Indices) / 2

	img, _, err := raster.Fit(pls, cfg.Margin)
	if err != nil {
		return result{}, err
	}
	r.Coverage = raster.Coverage(img)

	r.File = filepath.Join(cfg.OutDir, name+".png")
	f, err := os.Create(r.File)
	if err != nil {
		return result{}, err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return result{}, err
	}
	if err := f.Close(); err != nil {
		return result{}, err
	}
	return r, nil
}

func (r result) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("file", r.File),
		slog.Int("polylines", r.Polylines),
		slog.Int("points", r.Points),
		slog.Int("edges", r.Edges),
		slog.Float64("coverage", r.Coverage),
		slog.Int("calls", r.Stats.Calls),
		slog.Int("maxDepth", r.Stats.MaxDepth),
		slog.Int("limitHits", r.Stats.LimitHits),
	)
}
