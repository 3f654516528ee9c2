// Command vpathdemo flattens a set of demo scenes with the vpath adaptive
// subdivider and writes each as a PNG coverage mask.
//
// Settings come from defaults, an optional YAML file (-config or
// VPATH_CONFIG), VPATH_* environment variables and flags, in that order.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gogpu/vpath"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "vpathdemo:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("vpathdemo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", os.Getenv(EnvConfig), "YAML config file")
		scale      = fs.Float64("scale", 0, "approximation scale")
		angle      = fs.Float64("angle", 0, "angle tolerance in radians (0 disables)")
		cusp       = fs.Float64("cusp", 0, "cusp limit in radians (0 disables)")
		limit      = fs.Int("limit", 0, "recursion limit (0 selects the default)")
		scenesFlag = fs.String("scenes", "", "comma-separated scenes: example,circle,text,shaped")
		text       = fs.String("text", "", "text for the text and shaped scenes")
		outDir     = fs.String("out", "", "output directory")
		level      = fs.String("log-level", "", "debug, info, warn or error")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := Load(*configPath, os.LookupEnv)
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scale":
			cfg.Scale = *scale
		case "angle":
			cfg.AngleTolerance = *angle
		case "cusp":
			cfg.CuspLimit = *cusp
		case "limit":
			cfg.RecursionLimit = *limit
		case "scenes":
			cfg.Scenes = splitList(*scenesFlag)
		case "text":
			cfg.Text = *text
		case "out":
			cfg.OutDir = *outDir
		case "log-level":
			cfg.Logging.Level = *level
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closer := newLogger(cfg.Logging, stderr)
	defer closer.Close()
	vpath.SetLogger(logger)
	defer vpath.SetLogger(nil)

	sub, err := vpath.NewSubdivider(cfg.Options()...)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return err
	}

	results, err := renderAll(ctx, sub, cfg)
	if err != nil {
		return err
	}

	var total vpath.Stats
	for _, r := range results {
		logger.Info("scene rendered", "scene", r.Name, "result", r)
		total = total.Add(r.Stats)
	}
	logger.Info("done",
		"scenes", len(results),
		"calls", total.Calls,
		"limitHits", total.LimitHits,
		"nonFinite", total.NonFinite)
	return nil
}
