package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/vpath"
)

// Environment variables that override the config file.
const (
	EnvConfig         = "VPATH_CONFIG"
	EnvScale          = "VPATH_SCALE"
	EnvAngleTolerance = "VPATH_ANGLE_TOLERANCE"
	EnvCuspLimit      = "VPATH_CUSP_LIMIT"
	EnvRecursionLimit = "VPATH_RECURSION_LIMIT"
	EnvScenes         = "VPATH_SCENES"
	EnvText           = "VPATH_TEXT"
	EnvOutDir         = "VPATH_OUT_DIR"
	EnvLogLevel       = "VPATH_LOG_LEVEL"
	EnvLogFormat      = "VPATH_LOG_FORMAT"
	EnvLogFile        = "VPATH_LOG_FILE"
)

// ErrUnknownScene is returned by Validate for scene names with no builder.
var ErrUnknownScene = errors.New("vpathdemo: unknown scene")

// LoggingConfig selects the log handlers.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
	File   string `yaml:"file"`   // rotated JSON log, optional
}

// Config is the demo configuration. Values are resolved in the order
// defaults, YAML file, environment, command-line flags.
type Config struct {
	Scale          float64       `yaml:"scale"`
	AngleTolerance float64       `yaml:"angle_tolerance"`
	CuspLimit      float64       `yaml:"cusp_limit"`
	RecursionLimit int           `yaml:"recursion_limit"`
	Scenes         []string      `yaml:"scenes"`
	Text           string        `yaml:"text"`
	FontSize       float64       `yaml:"font_size"`
	Margin         int           `yaml:"margin"`
	OutDir         string        `yaml:"out_dir"`
	Logging        LoggingConfig `yaml:"logging"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Scale:    1,
		Scenes:   []string{"example", "circle", "text", "shaped"},
		Text:     "Bézier",
		FontSize: 48,
		Margin:   4,
		OutDir:   ".",
		Logging:  LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load resolves the configuration from defaults, the optional YAML file at
// path and the environment seen through lookup.
func Load(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	floats := []struct {
		key string
		dst *float64
	}{
		{EnvScale, &cfg.Scale},
		{EnvAngleTolerance, &cfg.AngleTolerance},
		{EnvCuspLimit, &cfg.CuspLimit},
	}
	for _, f := range floats {
		v, ok := lookup(f.key)
		if !ok || v == "" {
			continue
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = x
	}
	if v, ok := lookup(EnvRecursionLimit); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRecursionLimit, err)
		}
		cfg.RecursionLimit = n
	}
	if v, ok := lookup(EnvScenes); ok && v != "" {
		cfg.Scenes = splitList(v)
	}
	strs := []struct {
		key string
		dst *string
	}{
		{EnvText, &cfg.Text},
		{EnvOutDir, &cfg.OutDir},
		{EnvLogLevel, &cfg.Logging.Level},
		{EnvLogFormat, &cfg.Logging.Format},
		{EnvLogFile, &cfg.Logging.File},
	}
	for _, s := range strs {
		if v, ok := lookup(s.key); ok && v != "" {
			*s.dst = v
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Options converts the subdivision settings to vpath options.
func (c Config) Options() []vpath.Option {
	return []vpath.Option{
		vpath.WithApproximationScale(c.Scale),
		vpath.WithAngleTolerance(c.AngleTolerance),
		vpath.WithCuspLimit(c.CuspLimit),
		vpath.WithRecursionLimit(c.RecursionLimit),
	}
}

// Validate checks the subdivision settings and scene names.
func (c Config) Validate() error {
	if _, err := vpath.NewSubdivider(c.Options()...); err != nil {
		return err
	}
	for _, name := range c.Scenes {
		if _, ok := scenes[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownScene, name)
		}
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("vpathdemo: font size must be positive, got %g", c.FontSize)
	}
	return nil
}
