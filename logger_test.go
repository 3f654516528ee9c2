package vpath

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestNopHandler(t *testing.T) {
	var h slog.Handler = nopHandler{}
	if h.Enabled(context.Background(), slog.LevelError) {
		t.Error("nopHandler enabled at error level")
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.Int("points", 1)}).(nopHandler); !ok {
		t.Error("WithAttrs did not keep the handler silent")
	}
	if _, ok := h.WithGroup("stats").(nopHandler); !ok {
		t.Error("WithGroup did not keep the handler silent")
	}
}

func TestLogger_DefaultIsSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger enabled at %v", level)
		}
	}
}

func TestSetLogger_RoundTrip(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, nil))
	SetLogger(custom)
	if Logger() != custom {
		t.Fatal("Logger() did not return the logger passed to SetLogger")
	}

	SetLogger(nil)
	l := Logger()
	if l == nil || l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) did not restore a silent logger")
	}
	l.Error("dropped")
	if buf.Len() != 0 {
		t.Errorf("record reached the replaced logger: %s", buf.String())
	}
}

func TestCubicLogsDegradedApproximation(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	s, err := NewSubdivider(WithRecursionLimit(2))
	if err != nil {
		t.Fatal(err)
	}
	s.Cubic(CubicBez{P0: Pt(0, 0), P1: Pt(1e6, 1e6), P2: Pt(-1e6, 1e6), P3: Pt(1e6, 0)})

	out := buf.String()
	if !strings.Contains(out, "cubic approximation degraded") {
		t.Errorf("expected degraded-approximation record, got: %s", out)
	}
	if !strings.Contains(out, "limitHits=") {
		t.Errorf("expected limitHits attribute, got: %s", out)
	}
}

func TestCubicQuietWhenWithinLimit(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	DefaultSubdivider().Cubic(sCurve)
	if buf.Len() != 0 {
		t.Errorf("unexpected log output: %s", buf.String())
	}
}

func TestFlattenPathLogsSummary(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	p := BuildPath().Rect(0, 0, 10, 10).Build()
	DefaultSubdivider().FlattenPath(p)

	out := buf.String()
	for _, want := range []string{"vpath: flattened path", "commands=5", "points=4", "maxDepth=0"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}

func TestFlattenPathSilentAboveDebug(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	DefaultSubdivider().FlattenPath(BuildPath().Circle(0, 0, 10).Build())
	if buf.Len() != 0 {
		t.Errorf("unexpected log output at info level: %s", buf.String())
	}
}

func TestLoggerConcurrentFlatten(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	p := BuildPath().Circle(0, 0, 10).Build()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Go(func() {
			if i%2 == 0 {
				SetLogger(slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})))
				SetLogger(nil)
				return
			}
			if pts, _ := DefaultSubdivider().FlattenPath(p); len(pts) == 0 {
				t.Error("FlattenPath returned no points")
			}
		})
	}
	wg.Wait()
}

func BenchmarkFlattenPath_DisabledLogger(b *testing.B) {
	p := BuildPath().Rect(0, 0, 10, 10).Build()
	s := DefaultSubdivider()
	b.ReportAllocs()
	for b.Loop() {
		s.FlattenPath(p)
	}
}
