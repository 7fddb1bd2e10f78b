package composite

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger enabled for %v", level)
		}
	}
}

// captureLogs installs a debug-level text logger for the rest of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	captureLogs(t)
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}

func TestBuildLogsStack(t *testing.T) {
	buf := captureLogs(t)

	a := solid(t, 3, 2, FormatUchar, SpaceSRGB, 1, 2, 3, 255)
	if _, err := Composite2(a, a, BlendOver); err != nil {
		t.Fatalf("Composite2() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"stack normalized", "layers=2", "space=srgb", "generating", "tiles=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestBuildWarnsOnDiscard(t *testing.T) {
	buf := captureLogs(t)

	rgba := solid(t, 1, 1, FormatUchar, SpaceSRGB, 1, 2, 3, 255)
	rgb := solid(t, 1, 1, FormatUchar, SpaceSRGB, 1, 2, 3)
	if _, err := Build([]*Image{rgba, rgba, rgb}, []BlendMode{BlendOver, BlendOver}); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "discarded=2") {
		t.Errorf("expected a discard warning, got:\n%s", out)
	}
}

func TestSetLoggerConcurrent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				SetLogger(slog.Default())
			} else {
				_ = Logger()
			}
		}()
	}
	wg.Wait()
}
