package dot

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fatih/color"
)

func TestHandle(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var buf bytes.Buffer
	h, err := newWithWriter(slog.NewTextHandler(&buf, nil), &buf)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(h.Stop)
	logger := slog.New(h).With(slog.String("run_id", "test"))

	logger.Info("generating icon set")
	logger.Info("wrote icon", slog.String("path", "a.png"))
	logger.Info("skipped icon", slog.String("path", "b.png"))
	logger.Error("failed to write icon", slog.String("path", "c.png"))
	logger.Warn("icns compiler unavailable, no icns written")
	logger.Info("wrote icon", slog.String("path", "d.png"))
	logger.Info("generation completed")

	if got, want := buf.String(), ".-!?.\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestEnabled(t *testing.T) {
	h, err := newWithWriter(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}), &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(h.Stop)
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Enabled(Info) = true, want false")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("Enabled(Error) = false, want true")
	}
}
