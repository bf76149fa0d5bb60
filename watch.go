package iconset

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/k1LoW/errors"
)

// watchDebounce collapses the burst of events an editor produces on save.
const watchDebounce = 300 * time.Millisecond

// Watch runs Generate once and again every time the source file changes,
// until ctx is cancelled. Each report is passed to onReport.
func (g *Generator) Watch(ctx context.Context, specs []IconSpec, onReport func(*Report)) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if isURL(g.source) {
		return fmt.Errorf("%w: cannot watch remote source %s", ErrInvalidArgument, g.source)
	}
	abs, err := filepath.Abs(g.source)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()
	// Watch the directory: editors often replace the file instead of writing to it.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	run := func() error {
		report, err := g.Generate(ctx, specs)
		if err != nil {
			return err
		}
		onReport(report)
		return nil
	}
	if err := run(); err != nil {
		return err
	}

	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			g.logger.Debug("source changed", slog.String("source", abs), slog.String("op", ev.Op.String()))
			timer.Reset(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			g.logger.Error("failed to watch source", slog.String("error", err.Error()))
		case <-timer.C:
			if err := run(); err != nil {
				return err
			}
		}
	}
}
