package iconset

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/k1LoW/errors"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one IconSpec.
type Result struct {
	Spec   IconSpec
	Status Status
	Err    error
}

// Report collects the results of a run in spec order.
type Report struct {
	RunID   string
	Results []Result
}

// Written returns the paths of the files written by the run.
func (r *Report) Written() []string {
	var paths []string
	for _, res := range r.Results {
		if res.Status == StatusWritten {
			paths = append(paths, res.Spec.Path())
		}
	}
	return paths
}

// Failed returns the results that failed.
func (r *Report) Failed() []Result {
	return r.filter(StatusFailed)
}

// Unavailable returns the results that could not be produced because an external tool is missing.
func (r *Report) Unavailable() []Result {
	return r.filter(StatusUnavailable)
}

// OK reports whether no output failed. Unavailable and skipped outputs do not count as failures.
func (r *Report) OK() bool {
	return len(r.Failed()) == 0
}

func (r *Report) filter(s Status) []Result {
	var results []Result
	for _, res := range r.Results {
		if res.Status == s {
			results = append(results, res)
		}
	}
	return results
}

// Generate renders every spec from the source image.
// A failing spec is logged and recorded in the report; the other specs are still processed.
// An error is returned only when specs itself is invalid.
func (g *Generator) Generate(ctx context.Context, specs []IconSpec) (_ *Report, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if err := checkUniquePaths(specs); err != nil {
		return nil, err
	}
	report := &Report{
		RunID:   uuid.NewString(),
		Results: make([]Result, len(specs)),
	}
	logger := g.logger.With(slog.String("run_id", report.RunID))
	logger.Info("generating icon set", slog.String("source", g.source), slog.Int("outputs", len(specs)), slog.String("filter", g.filterName))

	src, err := g.loadSource(ctx)
	if err != nil {
		logger.Error("failed to load source", slog.String("source", g.source), slog.String("error", err.Error()))
		for i, spec := range specs {
			if spec.Skip {
				report.Results[i] = Result{Spec: spec, Status: StatusSkipped}
				continue
			}
			report.Results[i] = Result{Spec: spec, Status: StatusFailed, Err: err}
			logger.Error("failed to write icon", slog.String("path", spec.Path()), slog.String("error", err.Error()))
		}
		logger.Info("generation completed", slog.Int("written", 0), slog.Int("failed", len(report.Failed())))
		return report, nil
	}
	b := src.Bounds()
	logger.Debug("loaded source", slog.Int("width", b.Dx()), slog.Int("height", b.Dy()))

	cache := newResizeCache(src, g.filter)
	eg := new(errgroup.Group)
	eg.SetLimit(g.concurrency)
	for i, spec := range specs {
		if spec.Skip {
			report.Results[i] = Result{Spec: spec, Status: StatusSkipped}
			logger.Info("skipped icon", slog.String("path", spec.Path()))
			continue
		}
		eg.Go(func() error {
			report.Results[i] = g.process(ctx, logger, cache, spec)
			return nil
		})
	}
	_ = eg.Wait()

	logger.Info("generation completed",
		slog.Int("written", len(report.Written())),
		slog.Int("failed", len(report.Failed())),
		slog.Int("unavailable", len(report.Unavailable())))
	return report, nil
}

func (g *Generator) process(ctx context.Context, logger *slog.Logger, cache *resizeCache, spec IconSpec) Result {
	if err := ctx.Err(); err != nil {
		return Result{Spec: spec, Status: StatusFailed, Err: err}
	}
	err := g.emit(ctx, logger, cache, spec)
	res := Result{Spec: spec, Status: statusOf(err), Err: err}
	switch res.Status {
	case StatusWritten:
		logger.Info("wrote icon", slog.String("path", spec.Path()), slog.String("format", string(spec.Format)))
	case StatusUnavailable:
		logger.Warn("icns compiler unavailable, no icns written", slog.String("path", spec.Path()), slog.String("error", err.Error()))
	default:
		logger.Error("failed to write icon", slog.String("path", spec.Path()), slog.String("error", fmt.Sprint(err)))
	}
	return res
}
