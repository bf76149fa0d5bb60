package iconset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/corona10/goimagehash"
	"github.com/disintegration/imaging"
)

// staleDistance is the perceptual hash distance from which an existing PNG
// is considered to have been rendered from a different source.
const staleDistance = 10

type CheckStatus string

const (
	CheckOK       CheckStatus = "ok"
	CheckMissing  CheckStatus = "missing"
	CheckMismatch CheckStatus = "mismatch"
	CheckStale    CheckStatus = "stale"
	CheckSkipped  CheckStatus = "skipped"
)

// CheckResult describes the state of one existing output.
type CheckResult struct {
	Spec   IconSpec
	Status CheckStatus
	Detail string
}

// Check inspects existing outputs against specs and the source without writing anything.
func (g *Generator) Check(ctx context.Context, specs []IconSpec) ([]CheckResult, error) {
	src, err := g.loadSource(ctx)
	if err != nil {
		return nil, err
	}
	cache := newResizeCache(src, g.filter)
	results := make([]CheckResult, 0, len(specs))
	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res := g.checkOne(cache, spec)
		if res.Status != CheckOK && res.Status != CheckSkipped {
			g.logger.Warn("icon needs regeneration", slog.String("path", spec.Path()), slog.String("status", string(res.Status)), slog.String("detail", res.Detail))
		}
		results = append(results, res)
	}
	return results, nil
}

func (g *Generator) checkOne(cache *resizeCache, spec IconSpec) CheckResult {
	if spec.Skip {
		return CheckResult{Spec: spec, Status: CheckSkipped}
	}
	if _, err := os.Stat(spec.Path()); errors.Is(err, fs.ErrNotExist) {
		return CheckResult{Spec: spec, Status: CheckMissing}
	}
	var (
		status CheckStatus
		detail string
	)
	switch spec.Format {
	case FormatPNG:
		status, detail = checkPNG(cache, spec)
	case FormatICO:
		status, detail = checkICO(spec)
	case FormatICNS:
		status, detail = checkICNS(spec)
	default:
		status, detail = CheckMismatch, fmt.Sprintf("unsupported format %q", spec.Format)
	}
	return CheckResult{Spec: spec, Status: status, Detail: detail}
}

func checkPNG(cache *resizeCache, spec IconSpec) (CheckStatus, string) {
	got, err := imaging.Open(spec.Path())
	if err != nil {
		return CheckMismatch, fmt.Sprintf("failed to decode: %v", err)
	}
	b := got.Bounds()
	if b.Dx() != spec.Width || b.Dy() != spec.Height {
		return CheckMismatch, fmt.Sprintf("size is %dx%d, want %dx%d", b.Dx(), b.Dy(), spec.Width, spec.Height)
	}
	want, err := cache.Load(spec.Width, spec.Height)
	if err != nil {
		return CheckMismatch, err.Error()
	}
	gotHash, err := goimagehash.PerceptionHash(got)
	if err != nil {
		return CheckMismatch, fmt.Sprintf("failed to compute perceptual hash: %v", err)
	}
	wantHash, err := goimagehash.PerceptionHash(want)
	if err != nil {
		return CheckMismatch, fmt.Sprintf("failed to compute perceptual hash: %v", err)
	}
	distance, err := gotHash.Distance(wantHash)
	if err != nil {
		return CheckMismatch, err.Error()
	}
	if distance >= staleDistance {
		return CheckStale, fmt.Sprintf("perceptual distance %d from source", distance)
	}
	return CheckOK, ""
}

func checkICO(spec IconSpec) (CheckStatus, string) {
	f, err := os.Open(spec.Path())
	if err != nil {
		return CheckMismatch, err.Error()
	}
	defer f.Close()
	entries, err := ReadICODirectory(f)
	if err != nil {
		return CheckMismatch, err.Error()
	}
	if len(entries) != len(spec.Sizes) {
		return CheckMismatch, fmt.Sprintf("has %d frames, want %d", len(entries), len(spec.Sizes))
	}
	for i, e := range entries {
		if e.Width != spec.Sizes[i] || e.Height != spec.Sizes[i] {
			return CheckMismatch, fmt.Sprintf("frame %d is %dx%d, want %dx%d", i, e.Width, e.Height, spec.Sizes[i], spec.Sizes[i])
		}
	}
	return CheckOK, ""
}

func checkICNS(spec IconSpec) (CheckStatus, string) {
	f, err := os.Open(spec.Path())
	if err != nil {
		return CheckMismatch, err.Error()
	}
	defer f.Close()
	if !hasICNSMagic(f) {
		return CheckMismatch, "not an icns container"
	}
	return CheckOK, ""
}
