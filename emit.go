package iconset

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// emit writes spec to disk from the resized images in cache.
func (g *Generator) emit(ctx context.Context, logger *slog.Logger, cache *resizeCache, spec IconSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(spec.Dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create directory %s: %w", ErrWrite, spec.Dir, err)
	}
	switch spec.Format {
	case FormatPNG:
		return emitPNG(cache, spec)
	case FormatICO:
		return emitICO(cache, spec)
	case FormatICNS:
		return g.emitICNS(ctx, logger, cache, spec)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, spec.Format)
	}
}

func emitPNG(cache *resizeCache, spec IconSpec) error {
	img, err := cache.Load(spec.Width, spec.Height)
	if err != nil {
		return err
	}
	return writeFileAtomic(spec.Path(), func(w io.Writer) error {
		return imaging.Encode(w, img, imaging.PNG)
	})
}

func emitICO(cache *resizeCache, spec IconSpec) error {
	frames := make([]image.Image, 0, len(spec.Sizes))
	for _, sz := range spec.Sizes {
		img, err := cache.Load(sz, sz)
		if err != nil {
			return err
		}
		frames = append(frames, img)
	}
	return writeFileAtomic(spec.Path(), func(w io.Writer) error {
		return EncodeICO(w, frames)
	})
}

// emitICNS renders an iconset into a scratch directory next to the output,
// compiles it, and moves the result into place only when it is a real icns file.
func (g *Generator) emitICNS(ctx context.Context, logger *slog.Logger, cache *resizeCache, spec IconSpec) error {
	work, err := os.MkdirTemp(spec.Dir, ".iconset-")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	defer func() {
		_ = os.RemoveAll(work)
	}()

	iconsetDir := filepath.Join(work, "icon.iconset")
	if err := os.Mkdir(iconsetDir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	for _, e := range iconsetEntries {
		img, err := cache.Load(e.size, e.size)
		if err != nil {
			return err
		}
		if err := imaging.Save(img, filepath.Join(iconsetDir, e.name)); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWrite, e.name, err)
		}
	}

	out := filepath.Join(work, "icon.icns")
	logger.Info("compiling icns", slog.String("path", spec.Path()), slog.String("compiler", g.compiler.Name()))
	if err := g.compiler.Compile(ctx, iconsetDir, out); err != nil {
		return err
	}

	f, err := os.Open(out)
	if err != nil {
		return fmt.Errorf("%w: compiler %s produced no output: %w", ErrWrite, g.compiler.Name(), err)
	}
	ok := hasICNSMagic(f)
	_ = f.Close()
	if !ok {
		return fmt.Errorf("%w: compiler %s produced an invalid icns file", ErrWrite, g.compiler.Name())
	}
	if err := os.Rename(out, spec.Path()); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// writeFileAtomic writes to a temporary sibling of path and renames it into place.
func writeFileAtomic(path string, write func(io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	return nil
}
