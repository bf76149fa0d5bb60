package iconset

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os"
	osexec "os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/jackmordaunt/icns/v3"
	"github.com/k1LoW/exec"
)

// DefaultICNSTimeout bounds a single iconutil invocation.
const DefaultICNSTimeout = 30 * time.Second

const (
	CompilerIconutil = "iconutil"
	CompilerNative   = "native"
	CompilerAuto     = "auto"
)

var icnsMagic = []byte("icns")

// iconsetEntries is the file layout iconutil expects inside a .iconset directory.
var iconsetEntries = []struct {
	size int
	name string
}{
	{16, "icon_16x16.png"},
	{32, "icon_16x16@2x.png"},
	{32, "icon_32x32.png"},
	{64, "icon_32x32@2x.png"},
	{128, "icon_128x128.png"},
	{256, "icon_128x128@2x.png"},
	{256, "icon_256x256.png"},
	{512, "icon_256x256@2x.png"},
	{512, "icon_512x512.png"},
	{1024, "icon_512x512@2x.png"},
}

// ICNSCompiler turns an .iconset directory into an .icns file.
type ICNSCompiler interface {
	Name() string
	// Compile writes out from iconsetDir. It returns ErrExternalToolUnavailable
	// when the compiler cannot run on this host.
	Compile(ctx context.Context, iconsetDir, out string) error
}

// NewICNSCompiler returns the compiler registered under name.
func NewICNSCompiler(name string, timeout time.Duration) (ICNSCompiler, error) {
	switch strings.ToLower(name) {
	case "", CompilerIconutil:
		return NewIconutilCompiler(timeout), nil
	case CompilerNative:
		return &NativeCompiler{}, nil
	case CompilerAuto:
		return &autoCompiler{
			primary:  NewIconutilCompiler(timeout),
			fallback: &NativeCompiler{},
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown icns compiler %q", ErrInvalidArgument, name)
	}
}

// IconutilCompiler runs the macOS iconutil tool.
type IconutilCompiler struct {
	bin     string
	timeout time.Duration
}

func NewIconutilCompiler(timeout time.Duration) *IconutilCompiler {
	if timeout <= 0 {
		timeout = DefaultICNSTimeout
	}
	return &IconutilCompiler{
		bin:     "iconutil",
		timeout: timeout,
	}
}

func (c *IconutilCompiler) Name() string {
	return CompilerIconutil
}

// LookPath returns the resolved iconutil executable.
func (c *IconutilCompiler) LookPath() (string, error) {
	p, err := osexec.LookPath(c.bin)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrExternalToolUnavailable, c.bin, err)
	}
	return p, nil
}

func (c *IconutilCompiler) Compile(ctx context.Context, iconsetDir, out string) error {
	p, err := c.LookPath()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p, "-c", "icns", iconsetDir, "-o", out)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("%s timed out after %s: %w", c.bin, c.timeout, ctx.Err())
		}
		return fmt.Errorf("failed to run %s: %w\nstderr: %s", c.bin, err, stderr.String())
	}
	return nil
}

// NativeCompiler encodes the largest iconset entry in pure Go.
// It is a substitute the caller opts into; it never runs implicitly.
type NativeCompiler struct{}

func (c *NativeCompiler) Name() string {
	return CompilerNative
}

func (c *NativeCompiler) Compile(ctx context.Context, iconsetDir, out string) error {
	src, err := largestIconsetEntry(iconsetDir)
	if err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := icns.Encode(f, src); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode icns: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

type autoCompiler struct {
	primary  *IconutilCompiler
	fallback ICNSCompiler
}

func (c *autoCompiler) Name() string {
	if _, err := c.primary.LookPath(); err != nil {
		return c.fallback.Name()
	}
	return c.primary.Name()
}

func (c *autoCompiler) Compile(ctx context.Context, iconsetDir, out string) error {
	if _, err := c.primary.LookPath(); err != nil {
		return c.fallback.Compile(ctx, iconsetDir, out)
	}
	return c.primary.Compile(ctx, iconsetDir, out)
}

func largestIconsetEntry(dir string) (image.Image, error) {
	for i := len(iconsetEntries) - 1; i >= 0; i-- {
		p := filepath.Join(dir, iconsetEntries[i].name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		img, err := imaging.Open(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDecode, p, err)
		}
		return img, nil
	}
	return nil, fmt.Errorf("%w: no iconset entries in %s", ErrInvalidArgument, dir)
}

// hasICNSMagic reports whether r starts with the icns container magic.
func hasICNSMagic(r io.Reader) bool {
	b := make([]byte, len(icnsMagic))
	if _, err := io.ReadFull(r, b); err != nil {
		return false
	}
	return bytes.Equal(b, icnsMagic)
}
