package iconset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/k1LoW/iconset/version"
	ico "github.com/sergeymakinen/go-ico"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var userAgent = "iconset/" + version.Version + " (+https://github.com/k1LoW/iconset)"

var _ retryablehttp.LeveledLogger = (*slog.Logger)(nil)

func newHTTPClient(logger *slog.Logger) *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.Logger = logger
	c.RetryMax = 3
	c.RetryWaitMin = 500 * time.Millisecond
	c.RetryWaitMax = 5 * time.Second
	c.HTTPClient.Timeout = 30 * time.Second
	return c
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// loadSource reads and decodes the configured source image.
func (g *Generator) loadSource(ctx context.Context) (image.Image, error) {
	var (
		b   []byte
		err error
	)
	if isURL(g.source) {
		b, err = g.fetch(ctx, g.source)
	} else {
		b, err = os.ReadFile(g.source)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, g.source)
		}
		if err != nil {
			err = fmt.Errorf("failed to read source %s: %w", g.source, err)
		}
	}
	if err != nil {
		return nil, err
	}
	img, err := DecodeSource(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", g.source, err)
	}
	return img, nil
}

func (g *Generator) fetch(ctx context.Context, u string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source %s: %w", u, err)
	}
	req.Header.Set("User-Agent", userAgent)
	res, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source %s: %w", u, err)
	}
	defer res.Body.Close()
	switch {
	case res.StatusCode == http.StatusNotFound || res.StatusCode == http.StatusGone:
		return nil, fmt.Errorf("%w: %s (status code %d)", ErrSourceNotFound, u, res.StatusCode)
	case res.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("failed to fetch source %s: status code %d", u, res.StatusCode)
	}
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read source %s: %w", u, err)
	}
	return b, nil
}

// DecodeSource decodes an ICO, PNG, JPEG, GIF, BMP or WebP image.
// For ICO data the largest frame is used.
func DecodeSource(r io.Reader) (image.Image, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if isICO(b) {
		return decodeICO(b)
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img, nil
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// decodeICO returns the largest frame of an ICO container.
// PNG frames are decoded directly; BMP frames go through go-ico.
func decodeICO(b []byte) (image.Image, error) {
	entries, err := ReadICODirectory(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: ico has no frames", ErrDecode)
	}
	largest := entries[0]
	for _, e := range entries[1:] {
		if e.Width*e.Height > largest.Width*largest.Height {
			largest = e
		}
	}
	start, end := uint64(largest.Offset), uint64(largest.Offset)+uint64(largest.Size)
	if end > uint64(len(b)) {
		return nil, fmt.Errorf("%w: ico frame %dx%d is truncated", ErrDecode, largest.Width, largest.Height)
	}
	if frame := b[start:end]; bytes.HasPrefix(frame, pngMagic) {
		img, err := png.Decode(bytes.NewReader(frame))
		if err != nil {
			return nil, fmt.Errorf("%w: ico frame %dx%d: %w", ErrDecode, largest.Width, largest.Height, err)
		}
		return img, nil
	}
	img, err := ico.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: ico: %w", ErrDecode, err)
	}
	return img, nil
}
