package iconset

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/disintegration/imaging"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/k1LoW/errors"
)

// Generator renders one source image into a set of icon files.
type Generator struct {
	source      string
	filterName  string
	filter      imaging.ResampleFilter
	concurrency int
	compiler    ICNSCompiler
	httpClient  *retryablehttp.Client
	logger      *slog.Logger
}

type Option func(*Generator) error

// WithSource sets the source image as a local path or an http(s) URL.
func WithSource(pathOrURL string) Option {
	return func(g *Generator) error {
		g.source = pathOrURL
		return nil
	}
}

// WithFilter sets the resampling filter by name (lanczos, catmullrom, linear, box, nearest).
func WithFilter(name string) Option {
	return func(g *Generator) error {
		f, err := ParseFilter(name)
		if err != nil {
			return err
		}
		if name == "" {
			name = DefaultFilter
		}
		g.filterName = name
		g.filter = f
		return nil
	}
}

// WithConcurrency sets how many outputs are processed at once. Values below 1 mean sequential.
func WithConcurrency(n int) Option {
	return func(g *Generator) error {
		if n < 1 {
			n = 1
		}
		g.concurrency = n
		return nil
	}
}

// WithICNSCompiler sets the compiler used for .icns outputs.
func WithICNSCompiler(c ICNSCompiler) Option {
	return func(g *Generator) error {
		if c == nil {
			return fmt.Errorf("%w: icns compiler is nil", ErrInvalidArgument)
		}
		g.compiler = c
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) error {
		g.logger = logger
		return nil
	}
}

// New creates a Generator.
func New(opts ...Option) (_ *Generator, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	g := &Generator{
		filterName:  DefaultFilter,
		filter:      imaging.Lanczos,
		concurrency: 1,
		compiler:    NewIconutilCompiler(DefaultICNSTimeout),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	if g.source == "" {
		return nil, fmt.Errorf("%w: source is required", ErrInvalidArgument)
	}
	g.httpClient = newHTTPClient(g.logger)
	return g, nil
}

// Source returns the configured source image location.
func (g *Generator) Source() string {
	return g.source
}
