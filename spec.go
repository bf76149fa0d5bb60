package iconset

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatPNG  Format = "png"
	FormatICO  Format = "ico"
	FormatICNS Format = "icns"
)

const (
	// MaxDimension is the largest width or height accepted for a single image.
	MaxDimension = 16384
	// maxICOFrame is the largest frame the ICO directory can describe.
	maxICOFrame = 256
	// icnsDimension is the size of the largest iconset entry.
	icnsDimension = 1024
)

// DefaultICOSizes are the frames embedded when an ICO output does not list any.
var DefaultICOSizes = []int{16, 32, 48, 64, 128, 256}

// IconSpec describes one output file of a run.
type IconSpec struct {
	Dir    string
	Name   string
	Width  int
	Height int
	Format Format
	// Sizes lists the embedded frames of an ICO output.
	Sizes []int
	// Skip marks an output whose target condition evaluated to false.
	Skip bool
}

// Path returns the destination file path.
func (s IconSpec) Path() string {
	return filepath.Join(s.Dir, s.Name)
}

func (s IconSpec) String() string {
	switch s.Format {
	case FormatICO:
		sizes := make([]string, 0, len(s.Sizes))
		for _, sz := range s.Sizes {
			sizes = append(sizes, fmt.Sprintf("%d", sz))
		}
		return fmt.Sprintf("%s (%s, %s)", s.Path(), s.Format, strings.Join(sizes, "/"))
	default:
		return fmt.Sprintf("%s (%s, %dx%d)", s.Path(), s.Format, s.Width, s.Height)
	}
}

// Validate checks the dimensions and format of s.
func (s IconSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: output name is empty", ErrInvalidArgument)
	}
	switch s.Format {
	case FormatPNG, FormatICNS:
		return validateDimensions(s.Width, s.Height)
	case FormatICO:
		if len(s.Sizes) == 0 {
			return fmt.Errorf("%w: ico %s has no frame sizes", ErrInvalidArgument, s.Name)
		}
		seen := map[int]struct{}{}
		for _, sz := range s.Sizes {
			if sz <= 0 || sz > maxICOFrame {
				return fmt.Errorf("%w: ico frame %dx%d is outside 1..%d", ErrInvalidArgument, sz, sz, maxICOFrame)
			}
			if _, ok := seen[sz]; ok {
				return fmt.Errorf("%w: ico frame size %d is listed twice", ErrInvalidArgument, sz)
			}
			seen[sz] = struct{}{}
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, s.Format)
	}
}

// FormatFromName infers the output format from the file extension.
func FormatFromName(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return FormatPNG, nil
	case ".ico":
		return FormatICO, nil
	case ".icns":
		return FormatICNS, nil
	default:
		return "", fmt.Errorf("%w: cannot infer format of %q", ErrUnsupportedFormat, name)
	}
}

func validateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrInvalidArgument, width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("%w: dimensions %dx%d exceed %d", ErrInvalidArgument, width, height, MaxDimension)
	}
	return nil
}

// checkUniquePaths rejects a spec list that writes the same file twice.
func checkUniquePaths(specs []IconSpec) error {
	seen := map[string]struct{}{}
	for _, s := range specs {
		p := filepath.Clean(s.Path())
		if _, ok := seen[p]; ok {
			return fmt.Errorf("%w: output path %s is used more than once", ErrInvalidArgument, p)
		}
		seen[p] = struct{}{}
	}
	return nil
}
