package iconset

import (
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

// DefaultFilter is the resampling filter used when none is configured.
const DefaultFilter = "lanczos"

var filters = map[string]imaging.ResampleFilter{
	"lanczos":    imaging.Lanczos,
	"catmullrom": imaging.CatmullRom,
	"linear":     imaging.Linear,
	"box":        imaging.Box,
	"nearest":    imaging.NearestNeighbor,
}

// ParseFilter returns the resampling filter registered under name.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	if name == "" {
		name = DefaultFilter
	}
	f, ok := filters[strings.ToLower(name)]
	if !ok {
		names := make([]string, 0, len(filters))
		for n := range filters {
			names = append(names, n)
		}
		sort.Strings(names)
		return imaging.ResampleFilter{}, fmt.Errorf("%w: unknown filter %q (available: %s)", ErrInvalidArgument, name, strings.Join(names, ", "))
	}
	return f, nil
}

// Resize resamples src to exactly width x height pixels.
// The aspect ratio is not preserved: nothing is cropped or letterboxed.
func Resize(src image.Image, width, height int, filter imaging.ResampleFilter) (*image.NRGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: source image is nil", ErrDecode)
	}
	if err := validateDimensions(width, height); err != nil {
		return nil, err
	}
	if b := src.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: source image is empty", ErrDecode)
	}
	return imaging.Resize(src, width, height, filter), nil
}
