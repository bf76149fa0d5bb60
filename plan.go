package iconset

import (
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/k1LoW/errors"
	"github.com/k1LoW/iconset/config"
	"github.com/k1LoW/iconset/template"
)

// Plan expands cfg into the list of IconSpecs of one run.
// Targets whose condition is false produce specs marked Skip.
func Plan(cfg *config.Config, source string) (_ []IconSpec, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	env := template.EnvironToMap()
	var specs []IconSpec
	for i, target := range cfg.Targets {
		if target.Root == "" {
			return nil, fmt.Errorf("%w: target %d has no root", ErrInvalidArgument, i)
		}
		store := map[string]any{
			"goos":   runtime.GOOS,
			"goarch": runtime.GOARCH,
			"source": source,
			"root":   target.Root,
			"env":    env,
		}
		ok, err := template.Eval(target.If, store)
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", target.Root, err)
		}
		for _, out := range target.Outputs {
			expanded, err := expandOutput(target.Root, out, env)
			if err != nil {
				return nil, fmt.Errorf("target %s: %w", target.Root, err)
			}
			for _, s := range expanded {
				s.Skip = !ok
				specs = append(specs, s)
			}
		}
	}
	if err := checkUniquePaths(specs); err != nil {
		return nil, err
	}
	return specs, nil
}

// expandOutput turns one configured output into one spec, or one per size of Each.
func expandOutput(root string, out config.Output, env map[string]string) ([]IconSpec, error) {
	if len(out.Each) == 0 {
		s, err := newSpec(root, out, out.Width, out.Height, env)
		if err != nil {
			return nil, err
		}
		return []IconSpec{s}, nil
	}
	specs := make([]IconSpec, 0, len(out.Each))
	for _, sz := range out.Each {
		s, err := newSpec(root, out, sz, sz, env)
		if err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	return specs, nil
}

func newSpec(root string, out config.Output, width, height int, env map[string]string) (IconSpec, error) {
	if out.Size > 0 {
		width, height = out.Size, out.Size
	}
	name, err := template.Expand(out.Name, map[string]any{
		"size":   width,
		"width":  width,
		"height": height,
		"env":    env,
	})
	if err != nil {
		return IconSpec{}, fmt.Errorf("output %q: %w", out.Name, err)
	}
	var format Format
	if out.Format != "" {
		format = Format(strings.ToLower(out.Format))
	} else {
		format, err = FormatFromName(name)
		if err != nil {
			return IconSpec{}, err
		}
	}
	s := IconSpec{
		Dir:    filepath.Clean(root),
		Name:   name,
		Width:  width,
		Height: height,
		Format: format,
	}
	switch format {
	case FormatICO:
		s.Sizes = slices.Clone(out.Sizes)
		if len(s.Sizes) == 0 {
			s.Sizes = slices.Clone(DefaultICOSizes)
		}
		largest := slices.Max(s.Sizes)
		s.Width, s.Height = largest, largest
	case FormatICNS:
		if s.Width == 0 && s.Height == 0 {
			s.Width, s.Height = icnsDimension, icnsDimension
		}
	}
	if err := s.Validate(); err != nil {
		return IconSpec{}, err
	}
	return s, nil
}
