/*
Copyright © 2025 Ken'ichiro Oyama <k1lowxb@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/k1LoW/iconset"
	"github.com/k1LoW/iconset/config"
)

var source string

// plan loads the configuration and expands it into the planned outputs.
// The source may be empty; it is only exposed to target conditions.
func plan() ([]iconset.IconSpec, *config.Config, string, error) {
	cfg, err := config.Load(configPath, profile)
	if err != nil {
		return nil, nil, "", err
	}
	src := cfg.Source
	if source != "" {
		src = source
	}
	specs, err := iconset.Plan(cfg, src)
	if err != nil {
		return nil, nil, "", err
	}
	return specs, cfg, src, nil
}

// setup loads the configuration and builds the generator and the planned outputs.
func setup(logger *slog.Logger) (*iconset.Generator, []iconset.IconSpec, *config.Config, error) {
	specs, cfg, src, err := plan()
	if err != nil {
		return nil, nil, nil, err
	}
	if src == "" {
		return nil, nil, nil, fmt.Errorf("source image is required. Use --source or set source in the config file")
	}
	timeout, err := cfg.ICNSTimeout()
	if err != nil {
		return nil, nil, nil, err
	}
	compiler, err := iconset.NewICNSCompiler(cfg.ICNS.Compiler, timeout)
	if err != nil {
		return nil, nil, nil, err
	}
	g, err := iconset.New(
		iconset.WithSource(src),
		iconset.WithFilter(cfg.Filter),
		iconset.WithConcurrency(cfg.Concurrency),
		iconset.WithICNSCompiler(compiler),
		iconset.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, nil, err
	}
	return g, specs, cfg, nil
}
