package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/k1LoW/expand"
)

var (
	homePath       string
	configHomePath string
	stateHomePath  string
)

type Config struct {
	// Source image path or http(s) URL
	Source string `yaml:"source,omitempty" json:"source,omitempty"`
	// Resampling filter name
	Filter string `yaml:"filter,omitempty" json:"filter,omitempty"`
	// Number of outputs processed at once
	Concurrency int      `yaml:"concurrency,omitempty" json:"concurrency,omitempty"`
	ICNS        ICNS     `yaml:"icns,omitempty" json:"icns,omitempty"`
	Targets     []Target `yaml:"targets" json:"targets"`

	// path of the file the config was read from, empty for the built-in default
	path string
}

type ICNS struct {
	Compiler string `yaml:"compiler,omitempty" json:"compiler,omitempty"` // iconutil | native | auto
	Timeout  string `yaml:"timeout,omitempty" json:"timeout,omitempty"`   // e.g. 30s
}

// Target is a destination root and the outputs written below it.
type Target struct {
	Root    string   `yaml:"root" json:"root"`
	If      string   `yaml:"if,omitempty" json:"if,omitempty"` // CEL condition
	Outputs []Output `yaml:"outputs" json:"outputs"`
}

type Output struct {
	Name   string `yaml:"name" json:"name"` // may contain {{size}}, {{width}}, {{height}}
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
	Size   int    `yaml:"size,omitempty" json:"size,omitempty"`
	Width  int    `yaml:"width,omitempty" json:"width,omitempty"`
	Height int    `yaml:"height,omitempty" json:"height,omitempty"`
	Sizes  []int  `yaml:"sizes,omitempty" json:"sizes,omitempty"` // ico frames
	Each   []int  `yaml:"each,omitempty" json:"each,omitempty"`   // one square output per size
}

func init() {
	var err error
	homePath, err = os.UserHomeDir()
	if err != nil {
		panic(fmt.Sprintf("failed to get home directory: %v", err))
	}
}

// Load loads the configuration.
// It searches for config files in the following order:
// 1. explicitPath, if not empty
// 2. $XDG_CONFIG_HOME/iconset/config-{profile}.yml
// 3. $XDG_CONFIG_HOME/iconset/config.yml
// If no config file is found, it returns the built-in default.
func Load(explicitPath, profile string) (*Config, error) {
	if explicitPath != "" {
		b, err := os.ReadFile(explicitPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return parse(explicitPath, b)
	}
	var configBasePaths []string
	if profile != "" {
		configBasePaths = append(configBasePaths, filepath.Join(configPath(), fmt.Sprintf("config-%s", profile)))
	}
	configBasePaths = append(configBasePaths, filepath.Join(configPath(), "config"))
	for _, basePath := range configBasePaths {
		for _, ext := range []string{".yml", ".yaml"} {
			p := basePath + ext
			if b, err := os.ReadFile(p); err == nil {
				return parse(p, b)
			}
		}
	}
	return Default(), nil
}

func parse(path string, b []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(expand.ExpandenvYAMLBytes(b), cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("config %s has no targets", path)
	}
	cfg.path = path
	return cfg, nil
}

// Path returns the file the config was loaded from, or "" for the built-in default.
func (c *Config) Path() string {
	return c.path
}

// ICNSTimeout returns the configured bound on the icns compiler, or zero when unset.
func (c *Config) ICNSTimeout() (time.Duration, error) {
	if c.ICNS.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.ICNS.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid icns timeout %q: %w", c.ICNS.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid icns timeout %q: must be positive", c.ICNS.Timeout)
	}
	return d, nil
}

// configPath returns the path to the configuration directory.
func configPath() string {
	if configHomePath != "" {
		return configHomePath
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		configHomePath = filepath.Join(v, "iconset")
	} else {
		configHomePath = filepath.Join(homePath, ".config", "iconset")
	}
	return configHomePath
}

func StateHomePath() string {
	if stateHomePath != "" {
		return stateHomePath
	}
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		stateHomePath = filepath.Join(v, "iconset")
	} else {
		stateHomePath = filepath.Join(homePath, ".local", "state", "iconset")
	}
	return stateHomePath
}
