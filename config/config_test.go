package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		profile    string
		files      map[string]string
		wantSource string
		wantRoots  []string
	}{
		{
			name: "config.yml",
			files: map[string]string{
				"config.yml": `
source: /tmp/app.ico
targets:
  - root: out
    outputs:
      - name: 32x32.png
        size: 32
`,
			},
			wantSource: "/tmp/app.ico",
			wantRoots:  []string{"out"},
		},
		{
			name: "config.yaml extension",
			files: map[string]string{
				"config.yaml": `
source: /tmp/yaml.ico
targets:
  - root: web
    outputs:
      - name: favicon.ico
        sizes: [16, 32]
`,
			},
			wantSource: "/tmp/yaml.ico",
			wantRoots:  []string{"web"},
		},
		{
			name:    "profile takes precedence",
			profile: "web",
			files: map[string]string{
				"config.yml": `
source: /tmp/default.ico
targets:
  - root: default
    outputs:
      - name: a.png
        size: 16
`,
				"config-web.yml": `
source: /tmp/web.ico
targets:
  - root: public
    outputs:
      - name: a.png
        size: 16
`,
			},
			wantSource: "/tmp/web.ico",
			wantRoots:  []string{"public"},
		},
		{
			name:      "no config file falls back to the default",
			files:     map[string]string{},
			wantRoots: []string{"src-tauri/icons", "public"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			t.Setenv("XDG_CONFIG_HOME", tmpDir)
			configHomePath = ""
			t.Cleanup(func() { configHomePath = "" })

			dir := filepath.Join(tmpDir, "iconset")
			if err := os.MkdirAll(dir, 0755); err != nil {
				t.Fatalf("Failed to create config directory: %v", err)
			}
			for name, content := range tt.files {
				if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
					t.Fatalf("Failed to write config file: %v", err)
				}
			}

			cfg, err := Load("", tt.profile)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Source != tt.wantSource {
				t.Errorf("Source = %q, want %q", cfg.Source, tt.wantSource)
			}
			var roots []string
			for _, target := range cfg.Targets {
				roots = append(roots, target.Root)
			}
			if diff := cmp.Diff(tt.wantRoots, roots); diff != "" {
				t.Errorf("roots mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadExplicitPath(t *testing.T) {
	t.Setenv("ICONSET_TEST_HOME", "/home/icons")
	p := filepath.Join(t.TempDir(), "iconset.yml")
	content := `
source: ${ICONSET_TEST_HOME}/app.ico
filter: catmullrom
concurrency: 4
icns:
  compiler: native
  timeout: 5s
targets:
  - root: ${ICONSET_TEST_HOME}/out
    if: goos == "darwin"
    outputs:
      - name: "{{size}}x{{size}}.png"
        each: [16, 32]
      - name: wide.png
        width: 310
        height: 150
      - name: icon.ico
        sizes: [16, 32, 256]
`
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(p, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := &Config{
		Source:      "/home/icons/app.ico",
		Filter:      "catmullrom",
		Concurrency: 4,
		ICNS:        ICNS{Compiler: "native", Timeout: "5s"},
		Targets: []Target{
			{
				Root: "/home/icons/out",
				If:   `goos == "darwin"`,
				Outputs: []Output{
					{Name: "{{size}}x{{size}}.png", Each: []int{16, 32}},
					{Name: "wide.png", Width: 310, Height: 150},
					{Name: "icon.ico", Sizes: []int{16, 32, 256}},
				},
			},
		},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if got.Path() != p {
		t.Errorf("Path() = %q, want %q", got.Path(), p)
	}
	timeout, err := got.ICNSTimeout()
	if err != nil {
		t.Fatal(err)
	}
	if timeout != 5*time.Second {
		t.Errorf("ICNSTimeout() = %v, want %v", timeout, 5*time.Second)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no targets", "source: a.ico\n"},
		{"broken yaml", "targets: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "config.yml")
			if err := os.WriteFile(p, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(p, ""); err == nil {
				t.Error("Load() expected error but got none")
			}
		})
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml"), ""); err == nil {
		t.Error("Load() expected error for a missing explicit path")
	}
}

func TestICNSTimeout(t *testing.T) {
	tests := []struct {
		timeout string
		want    time.Duration
		wantErr bool
	}{
		{"", 0, false},
		{"45s", 45 * time.Second, false},
		{"1m", time.Minute, false},
		{"-1s", 0, true},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.timeout, func(t *testing.T) {
			c := &Config{ICNS: ICNS{Timeout: tt.timeout}}
			got, err := c.ICNSTimeout()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ICNSTimeout() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ICNSTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}
