package iconset

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/k1LoW/iconset/config"
)

func TestPlanDefault(t *testing.T) {
	specs, err := Plan(config.Default(), "app.ico")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(specs), 28; got != want {
		t.Errorf("len(specs) = %d, want %d", got, want)
	}
	byPath := map[string]IconSpec{}
	for _, s := range specs {
		if s.Skip {
			t.Errorf("%s is skipped", s.Path())
		}
		byPath[s.Path()] = s
	}
	tests := []struct {
		path   string
		format Format
		width  int
		sizes  []int
	}{
		{"src-tauri/icons/32x32.png", FormatPNG, 32, nil},
		{"src-tauri/icons/128x128@2x.png", FormatPNG, 256, nil},
		{"src-tauri/icons/Square310x310Logo.png", FormatPNG, 310, nil},
		{"src-tauri/icons/StoreLogo.png", FormatPNG, 50, nil},
		{"src-tauri/icons/icon.ico", FormatICO, 256, []int{16, 32, 48, 64, 128, 256}},
		{"src-tauri/icons/icon.icns", FormatICNS, 1024, nil},
		{"public/favicon.ico", FormatICO, 48, []int{16, 32, 48}},
		{"public/logo512.png", FormatPNG, 512, nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			s, ok := byPath[filepath.FromSlash(tt.path)]
			if !ok {
				t.Fatalf("%s is not planned", tt.path)
			}
			if s.Format != tt.format || s.Width != tt.width || s.Height != tt.width {
				t.Errorf("got %s %dx%d, want %s %dx%d", s.Format, s.Width, s.Height, tt.format, tt.width, tt.width)
			}
			if diff := cmp.Diff(tt.sizes, s.Sizes); diff != "" {
				t.Errorf("sizes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlanConditions(t *testing.T) {
	t.Setenv("ICONSET_TARGET", "web")
	cfg := &config.Config{
		Targets: []config.Target{
			{
				Root: "never",
				If:   `goos == "plan9-never"`,
				Outputs: []config.Output{
					{Name: "a.png", Size: 16},
				},
			},
			{
				Root: "web",
				If:   `"ICONSET_TARGET" in env && env.ICONSET_TARGET == "web"`,
				Outputs: []config.Output{
					{Name: "icon-{{size}}.png", Each: []int{16, 32}},
					{Name: "banner.png", Width: 310, Height: 150},
					{Name: "favicon", Format: "ico", Sizes: []int{16}},
				},
			},
		},
	}
	specs, err := Plan(cfg, "app.ico")
	if err != nil {
		t.Fatal(err)
	}
	want := []IconSpec{
		{Dir: "never", Name: "a.png", Width: 16, Height: 16, Format: FormatPNG, Skip: true},
		{Dir: "web", Name: "icon-16.png", Width: 16, Height: 16, Format: FormatPNG},
		{Dir: "web", Name: "icon-32.png", Width: 32, Height: 32, Format: FormatPNG},
		{Dir: "web", Name: "banner.png", Width: 310, Height: 150, Format: FormatPNG},
		{Dir: "web", Name: "favicon", Width: 16, Height: 16, Format: FormatICO, Sizes: []int{16}},
	}
	if diff := cmp.Diff(want, specs); diff != "" {
		t.Errorf("Plan() mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanErrors(t *testing.T) {
	tests := []struct {
		name    string
		target  config.Target
		wantErr error
	}{
		{
			name:    "unknown extension",
			target:  config.Target{Root: "out", Outputs: []config.Output{{Name: "icon.svg", Size: 16}}},
			wantErr: ErrUnsupportedFormat,
		},
		{
			name:    "missing size",
			target:  config.Target{Root: "out", Outputs: []config.Output{{Name: "icon.png"}}},
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "duplicate names",
			target:  config.Target{Root: "out", Outputs: []config.Output{{Name: "{{size > 0 ? 'a' : 'b'}}.png", Each: []int{16, 32}}}},
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "no root",
			target:  config.Target{Outputs: []config.Output{{Name: "a.png", Size: 16}}},
			wantErr: ErrInvalidArgument,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Plan(&config.Config{Targets: []config.Target{tt.target}}, "app.ico")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Plan() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	_, err := Plan(&config.Config{Targets: []config.Target{{Root: "out", If: "1 + 1"}}}, "app.ico")
	if err == nil {
		t.Error("Plan() expected error for a non-boolean condition")
	}
}

func TestPlanFormatIgnoresCase(t *testing.T) {
	cfg := &config.Config{
		Targets: []config.Target{
			{
				Root: "out",
				Outputs: []config.Output{
					{Name: "app-icon", Format: "PNG", Size: 64},
					{Name: "favicon", Format: "Ico", Sizes: []int{16, 32}},
					{Name: "bundle", Format: "ICNS"},
				},
			},
		},
	}
	specs, err := Plan(cfg, "")
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	want := []Format{FormatPNG, FormatICO, FormatICNS}
	var got []Format
	for _, s := range specs {
		got = append(got, s.Format)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("formats mismatch (-want +got):\n%s", diff)
	}
}
