package config

// Default returns the built-in table: desktop app icons (including Windows
// Store logos and the macOS bundle icon) under src-tauri/icons and web app
// icons under public.
func Default() *Config {
	return &Config{
		Filter: "lanczos",
		ICNS: ICNS{
			Compiler: "iconutil",
			Timeout:  "30s",
		},
		Targets: []Target{
			{
				Root: "src-tauri/icons",
				Outputs: []Output{
					{Name: "{{size}}x{{size}}.png", Each: []int{16, 32, 64, 128, 192, 256, 512}},
					{Name: "128x128@2x.png", Size: 256},
					{Name: "icon.png", Size: 256},
					{Name: "logo192.png", Size: 192},
					{Name: "logo512.png", Size: 512},
					{Name: "Square{{size}}x{{size}}Logo.png", Each: []int{30, 44, 71, 89, 107, 142, 150, 284, 310}},
					{Name: "StoreLogo.png", Size: 50},
					{Name: "icon.ico", Sizes: []int{16, 32, 48, 64, 128, 256}},
					{Name: "icon.icns"},
				},
			},
			{
				Root: "public",
				Outputs: []Output{
					{Name: "favicon.ico", Sizes: []int{16, 32, 48}},
					{Name: "icon.png", Size: 256},
					{Name: "logo.png", Size: 256},
					{Name: "logo192.png", Size: 192},
					{Name: "logo512.png", Size: 512},
				},
			},
		},
	}
}
