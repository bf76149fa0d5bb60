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
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/k1LoW/iconset"
	"github.com/k1LoW/iconset/config"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check iconset environment and configuration",
	Long:  `Check iconset environment and configuration to ensure everything is set up correctly.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		green := color.New(color.FgGreen)
		red := color.New(color.FgRed)
		yellow := color.New(color.FgYellow)
		bold := color.New(color.Bold)

		allOK := true

		// 1. Check config
		cmd.Print("🔍 Checking config ... ")
		cfg, err := config.Load(configPath, profile)
		if err != nil {
			red.Println("✗ INVALID")
			cmd.Printf("   %v\n", err)
			return nil
		}
		if cfg.Path() == "" {
			green.Println("✓ OK")
			cmd.Println("   No config file found, using the built-in targets")
		} else {
			green.Println("✓ OK")
			cmd.Printf("   Config file: %s\n", cfg.Path())
		}
		if _, err := iconset.Plan(cfg, cfg.Source); err != nil {
			red.Println("   ✗ targets cannot be planned")
			cmd.Printf("   %v\n", err)
			allOK = false
		}

		// 2. Check source
		cmd.Print("🖼  Checking source ... ")
		src := cfg.Source
		if source != "" {
			src = source
		}
		switch {
		case src == "":
			yellow.Println("- NOT SET")
			cmd.Println("   Pass --source to generate or set source in the config file")
		default:
			g, err := iconset.New(iconset.WithSource(src), iconset.WithLogger(slog.New(slog.NewJSONHandler(tb, nil))))
			if err != nil {
				red.Println("✗ INVALID")
				cmd.Printf("   %v\n", err)
				allOK = false
				break
			}
			if _, err := g.Check(cmd.Context(), nil); err != nil {
				red.Println("✗ UNREADABLE")
				cmd.Printf("   %v\n", err)
				allOK = false
				break
			}
			green.Println("✓ OK")
			cmd.Printf("   Source: %s\n", src)
		}

		// 3. Check icns compiler
		cmd.Print("🍎 Checking icns compiler ... ")
		timeout, err := cfg.ICNSTimeout()
		if err != nil {
			red.Println("✗ INVALID TIMEOUT")
			cmd.Printf("   %v\n", err)
			allOK = false
		}
		compiler, err := iconset.NewICNSCompiler(cfg.ICNS.Compiler, timeout)
		if err != nil {
			red.Println("✗ INVALID")
			cmd.Printf("   %v\n", err)
			allOK = false
		} else if ic, ok := compiler.(*iconset.IconutilCompiler); ok {
			if p, err := ic.LookPath(); err != nil {
				yellow.Println("⚠ UNAVAILABLE")
				cmd.Println("   iconutil was not found; .icns outputs will be reported as unavailable")
				cmd.Println("   Set icns.compiler to native or auto to use the built-in encoder")
			} else {
				green.Println("✓ OK")
				cmd.Printf("   iconutil: %s\n", p)
			}
		} else {
			green.Println("✓ OK")
			cmd.Printf("   Compiler: %s\n", compiler.Name())
		}

		// 4. Check state directory
		cmd.Print("📁 Checking state directory ... ")
		dir := config.StateHomePath()
		if err := os.MkdirAll(dir, 0o700); err != nil {
			red.Println("✗ NOT WRITABLE")
			cmd.Printf("   %v\n", err)
			allOK = false
		} else {
			green.Println("✓ OK")
			cmd.Printf("   %s\n", dir)
		}

		cmd.Println()
		if allOK {
			bold.Println("🎉 All checks passed!")
		} else {
			bold.Println("Some checks failed. See the messages above.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().StringVarP(&source, "source", "s", "", "source image path or URL (overrides config)")
}
