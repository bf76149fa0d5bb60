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
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/k1LoW/iconset"
	"github.com/spf13/cobra"
)

var (
	watch   bool
	verbose bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "generate icon files from the source image",
	Long:  `generate icon files from the source image.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger, stop, err := newLogger(verbose)
		if err != nil {
			return err
		}
		defer stop()
		g, specs, _, err := setup(logger)
		if err != nil {
			return err
		}
		if watch {
			ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
			defer cancel()
			cmd.Printf("Watching %s (Ctrl-C to stop)\n", g.Source())
			return g.Watch(ctx, specs, func(r *iconset.Report) {
				printReport(cmd, r)
			})
		}
		report, err := g.Generate(ctx, specs)
		if err != nil {
			return err
		}
		printReport(cmd, report)
		if !report.OK() {
			return fmt.Errorf("%d of %d icons failed", len(report.Failed()), len(report.Results))
		}
		return nil
	},
}

func printReport(cmd *cobra.Command, r *iconset.Report) {
	for _, res := range r.Unavailable() {
		cmd.Println(color.YellowString("WARNING: %s was not generated: %v", res.Spec.Path(), res.Err))
		cmd.Println(color.YellowString("         Set icns.compiler to native or auto to use the built-in encoder."))
	}
	for _, res := range r.Failed() {
		cmd.Println(color.RedString("ERROR: %s: %v", res.Spec.Path(), res.Err))
	}
	var skipped int
	for _, res := range r.Results {
		if res.Status == iconset.StatusSkipped {
			skipped++
		}
	}
	cmd.Printf("%d written, %d failed, %d unavailable, %d skipped\n",
		len(r.Written()), len(r.Failed()), len(r.Unavailable()), skipped)
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&source, "source", "s", "", "source image path or URL (overrides config)")
	generateCmd.Flags().BoolVarP(&watch, "watch", "w", false, "regenerate when the source changes")
	generateCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print logs instead of progress marks")
}
