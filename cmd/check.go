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

	"github.com/fatih/color"
	"github.com/k1LoW/iconset"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "check that existing icon files are up to date",
	Long:  `check that existing icon files exist, have the expected dimensions and were rendered from the current source.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewJSONHandler(tb, nil))
		g, specs, _, err := setup(logger)
		if err != nil {
			return err
		}
		results, err := g.Check(cmd.Context(), specs)
		if err != nil {
			return err
		}
		var ng int
		for _, r := range results {
			switch r.Status {
			case iconset.CheckOK:
				cmd.Printf("%s %s\n", color.GreenString("ok      "), r.Spec.Path())
			case iconset.CheckSkipped:
				cmd.Printf("%s %s\n", color.HiBlackString("skipped "), r.Spec.Path())
			default:
				ng++
				cmd.Printf("%s %s (%s)\n", color.RedString("%-8s", r.Status), r.Spec.Path(), r.Detail)
			}
		}
		if ng > 0 {
			return fmt.Errorf("%d icons are not up to date. Run `iconset generate`", ng)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&source, "source", "s", "", "source image path or URL (overrides config)")
}
