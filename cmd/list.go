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
	"io"
	"strings"
	"text/tabwriter"

	"github.com/k1LoW/iconset"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list the icon files that generate would write",
	Long:  `list the icon files that generate would write.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		specs, _, _, err := plan()
		if err != nil {
			return err
		}
		return renderPlan(cmd.OutOrStdout(), specs)
	},
}

func renderPlan(w io.Writer, specs []iconset.IconSpec) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PATH\tFORMAT\tSIZE\t")
	for _, s := range specs {
		size := fmt.Sprintf("%dx%d", s.Width, s.Height)
		if s.Format == iconset.FormatICO {
			sizes := make([]string, 0, len(s.Sizes))
			for _, sz := range s.Sizes {
				sizes = append(sizes, fmt.Sprintf("%d", sz))
			}
			size = strings.Join(sizes, ",")
		}
		if s.Skip {
			size += " (skipped)"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t\n", s.Path(), s.Format, size)
	}
	return tw.Flush()
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&source, "source", "s", "", "source image path or URL (overrides config)")
}
