package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"boxwright/pkg/selection"
)

type point struct{ x, y float64 }

// parsePoint reads "x,y".
func parsePoint(s string) (point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return point{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return point{x, y}, nil
}

func newSelectCmd(a *app) *cobra.Command {
	var (
		from, to string
		clicks   int
		all      bool
		output   string
	)
	cmd := &cobra.Command{
		Use:   "select <file.html>",
		Short: "Press at --from, drag to --to and print the selected text.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && from == "" {
				return fmt.Errorf("one of --from or --all is required")
			}
			if clicks < 1 || clicks > 3 {
				return fmt.Errorf("--clicks must be 1, 2 or 3")
			}
			page, fonts, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			ctl := selection.NewController(page.Tree, fonts)
			ctl.SetLogger(a.logger.Named("selection"))
			if all {
				ctl.SelectAll()
			} else {
				start, err := parsePoint(from)
				if err != nil {
					return err
				}
				ctl.Press(start.x, start.y, clicks, false)
				if to != "" {
					end, err := parsePoint(to)
					if err != nil {
						return err
					}
					ctl.Drag(end.x, end.y)
				}
				ctl.Release()
			}

			fmt.Fprintln(cmd.OutOrStdout(), ctl.Text())

			if output != "" {
				r, err := a.painter(page, fonts, false)
				if err != nil {
					return err
				}
				r.Render(page.Tree, ctl)
				if err := r.SavePNG(output); err != nil {
					return fmt.Errorf("writing %s: %w", output, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "press point x,y")
	cmd.Flags().StringVar(&to, "to", "", "drag end point x,y")
	cmd.Flags().IntVar(&clicks, "clicks", 1, "click count of the press (2 selects a word, 3 a block)")
	cmd.Flags().BoolVar(&all, "all", false, "select the whole document")
	cmd.Flags().StringVarP(&output, "output", "o", "", "also paint the page with the selection to this PNG")
	return cmd
}
