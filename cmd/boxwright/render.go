package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"boxwright/pkg/render"
	"boxwright/pkg/resource"
	"boxwright/pkg/text"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		output  string
		scrollY float64
		full    bool
	)
	cmd := &cobra.Command{
		Use:   "render <file.html>",
		Short: "Paint a document to a PNG file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, fonts, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			r, err := a.painter(page, fonts, full)
			if err != nil {
				return err
			}
			r.SetOrigin(0, scrollY)
			r.Render(page.Tree, nil)
			if err := r.SavePNG(output); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			a.logger.Info("rendered", zap.String("output", output),
				zap.Int("width", r.Width()), zap.Int("height", r.Height()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "out.png", "output PNG file path")
	cmd.Flags().Float64Var(&scrollY, "scroll-y", 0, "page scroll offset in pixels")
	cmd.Flags().BoolVar(&full, "full", false, "size the image to the whole document instead of the viewport")
	return cmd
}

// painter builds a renderer sized to the viewport, or to the document
// when full is set.
func (a *app) painter(page *resource.Page, fonts *text.Registry, full bool) (*render.Renderer, error) {
	opts, err := a.cfg.Render.Options()
	if err != nil {
		return nil, err
	}
	w, h := a.cfg.Viewport.Width, a.cfg.Viewport.Height
	if full {
		_, ch := page.ContentSize()
		h = max(h, int(math.Ceil(ch)))
	}
	r := render.NewRenderer(w, h, fonts)
	r.SetOptions(opts)
	r.SetImages(page.Images)
	r.SetLogger(a.logger.Named("render"))
	return r, nil
}
