package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"boxwright/internal/config"
	"boxwright/internal/observability"
	"boxwright/pkg/resource"
	"boxwright/pkg/text"
)

// app carries what PersistentPreRunE resolves for the subcommands.
type app struct {
	cfgFile   string
	width     int
	height    int
	noScripts bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "boxwright",
		Short:         "Lay out, paint and select text in HTML documents.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./boxwright.yaml)")
	flags.IntVar(&a.width, "width", 0, "viewport width in pixels (overrides viewport.width)")
	flags.IntVar(&a.height, "height", 0, "viewport height in pixels (overrides viewport.height)")
	flags.BoolVar(&a.noScripts, "no-scripts", false, "do not run inline scripts")

	root.AddCommand(newRenderCmd(a), newSelectCmd(a), newDumpCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "boxwright"})
		return err
	}
	if cmd.Flags().Changed("width") {
		cfg.Viewport.Width = a.width
	}
	if cmd.Flags().Changed("height") {
		cfg.Viewport.Height = a.height
	}
	if a.noScripts {
		cfg.Script.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	observability.InitializeLogger(cfg.Logger)
	a.cfg = cfg
	a.logger = observability.GetLogger()
	return nil
}

// load fetches and lays out the document at uri. The returned registry is
// the one layout measured with, for painting and hit testing.
func (a *app) load(ctx context.Context, uri string) (*resource.Page, *text.Registry, error) {
	fonts, err := text.NewRegistry(a.cfg.Fonts)
	if err != nil {
		return nil, nil, fmt.Errorf("loading fonts: %w", err)
	}
	page, err := resource.Load(ctx, resource.NewFetcher(""), uri, resource.Options{
		Width:         float64(a.cfg.Viewport.Width),
		Height:        float64(a.cfg.Viewport.Height),
		Fonts:         fonts,
		RunScripts:    a.cfg.Script.Enabled,
		ScriptTimeout: a.cfg.Script.Timeout,
		Logger:        a.logger,
	})
	if err != nil {
		return nil, nil, err
	}
	a.logger.Debug("page loaded",
		zap.String("url", page.URL),
		zap.Int("boxes", len(page.Tree.Boxes)),
		zap.Int("stylesheets", len(page.Doc.Stylesheets)))
	return page, fonts, nil
}
