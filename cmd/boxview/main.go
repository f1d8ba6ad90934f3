// Command boxview opens documents in a desktop window with mouse and
// keyboard text selection.
package main

import (
	"context"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"boxwright/internal/config"
	"boxwright/internal/observability"
	"boxwright/pkg/render"
	"boxwright/pkg/resource"
	"boxwright/pkg/text"
)

func main() {
	var cfgFile string
	cmd := &cobra.Command{
		Use:           "boxview [file-or-url]",
		Short:         "Open a document in a window.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			observability.InitializeLogger(cfg.Logger)
			defer observability.Sync()

			start := ""
			if len(args) == 1 {
				start = args[0]
			}
			run(cmd.Context(), cfg, observability.GetLogger(), start)
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./boxwright.yaml)")

	if err := cmd.Execute(); err != nil {
		observability.GetLogger().Error("boxview failed", zap.Error(err))
		observability.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, start string) {
	a := app.NewWithID("boxwright.boxview")
	w := a.NewWindow("boxview")
	w.Resize(fyne.NewSize(float32(cfg.Viewport.Width), float32(cfg.Viewport.Height)))

	fonts, err := text.NewRegistry(cfg.Fonts)
	if err != nil {
		logger.Warn("font configuration rejected, using bundled fonts", zap.Error(err))
		fonts = text.DefaultRegistry()
	}
	opts, err := cfg.Render.Options()
	if err != nil {
		logger.Warn("render options rejected, using defaults", zap.Error(err))
		opts = render.DefaultOptions()
	}

	status := widget.NewLabel("Enter a file path or URL and press Enter")
	entry := widget.NewEntry()
	entry.SetPlaceHolder("file.html or https://example.com")
	content := container.NewBorder(entry, status, nil, nil, widget.NewLabel(""))
	w.SetContent(content)

	open := func(uri string) {
		status.SetText("Loading " + uri + "...")
		go func() {
			page, err := resource.Load(ctx, resource.NewFetcher(""), uri, resource.Options{
				Width:         float64(cfg.Viewport.Width),
				Height:        float64(cfg.Viewport.Height),
				Fonts:         fonts,
				RunScripts:    cfg.Script.Enabled,
				ScriptTimeout: cfg.Script.Timeout,
				Logger:        logger,
			})
			fyne.Do(func() {
				if err != nil {
					logger.Warn("load failed", zap.String("uri", uri), zap.Error(err))
					status.SetText("Error: " + err.Error())
					return
				}
				view := newPageView(page, fonts, opts, cfg.Viewer, logger)
				view.OnCopy = a.Clipboard().SetContent
				w.SetContent(container.NewBorder(entry, status, nil, nil, view))
				w.Canvas().Focus(view)
				status.SetText(page.URL)
				w.SetTitle("boxview - " + page.URL)
			})
		}()
	}
	entry.OnSubmitted = open
	if start != "" {
		entry.SetText(start)
		open(start)
	} else {
		w.Canvas().Focus(entry)
	}

	w.ShowAndRun()
}
