// File: cmd/render.go
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/layoutcore/internal/browser/markup"
	"github.com/xkilldash9x/layoutcore/internal/browser/paint"
	"github.com/xkilldash9x/layoutcore/internal/config"
	"github.com/xkilldash9x/layoutcore/internal/observability"
	"github.com/xkilldash9x/layoutcore/internal/pipeline"
)

// newRenderCmd creates and configures the `render` command.
func newRenderCmd() *cobra.Command {
	renderCmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Lays out an HTML file and writes its display list",
		Long: `Lays out an HTML file (or stdin when FILE is "-") at the configured viewport
width and writes the resulting display list as JSON, SVG, PDF or plain text.
When the document cannot be laid out, an error page is rendered in its place
and the command exits with the layout error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}
			logger := observability.GetLogger()

			renderer, err := pipeline.NewFromConfig(cfg.Layout(), logger)
			if err != nil {
				return fmt.Errorf("failed to create renderer: %w", err)
			}
			defer renderer.Close()

			doc, err := loadDocument(cmd, renderer, args[0])
			if err != nil {
				return err
			}
			applyOutputExtension(cmd, cfg)

			res, layoutErr := renderer.RenderOrFallback(cmd.Context(), doc.Root, cfg.Layout().ViewportWidth)
			if res == nil {
				return layoutErr
			}
			if layoutErr != nil {
				logger.Warn("Rendering fallback page", zap.Error(layoutErr))
			}

			if err := writeDisplayList(cmd, cfg, res.Display); err != nil {
				return err
			}
			return layoutErr
		},
	}

	addLayoutFlags(renderCmd)
	renderCmd.Flags().StringP("format", "f", "json", "output format: json, svg, text or pdf")
	renderCmd.Flags().Bool("pretty", false, "indent JSON and SVG output")
	renderCmd.Flags().StringP("output", "o", "", `output file ("-" or empty for stdout)`)
	return renderCmd
}

// addLayoutFlags registers the flags that override the layout section.
func addLayoutFlags(cmd *cobra.Command) {
	cmd.Flags().Float64P("width", "w", 800, "viewport width in pixels")
	cmd.Flags().String("font-provider", config.FontProviderCore, "text metrics: core or opentype")
	cmd.Flags().String("font", "helvetica", "core font family: helvetica, times or courier")
	cmd.Flags().Bool("break-long-runs", false, "split words wider than a whole line")
	cmd.Flags().String("stylesheet", "", "user CSS file layered over the built-in rules")
}

// loadDocument parses an HTML file, or stdin for "-", with the renderer's
// stylesheets deciding how source whitespace is trimmed.
func loadDocument(cmd *cobra.Command, renderer *pipeline.Renderer, path string) (*markup.Document, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open document: %w", err)
		}
		defer f.Close()
		r = f
	}
	doc, err := renderer.Engine().Load(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return doc, nil
}

// openOutput returns the configured destination and a function to close it.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// applyOutputExtension lets "-o page.svg" select the svg format unless
// --format was given explicitly.
func applyOutputExtension(cmd *cobra.Command, cfg config.Interface) {
	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		return
	}
	ext := strings.TrimPrefix(filepath.Ext(cfg.Output().Path), ".")
	if ext == "" {
		return
	}
	if format, err := paint.ParseFormat(ext); err == nil {
		cfg.SetOutputFormat(string(format))
	}
}

func writeDisplayList(cmd *cobra.Command, cfg config.Interface, list paint.DisplayList) error {
	format, err := paint.ParseFormat(cfg.Output().Format)
	if err != nil {
		return err
	}
	w, closeOut, err := openOutput(cmd, cfg.Output().Path)
	if err != nil {
		return err
	}
	encErr := paint.Encode(w, format, list, paint.EncodeOptions{
		Pretty:     cfg.Output().Pretty,
		FontFamily: cfg.Layout().FontFamily,
	})
	if err := closeOut(); err != nil && encErr == nil {
		encErr = err
	}
	if encErr != nil {
		return fmt.Errorf("failed to write %s output: %w", format, encErr)
	}
	return nil
}
