// File: cmd/sweep.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/layoutcore/internal/observability"
	"github.com/xkilldash9x/layoutcore/internal/pipeline"
)

// sweepSummary describes one pass of a width sweep.
type sweepSummary struct {
	PassID   string  `json:"pass_id"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Commands int     `json:"commands"`
	Regions  int     `json:"regions"`
}

// newSweepCmd creates the `sweep` command, which lays a document out at
// several widths concurrently.
func newSweepCmd() *cobra.Command {
	sweepCmd := &cobra.Command{
		Use:   "sweep FILE --widths W1,W2,...",
		Short: "Lays an HTML file out at several viewport widths",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}
			widths, _ := cmd.Flags().GetFloat64Slice("widths")
			if len(widths) == 0 {
				return fmt.Errorf("at least one width is required")
			}

			renderer, err := pipeline.NewFromConfig(cfg.Layout(), observability.GetLogger())
			if err != nil {
				return fmt.Errorf("failed to create renderer: %w", err)
			}
			defer renderer.Close()

			doc, err := loadDocument(cmd, renderer, args[0])
			if err != nil {
				return err
			}

			results, err := renderer.RenderWidths(cmd.Context(), doc.Root, widths)
			if err != nil {
				return err
			}

			summaries := make([]sweepSummary, 0, len(results))
			for _, res := range results {
				summaries = append(summaries, sweepSummary{
					PassID:   res.PassID,
					Width:    res.Width,
					Height:   res.Display.Height,
					Commands: len(res.Display.Commands),
					Regions:  len(res.Regions),
				})
			}
			return writeJSON(cmd, cfg.Output().Path, cfg.Output().Pretty, summaries)
		},
	}
	addLayoutFlags(sweepCmd)
	sweepCmd.Flags().Float64Slice("widths", []float64{320, 768, 1024}, "viewport widths to lay out")
	sweepCmd.Flags().IntP("concurrency", "j", 4, "maximum passes run at once")
	sweepCmd.Flags().Bool("pretty", false, "indent JSON output")
	sweepCmd.Flags().StringP("output", "o", "", `output file ("-" or empty for stdout)`)
	return sweepCmd
}
