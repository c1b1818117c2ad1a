// File: cmd/geometry.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/layoutcore/internal/observability"
	"github.com/xkilldash9x/layoutcore/internal/pipeline"
)

// newGeometryCmd creates the `geometry` command, which reports the laid-out
// box of the element an XPath expression selects.
func newGeometryCmd() *cobra.Command {
	geometryCmd := &cobra.Command{
		Use:   "geometry FILE --xpath EXPR",
		Short: "Prints the geometry of one element of an HTML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}
			xpath, _ := cmd.Flags().GetString("xpath")

			renderer, err := pipeline.NewFromConfig(cfg.Layout(), observability.GetLogger())
			if err != nil {
				return fmt.Errorf("failed to create renderer: %w", err)
			}
			defer renderer.Close()

			doc, err := loadDocument(cmd, renderer, args[0])
			if err != nil {
				return err
			}

			res, err := renderer.Render(cmd.Context(), doc.Root, cfg.Layout().ViewportWidth)
			if err != nil {
				return err
			}
			geometry, err := renderer.Engine().ElementGeometry(res.Root, xpath)
			if err != nil {
				return err
			}
			return writeJSON(cmd, cfg.Output().Path, cfg.Output().Pretty, geometry)
		},
	}
	addLayoutFlags(geometryCmd)
	geometryCmd.Flags().String("xpath", "", "XPath expression selecting the element")
	geometryCmd.Flags().Bool("pretty", false, "indent JSON output")
	geometryCmd.Flags().StringP("output", "o", "", `output file ("-" or empty for stdout)`)
	_ = geometryCmd.MarkFlagRequired("xpath")
	return geometryCmd
}
