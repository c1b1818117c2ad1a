// File: cmd/links.go
package cmd

import (
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/xkilldash9x/layoutcore/internal/browser/layout"
	"github.com/xkilldash9x/layoutcore/internal/observability"
	"github.com/xkilldash9x/layoutcore/internal/pipeline"
)

// newLinksCmd creates the `links` command, which prints the clickable
// regions of a document as JSON.
func newLinksCmd() *cobra.Command {
	linksCmd := &cobra.Command{
		Use:   "links FILE",
		Short: "Prints the clickable regions of an HTML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
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

			res, err := renderer.Render(cmd.Context(), doc.Root, cfg.Layout().ViewportWidth)
			if err != nil {
				return err
			}

			regions := res.Regions
			if regions == nil {
				regions = []layout.ClickableRegion{}
			}
			return writeJSON(cmd, cfg.Output().Path, cfg.Output().Pretty, regions)
		},
	}
	addLayoutFlags(linksCmd)
	linksCmd.Flags().Bool("pretty", false, "indent JSON output")
	linksCmd.Flags().StringP("output", "o", "", `output file ("-" or empty for stdout)`)
	return linksCmd
}

func writeJSON(cmd *cobra.Command, path string, pretty bool, v interface{}) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	w, closeOut, err := openOutput(cmd, path)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		closeOut()
		return fmt.Errorf("failed to write output: %w", err)
	}
	return closeOut()
}
