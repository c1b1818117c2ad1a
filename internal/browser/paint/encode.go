// internal/browser/paint/encode.go
package paint

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	json "github.com/json-iterator/go"
)

// Format selects a display-list serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatSVG  Format = "svg"
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatSVG, FormatText, FormatPDF}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// EncodeOptions tune serialization.
type EncodeOptions struct {
	Pretty bool
	// FontFamily is the core font family used by PDF output.
	FontFamily string
}

// Encode writes list to w in the given format.
func Encode(w io.Writer, format Format, list DisplayList, opts EncodeOptions) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, list, opts.Pretty)
	case FormatText:
		return WriteText(w, list)
	case FormatSVG:
		c := NewSVGCanvas(list.Width, list.Height)
		if err := Execute(c, list.Commands); err != nil {
			return fmt.Errorf("failed to draw svg: %w", err)
		}
		_, err := c.WriteTo(w, opts.Pretty)
		return err
	case FormatPDF:
		c, err := NewPDFCanvas(list.Width, list.Height, opts.FontFamily)
		if err != nil {
			return err
		}
		if err := Execute(c, list.Commands); err != nil {
			return fmt.Errorf("failed to draw pdf: %w", err)
		}
		return c.WriteTo(w)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func WriteJSON(w io.Writer, list DisplayList, pretty bool) error {
	if list.Commands == nil {
		list.Commands = []Command{}
	}
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(list, "", "  ")
	} else {
		data, err = json.Marshal(list)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal display list: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write display list: %w", err)
	}
	return nil
}

// WriteText prints one aligned line per command.
func WriteText(w io.Writer, list DisplayList) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "# %gx%g, %d commands\n", list.Width, list.Height, len(list.Commands))
	for _, c := range list.Commands {
		switch c.Op {
		case OpText:
			fmt.Fprintf(tw, "text\t%.2f\t%.2f\t%s\t%s\t%q\n", c.X, c.Y, fontLabel(c.Font), c.Color, c.Text)
		case OpLine:
			fmt.Fprintf(tw, "line\t%.2f\t%.2f\t-> %.2f, %.2f\t%s\t\n", c.X, c.Y, c.X2, c.Y2, c.Color)
		}
	}
	return tw.Flush()
}

func fontLabel(f *Font) string {
	if f == nil {
		return "-"
	}
	label := fmt.Sprintf("%gpx", f.Size)
	if f.Bold {
		label += " bold"
	}
	if f.Italic {
		label += " italic"
	}
	return label
}
