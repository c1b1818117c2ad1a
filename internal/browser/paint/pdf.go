// internal/browser/paint/pdf.go
package paint

import (
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"

	"github.com/xkilldash9x/layoutcore/internal/browser/fontmetrics"
	"github.com/xkilldash9x/layoutcore/internal/browser/style"
)

// PDFCanvas draws commands onto a single PDF page sized to the document,
// using one of the core fonts. One CSS pixel maps to one point, matching
// the core metrics provider.
type PDFCanvas struct {
	pdf       *fpdf.Fpdf
	family    string
	translate func(string) string
}

func NewPDFCanvas(width, height float64, family string) (*PDFCanvas, error) {
	name, err := fontmetrics.CoreFamily(family)
	if err != nil {
		return nil, err
	}
	// fpdf rejects empty pages.
	width, height = max(width, 1), max(height, 1)

	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return &PDFCanvas{
		pdf:       pdf,
		family:    name,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}, nil
}

func (c *PDFCanvas) DrawText(x, y float64, text string, font Font, color string) error {
	var fs string
	if font.Bold {
		fs += "B"
	}
	if font.Italic {
		fs += "I"
	}
	r, g, b, err := rgb(color)
	if err != nil {
		return err
	}
	c.pdf.SetFont(c.family, fs, font.Size)
	c.pdf.SetTextColor(r, g, b)
	c.pdf.Text(x, y, c.translate(text))
	return c.pdf.Error()
}

func (c *PDFCanvas) DrawLine(x1, y1, x2, y2 float64, color string) error {
	r, g, b, err := rgb(color)
	if err != nil {
		return err
	}
	c.pdf.SetDrawColor(r, g, b)
	c.pdf.SetLineWidth(1)
	c.pdf.Line(x1, y1, x2, y2)
	return c.pdf.Error()
}

// WriteTo closes the document and writes it out. The canvas cannot be
// drawn on afterwards.
func (c *PDFCanvas) WriteTo(w io.Writer) error {
	return c.pdf.Output(w)
}

func rgb(hex string) (int, int, int, error) {
	col, ok := style.ParseColor(hex)
	if !ok {
		return 0, 0, 0, fmt.Errorf("invalid color %q", hex)
	}
	return int(col.R), int(col.G), int(col.B), nil
}
