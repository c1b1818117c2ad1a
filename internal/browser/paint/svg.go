// internal/browser/paint/svg.go
package paint

import (
	"io"
	"strconv"

	"github.com/beevik/etree"
)

// SVGCanvas records commands as SVG elements.
type SVGCanvas struct {
	doc  *etree.Document
	root *etree.Element
}

func NewSVGCanvas(width, height float64) *SVGCanvas {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("svg")
	root.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	root.CreateAttr("width", formatFloat(width))
	root.CreateAttr("height", formatFloat(height))
	root.CreateAttr("viewBox", "0 0 "+formatFloat(width)+" "+formatFloat(height))
	return &SVGCanvas{doc: doc, root: root}
}

func (c *SVGCanvas) DrawText(x, y float64, text string, font Font, color string) error {
	el := c.root.CreateElement("text")
	el.CreateAttr("x", formatFloat(x))
	el.CreateAttr("y", formatFloat(y))
	el.CreateAttr("font-size", formatFloat(font.Size))
	if font.Bold {
		el.CreateAttr("font-weight", "bold")
	}
	if font.Italic {
		el.CreateAttr("font-style", "italic")
	}
	el.CreateAttr("fill", color)
	// Runs keep their trailing space.
	el.CreateAttr("xml:space", "preserve")
	el.SetText(text)
	return nil
}

func (c *SVGCanvas) DrawLine(x1, y1, x2, y2 float64, color string) error {
	el := c.root.CreateElement("line")
	el.CreateAttr("x1", formatFloat(x1))
	el.CreateAttr("y1", formatFloat(y1))
	el.CreateAttr("x2", formatFloat(x2))
	el.CreateAttr("y2", formatFloat(y2))
	el.CreateAttr("stroke", color)
	el.CreateAttr("stroke-width", "1")
	return nil
}

// WriteTo serializes the document, indented when pretty is set.
func (c *SVGCanvas) WriteTo(w io.Writer, pretty bool) (int64, error) {
	if pretty {
		c.doc.Indent(2)
	}
	return c.doc.WriteTo(w)
}

// Document exposes the underlying tree, mostly for inspection in tests.
func (c *SVGCanvas) Document() *etree.Document { return c.doc }

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
