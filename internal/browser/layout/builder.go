// internal/browser/layout/builder.go
package layout

import (
	"github.com/xkilldash9x/layoutcore/internal/browser/fontmetrics"
	"github.com/xkilldash9x/layoutcore/internal/browser/style"
)

// Builder turns a styled tree into an unpositioned layout tree.
type Builder struct {
	metrics fontmetrics.Provider
}

func NewBuilder(metrics fontmetrics.Provider) *Builder {
	return &Builder{metrics: metrics}
}

// Build mirrors sn one to one, except that text nodes get one measured
// TextBox child per segment and hidden elements become childless
// zero-size placeholders.
func (b *Builder) Build(sn *style.StyledNode) (*Box, error) {
	box := &Box{
		Kind:    ContainerBox,
		Node:    sn.Node,
		Style:   sn.Style,
		HasSize: true,
	}

	if sn.Style.Display == style.DisplayNone {
		box.Kind = HiddenBox
		box.HasSize = false
		return box, nil
	}

	if sn.Node.IsText() {
		segments := Segments(sn.Node.Text)
		box.Children = make([]*Box, 0, len(segments))
		for _, seg := range segments {
			m, err := measure(b.metrics, seg, sn.Style)
			if err != nil {
				return nil, err
			}
			box.Children = append(box.Children, &Box{
				Kind:     TextBox,
				Style:    sn.Style,
				Text:     seg,
				Width:    m.Width,
				Height:   sn.Style.LineHeight,
				Baseline: baselineOffset(sn.Style.LineHeight, m.Ascent),
				HasSize:  true,
				parent:   box,
			})
		}
		return box, nil
	}

	if len(sn.Children) > 0 {
		box.Children = make([]*Box, 0, len(sn.Children))
	}
	for _, c := range sn.Children {
		child, err := b.Build(c)
		if err != nil {
			return nil, err
		}
		child.parent = box
		box.Children = append(box.Children, child)
	}
	return box, nil
}

// baselineOffset centres a glyph box of height ascent in the line box and
// returns where its baseline falls.
func baselineOffset(lineHeight, ascent float64) float64 {
	return (lineHeight + ascent) / 2
}
