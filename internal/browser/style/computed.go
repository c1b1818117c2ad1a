// internal/browser/style/computed.go
package style

import "fmt"

// Display selects the flow a box participates in.
type Display int

const (
	DisplayBlock Display = iota
	DisplayInline
	// DisplayNone removes the element from flow. The layout tree keeps a
	// zero-size placeholder so the tree shape still mirrors the markup.
	DisplayNone
)

func (d Display) String() string {
	switch d {
	case DisplayBlock:
		return "block"
	case DisplayInline:
		return "inline"
	case DisplayNone:
		return "none"
	default:
		return fmt.Sprintf("Display(%d)", int(d))
	}
}

type FontWeight int

const (
	WeightNormal FontWeight = iota
	WeightBold
)

type FontStyle int

const (
	StyleNormal FontStyle = iota
	StyleItalic
)

type TextDecoration int

const (
	DecorationNone TextDecoration = iota
	DecorationUnderline
)

// Bag is the declared (not yet inherited) style of one element. Nil fields
// are unset and fall back to the parent during the cascade. Display,
// margin and padding are always concrete.
type Bag struct {
	Display        Display
	Color          *Color
	FontSize       *Measurement
	LineHeight     *Measurement
	FontWeight     *FontWeight
	FontStyle      *FontStyle
	TextDecoration *TextDecoration
	Margin         EdgeSpec
	Padding        EdgeSpec
}

// Computed is the fully resolved style of a node. Lengths are in pixels.
type Computed struct {
	Display        Display
	Color          Color
	FontSize       float64
	LineHeight     float64
	FontWeight     FontWeight
	FontStyle      FontStyle
	TextDecoration TextDecoration
	Margin         Edges
	Padding        Edges

	// LineHeightSpec is the declared line height, kept unresolved so that
	// descendants with a different font size resolve it against their own.
	LineHeightSpec Measurement
}

// DefaultComputed is the style the root inherits from.
func DefaultComputed() Computed {
	return Computed{
		Display:        DisplayBlock,
		Color:          Black,
		FontSize:       16,
		LineHeight:     16 * 1.2,
		LineHeightSpec: Em(1.2),
	}
}

// Cascade computes a node's style from its declared bag and the parent's
// computed style. Color, font, line height and decoration inherit when
// unset. Display, margin and padding never inherit; em margins and padding
// resolve against the node's own font size.
func Cascade(bag Bag, parent Computed) Computed {
	out := Computed{
		Display:        bag.Display,
		Color:          parent.Color,
		FontSize:       parent.FontSize,
		FontWeight:     parent.FontWeight,
		FontStyle:      parent.FontStyle,
		TextDecoration: parent.TextDecoration,
		LineHeightSpec: parent.LineHeightSpec,
	}

	if bag.Color != nil {
		out.Color = *bag.Color
	}
	if bag.FontSize != nil {
		out.FontSize = bag.FontSize.Apply(parent.FontSize)
	}
	if bag.FontWeight != nil {
		out.FontWeight = *bag.FontWeight
	}
	if bag.FontStyle != nil {
		out.FontStyle = *bag.FontStyle
	}
	if bag.TextDecoration != nil {
		out.TextDecoration = *bag.TextDecoration
	}
	if bag.LineHeight != nil {
		out.LineHeightSpec = *bag.LineHeight
	}

	out.LineHeight = out.LineHeightSpec.Apply(out.FontSize)
	out.Margin = bag.Margin.Resolve(out.FontSize)
	out.Padding = bag.Padding.Resolve(out.FontSize)
	return out
}

func ptr[T any](v T) *T { return &v }
