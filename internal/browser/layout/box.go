// internal/browser/layout/box.go
package layout

import (
	"fmt"
	"math"

	"github.com/xkilldash9x/layoutcore/internal/browser/markup"
	"github.com/xkilldash9x/layoutcore/internal/browser/style"
)

// -- Geometry --

// Rect is an axis-aligned rectangle in absolute document coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Expand returns the smallest rectangle covering both r and o.
func (r Rect) Expand(o Rect) Rect {
	x := math.Min(r.X, o.X)
	y := math.Min(r.Y, o.Y)
	return Rect{
		X:      x,
		Y:      y,
		Width:  math.Max(r.Right(), o.Right()) - x,
		Height: math.Max(r.Bottom(), o.Bottom()) - y,
	}
}

// Intersects reports whether the two rectangles overlap with positive area.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether the point lies inside r. The right and bottom
// edges are exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// -- Boxes --

// BoxKind separates containers from the atomic text boxes that carry
// glyphs and from placeholders for elements taken out of flow.
type BoxKind int

const (
	ContainerBox BoxKind = iota
	TextBox
	HiddenBox
)

func (k BoxKind) String() string {
	switch k {
	case ContainerBox:
		return "container"
	case TextBox:
		return "text"
	case HiddenBox:
		return "hidden"
	default:
		return fmt.Sprintf("BoxKind(%d)", int(k))
	}
}

// Box is one node of the layout tree. Positions are absolute.
type Box struct {
	Kind BoxKind
	// Node is the markup this box was built from. It is nil for text
	// segments and wrap fragments.
	Node  *markup.Node
	Style style.Computed
	// Text is the literal run of a TextBox.
	Text string

	X, Y          float64
	Width, Height float64
	// Baseline is the offset of the glyph baseline from Y.
	Baseline float64

	// HasSize is false for inline containers, whose extent is the union of
	// their fragments.
	HasSize bool

	Children []*Box
	// HitBoxes are the line-merged clickable rectangles of an inline
	// container backed by a link.
	HitBoxes []Rect

	parent        *Box
	widthResolved bool
	placed        bool
}

// Parent returns the enclosing box, nil for the root.
func (b *Box) Parent() *Box { return b.parent }

// Rect returns the box's border rectangle.
func (b *Box) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

// SetWidth assigns the box's width, which block layout requires.
func (b *Box) SetWidth(w float64) {
	b.Width = math.Max(0, w)
	b.widthResolved = true
}

// TagName names the backing element, or "#text" for text boxes.
func (b *Box) TagName() string {
	if b.Node != nil {
		return b.Node.TagName()
	}
	return markup.TextTag
}

func (b *Box) moveTo(x, y float64) {
	b.X, b.Y = x, y
	b.placed = true
}

// fragment creates a wrap fragment carrying part of a text box's run.
func (b *Box) fragment(text string, width float64) *Box {
	return &Box{
		Kind:     TextBox,
		Style:    b.Style,
		Text:     text,
		Width:    width,
		Height:   b.Height,
		Baseline: b.Baseline,
		HasSize:  true,
		parent:   b.parent,
	}
}

// Walk visits b and its descendants in pre-order.
func (b *Box) Walk(fn func(*Box)) {
	if b == nil {
		return
	}
	fn(b)
	for _, c := range b.Children {
		c.Walk(fn)
	}
}

// Validate checks that a laid-out tree is fully positioned, so a failed or
// partial pass is never handed to the paint stage.
func Validate(root *Box) error {
	if root == nil {
		return fmt.Errorf("layout tree is nil")
	}
	var err error
	root.Walk(func(b *Box) {
		if err != nil {
			return
		}
		switch {
		case !b.placed:
			err = fmt.Errorf("%s box <%s> was never positioned", b.Kind, b.TagName())
		case math.IsNaN(b.X) || math.IsNaN(b.Y) || math.IsNaN(b.Width) || math.IsNaN(b.Height):
			err = fmt.Errorf("%s box <%s> has a non-numeric geometry", b.Kind, b.TagName())
		case b.Width < 0 || b.Height < 0:
			err = fmt.Errorf("%s box <%s> has a negative size", b.Kind, b.TagName())
		}
	})
	return err
}
