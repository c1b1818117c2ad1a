// internal/browser/layout/flow.go
package layout

import (
	"math"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/xkilldash9x/layoutcore/internal/browser/fontmetrics"
	"github.com/xkilldash9x/layoutcore/internal/browser/style"
)

// cursor is the pen position shared by every inline container of one
// block, so wrapping carries across container boundaries. x is relative to
// the line start and y to the top of the block.
type cursor struct {
	x, y float64
	// lineHeight is the tallest fragment placed on the open line.
	lineHeight float64
	lineOpen   bool
}

// newLine closes the open line, if any, and returns the pen to line start.
func (c *cursor) newLine() {
	if c.lineOpen {
		c.y += c.lineHeight
	}
	c.x, c.lineHeight, c.lineOpen = 0, 0, false
}

func (c *cursor) advance(b *Box) {
	c.x += b.Width
	c.lineHeight = math.Max(c.lineHeight, b.Height)
	c.lineOpen = true
}

// line is the content area of the block that owns an inline run.
type line struct {
	x, y      float64
	available float64
}

type flow struct {
	metrics       fontmetrics.Provider
	breakLongRuns bool
	log           *zap.Logger
}

// -- Block flow --

// layoutBlock positions b's children inside its content box and sets
// b.Height. b must already be positioned and have a resolved width.
func (f *flow) layoutBlock(b *Box) error {
	if !b.widthResolved {
		return newError(ErrMissingWidth, b, "block laid out before its width was assigned")
	}

	pad := b.Style.Padding
	ln := line{
		x:         b.X + pad.Left,
		y:         b.Y,
		available: math.Max(0, b.Width-pad.Left-pad.Right),
	}
	cur := &cursor{y: pad.Top}
	// The first block child has no sibling above it, so its top margin is
	// fully absorbed.
	prevMarginBottom := math.Inf(1)

	for i, child := range b.Children {
		child.parent = b
		if child.Kind == HiddenBox {
			placeHidden(child, ln, cur)
			continue
		}

		switch child.Style.Display {
		case style.DisplayBlock:
			cur.newLine()
			if err := f.stackBlock(child, ln, cur, prevMarginBottom); err != nil {
				return err
			}
			prevMarginBottom = child.Style.Margin.Bottom

		case style.DisplayInline:
			child.moveTo(ln.x+cur.x, ln.y+cur.y)
			if err := f.flowInline(child, ln, cur); err != nil {
				return err
			}
			if endsInlineRun(b.Children, i) {
				cur.newLine()
			}
			prevMarginBottom = 0

		default:
			return newError(ErrUnsupportedDisplay, child, "display %s cannot be laid out", child.Style.Display)
		}
	}

	b.Height = cur.y + pad.Bottom
	return nil
}

// stackBlock places a block child below the cursor and lays it out.
func (f *flow) stackBlock(child *Box, ln line, cur *cursor, prevMarginBottom float64) error {
	m := child.Style.Margin
	top := collapseMargin(m.Top, prevMarginBottom)

	child.moveTo(ln.x+m.Left, ln.y+cur.y+top)
	child.SetWidth(ln.available - m.Left - m.Right)
	if err := f.layoutBlock(child); err != nil {
		return err
	}
	cur.y += top + child.Height + m.Bottom
	return nil
}

// collapseMargin is the top margin left after the previous sibling's bottom
// margin absorbs it. It is never negative and never exceeds the declared
// top margin.
func collapseMargin(top, prevBottom float64) float64 {
	return math.Max(0, top-math.Max(0, prevBottom))
}

// endsInlineRun reports whether the inline child at i is the last of its
// run, i.e. the next child in flow is a block or there is none.
func endsInlineRun(children []*Box, i int) bool {
	for _, next := range children[i+1:] {
		if next.Kind == HiddenBox {
			continue
		}
		return next.Style.Display != style.DisplayInline
	}
	return true
}

func placeHidden(b *Box, ln line, cur *cursor) {
	b.moveTo(ln.x+cur.x, ln.y+cur.y)
	b.Width, b.Height = 0, 0
}

// -- Inline flow --

// flowInline lays out an inline container and installs the child list the
// inline pass produced, which may contain wrap fragments in place of long
// text boxes. Link containers get their hit boxes here.
func (f *flow) flowInline(node *Box, ln line, cur *cursor) error {
	children, err := f.layoutInline(node, ln, cur)
	if err != nil {
		return err
	}
	node.Children = children
	node.HasSize = false

	if r, ok := unionOfFragments(node); ok {
		node.X, node.Y, node.Width, node.Height = r.X, r.Y, r.Width, r.Height
	} else {
		node.Width, node.Height = 0, 0
	}
	if isClickable(node) {
		node.HitBoxes = HitBoxes(node)
	}
	return nil
}

// layoutInline packs node's children left to right from the cursor and
// returns the new child list. node.Children is not modified.
func (f *flow) layoutInline(node *Box, ln line, cur *cursor) ([]*Box, error) {
	placed := make([]*Box, 0, len(node.Children))

	for _, child := range node.Children {
		child.parent = node

		switch {
		case child.Kind == HiddenBox:
			placeHidden(child, ln, cur)
			placed = append(placed, child)

		case child.Kind == TextBox:
			frags, err := f.placeText(child, ln, cur)
			if err != nil {
				return nil, err
			}
			placed = append(placed, frags...)

		case child.Style.Display == style.DisplayInline:
			child.moveTo(ln.x+cur.x, ln.y+cur.y)
			if err := f.flowInline(child, ln, cur); err != nil {
				return nil, err
			}
			placed = append(placed, child)

		case child.Style.Display == style.DisplayBlock:
			// A block inside an inline run closes the open line and is
			// stacked at the full width of the owning block.
			cur.newLine()
			if err := f.stackBlock(child, ln, cur, 0); err != nil {
				return nil, err
			}
			placed = append(placed, child)

		default:
			return nil, newError(ErrUnsupportedDisplay, child, "display %s cannot be laid out", child.Style.Display)
		}
	}
	return placed, nil
}

// placeText positions one atomic text box, wrapping first when it would
// overflow a line that already holds content. A box wider than the whole
// line is placed alone, or split into fragments when long-run breaking is
// enabled.
func (f *flow) placeText(seg *Box, ln line, cur *cursor) ([]*Box, error) {
	if cur.x > 0 && cur.x+seg.Width > ln.available {
		cur.newLine()
	}
	if f.breakLongRuns && seg.Width > ln.available {
		return f.splitRun(seg, ln, cur)
	}

	seg.moveTo(ln.x+cur.x, ln.y+cur.y)
	cur.advance(seg)
	return []*Box{seg}, nil
}

// splitRun breaks a run that cannot fit on one line into fragments, each
// the longest prefix that fits the remaining width. Every fragment holds at
// least one rune so the loop always progresses.
func (f *flow) splitRun(seg *Box, ln line, cur *cursor) ([]*Box, error) {
	var frags []*Box
	rest := []rune(seg.Text)

	for len(rest) > 0 {
		fit, err := Fit(f.metrics, string(rest), seg.Style, math.Max(0, ln.available-cur.x))
		if err != nil {
			return nil, err
		}
		if fit.Text == "" {
			if cur.lineOpen {
				cur.newLine()
				continue
			}
			first := string(rest[:1])
			width, err := snappedWidth(f.metrics, first, seg.Style)
			if err != nil {
				return nil, err
			}
			fit = FitResult{Text: first, Width: width}
		}

		frag := seg.fragment(fit.Text, fit.Width)
		frag.moveTo(ln.x+cur.x, ln.y+cur.y)
		cur.advance(frag)
		frags = append(frags, frag)

		rest = rest[utf8.RuneCountInString(fit.Text):]
		if len(rest) > 0 {
			cur.newLine()
		}
	}

	f.log.Debug("split long run",
		zap.Int("fragments", len(frags)),
		zap.Float64("available", ln.available))
	return frags, nil
}

// unionOfFragments is the rectangle covering every sized descendant.
func unionOfFragments(b *Box) (Rect, bool) {
	frags := sizedFragments(b, nil)
	if len(frags) == 0 {
		return Rect{}, false
	}
	r := frags[0].Rect()
	for _, fr := range frags[1:] {
		r = r.Expand(fr.Rect())
	}
	return r, true
}
