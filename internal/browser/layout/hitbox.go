// internal/browser/layout/hitbox.go
package layout

import (
	"strings"
)

// HitBoxes merges the sized fragments under an inline container into one
// rectangle per visual line. Fragments arrive in flow order; a fragment to
// the right of the previous one continues the line, as does one at the same
// x that overlaps the running rectangle. Anything else starts a new line.
func HitBoxes(b *Box) []Rect {
	var (
		boxes    []Rect
		current  Rect
		currentX float64
		open     bool
	)

	for _, frag := range sizedFragments(b, nil) {
		r := frag.Rect()
		switch {
		case !open:
			current, currentX, open = r, r.X, true
		case r.X > currentX:
			current = current.Expand(r)
			currentX = r.X
		case r.X == currentX && current.Intersects(r):
			current = current.Expand(r)
		default:
			boxes = append(boxes, current)
			current, currentX = r, r.X
		}
	}
	if open {
		boxes = append(boxes, current)
	}
	return boxes
}

// sizedFragments collects the outermost sized boxes under b in pre-order.
func sizedFragments(b *Box, acc []*Box) []*Box {
	for _, c := range b.Children {
		if c.HasSize {
			acc = append(acc, c)
			continue
		}
		acc = sizedFragments(c, acc)
	}
	return acc
}

func isClickable(b *Box) bool {
	if b.Node == nil || b.Node.IsText() {
		return false
	}
	href, ok := b.Node.Attr("href")
	return ok && strings.TrimSpace(href) != ""
}

// -- Clickable regions --

// ActionOpenLink is the action of a region created for a hyperlink.
const ActionOpenLink = "open_link"

// ClickableRegion is a rectangle a host can hit-test against, with the
// action to run and its parameters.
type ClickableRegion struct {
	Rect    Rect              `json:"rect"`
	Action  string            `json:"action"`
	Context map[string]string `json:"context"`
}

// ClickableRegions collects one region per hit box of every link in the
// tree, in document order.
func ClickableRegions(root *Box) []ClickableRegion {
	var regions []ClickableRegion
	root.Walk(func(b *Box) {
		if len(b.HitBoxes) == 0 || !isClickable(b) {
			return
		}
		href, _ := b.Node.Attr("href")
		for _, r := range b.HitBoxes {
			regions = append(regions, ClickableRegion{
				Rect:    r,
				Action:  ActionOpenLink,
				Context: map[string]string{"href": href},
			})
		}
	})
	return regions
}

// HitTest returns the last region containing the point, so that when
// regions overlap the one painted later wins.
func HitTest(regions []ClickableRegion, x, y float64) (ClickableRegion, bool) {
	for i := len(regions) - 1; i >= 0; i-- {
		if regions[i].Rect.Contains(x, y) {
			return regions[i], true
		}
	}
	return ClickableRegion{}, false
}
