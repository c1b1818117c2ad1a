// internal/browser/layout/geometry.go
package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/xkilldash9x/layoutcore/api/schemas"
)

// ElementGeometry finds the element matching an XPath selector in the
// document the tree was built from and returns its laid-out geometry.
func (e *Engine) ElementGeometry(root *Box, selector string) (*schemas.ElementGeometry, error) {
	if root == nil {
		return nil, fmt.Errorf("layout tree is nil")
	}
	domRoot := findDOMRoot(root)
	if domRoot == nil {
		return nil, fmt.Errorf("layout tree was not built from a parsed document")
	}

	target, err := htmlquery.Query(domRoot, selector)
	if err != nil {
		return nil, fmt.Errorf("invalid XPath selector '%s': %w", selector, err)
	}
	if target == nil {
		return nil, fmt.Errorf("element not found matching selector '%s'", selector)
	}

	box := findBoxForNode(root, target)
	if box == nil {
		return nil, fmt.Errorf("element '%s' found in document but has no layout box", selector)
	}
	if box.Kind == HiddenBox {
		return nil, fmt.Errorf("element '%s' is not rendered (display: none)", selector)
	}
	return box.ElementGeometry(), nil
}

// ElementGeometry describes the box as a quad with its rounded size.
func (b *Box) ElementGeometry() *schemas.ElementGeometry {
	r := b.Rect()
	g := &schemas.ElementGeometry{
		Vertices: []float64{
			r.X, r.Y,
			r.Right(), r.Y,
			r.Right(), r.Bottom(),
			r.X, r.Bottom(),
		},
		Width:  int64(math.Round(r.Width)),
		Height: int64(math.Round(r.Height)),
	}
	if b.Node != nil {
		g.TagName = strings.ToUpper(b.Node.TagName())
		if t, ok := b.Node.Attr("type"); ok {
			g.Type = t
		}
	}
	return g
}

func findDOMRoot(root *Box) *html.Node {
	if root.Node == nil || root.Node.Source == nil {
		return nil
	}
	n := root.Node.Source
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

func findBoxForNode(root *Box, target *html.Node) *Box {
	var found *Box
	root.Walk(func(b *Box) {
		if found == nil && b.Node != nil && b.Node.Source == target {
			found = b
		}
	})
	return found
}
