// internal/browser/markup/html.go
package markup

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document pairs the adapted node tree with the parser tree it came from.
type Document struct {
	Root *Node
	Tree *html.Node
}

// Parse reads an HTML document and adapts it into a Node tree rooted at the
// <html> element. Comments, doctypes and whitespace-only text are dropped.
func Parse(r io.Reader) (*Document, error) {
	tree, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	rootElem := findElement(tree, atom.Html)
	if rootElem == nil {
		return nil, fmt.Errorf("document has no <html> element")
	}
	return &Document{Root: FromHTML(rootElem), Tree: tree}, nil
}

// ParseString is Parse over an in-memory document.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// FromHTML converts a parser node and its subtree. It returns nil for nodes
// that carry no content.
func FromHTML(n *html.Node) *Node {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		text := NewText(n.Data)
		text.Source = n
		return text
	case html.ElementNode:
		attrs := make([]Attribute, 0, len(n.Attr))
		for _, a := range n.Attr {
			attrs = append(attrs, Attribute{Name: strings.ToLower(a.Key), Value: a.Val})
		}
		elem := NewElement(n.Data, attrs)
		elem.Source = n
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := FromHTML(c); child != nil {
				elem.Children = append(elem.Children, child)
			}
		}
		return elem
	default:
		return nil
	}
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}
