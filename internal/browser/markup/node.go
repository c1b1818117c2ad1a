// internal/browser/markup/node.go
package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// TextTag is the tag name carried by every text node.
const TextTag = "#text"

// Kind distinguishes elements from text runs.
type Kind int

const (
	ElementNode Kind = iota
	TextNode
)

// Attribute is a single name/value pair, kept in source order.
type Attribute struct {
	Name  string
	Value string
}

// Node is one node of the parsed document. Element nodes carry a lowercase
// tag and attributes, text nodes carry their literal text and no children.
type Node struct {
	Kind     Kind
	Tag      string
	Attrs    []Attribute
	Text     string
	Children []*Node

	// Source is the parser node this one was adapted from, if any. It lets
	// XPath queries against the parsed document be mapped back to layout boxes.
	Source *html.Node
}

// NewElement creates an element node with a normalized tag name.
func NewElement(tag string, attrs []Attribute, children ...*Node) *Node {
	return &Node{
		Kind:     ElementNode,
		Tag:      strings.ToLower(tag),
		Attrs:    attrs,
		Children: children,
	}
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{Kind: TextNode, Tag: TextTag, Text: text}
}

// IsText reports whether n is a text run.
func (n *Node) IsText() bool { return n != nil && n.Kind == TextNode }

// TagName returns the node's tag, "#text" for text nodes.
func (n *Node) TagName() string {
	if n.IsText() {
		return TextTag
	}
	return n.Tag
}

// Attr returns the value of the first attribute named name.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the subtree below the current node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
