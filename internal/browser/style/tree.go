// internal/browser/style/tree.go
package style

import (
	"strings"
	"unicode"

	"github.com/xkilldash9x/layoutcore/internal/browser/markup"
)

// StyledNode pairs a markup node with its declared and computed style.
// The styled tree mirrors the markup tree one to one.
type StyledNode struct {
	Node     *markup.Node
	Declared Bag
	Style    Computed
	Children []*StyledNode
}

// Engine applies the resolver and cascade over a whole document.
type Engine struct {
	resolver *Resolver
}

func NewEngine(resolver *Resolver) *Engine {
	return &Engine{resolver: resolver}
}

// BuildTree styles root and its descendants top-down, so every node's
// parent is computed before the node itself.
func (e *Engine) BuildTree(root *markup.Node) *StyledNode {
	if root == nil {
		return nil
	}
	return e.build(root, DefaultComputed())
}

func (e *Engine) build(n *markup.Node, parent Computed) *StyledNode {
	bag := e.resolver.Resolve(n.TagName())
	sn := &StyledNode{
		Node:     n,
		Declared: bag,
		Style:    Cascade(bag, parent),
	}
	if len(n.Children) > 0 {
		sn.Children = make([]*StyledNode, 0, len(n.Children))
		for _, c := range n.Children {
			sn.Children = append(sn.Children, e.build(c, sn.Style))
		}
	}
	return sn
}

// NormalizeWhitespace trims source formatting out of a parsed document in
// place: the first text of every run of consecutive inline children of a
// block loses its leading whitespace and the last text loses its trailing
// whitespace. Hidden elements neither join nor break a run. Display comes
// from the resolver, so user stylesheets are honored.
func (e *Engine) NormalizeWhitespace(root *markup.Node) {
	if root == nil || root.IsText() {
		return
	}
	if e.display(root) == DisplayBlock {
		var run []*markup.Node
		flush := func() {
			if len(run) == 0 {
				return
			}
			if first := e.edgeText(run[0], true); first != nil {
				first.Text = strings.TrimLeftFunc(first.Text, unicode.IsSpace)
			}
			if last := e.edgeText(run[len(run)-1], false); last != nil {
				last.Text = strings.TrimRightFunc(last.Text, unicode.IsSpace)
			}
			run = run[:0]
		}
		for _, c := range root.Children {
			switch e.display(c) {
			case DisplayInline:
				run = append(run, c)
			case DisplayNone:
			default:
				flush()
			}
		}
		flush()
	}
	for _, c := range root.Children {
		e.NormalizeWhitespace(c)
	}
}

// display never inherits, so the declared bag is the final answer.
func (e *Engine) display(n *markup.Node) Display {
	return e.resolver.Resolve(n.TagName()).Display
}

// edgeText descends to the first (or last) visible text node under n.
func (e *Engine) edgeText(n *markup.Node, first bool) *markup.Node {
	for !n.IsText() {
		var next *markup.Node
		for i := range n.Children {
			c := n.Children[i]
			if !first {
				c = n.Children[len(n.Children)-1-i]
			}
			if e.display(c) != DisplayNone {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		n = next
	}
	return n
}
