// internal/browser/layout/helpers_test.go
package layout

import (
	"math"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/layoutcore/internal/browser/fontmetrics"
	"github.com/xkilldash9x/layoutcore/internal/browser/markup"
	"github.com/xkilldash9x/layoutcore/internal/browser/style"
)

// -- Test Helpers --

// monoMetrics gives every rune an advance of half the font size, which
// keeps expected coordinates easy to compute by hand.
type monoMetrics struct{}

func (monoMetrics) Measure(text string, cs style.Computed) (fontmetrics.Metrics, error) {
	return fontmetrics.Metrics{
		Width:  float64(utf8.RuneCountInString(text)) * cs.FontSize * 0.5,
		Ascent: cs.FontSize * 0.8,
	}, nil
}

// brokenMetrics reports a fixed, possibly invalid, measurement.
type brokenMetrics struct{ width float64 }

func (b brokenMetrics) Measure(string, style.Computed) (fontmetrics.Metrics, error) {
	return fontmetrics.Metrics{Width: b.width, Ascent: 1}, nil
}

func newTestEngine(t *testing.T, metrics fontmetrics.Provider, opts Options, css ...string) *Engine {
	t.Helper()
	resolver, err := style.NewResolver(zaptest.NewLogger(t), css...)
	require.NoError(t, err)
	return NewEngine(style.NewEngine(resolver), metrics, zaptest.NewLogger(t), opts)
}

func el(tag string, children ...*markup.Node) *markup.Node {
	return markup.NewElement(tag, nil, children...)
}

func link(href string, children ...*markup.Node) *markup.Node {
	return markup.NewElement("a", []markup.Attribute{{Name: "href", Value: href}}, children...)
}

func text(s string) *markup.Node { return markup.NewText(s) }

// textBoxes returns every TextBox in flow order.
func textBoxes(root *Box) []*Box {
	var out []*Box
	root.Walk(func(b *Box) {
		if b.Kind == TextBox {
			out = append(out, b)
		}
	})
	return out
}

func findText(t *testing.T, root *Box, s string) *Box {
	t.Helper()
	for _, b := range textBoxes(root) {
		if b.Text == s {
			return b
		}
	}
	t.Fatalf("no text box %q", s)
	return nil
}

func findTag(t *testing.T, root *Box, tag string) *Box {
	t.Helper()
	var found *Box
	root.Walk(func(b *Box) {
		if found == nil && b.Node != nil && b.Node.Tag == tag {
			found = b
		}
	})
	require.NotNil(t, found, "no box for <%s>", tag)
	return found
}

// assertHeightAdditivity checks that every block whose children are all
// blocks is exactly as tall as its padding plus each child's collapsed top
// margin, height and bottom margin.
func assertHeightAdditivity(t *testing.T, b *Box) {
	t.Helper()
	if b.Kind != ContainerBox {
		return
	}
	allBlocks := len(b.Children) > 0
	for _, c := range b.Children {
		if c.Kind != ContainerBox || c.Style.Display != style.DisplayBlock {
			allBlocks = false
		}
	}
	if allBlocks {
		sum := b.Style.Padding.Top + b.Style.Padding.Bottom
		prev := math.Inf(1)
		for _, c := range b.Children {
			sum += collapseMargin(c.Style.Margin.Top, prev) + c.Height + c.Style.Margin.Bottom
			prev = c.Style.Margin.Bottom
		}
		if math.Abs(sum-b.Height) > 1e-9 {
			t.Errorf("<%s> height %v, children account for %v", b.TagName(), b.Height, sum)
		}
	}
	for _, c := range b.Children {
		assertHeightAdditivity(t, c)
	}
}
