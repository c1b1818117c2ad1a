// internal/browser/style/cascade_test.go
package style

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/layoutcore/internal/browser/markup"
)

func TestDefaultComputed(t *testing.T) {
	d := DefaultComputed()
	assert.Equal(t, 16.0, d.FontSize)
	assert.InDelta(t, 19.2, d.LineHeight, 1e-9)
	assert.Equal(t, Black, d.Color)
	assert.Equal(t, DisplayBlock, d.Display)
}

func TestCascade(t *testing.T) {
	parent := Cascade(Bag{
		Display:    DisplayBlock,
		Color:      ptr(Color{R: 10, A: 255}),
		FontSize:   ptr(Px(15)),
		LineHeight: ptr(Em(1.25)),
		FontStyle:  ptr(StyleItalic),
		Padding:    EdgeSpec{Top: Px(8), Right: Px(8), Bottom: Px(8), Left: Px(8)},
	}, DefaultComputed())

	t.Run("unset properties inherit", func(t *testing.T) {
		child := Cascade(Bag{Display: DisplayInline}, parent)
		assert.Equal(t, parent.Color, child.Color)
		assert.Equal(t, 15.0, child.FontSize)
		assert.Equal(t, StyleItalic, child.FontStyle)
		assert.InDelta(t, 18.75, child.LineHeight, 1e-9)
	})

	t.Run("display margin and padding do not inherit", func(t *testing.T) {
		child := Cascade(Bag{Display: DisplayInline}, parent)
		assert.Equal(t, DisplayInline, child.Display)
		assert.Equal(t, Edges{}, child.Padding)
		assert.Equal(t, Edges{}, child.Margin)
	})

	t.Run("em font size scales the parent", func(t *testing.T) {
		child := Cascade(Bag{FontSize: ptr(Em(2))}, parent)
		assert.Equal(t, 30.0, child.FontSize)
	})

	t.Run("px font size replaces the parent", func(t *testing.T) {
		child := Cascade(Bag{FontSize: ptr(Px(9))}, parent)
		assert.Equal(t, 9.0, child.FontSize)
	})

	t.Run("inherited em line height resolves against own font size", func(t *testing.T) {
		child := Cascade(Bag{FontSize: ptr(Px(20))}, parent)
		assert.Equal(t, Em(1.25), child.LineHeightSpec)
		assert.InDelta(t, 25.0, child.LineHeight, 1e-9)
	})

	t.Run("em margins use the node's own font size", func(t *testing.T) {
		child := Cascade(Bag{
			FontSize: ptr(Em(2)),
			Margin:   EdgeSpec{Top: Em(1), Bottom: Em(0.5)},
		}, parent)
		assert.Equal(t, 30.0, child.Margin.Top)
		assert.Equal(t, 15.0, child.Margin.Bottom)
	})
}

func TestEngineBuildTree(t *testing.T) {
	resolver, err := NewResolver(zaptest.NewLogger(t))
	require.NoError(t, err)
	engine := NewEngine(resolver)

	// body > h1 > "Title"
	text := markup.NewText("Title")
	h1 := markup.NewElement("h1", nil, text)
	body := markup.NewElement("body", nil, h1)

	tree := engine.BuildTree(body)
	require.NotNil(t, tree)
	require.Len(t, tree.Children, 1)
	require.Len(t, tree.Children[0].Children, 1)

	h1Style := tree.Children[0].Style
	assert.InDelta(t, 31.5, h1Style.FontSize, 1e-9)
	assert.Equal(t, WeightBold, h1Style.FontWeight)
	assert.InDelta(t, 0.67*31.5, h1Style.Margin.Top, 1e-9)
	assert.InDelta(t, 0.67*31.5, h1Style.Margin.Bottom, 1e-9)

	textStyle := tree.Children[0].Children[0].Style
	assert.Equal(t, DisplayInline, textStyle.Display)
	assert.InDelta(t, 31.5, textStyle.FontSize, 1e-9)
	assert.InDelta(t, 39.375, textStyle.LineHeight, 1e-9)
	assert.Equal(t, WeightBold, textStyle.FontWeight)

	assert.Nil(t, engine.BuildTree(nil))
}

func TestEngineTreeIsDeterministic(t *testing.T) {
	resolver, err := NewResolver(nil)
	require.NoError(t, err)
	engine := NewEngine(resolver)

	doc := markup.NewElement("body", nil,
		markup.NewElement("p", nil, markup.NewText("a "), markup.NewElement("a", nil, markup.NewText("b"))),
	)
	first := engine.BuildTree(doc)
	second := engine.BuildTree(doc)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("styled trees differ (-first +second):\n%s", diff)
	}
}

func TestEngineNormalizeWhitespace(t *testing.T) {
	resolver, err := NewResolver(nil)
	require.NoError(t, err)
	engine := NewEngine(resolver)

	texts := func(root *markup.Node) []string {
		var out []string
		root.Walk(func(n *markup.Node) bool {
			if n.IsText() {
				out = append(out, n.Text)
			}
			return true
		})
		return out
	}

	tests := []struct {
		name string
		doc  *markup.Node
		want []string
	}{
		{
			name: "indented paragraph",
			doc:  markup.NewElement("p", nil, markup.NewText("\n    hello world\n")),
			want: []string{"hello world"},
		},
		{
			name: "inner spaces between inline siblings survive",
			doc: markup.NewElement("p", nil,
				markup.NewText("  go to "),
				markup.NewElement("a", nil, markup.NewText(" the next page \n")),
			),
			want: []string{"go to ", " the next page"},
		},
		{
			name: "a block child splits the run",
			doc: markup.NewElement("div", nil,
				markup.NewText(" intro "),
				markup.NewElement("p", nil, markup.NewText(" para ")),
				markup.NewElement("b", nil, markup.NewText(" tail ")),
			),
			want: []string{"intro", "para", "tail"},
		},
		{
			name: "hidden children are skipped at the edges",
			doc: markup.NewElement("p", nil,
				markup.NewElement("span", nil, markup.NewText(" x "), markup.NewElement("script", nil, markup.NewText(" js "))),
			),
			want: []string{"x", " js "},
		},
		{
			name: "inline roots are left alone",
			doc:  markup.NewElement("span", nil, markup.NewText(" loose ")),
			want: []string{" loose "},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine.NormalizeWhitespace(tt.doc)
			assert.Equal(t, tt.want, texts(tt.doc))
		})
	}

	t.Run("user stylesheets decide what is a block", func(t *testing.T) {
		resolver, err := NewResolver(nil, "span { display: block; }")
		require.NoError(t, err)
		doc := markup.NewElement("p", nil,
			markup.NewText("a "),
			markup.NewElement("span", nil, markup.NewText(" b ")),
			markup.NewText(" c"),
		)
		NewEngine(resolver).NormalizeWhitespace(doc)
		assert.Equal(t, []string{"a", "b", "c"}, texts(doc))
	})

	assert.NotPanics(t, func() { engine.NormalizeWhitespace(nil) })
}
