// internal/browser/layout/fuzz_test.go
//go:build go1.18
// +build go1.18

package layout

import (
	"testing"

	fuzz "github.com/AdaLogics/go-fuzz-headers"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/layoutcore/internal/browser/markup"
)

var fuzzTags = []string{"div", "p", "span", "a", "b", "h1", "ul", "li", "script", "em"}

// genTree builds a small random document from fuzzer input. It stops early,
// with whatever it has, once the input runs out.
func genTree(c *fuzz.ConsumeFuzzer, depth int) *markup.Node {
	n, err := c.GetInt()
	if err != nil || depth > 4 {
		s, _ := c.GetString()
		return text(s + " x")
	}
	if n%3 == 0 {
		s, err := c.GetString()
		if err != nil {
			s = "word"
		}
		return text(s)
	}

	k := uint(n)
	tag := fuzzTags[k%uint(len(fuzzTags))]
	var children []*markup.Node
	count := int(k % 4)
	for i := 0; i < count; i++ {
		children = append(children, genTree(c, depth+1))
	}
	if tag == "a" {
		return link("/fuzz", children...)
	}
	return el(tag, children...)
}

func FuzzLayoutInvariants(f *testing.F) {
	f.Add([]byte("seed input for the layout fuzzer"), uint16(320), false)
	f.Add([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}, uint16(40), true)

	f.Fuzz(func(t *testing.T, data []byte, width uint16, breakRuns bool) {
		if width == 0 {
			return
		}
		doc := el("body", genTree(fuzz.NewConsumer(data), 0))

		engine := newTestEngine(t, monoMetrics{}, Options{BreakLongRuns: breakRuns})
		root, err := engine.Layout(doc, float64(width))
		require.NoError(t, err)
		require.NoError(t, Validate(root))
		assertHeightAdditivity(t, root)

		root.Walk(func(b *Box) {
			for _, r := range b.HitBoxes {
				require.GreaterOrEqual(t, r.Width, 0.0)
				require.GreaterOrEqual(t, r.Height, 0.0)
			}
			if b.Kind == TextBox && breakRuns && b.Width > root.Width {
				require.Equal(t, 1, len([]rune(b.Text)), "only single runes may overflow when runs are broken")
			}
		})
	})
}
