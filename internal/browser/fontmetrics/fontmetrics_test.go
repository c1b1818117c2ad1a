// internal/browser/fontmetrics/fontmetrics_test.go
package fontmetrics

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/layoutcore/internal/browser/style"
)

func sized(px float64) style.Computed {
	cs := style.DefaultComputed()
	cs.FontSize = px
	return cs
}

func TestCoreProvider(t *testing.T) {
	p, err := NewCoreProvider("sans-serif")
	require.NoError(t, err)
	assert.Equal(t, "helvetica", p.Family())

	t.Run("widths are AFM advances", func(t *testing.T) {
		m, err := p.Measure("short", sized(10))
		require.NoError(t, err)
		assert.InDelta(t, 22.23, m.Width, 1e-9)
		assert.InDelta(t, 7.18, m.Ascent, 1e-9)

		m, err = p.Measure("", sized(10))
		require.NoError(t, err)
		assert.Zero(t, m.Width)
	})

	t.Run("width scales with size", func(t *testing.T) {
		small, err := p.Measure("scale", sized(10))
		require.NoError(t, err)
		large, err := p.Measure("scale", sized(20))
		require.NoError(t, err)
		assert.InDelta(t, small.Width*2, large.Width, 1e-9)
	})

	t.Run("bold is wider", func(t *testing.T) {
		bold := sized(10)
		bold.FontWeight = style.WeightBold
		regular, err := p.Measure("weight", sized(10))
		require.NoError(t, err)
		heavy, err := p.Measure("weight", bold)
		require.NoError(t, err)
		assert.Greater(t, heavy.Width, regular.Width)
	})

	t.Run("zero size measures nothing", func(t *testing.T) {
		m, err := p.Measure("anything", sized(0))
		require.NoError(t, err)
		assert.Equal(t, Metrics{}, m)
	})

	t.Run("unknown family", func(t *testing.T) {
		_, err := NewCoreProvider("comic sans")
		assert.Error(t, err)
	})
}

func TestCoreProviderConcurrentUse(t *testing.T) {
	p, err := NewCoreProvider("times")
	require.NoError(t, err)

	want, err := p.Measure("concurrent", sized(12))
	require.NoError(t, err)

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			got, err := p.Measure("concurrent", sized(12))
			if err != nil {
				return err
			}
			if got != want {
				return errors.New("measurement changed under concurrency")
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestOpenTypeProvider(t *testing.T) {
	p, err := NewOpenTypeProvider()
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	a, err := p.Measure("abc", sized(16))
	require.NoError(t, err)
	ab, err := p.Measure("ab", sized(16))
	require.NoError(t, err)

	assert.Greater(t, a.Width, ab.Width, "longer prefixes are wider")
	assert.Greater(t, a.Ascent, 0.0)
	assert.Less(t, a.Ascent, 16.0)

	italic := sized(16)
	italic.FontStyle = style.StyleItalic
	_, err = p.Measure("abc", italic)
	require.NoError(t, err)
	assert.Len(t, p.faces, 2, "faces are reused per size and variant")
}

type countingProvider struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (c *countingProvider) Measure(text string, cs style.Computed) (Metrics, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return Metrics{}, c.err
	}
	return Metrics{Width: float64(len(text)) * cs.FontSize / 2, Ascent: cs.FontSize * 0.8}, nil
}

func TestCache(t *testing.T) {
	t.Run("memoizes by text and face", func(t *testing.T) {
		next := &countingProvider{}
		c := NewCache(next, 0)

		first, err := c.Measure("hello", sized(10))
		require.NoError(t, err)
		second, err := c.Measure("hello", sized(10))
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, next.calls)

		_, err = c.Measure("hello", sized(12))
		require.NoError(t, err)
		assert.Equal(t, 2, next.calls, "a different size is a different face")

		hits, misses := c.Stats()
		assert.Equal(t, uint64(1), hits)
		assert.Equal(t, uint64(2), misses)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		next := &countingProvider{}
		c := NewCache(next, 1)
		_, _ = c.Measure("a", sized(10))
		_, _ = c.Measure("b", sized(10))
		_, _ = c.Measure("a", sized(10))
		assert.Equal(t, 3, next.calls)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("errors are not cached", func(t *testing.T) {
		next := &countingProvider{err: errors.New("boom")}
		c := NewCache(next, 8)
		_, err := c.Measure("x", sized(10))
		assert.Error(t, err)
		_, err = c.Measure("x", sized(10))
		assert.Error(t, err)
		assert.Equal(t, 2, next.calls)
		assert.Zero(t, c.Len())
	})
}
