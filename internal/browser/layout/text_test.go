// internal/browser/layout/text_test.go
package layout

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/layoutcore/internal/browser/fontmetrics"
	"github.com/xkilldash9x/layoutcore/internal/browser/style"
)

func tenPixelSans(t *testing.T) (fontmetrics.Provider, style.Computed) {
	t.Helper()
	p, err := fontmetrics.NewCoreProvider("helvetica")
	require.NoError(t, err)
	cs := style.DefaultComputed()
	cs.FontSize = 10
	return p, cs
}

func TestFit(t *testing.T) {
	p, cs := tenPixelSans(t)

	tests := []struct {
		name  string
		text  string
		limit float64
		want  FitResult
	}{
		{"empty", "", 100, FitResult{Text: "", Width: 0}},
		{"fits whole", "short", 100, FitResult{Text: "short", Width: 22}},
		{"breaks after a space", "short but long enough to break", 100, FitResult{Text: "short but long enough ", Width: 99}},
		{"remainder fits", "to break", 100, FitResult{Text: "to break", Width: 36}},
		{"breaks inside a word", "to break and then break again", 100, FitResult{Text: "to break and then brea", Width: 100}},
		{"second break", "k again", 100, FitResult{Text: "k again", Width: 32}},
		{"zero limit", "short", 0, FitResult{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Fit(p, tt.text, cs, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFitProperties(t *testing.T) {
	p, cs := tenPixelSans(t)
	const sentence = "the quick brown fox jumps over the lazy dog"

	prevLen := -1
	for limit := 0.0; limit <= 220; limit += 3 {
		got, err := Fit(p, sentence, cs, limit)
		require.NoError(t, err)

		assert.LessOrEqual(t, got.Width, limit, "width never exceeds the limit")
		assert.True(t, strings.HasPrefix(sentence, got.Text), "result is a prefix")
		assert.GreaterOrEqual(t, len(got.Text), prevLen, "prefix grows with the limit")
		prevLen = len(got.Text)

		if len(got.Text) < len(sentence) {
			longer := sentence[:len(got.Text)+1]
			m, err := p.Measure(longer, cs)
			require.NoError(t, err)
			assert.Greater(t, math.Trunc(m.Width), limit, "one more rune would not fit")
		}
	}
}

func TestFitCountsRunesNotBytes(t *testing.T) {
	got, err := Fit(monoMetrics{}, "ééééé", style.Computed{FontSize: 10}, 15)
	require.NoError(t, err)
	assert.Equal(t, "ééé", got.Text)
	assert.Equal(t, 15.0, got.Width)
}

func TestFitRejects(t *testing.T) {
	p, cs := tenPixelSans(t)

	_, err := Fit(p, "short", cs, -1)
	assert.Error(t, err)

	_, err = Fit(brokenMetrics{width: math.NaN()}, "short", cs, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidMeasurement))

	_, err = Fit(brokenMetrics{width: -3}, "short", cs, 10)
	assert.True(t, errors.Is(err, ErrInvalidMeasurement))
}

func TestSegments(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"word", []string{"word"}},
		{"short but  long\n\tenough", []string{"short ", "but ", "long ", "enough"}},
		{"trailing ", []string{"trailing "}},
		{" leading", []string{" ", "leading"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Segments(tt.in))
		})
	}
}
