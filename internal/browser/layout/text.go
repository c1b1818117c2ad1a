// internal/browser/layout/text.go
package layout

import (
	"fmt"
	"math"
	"regexp"

	"github.com/xkilldash9x/layoutcore/internal/browser/fontmetrics"
	"github.com/xkilldash9x/layoutcore/internal/browser/markup"
	"github.com/xkilldash9x/layoutcore/internal/browser/style"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Segments splits text into the atomic runs that line wrapping moves as a
// unit. Whitespace runs collapse to one space, which stays attached to the
// end of the preceding segment. The final segment carries no trailing space
// and empty segments are dropped.
func Segments(text string) []string {
	parts := whitespaceRun.Split(text, -1)
	segs := make([]string, 0, len(parts))
	for i, p := range parts {
		if i < len(parts)-1 {
			p += " "
		}
		if p != "" {
			segs = append(segs, p)
		}
	}
	return segs
}

// FitResult is the longest prefix of a text that fits a width limit.
type FitResult struct {
	Text  string
	Width float64
}

// Fit binary-searches the longest rune prefix of text whose width, truncated
// to whole pixels, does not exceed limit. Widths must grow with prefix
// length for the result to be the longest such prefix.
func Fit(p fontmetrics.Provider, text string, cs style.Computed, limit float64) (FitResult, error) {
	if limit < 0 || math.IsNaN(limit) {
		return FitResult{}, fmt.Errorf("fit limit must be >= 0, got %v", limit)
	}

	runes := []rune(text)
	var best FitResult
	low, high := 0, len(runes)
	for low <= high {
		mid := (low + high) / 2
		candidate := string(runes[:mid])

		width, err := snappedWidth(p, candidate, cs)
		if err != nil {
			return FitResult{}, err
		}
		if width <= limit {
			best = FitResult{Text: candidate, Width: width}
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	return best, nil
}

func snappedWidth(p fontmetrics.Provider, text string, cs style.Computed) (float64, error) {
	if text == "" {
		return 0, nil
	}
	m, err := measure(p, text, cs)
	if err != nil {
		return 0, err
	}
	return math.Trunc(m.Width), nil
}

// measure calls the provider and rejects extents layout cannot use.
func measure(p fontmetrics.Provider, text string, cs style.Computed) (fontmetrics.Metrics, error) {
	m, err := p.Measure(text, cs)
	if err != nil {
		return fontmetrics.Metrics{}, err
	}
	if invalidExtent(m.Width) || invalidExtent(m.Ascent) {
		return fontmetrics.Metrics{}, &Error{
			Kind:   ErrInvalidMeasurement,
			Tag:    markup.TextTag,
			Detail: fmt.Sprintf("%q measured width=%v ascent=%v", text, m.Width, m.Ascent),
		}
	}
	return m, nil
}

func invalidExtent(v float64) bool {
	return v < 0 || math.IsNaN(v) || math.IsInf(v, 0)
}
