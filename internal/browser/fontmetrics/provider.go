// internal/browser/fontmetrics/provider.go
package fontmetrics

import (
	"github.com/xkilldash9x/layoutcore/internal/browser/style"
)

// Metrics describes the rendered extent of a text run.
type Metrics struct {
	// Width is the advance of the whole run in pixels.
	Width float64
	// Ascent is the height of the font above its baseline in pixels.
	Ascent float64
}

// Provider measures text for a computed style. Implementations must return
// the same metrics for the same text and style.
type Provider interface {
	Measure(text string, cs style.Computed) (Metrics, error)
}

// Face is the part of a computed style that affects measurement.
type Face struct {
	Size   float64
	Weight style.FontWeight
	Style  style.FontStyle
}

// FaceOf extracts the font identity from a computed style.
func FaceOf(cs style.Computed) Face {
	return Face{Size: cs.FontSize, Weight: cs.FontWeight, Style: cs.FontStyle}
}
