// internal/browser/fontmetrics/core.go
package fontmetrics

import (
	"fmt"
	"strings"
	"sync"

	"codeberg.org/go-pdf/fpdf"

	"github.com/xkilldash9x/layoutcore/internal/browser/style"
)

// AFM ascenders of the standard PDF core fonts, in 1/1000 em. The embedded
// core font tables carry widths only.
var coreAscenders = map[string]float64{
	"helvetica": 718,
	"times":     683,
	"courier":   629,
}

// CoreProvider measures text with the metrics of the standard PDF core
// fonts. The widths are exact AFM advances, which makes results identical
// on every platform.
type CoreProvider struct {
	mu     sync.Mutex
	pdf    *fpdf.Fpdf
	family string
}

// NewCoreProvider creates a provider for one core font family. Accepted
// names are helvetica (sans-serif, arial), times (serif) and courier
// (monospace).
func NewCoreProvider(family string) (*CoreProvider, error) {
	name, err := CoreFamily(family)
	if err != nil {
		return nil, err
	}
	return &CoreProvider{
		// Points as the unit, so one user unit is one pixel at 72 dpi.
		pdf:    fpdf.New("P", "pt", "A4", ""),
		family: name,
	}, nil
}

// CoreFamily maps a family name or generic alias to a core font name.
func CoreFamily(family string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(family)) {
	case "", "helvetica", "arial", "sans-serif", "sans":
		return "helvetica", nil
	case "times", "times-roman", "times new roman", "serif":
		return "times", nil
	case "courier", "monospace", "mono":
		return "courier", nil
	default:
		return "", fmt.Errorf("unknown core font family %q", family)
	}
}

// Family returns the normalized family name.
func (p *CoreProvider) Family() string { return p.family }

func (p *CoreProvider) Measure(text string, cs style.Computed) (Metrics, error) {
	if cs.FontSize <= 0 {
		return Metrics{}, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.pdf.SetFont(p.family, coreStyle(cs), cs.FontSize)
	if err := p.pdf.Error(); err != nil {
		return Metrics{}, fmt.Errorf("core font %s: %w", p.family, err)
	}

	ascent := float64(p.pdf.GetFontDesc("", "").Ascent)
	if ascent == 0 {
		ascent = coreAscenders[p.family]
	}
	return Metrics{
		Width:  p.pdf.GetStringWidth(text),
		Ascent: ascent * cs.FontSize / 1000,
	}, nil
}

func coreStyle(cs style.Computed) string {
	var s string
	if cs.FontWeight == style.WeightBold {
		s += "B"
	}
	if cs.FontStyle == style.StyleItalic {
		s += "I"
	}
	return s
}
