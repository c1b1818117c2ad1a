// internal/browser/fontmetrics/opentype.go
package fontmetrics

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/xkilldash9x/layoutcore/internal/browser/style"
)

type variant struct {
	weight style.FontWeight
	style  style.FontStyle
}

// OpenTypeProvider measures text with the Go font family, shaping advances
// and kerning through x/image. Faces are created lazily per size and
// variant and reused.
type OpenTypeProvider struct {
	mu    sync.Mutex
	fonts map[variant]*opentype.Font
	faces map[Face]font.Face
}

// NewOpenTypeProvider parses the embedded Go fonts.
func NewOpenTypeProvider() (*OpenTypeProvider, error) {
	sources := map[variant][]byte{
		{style.WeightNormal, style.StyleNormal}: goregular.TTF,
		{style.WeightBold, style.StyleNormal}:   gobold.TTF,
		{style.WeightNormal, style.StyleItalic}: goitalic.TTF,
		{style.WeightBold, style.StyleItalic}:   gobolditalic.TTF,
	}

	p := &OpenTypeProvider{
		fonts: make(map[variant]*opentype.Font, len(sources)),
		faces: make(map[Face]font.Face),
	}
	for v, ttf := range sources {
		f, err := opentype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("failed to parse embedded font: %w", err)
		}
		p.fonts[v] = f
	}
	return p, nil
}

func (p *OpenTypeProvider) Measure(text string, cs style.Computed) (Metrics, error) {
	if cs.FontSize <= 0 {
		return Metrics{}, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	face, err := p.face(FaceOf(cs))
	if err != nil {
		return Metrics{}, err
	}
	return Metrics{
		Width:  toFloat(font.MeasureString(face, text)),
		Ascent: toFloat(face.Metrics().Ascent),
	}, nil
}

func (p *OpenTypeProvider) face(key Face) (font.Face, error) {
	if f, ok := p.faces[key]; ok {
		return f, nil
	}
	src := p.fonts[variant{weight: key.Weight, style: key.Style}]
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    key.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face at %.2fpx: %w", key.Size, err)
	}
	p.faces[key] = f
	return f, nil
}

// Close releases every cached face.
func (p *OpenTypeProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for k, f := range p.faces {
		_ = f.Close()
		delete(p.faces, k)
	}
	return nil
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
