// internal/browser/style/color.go
package style

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Color is an RGBA color with 8 bits per channel.
type Color struct {
	R, G, B, A uint8
}

var (
	Black = Color{0, 0, 0, 255}
	Blue  = Color{0, 0, 238, 255}
)

// Hex renders the color as #rrggbb, or #rrggbbaa when not opaque.
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

var cssColors = map[string]Color{
	"black":       {0, 0, 0, 255},
	"white":       {255, 255, 255, 255},
	"gray":        {128, 128, 128, 255},
	"grey":        {128, 128, 128, 255},
	"silver":      {192, 192, 192, 255},
	"red":         {255, 0, 0, 255},
	"maroon":      {128, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"lime":        {0, 255, 0, 255},
	"blue":        {0, 0, 255, 255},
	"navy":        {0, 0, 128, 255},
	"purple":      {128, 0, 128, 255},
	"teal":        {0, 128, 128, 255},
	"orange":      {255, 165, 0, 255},
	"transparent": {0, 0, 0, 0},
}

// ParseColor accepts named colors, #rgb[a] / #rrggbb[aa] and rgb()/rgba().
func ParseColor(value string) (Color, bool) {
	value = strings.TrimSpace(strings.ToLower(value))

	if color, ok := cssColors[value]; ok {
		return color, true
	}
	if strings.HasPrefix(value, "#") {
		return parseHexColor(value)
	}
	if strings.HasPrefix(value, "rgb") {
		return parseRGBColor(value)
	}
	return Black, false
}

func parseHexColor(hex string) (Color, bool) {
	hex = strings.TrimPrefix(hex, "#")
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return Color{}, false
		}
	}

	var r, g, b, a uint8 = 0, 0, 0, 255
	switch len(hex) {
	case 3, 4:
		r = hexDigit(hex[0]) * 17
		g = hexDigit(hex[1]) * 17
		b = hexDigit(hex[2]) * 17
		if len(hex) == 4 {
			a = hexDigit(hex[3]) * 17
		}
	case 6, 8:
		r = hexDigit(hex[0])<<4 | hexDigit(hex[1])
		g = hexDigit(hex[2])<<4 | hexDigit(hex[3])
		b = hexDigit(hex[4])<<4 | hexDigit(hex[5])
		if len(hex) == 8 {
			a = hexDigit(hex[6])<<4 | hexDigit(hex[7])
		}
	default:
		return Color{}, false
	}
	return Color{R: r, G: g, B: b, A: a}, true
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func hexDigit(c byte) uint8 {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

var rgbRegex = regexp.MustCompile(`rgba?\((.*?)\)`)

func parseRGBColor(value string) (Color, bool) {
	matches := rgbRegex.FindStringSubmatch(value)
	if len(matches) != 2 {
		return Color{}, false
	}

	values := strings.FieldsFunc(matches[1], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(values) < 3 || len(values) > 4 {
		return Color{}, false
	}

	c := Color{
		R: parseColorComponent(values[0], false),
		G: parseColorComponent(values[1], false),
		B: parseColorComponent(values[2], false),
		A: 255,
	}
	if len(values) == 4 {
		c.A = parseColorComponent(values[3], true)
	}
	return c, true
}

func parseColorComponent(value string, isAlpha bool) uint8 {
	if strings.HasSuffix(value, "%") {
		percent, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
		if err != nil {
			return 0
		}
		return uint8(clamp(percent/100.0*255.0+0.5, 0, 255))
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		if isAlpha {
			return 255
		}
		return 0
	}
	if isAlpha {
		return uint8(clamp(f*255.0+0.5, 0, 255))
	}
	return uint8(clamp(f+0.5, 0, 255))
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
