// internal/browser/style/measurement.go
package style

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit is the unit a Measurement is expressed in.
type Unit int

const (
	Pixels Unit = iota
	Ems
)

func (u Unit) String() string {
	switch u {
	case Pixels:
		return "px"
	case Ems:
		return "em"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// Measurement is a length that may be relative to a font size.
type Measurement struct {
	Value float64
	Unit  Unit
}

// Px returns an absolute measurement.
func Px(v float64) Measurement { return Measurement{Value: v, Unit: Pixels} }

// Em returns a measurement relative to a reference font size.
func Em(v float64) Measurement { return Measurement{Value: v, Unit: Ems} }

// Apply resolves the measurement to pixels. Em values scale reference.
func (m Measurement) Apply(reference float64) float64 {
	if m.Unit == Ems {
		return m.Value * reference
	}
	return m.Value
}

func (m Measurement) String() string {
	return strconv.FormatFloat(m.Value, 'f', -1, 64) + m.Unit.String()
}

// ParseMeasurement understands px, em, pt and percentages. A bare number is
// taken as pixels unless unitlessAsEm is set, as it is for line-height.
func ParseMeasurement(s string, unitlessAsEm bool) (Measurement, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Measurement{}, fmt.Errorf("empty measurement")
	}
	if s == "auto" {
		return Px(0), nil
	}

	num, unit := splitNumber(s)
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Measurement{}, fmt.Errorf("invalid measurement %q: %w", s, err)
	}

	switch unit {
	case "":
		if unitlessAsEm {
			return Em(v), nil
		}
		return Px(v), nil
	case "px":
		return Px(v), nil
	case "em", "rem":
		return Em(v), nil
	case "pt":
		return Px(v * 96 / 72), nil
	case "%":
		return Em(v / 100), nil
	default:
		return Measurement{}, fmt.Errorf("unsupported unit %q in %q", unit, s)
	}
}

func splitNumber(s string) (string, string) {
	i := 0
	for i < len(s) {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' {
			i++
			continue
		}
		break
	}
	return s[:i], s[i:]
}

// EdgeSpec holds unresolved measurements for the four sides of a box.
type EdgeSpec struct {
	Top, Right, Bottom, Left Measurement
}

// Resolve converts the edges to pixels against a font size.
func (e EdgeSpec) Resolve(fontSize float64) Edges {
	return Edges{
		Top:    e.Top.Apply(fontSize),
		Right:  e.Right.Apply(fontSize),
		Bottom: e.Bottom.Apply(fontSize),
		Left:   e.Left.Apply(fontSize),
	}
}

// Edges are resolved pixel offsets.
type Edges struct {
	Top, Right, Bottom, Left float64
}
