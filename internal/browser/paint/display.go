// internal/browser/paint/display.go
package paint

import (
	"fmt"
	"strings"

	"github.com/xkilldash9x/layoutcore/internal/browser/layout"
	"github.com/xkilldash9x/layoutcore/internal/browser/style"
)

// Op names a drawing primitive.
type Op string

const (
	OpText Op = "text"
	OpLine Op = "line"
)

// Font identifies the face a text command is drawn with.
type Font struct {
	Size   float64 `json:"size"`
	Bold   bool    `json:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty"`
}

// Command is one entry of the display list. Text commands are anchored at
// the glyph baseline. Line commands run from (X, Y) to (X2, Y2).
type Command struct {
	Op    Op      `json:"op"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	X2    float64 `json:"x2,omitempty"`
	Y2    float64 `json:"y2,omitempty"`
	Text  string  `json:"text,omitempty"`
	Font  *Font   `json:"font,omitempty"`
	Color string  `json:"color"`
}

func (c Command) String() string {
	switch c.Op {
	case OpText:
		return fmt.Sprintf("text (%.2f, %.2f) %q %s", c.X, c.Y, c.Text, c.Color)
	case OpLine:
		return fmt.Sprintf("line (%.2f, %.2f)-(%.2f, %.2f) %s", c.X, c.Y, c.X2, c.Y2, c.Color)
	default:
		return fmt.Sprintf("%s (%.2f, %.2f)", c.Op, c.X, c.Y)
	}
}

// DisplayList is the paint output of one layout pass.
type DisplayList struct {
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Commands []Command `json:"commands"`
}

// Emit walks the laid-out tree in pre-order and returns its drawing
// commands. Every box draws its own content before its children; only text
// boxes have content. Whitespace-only runs draw no glyphs but keep their
// underline, so a decoration stays continuous across word gaps.
func Emit(root *layout.Box) []Command {
	var cmds []Command
	root.Walk(func(b *layout.Box) {
		if b.Kind != layout.TextBox {
			return
		}
		cs := b.Style
		baseline := b.Y + b.Baseline
		color := cs.Color.Hex()

		if strings.TrimSpace(b.Text) != "" {
			cmds = append(cmds, Command{
				Op:    OpText,
				X:     b.X,
				Y:     baseline,
				Text:  b.Text,
				Font:  fontOf(cs),
				Color: color,
			})
		}
		if cs.TextDecoration == style.DecorationUnderline && b.Width > 0 {
			// 1px below the baseline, across the whole run.
			y := baseline + 1
			cmds = append(cmds, Command{
				Op:    OpLine,
				X:     b.X,
				Y:     y,
				X2:    b.X + b.Width,
				Y2:    y,
				Color: color,
			})
		}
	})
	return cmds
}

// NewDisplayList emits root's commands sized to its border box.
func NewDisplayList(root *layout.Box) DisplayList {
	return DisplayList{
		Width:    root.Width,
		Height:   root.Height,
		Commands: Emit(root),
	}
}

func fontOf(cs style.Computed) *Font {
	return &Font{
		Size:   cs.FontSize,
		Bold:   cs.FontWeight == style.WeightBold,
		Italic: cs.FontStyle == style.StyleItalic,
	}
}
