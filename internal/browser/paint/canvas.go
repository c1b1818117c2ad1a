// internal/browser/paint/canvas.go
package paint

import "fmt"

// Canvas executes display-list commands against some output surface.
type Canvas interface {
	DrawText(x, y float64, text string, font Font, color string) error
	DrawLine(x1, y1, x2, y2 float64, color string) error
}

// Execute replays commands on c in order and stops at the first failure.
func Execute(c Canvas, cmds []Command) error {
	for i, cmd := range cmds {
		var err error
		switch cmd.Op {
		case OpText:
			var font Font
			if cmd.Font != nil {
				font = *cmd.Font
			}
			err = c.DrawText(cmd.X, cmd.Y, cmd.Text, font, cmd.Color)
		case OpLine:
			err = c.DrawLine(cmd.X, cmd.Y, cmd.X2, cmd.Y2, cmd.Color)
		default:
			err = fmt.Errorf("unknown op %q", cmd.Op)
		}
		if err != nil {
			return fmt.Errorf("command %d (%s): %w", i, cmd.Op, err)
		}
	}
	return nil
}
