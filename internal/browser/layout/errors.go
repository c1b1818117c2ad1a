// internal/browser/layout/errors.go
package layout

import (
	"errors"
	"fmt"
)

// Error kinds. Test with errors.Is.
var (
	// ErrMissingWidth means block layout ran on a box whose width had not
	// been assigned by its parent or the caller.
	ErrMissingWidth = errors.New("missing width")
	// ErrUnsupportedDisplay means flow met a display value it cannot lay out.
	ErrUnsupportedDisplay = errors.New("unsupported display")
	// ErrInvalidMeasurement means the metrics provider returned a negative
	// or non-numeric extent.
	ErrInvalidMeasurement = errors.New("invalid measurement")
)

// Error is a layout failure attached to the box being laid out.
type Error struct {
	Kind   error
	Tag    string
	Detail string
}

func newError(kind error, b *Box, format string, args ...any) *Error {
	e := &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
	if b != nil {
		e.Tag = b.TagName()
	}
	return e
}

func (e *Error) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("layout: %v at <%s>: %s", e.Kind, e.Tag, e.Detail)
	}
	return fmt.Sprintf("layout: %v: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Kind }
