package generation

import (
	"errors"
	"fmt"

	"bsp-dungeon/geometry"
)

// Failure classes reported by a generation pass. Match them with errors.Is.
var (
	ErrInvalidConfiguration       = errors.New("invalid configuration")
	ErrDegenerateRoom             = errors.New("degenerate room")
	ErrUnresolvedCorridorEndpoint = errors.New("unresolved corridor endpoint")
)

// GenerationError carries the bounds of the node that failed
type GenerationError struct {
	Kind   error
	Bounds geometry.Rect
	Reason string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%v: %s [%v]", e.Kind, e.Reason, e.Bounds)
}

func (e *GenerationError) Unwrap() error {
	return e.Kind
}

func newError(kind error, bounds geometry.Rect, format string, args ...any) *GenerationError {
	return &GenerationError{
		Kind:   kind,
		Bounds: bounds,
		Reason: fmt.Sprintf(format, args...),
	}
}
