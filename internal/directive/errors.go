package directive

import (
	"errors"
	"fmt"
)

// ErrInvalidDirective is matched by every parse failure via errors.Is.
var ErrInvalidDirective = errors.New("invalid directive")

// InvalidDirectiveError reports where a directive stopped making sense.
type InvalidDirectiveError struct {
	Text   string // The complete directive.
	Pos    int    // Byte offset of the rejected part.
	Reason string
}

func (e *InvalidDirectiveError) Error() string {
	return fmt.Sprintf("invalid directive %q at offset %d: %s", e.Text, e.Pos, e.Reason)
}

func (e *InvalidDirectiveError) Unwrap() error { return ErrInvalidDirective }
