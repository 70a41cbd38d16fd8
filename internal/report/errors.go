package report

import (
	"errors"
	"fmt"
)

// ErrInvalidEnv is returned by [ParseEnv] for a malformed level value.
var ErrInvalidEnv = errors.New("invalid report settings")

// OpenError reports a report file that could not be created. The manager
// stays inactive, so activation may be retried.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("failed to open report %q: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }
