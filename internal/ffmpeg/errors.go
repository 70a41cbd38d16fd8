package ffmpeg

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNotFound is returned when the ffmpeg binary cannot be resolved.
var ErrNotFound = errors.New("ffmpeg not found")

// ExitError is a failed ffmpeg invocation.
type ExitError struct {
	Args   []string
	Code   int
	Stderr string
	Err    error
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("ffmpeg %s: exit %d", strings.Join(e.Args, " "), e.Code)
	if last := lastLine(e.Stderr); last != "" {
		msg += ": " + last
	}
	return msg
}

func (e *ExitError) Unwrap() error { return e.Err }

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}

// Pre-compiled regexes for classifying ffmpeg stderr.
var (
	reUnrecognizedOption = regexp.MustCompile(
		`(?i)Unrecognized option|Missing argument for option`)

	reMissingLibrary = regexp.MustCompile(
		`error while loading shared libraries|Library not loaded|cannot open shared object file`)
)

// MatchUnrecognizedOption reports whether stderr says the build does not
// know one of the listing options, as older releases do for -devices.
func MatchUnrecognizedOption(stderr string) bool {
	return reUnrecognizedOption.MatchString(stderr)
}

// MatchMissingLibrary reports whether the binary failed to start because a
// shared library is missing.
func MatchMissingLibrary(stderr string) bool {
	return reMissingLibrary.MatchString(stderr)
}

// IsUnrecognizedOption reports whether err is an [*ExitError] caused by an
// unknown option.
func IsUnrecognizedOption(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && MatchUnrecognizedOption(exitErr.Stderr)
}
