// Package term provides ANSI color state and terminal detection.
//
// Colors are package-level variables because both logging and display need
// them. [Configure] sets them once during startup; when colors are disabled
// the variables are empty strings, making string concatenation a no-op.
package term

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/backmassage/muxinfo/internal/config"
)

// ANSI color codes. Empty when colors are disabled.
var (
	Red     = ""
	Yellow  = ""
	Magenta = ""
	Gray    = ""
	NC      = "" // Reset sequence.
)

// Configure resolves the color mode against stderr, where diagnostics are
// written, and sets the package-level ANSI variables.
func Configure(mode config.ColorMode) {
	if resolve(mode, os.Stderr) {
		Red = "\033[1;91m"
		Yellow = "\033[1;93m"
		Magenta = "\033[1;95m"
		Gray = "\033[0;90m"
		NC = "\033[0m"
	} else {
		Red, Yellow, Magenta, Gray, NC = "", "", "", "", ""
	}
}

// Enabled reports whether ANSI colors are currently active.
func Enabled() bool { return NC != "" }

// resolve determines whether colors should be enabled based on the configured
// mode, TTY detection, and the NO_COLOR env var (https://no-color.org).
func resolve(mode config.ColorMode, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return IsTerminal(f) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
