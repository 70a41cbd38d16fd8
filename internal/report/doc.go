// Package report writes the diagnostic report file.
//
// A [Manager] is created once per process and activated at most once. On
// activation it opens a file named from a template (default "%p-%t.log"),
// then wraps the logger's sink so every message still reaches the console
// and messages at or above the report threshold are also appended to the
// file. There is no way to deactivate a report; the file stays open until
// the process exits.
package report
