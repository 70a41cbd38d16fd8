// Package directive parses option strings that combine flag toggles with an
// optional level, such as "+repeat+level+debug" or "-time" or "32".
//
// A [Grammar] supplies the flag keywords and level names; the grammar rules
// are shared by every option that uses it. See [Grammar.Parse] for the
// rules.
package directive
