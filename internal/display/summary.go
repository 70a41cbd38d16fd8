package display

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Status colors a summary value.
type Status int

const (
	StatusNone Status = iota
	StatusOK
	StatusFail
)

// Field is one key/value line of a summary.
type Field struct {
	Key    string
	Value  string
	Status Status
}

// RenderSummary lays out fields under title with aligned keys.
func RenderSummary(theme Theme, title string, fields []Field) string {
	width := 0
	for _, f := range fields {
		width = max(width, len(f.Key))
	}
	key := theme.Key.Width(width + 2)

	lines := []string{theme.Title.Render(title)}
	for _, f := range fields {
		val := f.Value
		switch f.Status {
		case StatusOK:
			val = theme.Good.Render(val)
		case StatusFail:
			val = theme.Bad.Render(val)
		}
		lines = append(lines, "  "+lipgloss.JoinHorizontal(lipgloss.Top, key.Render(f.Key+":"), val))
	}
	return strings.Join(lines, "\n") + "\n"
}

// Summary writes a rendered summary.
func (p *Printer) Summary(title string, fields []Field) error {
	_, err := io.WriteString(p.w, RenderSummary(p.theme, title, fields))
	return err
}
