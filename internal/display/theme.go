// Package display renders listings, summaries and the banner as text.
//
// Row formatting mirrors ffmpeg's own listing layout so existing scripts
// that parse "ffmpeg -formats" output also parse ours. Only headers,
// legends and summaries are styled; rows are always plain.
package display

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/backmassage/muxinfo/internal/term"
)

// Theme holds the lipgloss styles used for decoration.
type Theme struct {
	Title  lipgloss.Style
	Legend lipgloss.Style
	Key    lipgloss.Style
	Good   lipgloss.Style
	Bad    lipgloss.Style
	Banner lipgloss.Style
}

// NewTheme returns styled output when color is true and plain styles
// otherwise.
func NewTheme(color bool) Theme {
	if !color {
		plain := lipgloss.NewStyle()
		return Theme{Title: plain, Legend: plain, Key: plain, Good: plain, Bad: plain, Banner: plain}
	}
	return Theme{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Legend: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Key:    lipgloss.NewStyle().Bold(true),
		Good:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Bad:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Banner: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
	}
}

// DefaultTheme follows the color mode chosen by [term.Configure].
func DefaultTheme() Theme {
	return NewTheme(term.Enabled())
}
