package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/montrey/sift/search"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	matchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	plainStyle    = lipgloss.NewStyle()
)

// Highlight renders text with span drawn in the match style and the rest
// in base. Invalid spans render the text unchanged.
func Highlight(text string, span search.Span, base lipgloss.Style) string {
	before, match, after, ok := search.Segments(text, span)
	if !ok {
		return base.Render(text)
	}
	return renderNonEmpty(base, before) + matchStyle.Render(match) + renderNonEmpty(base, after)
}

func renderNonEmpty(style lipgloss.Style, s string) string {
	if s == "" {
		return ""
	}
	return style.Render(s)
}
