package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kherve/lazycrm/internal/ui/theme"
)

// ErrorOverlay displays an error message centered over the app
type ErrorOverlay struct {
	Title   string
	Message string
	Theme   theme.Theme
	Width   int
}

// NewErrorOverlay creates a new error overlay
func NewErrorOverlay(th theme.Theme) *ErrorOverlay {
	return &ErrorOverlay{
		Theme: th,
		Width: 60,
	}
}

// Set updates the overlay content
func (e *ErrorOverlay) Set(title, message string) {
	e.Title = title
	e.Message = message
}

// View renders the overlay
func (e *ErrorOverlay) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(e.Theme.Error)
	b.WriteString(titleStyle.Render(e.Title))
	b.WriteString("\n\n")
	b.WriteString(e.Message)
	b.WriteString("\n\n")

	hintStyle := lipgloss.NewStyle().Foreground(e.Theme.Muted).Italic(true)
	b.WriteString(hintStyle.Render("Press Esc or Enter to dismiss"))

	containerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(e.Theme.Error).
		Width(e.Width).
		Padding(1, 2)

	return containerStyle.Render(b.String())
}
