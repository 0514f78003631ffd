package components

import (
	"github.com/charmbracelet/lipgloss"
)

// Panel is a bordered container for a region of the screen
type Panel struct {
	Title   string
	Badge   string
	Content string
	Width   int
	Height  int
	Style   lipgloss.Style
}

// View renders the panel
func (p *Panel) View() string {
	if p.Width <= 0 || p.Height <= 0 {
		return ""
	}

	style := p.Style.
		Width(p.Width).
		Height(p.Height).
		Border(lipgloss.RoundedBorder())

	content := p.Content
	if p.Title != "" {
		titleStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
		title := titleStyle.Render(p.Title)
		if p.Badge != "" {
			badgeStyle := lipgloss.NewStyle().Padding(0, 1).Bold(true)
			title += badgeStyle.Render("[" + p.Badge + "]")
		}
		content = title + "\n" + content
	}

	return style.Render(content)
}
