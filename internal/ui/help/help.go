package help

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key         string
	Description string
}

// GetGlobalKeys returns global key bindings
func GetGlobalKeys() []KeyBinding {
	return []KeyBinding{
		{"?", "Toggle help"},
		{"q, Ctrl+C", "Quit application"},
		{"Esc/Enter", "Dismiss error"},
		{"1-5", "Switch entity (leads, contacts, ...)"},
		{"Tab", "Next entity"},
		{"r", "Refresh record list"},
	}
}

// GetListKeys returns record list key bindings
func GetListKeys() []KeyBinding {
	return []KeyBinding{
		{"↑/k", "Move up"},
		{"↓/j", "Move down"},
		{"Ctrl+U", "Page up"},
		{"Ctrl+D", "Page down"},
		{"x", "Export records to CSV"},
		{"Shift+X", "Export records to JSON"},
		{"h", "Recent filter history"},
	}
}

// GetFilterKeys returns filter panel key bindings
func GetFilterKeys() []KeyBinding {
	return []KeyBinding{
		{"f", "Open filter panel"},
		{"a/n", "Add condition"},
		{"e", "Edit condition"},
		{"d/x", "Delete condition"},
		{"o", "Toggle AND/OR"},
		{"Enter", "Apply filter"},
		{"c", "Clear all conditions"},
		{"s", "Save as preset"},
		{"p", "Browse presets"},
		{"Esc", "Close panel"},
	}
}

// Render creates the help view
func Render(width, height int) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("62")).
		Padding(1, 0)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("75")).
		Padding(0, 0, 0, 2)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(20)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	renderSection := func(b *strings.Builder, title string, keys []KeyBinding) {
		b.WriteString(sectionStyle.Render(title))
		b.WriteString("\n")
		for _, kb := range keys {
			b.WriteString("  ")
			b.WriteString(keyStyle.Render(kb.Key))
			b.WriteString(descStyle.Render(kb.Description))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("lazycrm - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	renderSection(&b, "Global", GetGlobalKeys())
	renderSection(&b, "Record List", GetListKeys())
	renderSection(&b, "Filters", GetFilterKeys())

	b.WriteString(lipgloss.NewStyle().Faint(true).Render("Press '?' or Esc to close help"))

	// Wrap in a box
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(width - 4).
		Height(height - 4)

	return boxStyle.Render(b.String())
}
