package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/moodcheck/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for framed screens.
// All boxes are rendered at this width so they visually align.
func ContentWidth(frameWidth int) int {
	// Leave room for frame border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Frame wraps content in a double border, centering it vertically and
// horizontally within the given dimensions.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return theme.Card.
		Width(cw - 2).
		Render(content)
}
