package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/moodcheck/internal/ui/theme"
)

// StepBar shows wizard progress as "Question n of N" followed by one
// segment per question, filled up to the current one.
type StepBar struct {
	Step  int // zero-based
	Total int
	Width int
}

func (b StepBar) View() string {
	label := lipgloss.NewStyle().Foreground(theme.Text).
		Render(fmt.Sprintf("Question %d of %d", b.Step+1, b.Total))
	if b.Total <= 0 {
		return label
	}

	// Segments are at least two cells wide with a one-cell gap.
	avail := b.Width - lipgloss.Width(label) - 2
	seg := max((avail-(b.Total-1))/b.Total, 2)

	parts := make([]string, b.Total)
	for i := range parts {
		style := theme.ProgressEmpty
		if i <= b.Step {
			style = theme.ProgressFilled
		}
		parts[i] = style.Render(strings.Repeat(" ", seg))
	}
	return label + "  " + strings.Join(parts, " ")
}
