package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/moodcheck/internal/ui/components"
	"github.com/abhisek/moodcheck/internal/ui/theme"
)

const titleFull = "m o o d c h e c k"

const titleCompact = "moodcheck"

// renderTitle returns the styled title with a subtitle in full mode.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Width(cw).
		Align(lipgloss.Center)

	if compact {
		return style.Render(titleCompact)
	}
	return style.Render(titleFull) + "\n" +
		theme.Subtitle.Width(cw).Render("a short check-in on how you have been feeling")
}

// renderStatsBar renders the history summary in a bordered box.
func renderStatsBar(st stats, cw int) string {
	countStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var text string
	switch {
	case st.err != nil:
		text = theme.ErrorText.Render("history unavailable")
	case st.total == 0:
		text = dimStyle.Render("no assessments yet")
	default:
		plural := "s"
		if st.total == 1 {
			plural = ""
		}
		text = countStyle.Render(fmt.Sprintf("%d assessment%s", st.total, plural)) +
			dimStyle.Render("  ·  last: ") +
			lipgloss.NewStyle().Foreground(theme.Text).Render(st.lastLabel)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 26

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(m components.Menu, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	disabledBtn := normalBtn.Foreground(theme.TextDim)

	var buttons []string
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			buttons = append(buttons, disabledBtn.Render(item.Label))
		case i == m.Selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+item.Label))
		default:
			buttons = append(buttons, normalBtn.Render(item.Label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for small terminals
// where bordered buttons would overflow.
func renderMenuCompact(m components.Menu, cw int) string {
	var lines []string
	for i, item := range m.Items {
		var line string
		switch {
		case item.Disabled:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + item.Label)
		case i == m.Selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Primary).
				Bold(true).
				Render(" ▸ " + item.Label + " ")
		default:
			line = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + item.Label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}
