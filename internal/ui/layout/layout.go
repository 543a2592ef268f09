// Package layout draws the chrome around every screen: a header bar with
// the app name, screen title and classifier status, and a footer of key
// hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/moodcheck/internal/ui/theme"
)

// Terminal size limits. Below the minimum only a resize message is shown;
// below the compact thresholds screens drop decoration.
const (
	MinWidth  = 80
	MinHeight = 24

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func (h KeyHint) render() string {
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) + " " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
}

func IsCompactWidth(width int) bool   { return width < CompactWidthThreshold }
func IsCompactHeight(height int) bool { return height < CompactHeightThreshold }

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(fmt.Sprintf(
			"Terminal too small\n\nmoodcheck needs at least %d x %d\n(currently %d x %d)",
			MinWidth, MinHeight, width, height,
		)))
}

// bar is the bordered strip used for both header and footer.
func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader renders the app name on the left, title centered and status
// (e.g. the active classifier) on the right.
func RenderHeader(title, status string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  moodcheck")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(status)

	inner := max(width-4, 0)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)

	// Center the title on the bar, not on the space left over.
	leftGap := max((inner-cw)/2-lw, 1)
	rightGap := max(inner-lw-leftGap-cw-rw, 1)

	return bar(width).Render(left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right)
}

// RenderFooter renders key hints separated by wide gaps.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = h.render()
	}
	return bar(width).Render("  " + strings.Join(parts, "   "))
}

// ContentHeight is the number of rows left between header and footer.
func ContentHeight(header, footer string, height int) int {
	return max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}

// RenderFrame stacks header, content and footer, padding content to fill
// the terminal.
func RenderFrame(header, content, footer string, width, height int) string {
	body := lipgloss.NewStyle().
		Width(width).
		Height(ContentHeight(header, footer, height)).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
