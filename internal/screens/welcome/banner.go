package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/moodcheck/internal/ui/theme"
)

const bannerArt = `
 ███╗   ███╗ ██████╗  ██████╗ ██████╗  ██████╗██╗  ██╗███████╗ ██████╗██╗  ██╗
 ████╗ ████║██╔═══██╗██╔═══██╗██╔══██╗██╔════╝██║  ██║██╔════╝██╔════╝██║ ██╔╝
 ██╔████╔██║██║   ██║██║   ██║██║  ██║██║     ███████║█████╗  ██║     █████╔╝
 ██║╚██╔╝██║██║   ██║██║   ██║██║  ██║██║     ██╔══██║██╔══╝  ██║     ██╔═██╗
 ██║ ╚═╝ ██║╚██████╔╝╚██████╔╝██████╔╝╚██████╗██║  ██║███████╗╚██████╗██║  ██╗
 ╚═╝     ╚═╝ ╚═════╝  ╚═════╝ ╚═════╝  ╚═════╝╚═╝  ╚═╝╚══════╝ ╚═════╝╚═╝  ╚═╝`

const bannerCompact = "M O O D C H E C K"

// bannerMinWidth is the narrowest width that fits bannerArt.
const bannerMinWidth = 80

// RenderBanner returns the MOODCHECK banner styled in the primary color.
// Uses a compact fallback for terminals narrower than bannerMinWidth.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
