package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/moodcheck/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle   MascotVariant = iota // no history yet, or Normal
	MascotBright                      // last result was Happy
	MascotCaring                      // last result was Sad
)

const mascotIdle = `╭───────╮
│ ◠   ◠ │
│   ‿   │
╰───────╯`

const mascotBright = `╭───────╮
│ ◕   ◕ │
│  ‿‿‿  │
╰───────╯`

const mascotCaring = `╭───────╮
│ ◡   ◡ │
│   ♥   │
╰───────╯`

// mascotFor picks the variant for the most recent label.
func mascotFor(label string) MascotVariant {
	switch label {
	case "Happy":
		return MascotBright
	case "Sad":
		return MascotCaring
	}
	return MascotIdle
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotBright:
		art = mascotBright
		fg = theme.Success
	case MascotCaring:
		art = mascotCaring
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
