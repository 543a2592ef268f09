package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/moodcheck/internal/ui/theme"
)

// ChoiceList is an option selector. In single mode the option under the
// cursor is the selection; in multi mode space toggles the option under
// the cursor.
type ChoiceList struct {
	Options []string
	Multi   bool
	Cursor  int
	checked []bool
}

// NewChoiceList creates a selector with the given labels pre-selected.
// Unknown labels are ignored. In single mode the cursor starts on the
// first pre-selected option.
func NewChoiceList(options []string, multi bool, selected []string) ChoiceList {
	c := ChoiceList{
		Options: options,
		Multi:   multi,
		checked: make([]bool, len(options)),
	}
	first := -1
	for _, label := range selected {
		for i, o := range options {
			if o == label {
				c.checked[i] = true
				if first < 0 {
					first = i
				}
			}
		}
	}
	if first >= 0 {
		c.Cursor = first
	}
	return c
}

// Update handles keyboard navigation and toggling.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(c.Options) == 0 {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space", "x":
		if c.Multi {
			checked := make([]bool, len(c.checked))
			copy(checked, c.checked)
			checked[c.Cursor] = !checked[c.Cursor]
			c.checked = checked
		}
	}
	return c, nil
}

// Selected returns the chosen labels in option order.
func (c ChoiceList) Selected() []string {
	if !c.Multi {
		if len(c.Options) == 0 {
			return nil
		}
		return []string{c.Options[c.Cursor]}
	}
	var out []string
	for i, on := range c.checked {
		if on {
			out = append(out, c.Options[i])
		}
	}
	return out
}

// View renders the option list.
func (c ChoiceList) View() string {
	var s string
	for i, opt := range c.Options {
		var mark string
		switch {
		case c.Multi && c.checked[i]:
			mark = "[x]"
		case c.Multi:
			mark = "[ ]"
		case i == c.Cursor:
			mark = "(•)"
		default:
			mark = "( )"
		}

		prefix := "  "
		if i == c.Cursor {
			prefix = "▸ "
		}
		line := prefix + mark + " " + opt

		var style lipgloss.Style
		switch {
		case i == c.Cursor:
			style = theme.Selected
		case c.Multi && c.checked[i]:
			style = theme.Checked
		default:
			style = theme.Unselected
		}
		s += style.Render(line) + "\n"
	}
	return s
}
