package components

import tea "charm.land/bubbletea/v2"

// MenuItem is one entry of a Menu. Disabled items are shown but skipped by
// the cursor.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list with a cursor; rendering is left to the screen.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu places the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// move steps the cursor by dir (+1 or -1) to the next enabled item and
// stays put when there is none.
func (m *Menu) move(dir int) {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

// Update moves the cursor on up/down (or k/j) and runs the selected item's
// Action on enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		if m.Selected < 0 || m.Selected >= len(m.Items) {
			break
		}
		if item := m.Items[m.Selected]; !item.Disabled && item.Action != nil {
			return m, item.Action()
		}
	}
	return m, nil
}
