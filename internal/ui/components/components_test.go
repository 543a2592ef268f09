package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func text(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestChoiceList_SingleFollowsCursor(t *testing.T) {
	c := NewChoiceList([]string{"A", "B", "C"}, false, nil)
	assert.Equal(t, []string{"A"}, c.Selected())

	c, _ = c.Update(key(tea.KeyDown))
	c, _ = c.Update(key(tea.KeyDown))
	c, _ = c.Update(key(tea.KeyDown))
	assert.Equal(t, []string{"C"}, c.Selected())

	c, _ = c.Update(text('k'))
	assert.Equal(t, []string{"B"}, c.Selected())
}

func TestChoiceList_SinglePreselected(t *testing.T) {
	c := NewChoiceList([]string{"A", "B", "C"}, false, []string{"C"})
	assert.Equal(t, 2, c.Cursor)
	assert.Equal(t, []string{"C"}, c.Selected())

	c = NewChoiceList([]string{"A", "B"}, false, []string{"Z"})
	assert.Equal(t, []string{"A"}, c.Selected())
}

func TestChoiceList_MultiToggle(t *testing.T) {
	c := NewChoiceList([]string{"A", "B", "C"}, true, []string{"C"})
	assert.Equal(t, []string{"C"}, c.Selected())

	c, _ = c.Update(key(tea.KeyUp))
	c, _ = c.Update(key(tea.KeySpace))
	assert.Equal(t, []string{"B", "C"}, c.Selected())

	c, _ = c.Update(key(tea.KeyDown))
	c, _ = c.Update(text('x'))
	assert.Equal(t, []string{"B"}, c.Selected())
}

func TestChoiceList_ToggleDoesNotAliasCopies(t *testing.T) {
	c := NewChoiceList([]string{"A", "B"}, true, nil)
	before := c

	c, _ = c.Update(key(tea.KeySpace))
	assert.Equal(t, []string{"A"}, c.Selected())
	assert.Empty(t, before.Selected())
}

func TestChoiceList_View(t *testing.T) {
	c := NewChoiceList([]string{"Walk", "Read"}, true, []string{"Read"})
	view := c.View()
	assert.Contains(t, view, "[ ] Walk")
	assert.Contains(t, view, "[x] Read")
}

func TestMenu_SkipsDisabled(t *testing.T) {
	called := ""
	m := NewMenu([]MenuItem{
		{Label: "Disabled", Disabled: true},
		{Label: "Start", Action: func() tea.Cmd { called = "start"; return nil }},
		{Label: "Exit", Action: func() tea.Cmd { called = "exit"; return nil }},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(key(tea.KeyUp))
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeyEnter))
	assert.Equal(t, "exit", called)
}

func TestButton_View(t *testing.T) {
	assert.True(t, strings.Contains(NewButton("Next", "→", true).View(), "▸ Next [→]"))
	assert.False(t, strings.Contains(NewButton("Next", "", false).View(), "▸"))
}

func TestMenu_AllDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "A", Disabled: true}, {Label: "B", Disabled: true}})
	assert.Equal(t, 0, m.Selected)

	m, cmd := m.Update(key(tea.KeyEnter))
	assert.Nil(t, cmd)
	m, _ = m.Update(key(tea.KeyDown))
	assert.Equal(t, 0, m.Selected)
}

func TestStepBar_View(t *testing.T) {
	view := StepBar{Step: 2, Total: 10, Width: 72}.View()
	assert.Contains(t, view, "Question 3 of 10")

	assert.Contains(t, StepBar{Total: 0, Width: 40}.View(), "Question 1 of 0")
}
