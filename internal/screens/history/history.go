package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/moodcheck/internal/assessment"
	"github.com/abhisek/moodcheck/internal/router"
	"github.com/abhisek/moodcheck/internal/screen"
	"github.com/abhisek/moodcheck/internal/screens/result"
	"github.com/abhisek/moodcheck/internal/store"
	"github.com/abhisek/moodcheck/internal/ui/layout"
	"github.com/abhisek/moodcheck/internal/ui/theme"
)

// pageSize is the number of assessments loaded.
const pageSize = 50

type historyLoadedMsg struct {
	Results []*assessment.Result
	Err     error
}

// HistoryScreen lists past assessments, newest first.
type HistoryScreen struct {
	repo     store.AssessmentRepo
	results  []*assessment.Result
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.AssessmentRepo) *HistoryScreen {
	return &HistoryScreen{repo: repo}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		rows, err := repo.List(context.Background(), store.QueryOpts{Limit: pageSize})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		results := make([]*assessment.Result, 0, len(rows))
		for _, row := range rows {
			res, err := assessment.FromStored(row)
			if err != nil {
				return historyLoadedMsg{Err: err}
			}
			results = append(results, res)
		}
		return historyLoadedMsg{Results: results}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.results = msg.Results
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.results)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(s.results) {
				detail := result.Show(s.results[s.selected])
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.results) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No assessments yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	// Keep the selection visible when the list is taller than the screen.
	visible := max(height-2, 1)
	start := 0
	if s.selected >= visible {
		start = s.selected - visible + 1
	}
	end := min(start+visible, len(s.results))

	for i := start; i < end; i++ {
		res := s.results[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		warn := ""
		if n := len(res.Warnings); n > 0 {
			warn = fmt.Sprintf("  ⚠ %d", n)
		}

		line := fmt.Sprintf("%s%s  %-8s  %-8s%s",
			prefix, res.Timestamp.Local().Format("Jan 02, 2006 15:04"), res.Label, res.Classifier, warn)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
