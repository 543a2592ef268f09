package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/moodcheck/internal/router"
	"github.com/abhisek/moodcheck/internal/screen"
	"github.com/abhisek/moodcheck/internal/screens/history"
	"github.com/abhisek/moodcheck/internal/screens/questionnaire"
	"github.com/abhisek/moodcheck/internal/store"
	"github.com/abhisek/moodcheck/internal/ui/components"
	"github.com/abhisek/moodcheck/internal/ui/layout"
)

// Menu labels.
const (
	labelStart   = "START ASSESSMENT"
	labelResume  = "RESUME ASSESSMENT"
	labelHistory = "HISTORY"
	labelExit    = "EXIT"
)

// Deps are the collaborators of the home screen.
type Deps struct {
	Flow questionnaire.Deps

	// Assessments backs the history view and stats. Nil hides them.
	Assessments store.AssessmentRepo
}

type stats struct {
	total     int
	lastLabel string
	hasDraft  bool
	err       error
}

type statsLoadedMsg stats

// HomeScreen is the main menu.
type HomeScreen struct {
	deps  Deps
	menu  components.Menu
	stats stats
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.menu = h.buildMenu()
	return h
}

func (h *HomeScreen) buildMenu() components.Menu {
	deps := h.deps
	items := []components.MenuItem{
		{Label: labelStart, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: questionnaire.New(deps.Flow)}
			}
		}},
		{Label: labelResume, Disabled: !h.stats.hasDraft, Action: func() tea.Cmd {
			return resume(deps.Flow)
		}},
		{Label: labelHistory, Disabled: deps.Assessments == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(deps.Assessments)}
			}
		}},
		{Label: labelExit, Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	return components.NewMenu(items)
}

// resume opens the latest draft, or a fresh questionnaire when the draft
// is gone or unreadable.
func resume(flow questionnaire.Deps) tea.Cmd {
	return func() tea.Msg {
		st, err := questionnaire.LoadDraft(context.Background(), flow.Questionnaire, flow.Drafts)
		if err != nil || st == nil {
			return router.PushScreenMsg{Screen: questionnaire.New(flow)}
		}
		return router.PushScreenMsg{Screen: questionnaire.Resume(flow, *st)}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume reloads stats when returning from another screen.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	assessments, drafts := h.deps.Assessments, h.deps.Flow.Drafts
	return func() tea.Msg {
		ctx := context.Background()
		var st stats

		if drafts != nil {
			d, err := drafts.Latest(ctx)
			if err != nil {
				st.err = err
			}
			st.hasDraft = d != nil
		}

		if assessments != nil {
			counts, err := assessments.CountByLabel(ctx)
			if err != nil {
				st.err = err
				return statsLoadedMsg(st)
			}
			for _, c := range counts {
				st.total += c.Count
			}
			last, err := assessments.List(ctx, store.QueryOpts{Limit: 1})
			if err != nil {
				st.err = err
			} else if len(last) > 0 {
				st.lastLabel = last[0].Label
			}
		}
		return statsLoadedMsg(st)
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		selected := h.menu.Items[h.menu.Selected].Label
		h.stats = stats(msg)
		h.menu = h.buildMenu()
		for i, item := range h.menu.Items {
			if item.Label == selected && !item.Disabled {
				h.menu.Selected = i
			}
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header + footer + frame gaps
	termHeight := height + 8
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, RenderMascot(mascotFor(h.stats.lastLabel)))
	}
	if h.deps.Assessments != nil {
		sections = append(sections, renderStatsBar(h.stats, cw))
	}
	if compact {
		sections = append(sections, renderMenuCompact(h.menu, cw))
	} else {
		sections = append(sections, renderMenu(h.menu, cw))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
