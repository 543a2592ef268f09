// Package questionnaire is the wizard shell: one question per page with
// Previous/Next navigation and a final submit.
package questionnaire

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/moodcheck/internal/encoder"
	qs "github.com/abhisek/moodcheck/internal/questionnaire"
	"github.com/abhisek/moodcheck/internal/router"
	"github.com/abhisek/moodcheck/internal/screen"
	"github.com/abhisek/moodcheck/internal/screens/result"
	"github.com/abhisek/moodcheck/internal/store"
	"github.com/abhisek/moodcheck/internal/ui/components"
	"github.com/abhisek/moodcheck/internal/ui/layout"
	"github.com/abhisek/moodcheck/internal/ui/theme"
	"github.com/abhisek/moodcheck/internal/wizard"
)

// keepDrafts is how many saved drafts survive a prune.
const keepDrafts = 5

// Deps are the collaborators of the questionnaire flow.
type Deps struct {
	Questionnaire *qs.Questionnaire
	Assessor      result.Assessor

	// Drafts, when set, receives the wizard state after every step.
	Drafts store.DraftRepo
}

type draftSavedMsg struct {
	Err error
}

// QuestionnaireScreen walks the user through every question.
type QuestionnaireScreen struct {
	deps    Deps
	drafts  *draftWriter
	state   wizard.State
	choice  components.ChoiceList
	errMsg  string
	warnMsg string
}

var _ screen.Screen = (*QuestionnaireScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionnaireScreen)(nil)

// New starts a fresh questionnaire.
func New(deps Deps) *QuestionnaireScreen {
	return Resume(deps, wizard.New())
}

// Resume continues from a saved wizard state.
func Resume(deps Deps, st wizard.State) *QuestionnaireScreen {
	s := &QuestionnaireScreen{deps: deps, drafts: newDraftWriter(deps.Drafts), state: st}
	s.loadChoice()
	return s
}

// State returns the current wizard state.
func (s *QuestionnaireScreen) State() wizard.State {
	return s.state
}

func (s *QuestionnaireScreen) Init() tea.Cmd {
	return nil
}

func (s *QuestionnaireScreen) Title() string {
	return "Emotional State Assessment"
}

func (s *QuestionnaireScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Move"}}
	if wizard.Current(s.deps.Questionnaire, s.state).IsMulti() {
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Toggle"})
	}
	if !wizard.IsFirst(s.state) {
		hints = append(hints, layout.KeyHint{Key: "←", Description: "Previous"})
	}
	if wizard.IsLast(s.deps.Questionnaire, s.state) {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Assess"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Enter/→", Description: "Next"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
}

func (s *QuestionnaireScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case draftSavedMsg:
		if msg.Err != nil {
			s.warnMsg = "Progress could not be saved: " + msg.Err.Error()
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "right", "l", "n":
			return s, s.next()
		case "enter":
			if wizard.IsLast(s.deps.Questionnaire, s.state) {
				return s, s.submit()
			}
			return s, s.next()
		case "left", "h", "p", "backspace":
			return s, s.prev()
		}
		s.choice, _ = s.choice.Update(msg)
		s.errMsg = ""
		return s, nil
	}
	return s, nil
}

// answer converts the option list's selection into an Answer.
func (s *QuestionnaireScreen) answer() encoder.Answer {
	if wizard.Current(s.deps.Questionnaire, s.state).IsMulti() {
		return encoder.Multi(s.choice.Selected()...)
	}
	sel := s.choice.Selected()
	if len(sel) == 0 {
		return encoder.Single("")
	}
	return encoder.Single(sel[0])
}

func (s *QuestionnaireScreen) next() tea.Cmd {
	if wizard.IsLast(s.deps.Questionnaire, s.state) {
		return nil
	}
	st, err := wizard.Next(s.deps.Questionnaire, s.state, s.answer())
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return s.advance(st)
}

func (s *QuestionnaireScreen) prev() tea.Cmd {
	if wizard.IsFirst(s.state) {
		return nil
	}
	st, err := wizard.Prev(s.deps.Questionnaire, s.state, s.answer())
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return s.advance(st)
}

func (s *QuestionnaireScreen) advance(st wizard.State) tea.Cmd {
	s.state = st
	s.errMsg = ""
	s.loadChoice()
	return s.saveDraft()
}

func (s *QuestionnaireScreen) submit() tea.Cmd {
	st, err := wizard.Submit(s.deps.Questionnaire, s.state, s.answer())
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.state = st

	deps := s.deps
	next := result.New(deps.Assessor, st.Answers.Clone(), func() screen.Screen { return New(deps) })
	replace := func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	return tea.Batch(s.clearDrafts(), replace)
}

func (s *QuestionnaireScreen) loadChoice() {
	q := wizard.Current(s.deps.Questionnaire, s.state)
	draft := wizard.Draft(s.deps.Questionnaire, s.state)
	s.choice = components.NewChoiceList(q.Options, q.IsMulti(), draft.Selected())
}

func (s *QuestionnaireScreen) saveDraft() tea.Cmd {
	w := s.drafts
	if w == nil {
		return nil
	}
	st := s.state
	return func() tea.Msg {
		return draftSavedMsg{Err: w.save(context.Background(), st)}
	}
}

func (s *QuestionnaireScreen) clearDrafts() tea.Cmd {
	w := s.drafts
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		return draftSavedMsg{Err: w.clear(context.Background())}
	}
}

func (s *QuestionnaireScreen) View(width, height int) string {
	qn := s.deps.Questionnaire
	q := wizard.Current(qn, s.state)
	cw := components.ContentWidth(width)

	var sections []string

	progress := components.StepBar{Step: s.state.Step, Total: qn.Len(), Width: cw}
	sections = append(sections, progress.View())

	prompt := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(cw).
		Render(q.Prompt)
	sections = append(sections, prompt+"\n"+theme.Hint.Render(q.Kind.DisplayName()))

	sections = append(sections, strings.TrimRight(s.choice.View(), "\n"))

	sections = append(sections, s.renderButtons())

	if s.errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(s.errMsg))
	}
	if s.warnMsg != "" {
		sections = append(sections, theme.WarningText.Render(s.warnMsg))
	}

	content := lipgloss.NewStyle().Width(cw).Render(strings.Join(sections, "\n\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *QuestionnaireScreen) renderButtons() string {
	var buttons []string
	if !wizard.IsFirst(s.state) {
		buttons = append(buttons, components.NewButton("Previous", "←", false).View())
	}
	if wizard.IsLast(s.deps.Questionnaire, s.state) {
		buttons = append(buttons, components.NewButton("Assess My Emotion", "Enter", true).View())
	} else {
		buttons = append(buttons, components.NewButton("Next", "→", true).View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, buttons...)
}

// LoadDraft returns the most recent saved wizard state, or nil when none
// is saved.
func LoadDraft(ctx context.Context, qn *qs.Questionnaire, drafts store.DraftRepo) (*wizard.State, error) {
	d, err := drafts.Latest(ctx)
	if err != nil || d == nil {
		return nil, err
	}
	st, err := wizard.Unmarshal(qn, d.Data)
	if err != nil {
		return nil, fmt.Errorf("decode draft %d: %w", d.ID, err)
	}
	return &st, nil
}
