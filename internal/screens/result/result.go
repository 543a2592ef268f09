// Package result shows the outcome of one assessment.
package result

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/moodcheck/internal/assessment"
	"github.com/abhisek/moodcheck/internal/classifier"
	"github.com/abhisek/moodcheck/internal/encoder"
	"github.com/abhisek/moodcheck/internal/router"
	"github.com/abhisek/moodcheck/internal/screen"
	"github.com/abhisek/moodcheck/internal/ui/components"
	"github.com/abhisek/moodcheck/internal/ui/layout"
	"github.com/abhisek/moodcheck/internal/ui/theme"
)

// Assessor runs one assessment. *assessment.Service implements it.
type Assessor interface {
	Assess(ctx context.Context, rs encoder.ResponseSet) (*assessment.Result, error)
}

type assessedMsg struct {
	Result *assessment.Result
	Err    error
}

// ResultScreen classifies a submitted response set and presents the label.
type ResultScreen struct {
	assessor  Assessor
	responses encoder.ResponseSet
	restart   func() screen.Screen
	spinner   spinner.Model

	res  *assessment.Result
	err  error
	done bool
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a ResultScreen that assesses rs on Init. Enter replaces it
// with the screen produced by restart.
func New(assessor Assessor, rs encoder.ResponseSet, restart func() screen.Screen) *ResultScreen {
	return &ResultScreen{
		assessor:  assessor,
		responses: rs,
		restart:   restart,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Secondary)),
		),
	}
}

// Show creates a ResultScreen for an existing result. Enter returns to the
// previous screen.
func Show(res *assessment.Result) *ResultScreen {
	return &ResultScreen{res: res, done: true}
}

func (s *ResultScreen) Init() tea.Cmd {
	if s.done {
		return nil
	}
	return tea.Batch(s.spinner.Tick, s.assess())
}

func (s *ResultScreen) assess() tea.Cmd {
	assessor, rs := s.assessor, s.responses
	return func() tea.Msg {
		res, err := assessor.Assess(context.Background(), rs)
		return assessedMsg{Result: res, Err: err}
	}
}

func (s *ResultScreen) Title() string {
	return "Your Result"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	if !s.done {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	hints := []layout.KeyHint{}
	if s.restart != nil {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Start New Assessment"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Back"})
	}
	if s.retryable() {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
}

func (s *ResultScreen) retryable() bool {
	return s.err != nil && s.assessor != nil && errors.Is(s.err, classifier.ErrAdapterFailure)
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case assessedMsg:
		s.res, s.err = msg.Result, msg.Err
		s.done = true
		return s, nil

	case spinner.TickMsg:
		if s.done {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		if !s.done {
			return s, nil
		}
		switch msg.String() {
		case "enter":
			if s.restart == nil {
				return s, func() tea.Msg { return router.PopScreenMsg{} }
			}
			next := s.restart()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		case "r":
			if s.retryable() {
				s.err, s.done = nil, false
				return s, tea.Batch(s.spinner.Tick, s.assess())
			}
		}
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var content string
	switch {
	case !s.done:
		content = s.spinner.View() + " " + theme.Body.Render("Analyzing your responses...")
	case s.err != nil:
		content = renderError(s.err, cw)
	default:
		content = renderResult(s.res, cw)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderResult(res *assessment.Result, cw int) string {
	var sections []string

	headline := lipgloss.NewStyle().
		Foreground(toneColor(res.Tone)).
		Bold(true).
		Width(cw).
		Align(lipgloss.Center).
		Render(res.Headline)
	sections = append(sections, headline)

	if res.Note != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Accent).
			Width(cw).
			Render(res.Note))
	}

	if len(res.Warnings) > 0 {
		lines := make([]string, len(res.Warnings))
		for i, w := range res.Warnings {
			lines[i] = "⚠ " + w.Message
		}
		sections = append(sections, theme.WarningText.Width(cw).Render(strings.Join(lines, "\n")))
	}

	meta := fmt.Sprintf("%s · %s classifier", res.Timestamp.Local().Format("Jan 02, 2006 15:04"), res.Classifier)
	sections = append(sections, theme.Hint.Width(cw).Align(lipgloss.Center).Render(meta))

	sections = append(sections, components.Card(theme.Hint.Render(res.Disclaimer), cw))

	return strings.Join(sections, "\n\n")
}

func renderError(err error, cw int) string {
	var incomplete *encoder.IncompleteError
	var msg string
	switch {
	case errors.As(err, &incomplete):
		msg = "Please complete the assessment before submitting.\n\nMissing: " +
			strings.Join(incomplete.Missing, ", ")
	case errors.Is(err, classifier.ErrAdapterFailure):
		msg = "The classifier could not process your answers.\n\n" + err.Error() +
			"\n\nPress R to retry or Enter to start over."
	default:
		msg = "Something went wrong: " + err.Error()
	}
	return theme.ErrorText.Width(cw).Render(msg)
}

func toneColor(t assessment.Tone) color.Color {
	switch t {
	case assessment.ToneCelebratory:
		return theme.Success
	case assessment.ToneInformational:
		return theme.Info
	case assessment.ToneWarning:
		return theme.Accent
	default:
		return theme.Text
	}
}
