package welcome

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/moodcheck/internal/router"
	"github.com/abhisek/moodcheck/internal/screen"
	"github.com/abhisek/moodcheck/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	wakeAt       = 500 * time.Millisecond  // eyes open
	smileAt      = 1000 * time.Millisecond // smile and banner
	settleAt     = 3000 * time.Millisecond // animation stops
	breathTicks  = 8                       // border color period
)

// The face wakes up: closed eyes, open eyes, then a smile.
var (
	eyes  = []string{"–   –", "◠   ◠"}
	mouth = []string{"───", "‿‿‿"}
)

type tickMsg time.Time

// WelcomeScreen is a short splash that hands over to the home screen on
// any key.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	ticks        int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{homeFactory: homeFactory}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// settled reports whether the animation has finished.
func (w *WelcomeScreen) settled() bool { return w.elapsed >= settleAt }

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.settled() {
			return w, nil
		}
		w.elapsed += tickInterval
		w.ticks++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

// transition replaces the splash with the home screen, once.
func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	home := w.homeFactory()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: home} }
}

func (w *WelcomeScreen) face() string {
	e, m := eyes[0], mouth[0]
	if w.elapsed >= wakeAt {
		e = eyes[1]
	}
	if w.elapsed >= smileAt {
		m = mouth[1]
	}

	border := theme.Primary
	if !w.settled() && (w.ticks/breathTicks)%2 == 1 {
		border = theme.Secondary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Foreground(theme.Primary).
		Padding(1, 3).
		Align(lipgloss.Center).
		Render(e + "\n\n" + m)
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{w.face()}

	if w.elapsed >= smileAt {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("How are you feeling today?"),
			"",
			theme.Hint.Render("press any key to begin"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}
