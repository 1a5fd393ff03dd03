package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/pm/internal/store"
	"github.com/tgienger/pm/internal/ui/keys"
	"github.com/tgienger/pm/internal/ui/styles"
)

type onboardingStep struct {
	title string
	body  string
}

var onboardingSteps = []onboardingStep{
	{"Welcome", "Plan work across teams, projects and tasks from your terminal."},
	{"Teams", "Create teams and list who is on them with their roles."},
	{"Projects", "Give every project a team, a status and a priority."},
	{"Board", "Move tasks through To do, In progress, Review and Done."},
	{"Search", "Press / anywhere to search teams, projects and tasks at once."},
}

// OnboardingView walks a new user through the app, then seeds demo data
type OnboardingView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap
	step   int
	width  int
	height int
}

func NewOnboardingView(st *store.Store) *OnboardingView {
	return &OnboardingView{store: st, styles: styles.NewStyles(), keys: keys.DefaultKeyMap()}
}

func (v *OnboardingView) Init() tea.Cmd { return nil }

func (v *OnboardingView) Capturing() bool { return false }

func (v *OnboardingView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case msg.String() == "s":
			return v, v.finish
		case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Right):
			if v.step == len(onboardingSteps)-1 {
				return v, v.finish
			}
			v.step++
		case key.Matches(msg, v.keys.Left):
			if v.step > 0 {
				v.step--
			}
		}
	}
	return v, nil
}

func (v *OnboardingView) finish() tea.Msg {
	if err := v.store.InitializeTestData(); err != nil {
		return ErrorMsg{Err: err}
	}
	return OnboardingDone{}
}

func (v *OnboardingView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	step := onboardingSteps[v.step]

	next := " Next "
	if v.step == len(onboardingSteps)-1 {
		next = " Get started "
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.TitleMuted.Render(fmt.Sprintf("Step %d of %d", v.step+1, len(onboardingSteps))),
		"",
		s.Title.Render(step.title),
		"",
		lipgloss.NewStyle().Width(clamp(contentWidth-10, 20, 60)).Align(lipgloss.Center).Render(step.body),
		"",
		s.ButtonPrimary.Render(next),
		"",
		s.TitleMuted.Render("←/→: back/next • s: skip • q: quit"),
	)

	centered := lipgloss.Place(contentWidth, v.height, lipgloss.Center, lipgloss.Center, content)
	return styles.CenterView(centered, v.width, v.height)
}
