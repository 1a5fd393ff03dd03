package ui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/pm/internal/auth"
	"github.com/tgienger/pm/internal/lib/logger/sl"
	"github.com/tgienger/pm/internal/models"
	"github.com/tgienger/pm/internal/store"
	"github.com/tgienger/pm/internal/ui/keys"
	"github.com/tgienger/pm/internal/ui/styles"
	"github.com/tgienger/pm/internal/ui/views"
)

// Screen is the currently active view
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenOnboarding
	ScreenDashboard
	ScreenTeams
	ScreenProjects
	ScreenSearch
	ScreenSettings
	ScreenBoard
)

var tabs = []struct {
	screen Screen
	label  string
}{
	{ScreenDashboard, "1 Dashboard"},
	{ScreenTeams, "2 Teams"},
	{ScreenProjects, "3 Projects"},
	{ScreenSearch, "4 Search"},
	{ScreenSettings, "5 Settings"},
}

// chromeHeight is the tab bar plus the status line. Login and onboarding
// only show the status line.
const (
	chromeHeight = 2
	statusHeight = 1
)

// screenModel is a view that can tell when it owns the keyboard
type screenModel interface {
	tea.Model
	Capturing() bool
}

type App struct {
	store *store.Store
	auth  auth.Service
	log   *slog.Logger

	styles *styles.Styles
	keys   keys.KeyMap

	screen Screen
	user   *models.User
	pages  map[Screen]screenModel

	width  int
	height int

	status    string
	statusErr bool
}

// NewApp creates the application. The persisted theme is applied immediately.
func NewApp(st *store.Store, svc auth.Service, log *slog.Logger) *App {
	styles.Use(st.Theme())
	return &App{
		store:  st,
		auth:   svc,
		log:    log,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
		pages:  map[Screen]screenModel{},
	}
}

func (a *App) Init() tea.Cmd {
	a.user = a.store.User()
	switch {
	case a.user == nil:
		return a.show(ScreenLogin)
	case !a.store.Onboarded():
		return a.show(ScreenOnboarding)
	}
	return a.show(ScreenDashboard)
}

// Screen reports which view is active
func (a *App) Screen() Screen { return a.screen }

func (a *App) isMain() bool {
	return a.screen != ScreenLogin && a.screen != ScreenOnboarding
}

// page returns the view for a screen, building it on first use
func (a *App) page(s Screen) screenModel {
	if p, ok := a.pages[s]; ok {
		return p
	}

	var user models.User
	if a.user != nil {
		user = *a.user
	}

	var p screenModel
	switch s {
	case ScreenLogin:
		p = views.NewLoginView(a.auth)
	case ScreenOnboarding:
		p = views.NewOnboardingView(a.store)
	case ScreenDashboard:
		p = views.NewDashboardView(a.store, user)
	case ScreenTeams:
		p = views.NewTeamListView(a.store)
	case ScreenProjects:
		p = views.NewProjectListView(a.store)
	case ScreenSearch:
		p = views.NewSearchView(a.store)
	case ScreenSettings:
		p = views.NewSettingsView(a.store, a.auth, user)
	default:
		return nil
	}
	a.pages[s] = p
	return p
}

func (a *App) bodyHeight() int {
	if !a.isMain() {
		return max(a.height-statusHeight, 0)
	}
	return max(a.height-chromeHeight, 0)
}

func (a *App) sizeMsg() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: a.width, Height: a.bodyHeight()}
}

// show switches screens and reloads the target view
func (a *App) show(s Screen) tea.Cmd {
	a.screen = s
	p := a.page(s)
	if p == nil {
		return nil
	}
	p.Update(a.sizeMsg())
	return p.Init()
}

// openBoard replaces the board with one for project
func (a *App) openBoard(project models.Project) tea.Cmd {
	a.pages[ScreenBoard] = views.NewBoardView(a.store, project)
	return a.show(ScreenBoard)
}

// reset drops every cached view so they are rebuilt with fresh state
func (a *App) reset() {
	a.pages = map[Screen]screenModel{}
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusErr = isErr
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if p := a.page(a.screen); p != nil {
			_, cmd := p.Update(a.sizeMsg())
			return a, cmd
		}
		return a, nil

	case views.LoggedIn:
		user := msg.User
		a.user = &user
		if err := a.store.SetUser(user); err != nil {
			a.fail("save user", err)
		}
		a.reset()
		if !a.store.Onboarded() {
			return a, a.show(ScreenOnboarding)
		}
		return a, a.show(ScreenDashboard)

	case views.LoggedOut:
		if err := a.store.ClearUser(); err != nil {
			a.fail("clear user", err)
		}
		a.user = nil
		a.reset()
		a.setStatus("", false)
		return a, a.show(ScreenLogin)

	case views.OnboardingDone:
		if err := a.store.SetOnboarded(true); err != nil {
			a.fail("save onboarding", err)
		}
		a.reset()
		return a, a.show(ScreenDashboard)

	case views.ProfileUpdated:
		user := msg.User
		a.user = &user
		if err := a.store.SetUser(user); err != nil {
			a.fail("save user", err)
			return a, nil
		}
		delete(a.pages, ScreenDashboard)
		a.setStatus("Profile saved", false)
		return a, nil

	case views.ThemeChanged:
		a.styles = styles.NewStyles()
		board, onBoard := a.pages[ScreenBoard].(*views.BoardView)
		a.reset()
		if onBoard {
			a.pages[ScreenBoard] = views.NewBoardView(a.store, board.Project())
		}
		a.setStatus("Theme: "+a.store.Theme(), false)
		return a, a.show(a.screen)

	case views.OpenProject:
		return a, a.openBoard(msg.Project)

	case views.BackToProjects:
		return a, a.show(ScreenProjects)

	case views.ShowTeams:
		return a, a.show(ScreenTeams)

	case views.ErrorMsg:
		a.fail("save changes", msg.Err)
		return a, nil

	case views.StatusMsg:
		a.setStatus(string(msg), false)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		a.setStatus("", false)

		p := a.page(a.screen)
		if a.isMain() && (p == nil || !p.Capturing()) {
			if cmd, ok := a.handleGlobalKey(msg); ok {
				return a, cmd
			}
		}
	}

	if p := a.page(a.screen); p != nil {
		_, cmd := p.Update(msg)
		return a, cmd
	}
	return a, nil
}

// handleGlobalKey handles quitting and tab switching
func (a *App) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, a.keys.Dashboard):
		return a.show(ScreenDashboard), true
	case key.Matches(msg, a.keys.Teams):
		return a.show(ScreenTeams), true
	case key.Matches(msg, a.keys.Projects):
		return a.show(ScreenProjects), true
	case key.Matches(msg, a.keys.Search):
		return a.show(ScreenSearch), true
	case key.Matches(msg, a.keys.Settings):
		return a.show(ScreenSettings), true
	}
	return nil, false
}

func (a *App) fail(action string, err error) {
	a.log.Error("failed to "+action, sl.Err(err))
	a.setStatus("Could not "+action+": "+err.Error(), true)
}

func (a *App) View() string {
	p := a.page(a.screen)
	if p == nil {
		return ""
	}
	status := a.styles.StatusBar.Render(a.status)
	if a.statusErr {
		status = a.styles.StatusError.Render(a.status)
	}
	body := lipgloss.NewStyle().Height(a.bodyHeight()).MaxHeight(a.bodyHeight()).Render(p.View())

	if !a.isMain() {
		return lipgloss.JoinVertical(lipgloss.Left, body, status)
	}

	active := a.screen
	if active == ScreenBoard {
		active = ScreenProjects
	}

	rendered := make([]string, len(tabs))
	for i, t := range tabs {
		if t.screen == active {
			rendered[i] = a.styles.TabActive.Render(t.label)
		} else {
			rendered[i] = a.styles.Tab.Render(t.label)
		}
	}
	tabBar := styles.CenterView(lipgloss.JoinHorizontal(lipgloss.Top, rendered...), a.width, 1)
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, body, status)
}
