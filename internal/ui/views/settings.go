package views

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/pm/internal/auth"
	"github.com/tgienger/pm/internal/models"
	"github.com/tgienger/pm/internal/store"
	"github.com/tgienger/pm/internal/ui/keys"
	"github.com/tgienger/pm/internal/ui/styles"
)

type settingsAction int

const (
	actionProfile settingsAction = iota
	actionPassword
	actionTheme
	actionSignOut
)

var settingsMenu = []struct {
	action settingsAction
	label  string
}{
	{actionProfile, "Edit profile"},
	{actionPassword, "Change password"},
	{actionTheme, "Switch theme"},
	{actionSignOut, "Sign out"},
}

type profileResultMsg struct {
	user *models.User
	err  error
}

type passwordResultMsg struct {
	err error
}

// SettingsView edits the account and app preferences
type SettingsView struct {
	store  *store.Store
	auth   auth.Service
	styles *styles.Styles
	keys   keys.KeyMap
	width  int
	height int

	user   models.User
	cursor int

	form    *form
	action  settingsAction
	pending bool
	cancel  context.CancelFunc
}

func NewSettingsView(st *store.Store, svc auth.Service, user models.User) *SettingsView {
	return &SettingsView{
		store:  st,
		auth:   svc,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
		user:   user,
	}
}

func (v *SettingsView) Init() tea.Cmd { return nil }

func (v *SettingsView) Capturing() bool { return v.form != nil }

func (v *SettingsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case profileResultMsg:
		v.pending, v.cancel = false, nil
		if msg.err != nil {
			v.showError(msg.err)
			return v, nil
		}
		v.user = *msg.user
		v.form = nil
		user := *msg.user
		return v, func() tea.Msg { return ProfileUpdated{User: user} }

	case passwordResultMsg:
		v.pending, v.cancel = false, nil
		if msg.err != nil {
			v.showError(msg.err)
			return v, nil
		}
		v.form = nil
		return v, statusCmd("Password changed")

	case tea.KeyMsg:
		if v.pending {
			if key.Matches(msg, v.keys.Back) && v.cancel != nil {
				v.cancel()
			}
			return v, nil
		}
		if v.form != nil {
			return v.updateForm(msg)
		}

		switch {
		case key.Matches(msg, v.keys.Up):
			if v.cursor > 0 {
				v.cursor--
			}
		case key.Matches(msg, v.keys.Down):
			if v.cursor < len(settingsMenu)-1 {
				v.cursor++
			}
		case key.Matches(msg, v.keys.Enter):
			return v, v.run(settingsMenu[v.cursor].action)
		}
	}
	return v, nil
}

func (v *SettingsView) run(action settingsAction) tea.Cmd {
	v.action = action
	switch action {
	case actionProfile:
		v.form = newForm("Edit profile", "Save").
			addInput("name", "Name", "Your name", v.user.Name, 100).
			addInput("email", "Email", "you@example.com", v.user.Email, 200)
		return v.form.start()

	case actionPassword:
		v.form = newForm("Change password", "Change").
			addSecret("current_password", "Current password", "").
			addSecret("new_password", "New password", "At least 6 characters").
			addSecret("confirm_password", "Confirm password", "Repeat new password")
		return v.form.start()

	case actionTheme:
		theme := styles.Toggle(v.store.Theme())
		if err := v.store.SetTheme(theme); err != nil {
			return errCmd(err)
		}
		styles.Use(theme)
		return func() tea.Msg { return ThemeChanged{} }

	case actionSignOut:
		return func() tea.Msg { return LoggedOut{} }
	}
	return nil
}

func (v *SettingsView) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, cmd := v.form.update(msg)
	switch result {
	case formCancelled:
		v.form = nil
		return v, nil
	case formSubmitted:
		return v, v.submit()
	}
	return v, cmd
}

// submit sends the open form to the account service in the background
func (v *SettingsView) submit() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.pending = true
	v.form.setErrors(nil)
	v.form.err = ""

	svc := v.auth
	if v.action == actionPassword {
		change := auth.PasswordChange{
			Current: v.form.rawValue("current_password"),
			New:     v.form.rawValue("new_password"),
			Confirm: v.form.rawValue("confirm_password"),
		}
		return func() tea.Msg {
			defer cancel()
			return passwordResultMsg{err: svc.ChangePassword(ctx, change)}
		}
	}

	current := v.user
	update := auth.ProfileUpdate{
		Name:  v.form.value("name"),
		Email: v.form.value("email"),
	}
	return func() tea.Msg {
		defer cancel()
		u, err := svc.UpdateProfile(ctx, current, update)
		return profileResultMsg{user: u, err: err}
	}
}

func (v *SettingsView) showError(err error) {
	if v.form == nil {
		return
	}
	var fields auth.FieldErrors
	switch {
	case errors.As(err, &fields):
		v.form.setErrors(fields)
	case errors.Is(err, context.Canceled):
		v.form.err = "Cancelled"
	default:
		v.form.err = err.Error()
	}
}

func (v *SettingsView) View() string {
	s := v.styles

	if v.pending {
		centered := lipgloss.Place(styles.ContentWidth(v.width), v.height,
			lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center,
				s.Title.Render("Saving..."),
				"",
				s.TitleMuted.Render("Esc: cancel"),
			),
		)
		return styles.CenterView(centered, v.width, v.height)
	}
	if v.form != nil {
		return v.form.view(s, v.width, v.height)
	}

	width := max(styles.ContentWidth(v.width)-4, 20)
	rows := []string{
		s.Title.Render("Settings"),
		"",
		s.Panel.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left,
			s.Title.Render(v.user.Name),
			v.user.Email,
			s.TitleMuted.Render(v.user.Avatar),
		)),
		s.TitleMuted.Render("Theme: " + v.store.Theme()),
		"",
	}
	for i, item := range settingsMenu {
		style := s.ListItem
		if i == v.cursor {
			style = s.ListSelected
		}
		rows = append(rows, style.Width(width).Render(item.label))
	}
	rows = append(rows, renderHelpLine(s, v.width, []helpEntry{
		{"↑/↓", "select"},
		{"↵", "open"},
		{"q", "quit"},
	}))

	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, rows...), v.width, v.height)
}
