package views

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/pm/internal/auth"
	"github.com/tgienger/pm/internal/models"
	"github.com/tgienger/pm/internal/ui/keys"
	"github.com/tgienger/pm/internal/ui/styles"
)

type authResultMsg struct {
	user *models.User
	err  error
}

// LoginView signs the user in or registers a new account
type LoginView struct {
	auth   auth.Service
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	signUp  bool
	form    *form
	pending bool
	cancel  context.CancelFunc
}

func NewLoginView(svc auth.Service) *LoginView {
	v := &LoginView{
		auth:   svc,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
	v.resetForm()
	return v
}

func (v *LoginView) resetForm() {
	if v.signUp {
		v.form = newForm("Create account", "Sign up").
			addInput("name", "Name", "Your name", "", 100).
			addInput("email", "Email", "you@example.com", "", 200).
			addSecret("password", "Password", "At least 6 characters").
			addSecret("confirm_password", "Confirm password", "Repeat password")
	} else {
		v.form = newForm("Sign in", "Sign in").
			addInput("email", "Email", "you@example.com", "", 200).
			addSecret("password", "Password", "At least 6 characters")
	}
}

// Capturing is always true: every key belongs to the form
func (v *LoginView) Capturing() bool { return true }

func (v *LoginView) Init() tea.Cmd {
	return v.form.start()
}

func (v *LoginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case authResultMsg:
		v.pending = false
		v.cancel = nil
		if msg.err != nil {
			v.showError(msg.err)
			return v, nil
		}
		user := *msg.user
		return v, func() tea.Msg { return LoggedIn{User: user} }

	case tea.KeyMsg:
		if v.pending {
			if key.Matches(msg, v.keys.Back) && v.cancel != nil {
				v.cancel()
			}
			return v, nil
		}

		if msg.String() == "ctrl+t" {
			v.signUp = !v.signUp
			v.resetForm()
			return v, v.form.start()
		}

		result, cmd := v.form.update(msg)
		switch result {
		case formSubmitted:
			return v, v.submit()
		case formCancelled:
			return v, tea.Quit
		}
		return v, cmd
	}
	return v, nil
}

func (v *LoginView) submit() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.pending = true
	v.form.setErrors(nil)
	v.form.err = ""

	svc := v.auth
	if v.signUp {
		reg := auth.Registration{
			Name:            v.form.value("name"),
			Email:           v.form.value("email"),
			Password:        v.form.rawValue("password"),
			ConfirmPassword: v.form.rawValue("confirm_password"),
		}
		return func() tea.Msg {
			defer cancel()
			u, err := svc.SignUp(ctx, reg)
			return authResultMsg{user: u, err: err}
		}
	}

	creds := auth.Credentials{
		Email:    v.form.value("email"),
		Password: v.form.rawValue("password"),
	}
	return func() tea.Msg {
		defer cancel()
		u, err := svc.Login(ctx, creds)
		return authResultMsg{user: u, err: err}
	}
}

func (v *LoginView) showError(err error) {
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

func (v *LoginView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	if v.pending {
		content := lipgloss.JoinVertical(lipgloss.Center,
			s.Title.Render("Signing in..."),
			"",
			s.TitleMuted.Render("Esc: cancel"),
		)
		centered := lipgloss.Place(contentWidth, v.height, lipgloss.Center, lipgloss.Center, content)
		return styles.CenterView(centered, v.width, v.height)
	}

	hint := "Ctrl+T: create an account"
	if v.signUp {
		hint = "Ctrl+T: I already have an account"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		v.form.view(s, v.width, v.height-2),
		s.Help.Render(hint),
	)
}
