package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/pm/internal/models"
)

// LoggedIn is sent once the account service accepted the credentials
type LoggedIn struct {
	User models.User
}

// LoggedOut asks the app to clear the session
type LoggedOut struct{}

// OnboardingDone is sent after the demo data was seeded
type OnboardingDone struct{}

// OpenProject switches to the board of a project
type OpenProject struct {
	Project models.Project
}

// ShowTeams switches to the team list
type ShowTeams struct{}

// BackToProjects signals to go back to project list
type BackToProjects struct{}

// ThemeChanged is sent after the persisted theme was switched
type ThemeChanged struct{}

// ProfileUpdated carries the user returned by the account service
type ProfileUpdated struct {
	User models.User
}

// ErrorMsg reports a failed store write to the status bar
type ErrorMsg struct {
	Err error
}

// StatusMsg shows a transient confirmation in the status bar
type StatusMsg string

func errCmd(err error) tea.Cmd {
	return func() tea.Msg { return ErrorMsg{Err: err} }
}
