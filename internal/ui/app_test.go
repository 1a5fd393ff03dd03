package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/pm/internal/auth"
	"github.com/tgienger/pm/internal/kv"
	"github.com/tgienger/pm/internal/lib/logger"
	"github.com/tgienger/pm/internal/models"
	"github.com/tgienger/pm/internal/store"
	"github.com/tgienger/pm/internal/ui/styles"
	"github.com/tgienger/pm/internal/ui/views"
)

var testUser = models.User{ID: "u1", Name: "Erich", Email: "erich@example.com"}

func newTestApp(t *testing.T) (*App, *store.Store) {
	t.Helper()
	t.Cleanup(func() { styles.Use(styles.Light.Name) })

	st := store.New(kv.NewMemory(), logger.Discard())
	app := NewApp(st, auth.NewStub(0, logger.Discard()), logger.Discard())
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return app, st
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppStartsAtLoginWithoutUser(t *testing.T) {
	app, _ := newTestApp(t)
	app.Init()

	assert.Equal(t, ScreenLogin, app.Screen())
}

func TestAppRestoresSession(t *testing.T) {
	app, st := newTestApp(t)
	require.NoError(t, st.SetUser(testUser))

	app.Init()
	assert.Equal(t, ScreenOnboarding, app.Screen())

	require.NoError(t, st.SetOnboarded(true))
	app.Init()
	assert.Equal(t, ScreenDashboard, app.Screen())
}

func TestAppLoginOnboardingLogoutFlow(t *testing.T) {
	app, st := newTestApp(t)
	app.Init()

	app.Update(views.LoggedIn{User: testUser})
	assert.Equal(t, ScreenOnboarding, app.Screen())
	require.NotNil(t, st.User())
	assert.Equal(t, testUser, *st.User())

	app.Update(views.OnboardingDone{})
	assert.Equal(t, ScreenDashboard, app.Screen())
	assert.True(t, st.Onboarded())

	app.Update(views.LoggedOut{})
	assert.Equal(t, ScreenLogin, app.Screen())
	assert.Nil(t, st.User())
	assert.True(t, st.Onboarded(), "onboarding is not repeated")

	app.Update(views.LoggedIn{User: testUser})
	assert.Equal(t, ScreenDashboard, app.Screen())
}

func TestAppTabKeys(t *testing.T) {
	app, st := newTestApp(t)
	require.NoError(t, st.SetUser(testUser))
	require.NoError(t, st.SetOnboarded(true))
	app.Init()

	steps := []struct {
		key  tea.KeyMsg
		want Screen
	}{
		{runes("2"), ScreenTeams},
		{runes("3"), ScreenProjects},
		{runes("4"), ScreenSearch},
		{tea.KeyMsg{Type: tea.KeyEsc}, ScreenSearch}, // leaves the search input
		{runes("5"), ScreenSettings},
		{runes("1"), ScreenDashboard},
	}
	for _, step := range steps {
		app.Update(step.key)
		assert.Equal(t, step.want, app.Screen(), step.key.String())
	}
}

func TestAppDoesNotSwitchWhileTyping(t *testing.T) {
	app, st := newTestApp(t)
	require.NoError(t, st.SetUser(testUser))
	require.NoError(t, st.SetOnboarded(true))
	app.Init()

	app.Update(runes("/"))
	require.Equal(t, ScreenSearch, app.Screen())

	app.Update(runes("1"))
	assert.Equal(t, ScreenSearch, app.Screen(), "digit went to the search input")

	_, cmd := app.Update(runes("q"))
	if cmd != nil {
		assert.NotEqual(t, tea.QuitMsg{}, cmd())
	}
}

func TestAppOpenProjectAndBack(t *testing.T) {
	app, st := newTestApp(t)
	require.NoError(t, st.SetUser(testUser))
	require.NoError(t, st.SetOnboarded(true))
	app.Init()

	app.Update(views.OpenProject{Project: models.Project{ID: "p1", Name: "Board"}})
	assert.Equal(t, ScreenBoard, app.Screen())
	assert.Contains(t, app.View(), "Board")

	app.Update(views.BackToProjects{})
	assert.Equal(t, ScreenProjects, app.Screen())
}

func TestAppThemeChangedKeepsScreen(t *testing.T) {
	app, st := newTestApp(t)
	require.NoError(t, st.SetUser(testUser))
	require.NoError(t, st.SetOnboarded(true))
	require.NoError(t, st.SetTheme(styles.Dark.Name))
	app.Init()
	app.Update(runes("5"))

	app.Update(views.ThemeChanged{})
	assert.Equal(t, ScreenSettings, app.Screen())
	assert.Contains(t, app.status, "dark")
}

func TestNewAppAppliesPersistedTheme(t *testing.T) {
	t.Cleanup(func() { styles.Use(styles.Light.Name) })

	st := store.New(kv.NewMemory(), logger.Discard())
	require.NoError(t, st.SetTheme(styles.Dark.Name))

	NewApp(st, auth.NewStub(0, logger.Discard()), logger.Discard())
	assert.Equal(t, styles.Dark.Name, styles.Current.Name)
}

func TestAppShowsStoreErrors(t *testing.T) {
	app, _ := newTestApp(t)
	app.Init()

	app.Update(views.ErrorMsg{Err: assert.AnError})
	assert.True(t, app.statusErr)
	assert.Contains(t, app.status, assert.AnError.Error())

	app.Update(runes("x"))
	assert.Empty(t, app.status, "cleared on the next key")
}

// readOnlyMedium starts rejecting writes once locked
type readOnlyMedium struct {
	*kv.Memory
	locked bool
}

func (m *readOnlyMedium) Set(key, value string) error {
	if m.locked {
		return assert.AnError
	}
	return m.Memory.Set(key, value)
}

func TestAppShowsErrorsDuringOnboarding(t *testing.T) {
	t.Cleanup(func() { styles.Use(styles.Light.Name) })

	medium := &readOnlyMedium{Memory: kv.NewMemory()}
	st := store.New(medium, logger.Discard())
	app := NewApp(st, auth.NewStub(0, logger.Discard()), logger.Discard())
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app.Init()
	app.Update(views.LoggedIn{User: testUser})
	require.Equal(t, ScreenOnboarding, app.Screen())

	medium.locked = true
	_, cmd := app.Update(runes("s"))
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, ScreenOnboarding, app.Screen())
	assert.True(t, app.statusErr)
	assert.Contains(t, app.View(), "Could not save changes")
}
