package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/pm/internal/auth"
	"github.com/tgienger/pm/internal/models"
	"github.com/tgienger/pm/internal/ui/styles"
)

func TestSettingsToggleTheme(t *testing.T) {
	t.Cleanup(func() { styles.Use(styles.Light.Name) })

	st := newTestStore(t)
	v := NewSettingsView(st, &fakeAuth{}, models.User{Name: "Erich"})

	v.Update(keyMsg(tea.KeyDown))
	v.Update(keyMsg(tea.KeyDown))
	_, cmd := v.Update(keyMsg(tea.KeyEnter))
	require.NotNil(t, cmd)

	assert.Equal(t, ThemeChanged{}, cmd())
	assert.Equal(t, styles.Dark.Name, st.Theme())
	assert.Equal(t, styles.Dark.Name, styles.Current.Name)
}

func TestSettingsSignOut(t *testing.T) {
	v := NewSettingsView(newTestStore(t), &fakeAuth{}, models.User{})

	for range settingsMenu {
		v.Update(keyMsg(tea.KeyDown))
	}
	_, cmd := v.Update(keyMsg(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, LoggedOut{}, cmd())
}

func TestSettingsProfileUpdate(t *testing.T) {
	updated := &models.User{ID: "u1", Name: "New", Email: "new@example.com"}
	v := NewSettingsView(newTestStore(t), &fakeAuth{user: updated}, models.User{ID: "u1", Name: "Old"})

	v.Update(keyMsg(tea.KeyEnter))
	require.True(t, v.Capturing())
	assert.Equal(t, "Old", v.form.value("name"))

	_, cmd := v.Update(keyMsg(ctrlS))
	require.True(t, v.pending)
	msgs := drain(v, cmd)

	assert.False(t, v.Capturing())
	assert.Equal(t, "New", v.user.Name)
	assert.Contains(t, msgs, tea.Msg(ProfileUpdated{User: *updated}))
}

func TestSettingsPasswordFieldErrors(t *testing.T) {
	svc := &fakeAuth{err: auth.FieldErrors{"new_password": "must be at least 6 characters"}}
	v := NewSettingsView(newTestStore(t), svc, models.User{})

	v.Update(keyMsg(tea.KeyDown))
	v.Update(keyMsg(tea.KeyEnter))
	require.Equal(t, actionPassword, v.action)

	_, cmd := v.Update(keyMsg(ctrlS))
	drain(v, cmd)

	require.NotNil(t, v.form, "form stays open")
	assert.Equal(t, "must be at least 6 characters", v.form.errs["new_password"])
}
