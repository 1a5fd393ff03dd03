package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/pm/internal/models"
)

func TestUserLifecycle(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Nil(t, s.User())

	u := models.User{ID: "u1", Email: "erich@example.com", Name: "Erich", Avatar: "https://example.com/a.png"}
	require.NoError(t, s.SetUser(u))
	require.NotNil(t, s.User())
	assert.Equal(t, u, *s.User())

	u.Name = "Erich M."
	require.NoError(t, s.SetUser(u))
	assert.Equal(t, "Erich M.", s.User().Name)

	require.NoError(t, s.ClearUser())
	assert.Nil(t, s.User())
}

func TestMalformedUserReadsNil(t *testing.T) {
	s, medium := newTestStore(t)

	require.NoError(t, medium.Set(KeyUser, "[1,2"))
	assert.Nil(t, s.User())

	require.NoError(t, medium.Set(KeyUser, "null"))
	assert.Nil(t, s.User())
}

func TestOnboardingFlag(t *testing.T) {
	s, medium := newTestStore(t)

	assert.False(t, s.Onboarded())

	require.NoError(t, s.SetOnboarded(true))
	raw, _, _ := medium.Get(KeyOnboarding)
	assert.Equal(t, "true", raw)
	assert.True(t, s.Onboarded())

	require.NoError(t, s.SetOnboarded(false))
	raw, _, _ = medium.Get(KeyOnboarding)
	assert.Equal(t, "false", raw)
	assert.False(t, s.Onboarded())

	require.NoError(t, medium.Set(KeyOnboarding, "yes"))
	assert.False(t, s.Onboarded())
}

func TestTheme(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Equal(t, "light", s.Theme())
	require.NoError(t, s.SetTheme("dark"))
	assert.Equal(t, "dark", s.Theme())
}
