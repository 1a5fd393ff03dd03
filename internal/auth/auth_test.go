package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/pm/internal/apperrors"
	"github.com/tgienger/pm/internal/lib/logger"
	"github.com/tgienger/pm/internal/models"
)

func newTestStub(latency time.Duration) *Stub {
	s := NewStub(latency, logger.Discard())
	s.newID = func() string { return "user-1" }
	return s
}

func TestLoginDerivesNameFromEmail(t *testing.T) {
	s := newTestStub(0)

	u, err := s.Login(context.Background(), Credentials{Email: "erich@example.com", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, "user-1", u.ID)
	assert.Equal(t, "erich@example.com", u.Email)
	assert.Equal(t, "erich", u.Name)
	assert.Equal(t, AvatarURL("erich"), u.Avatar)
}

func TestLoginValidation(t *testing.T) {
	s := newTestStub(0)

	_, err := s.Login(context.Background(), Credentials{Email: "not-an-email", Password: "123"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	var fields FieldErrors
	require.True(t, errors.As(err, &fields))
	assert.Equal(t, "is not a valid email", fields["email"])
	assert.Equal(t, "must be at least 6 characters", fields["password"])
}

func TestSignUpRequiresMatchingPasswords(t *testing.T) {
	s := newTestStub(0)

	_, err := s.SignUp(context.Background(), Registration{
		Name:            "Alice",
		Email:           "alice@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret2",
	})

	var fields FieldErrors
	require.True(t, errors.As(err, &fields))
	assert.Equal(t, map[string]string{"confirm_password": "does not match"}, map[string]string(fields))
}

func TestSignUpKeepsName(t *testing.T) {
	s := newTestStub(0)

	u, err := s.SignUp(context.Background(), Registration{
		Name:            "Alice Smith",
		Email:           "alice@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", u.Name)
	assert.Contains(t, u.Avatar, "name=Alice+Smith")
}

func TestUpdateProfileKeepsIdentity(t *testing.T) {
	s := newTestStub(0)
	current := models.User{ID: "u9", Email: "old@example.com", Name: "Old", Avatar: "a.png"}

	u, err := s.UpdateProfile(context.Background(), current, ProfileUpdate{Name: "New", Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, models.User{ID: "u9", Email: "new@example.com", Name: "New", Avatar: "a.png"}, *u)
}

func TestChangePassword(t *testing.T) {
	s := newTestStub(0)

	err := s.ChangePassword(context.Background(), PasswordChange{Current: "x", New: "longer1", Confirm: "longer1"})
	assert.NoError(t, err)

	err = s.ChangePassword(context.Background(), PasswordChange{Current: "", New: "short", Confirm: "other"})
	var fields FieldErrors
	require.True(t, errors.As(err, &fields))
	assert.Len(t, fields, 3)
}

func TestCallsHonorCancellation(t *testing.T) {
	s := newTestStub(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := s.Login(ctx, Credentials{Email: "erich@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestCallsWaitForLatency(t *testing.T) {
	s := newTestStub(20 * time.Millisecond)

	start := time.Now()
	_, err := s.Login(context.Background(), Credentials{Email: "erich@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestDeadlineExceeded(t *testing.T) {
	s := newTestStub(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := s.ChangePassword(ctx, PasswordChange{Current: "x", New: "longer1", Confirm: "longer1"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
