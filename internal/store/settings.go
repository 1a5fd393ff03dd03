package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/tgienger/pm/internal/lib/logger/sl"
	"github.com/tgienger/pm/internal/models"
)

const DefaultTheme = "light"

// User returns the signed-in user, or nil when nobody is signed in or the
// stored record cannot be read
func (s *Store) User() *models.User {
	const op = "store.User"

	raw, ok, err := s.medium.Get(KeyUser)
	if err != nil {
		s.log.Warn("failed to read user", slog.String("op", op), sl.Err(err))
		return nil
	}
	if !ok {
		return nil
	}

	var u *models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.log.Warn("discarding malformed user", slog.String("op", op), sl.Err(err))
		return nil
	}
	return u
}

// SetUser replaces the stored user wholesale
func (s *Store) SetUser(u models.User) error {
	const op = "store.SetUser"

	if err := s.save(KeyUser, u); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ClearUser signs the user out
func (s *Store) ClearUser() error {
	const op = "store.ClearUser"

	if err := s.medium.Remove(KeyUser); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Onboarded reports whether onboarding was completed. Only the stored
// string "true" counts.
func (s *Store) Onboarded() bool {
	raw, ok, err := s.medium.Get(KeyOnboarding)
	if err != nil || !ok {
		return false
	}
	return raw == "true"
}

func (s *Store) SetOnboarded(done bool) error {
	const op = "store.SetOnboarded"

	if err := s.medium.Set(KeyOnboarding, strconv.FormatBool(done)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Theme returns the stored theme name, or DefaultTheme
func (s *Store) Theme() string {
	raw, ok, err := s.medium.Get(KeyTheme)
	if err != nil || !ok || raw == "" {
		return DefaultTheme
	}
	return raw
}

func (s *Store) SetTheme(theme string) error {
	const op = "store.SetTheme"

	if err := s.medium.Set(KeyTheme, theme); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
