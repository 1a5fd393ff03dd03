package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tgienger/pm/internal/lib/logger/sl"
)

// Keys under which each value is persisted
const (
	KeyUser       = "pm_user"
	KeyTeams      = "pm_teams"
	KeyProjects   = "pm_projects"
	KeyTasks      = "pm_tasks"
	KeyTheme      = "pm_theme"
	KeyOnboarding = "pm_onboarding"
)

// Medium is the key/value storage the store persists into
type Medium interface {
	// Get returns ok == false when key is absent
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// Store is the single source of truth for users, teams, projects and tasks.
// Collections are read whole from the medium, modified, and written back whole.
type Store struct {
	medium Medium
	log    *slog.Logger
	newID  func() string
	now    func() time.Time
}

type Option func(*Store)

// WithIDGenerator replaces the uuid generator used for new records
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock replaces the wall clock used for creation timestamps
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

func New(medium Medium, log *slog.Logger, opts ...Option) *Store {
	s := &Store{
		medium: medium,
		log:    log,
		newID:  uuid.NewString,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// load decodes the collection stored under key. Missing, unreadable and
// malformed values all yield an empty collection.
func load[T any](s *Store, key string) []T {
	const op = "store.load"

	raw, ok, err := s.medium.Get(key)
	if err != nil {
		s.log.Warn("failed to read collection",
			slog.String("op", op), slog.String("key", key), sl.Err(err))
		return []T{}
	}
	if !ok {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.Warn("discarding malformed collection",
			slog.String("op", op), slog.String("key", key), sl.Err(err))
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

func (s *Store) save(key string, v any) error {
	const op = "store.save"

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", op, key, err)
	}
	if err := s.medium.Set(key, string(data)); err != nil {
		return fmt.Errorf("%s: %s: %w", op, key, err)
	}
	return nil
}

func indexByID[T any](items []T, id string, idOf func(T) string) int {
	for i := range items {
		if idOf(items[i]) == id {
			return i
		}
	}
	return -1
}

// without returns items minus the one with id, and whether anything was removed
func without[T any](items []T, id string, idOf func(T) string) ([]T, bool) {
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if idOf(item) != id {
			kept = append(kept, item)
		}
	}
	return kept, len(kept) != len(items)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
