package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/tgienger/pm/internal/apperrors"
	"github.com/tgienger/pm/internal/models"
)

type Credentials struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

type Registration struct {
	Name            string `form:"name" validate:"required"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" validate:"eqfield=Password"`
}

type ProfileUpdate struct {
	Name  string `form:"name" validate:"required"`
	Email string `form:"email" validate:"required,email"`
}

type PasswordChange struct {
	Current string `form:"current_password" validate:"required"`
	New     string `form:"new_password" validate:"required,min=6"`
	Confirm string `form:"confirm_password" validate:"eqfield=New"`
}

// Service is the account backend. Every call may block on the network and
// must return promptly once ctx is done.
type Service interface {
	Login(ctx context.Context, c Credentials) (*models.User, error)
	SignUp(ctx context.Context, r Registration) (*models.User, error)
	UpdateProfile(ctx context.Context, current models.User, p ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, p PasswordChange) error
}

// FieldErrors maps form field names to messages. It matches
// apperrors.ErrValidation under errors.Is.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return apperrors.ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e FieldErrors) Unwrap() error {
	return apperrors.ErrValidation
}

// Stub accepts any well-formed input after a fixed delay. Nothing leaves
// the process.
type Stub struct {
	latency  time.Duration
	log      *slog.Logger
	validate *validator.Validate
	newID    func() string
}

var _ Service = (*Stub)(nil)

func NewStub(latency time.Duration, log *slog.Logger) *Stub {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("form"); name != "" {
			return name
		}
		return f.Name
	})

	return &Stub{
		latency:  latency,
		log:      log,
		validate: v,
		newID:    uuid.NewString,
	}
}

func (s *Stub) Login(ctx context.Context, c Credentials) (*models.User, error) {
	const op = "auth.Login"

	if err := s.check(c); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	u := s.newUser("", c.Email)
	s.log.Info("signed in", slog.String("op", op), slog.String("user_id", u.ID))
	return u, nil
}

func (s *Stub) SignUp(ctx context.Context, r Registration) (*models.User, error) {
	const op = "auth.SignUp"

	if err := s.check(r); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	u := s.newUser(r.Name, r.Email)
	s.log.Info("account created", slog.String("op", op), slog.String("user_id", u.ID))
	return u, nil
}

func (s *Stub) UpdateProfile(ctx context.Context, current models.User, p ProfileUpdate) (*models.User, error) {
	const op = "auth.UpdateProfile"

	if err := s.check(p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	current.Name = p.Name
	current.Email = p.Email
	return &current, nil
}

func (s *Stub) ChangePassword(ctx context.Context, p PasswordChange) error {
	const op = "auth.ChangePassword"

	if err := s.check(p); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.wait(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Stub) newUser(name, email string) *models.User {
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	return &models.User{
		ID:     s.newID(),
		Email:  email,
		Name:   name,
		Avatar: AvatarURL(name),
	}
}

// wait blocks for the configured latency or until ctx is done
func (s *Stub) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Stub) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := FieldErrors{}
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "is not a valid email"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "eqfield":
		return "does not match"
	}
	return "is invalid"
}

// AvatarURL returns a generated avatar image for name
func AvatarURL(name string) string {
	q := url.Values{}
	q.Set("name", name)
	q.Set("background", "FF6B35")
	q.Set("color", "fff")
	q.Set("size", "150")
	return "https://ui-avatars.com/api/?" + q.Encode()
}
