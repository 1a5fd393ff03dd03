package views

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/pm/internal/auth"
	"github.com/tgienger/pm/internal/kv"
	"github.com/tgienger/pm/internal/lib/logger"
	"github.com/tgienger/pm/internal/models"
	"github.com/tgienger/pm/internal/store"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

const ctrlS = tea.KeyCtrlS

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	seq := 0
	return store.New(kv.NewMemory(), logger.Discard(),
		store.WithIDGenerator(func() string {
			seq++
			return "id-" + strconv.Itoa(seq)
		}),
		store.WithClock(func() time.Time {
			return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		}),
	)
}

// drain runs cmd and feeds every resulting message back into m until no
// command is left. Blink ticks and batches are unwrapped.
func drain(m tea.Model, cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		switch msg := msg.(type) {
		case nil:
			continue
		case tea.BatchMsg:
			queue = append(queue, msg...)
			continue
		}
		if isBlink(msg) {
			continue
		}
		out = append(out, msg)
		_, next := m.Update(msg)
		queue = append(queue, next)
	}
	return out
}

// isBlink filters cursor blink messages, which would otherwise loop forever
func isBlink(msg tea.Msg) bool {
	switch msg.(type) {
	case tea.KeyMsg, tea.WindowSizeMsg:
		return false
	}
	name := fmt.Sprintf("%T", msg)
	return name == "cursor.initialBlinkMsg" || name == "cursor.BlinkMsg" || name == "cursor.blinkCanceled"
}

// fakeAuth answers every call with the configured result, or blocks until
// the context is cancelled when block is set
type fakeAuth struct {
	user  *models.User
	err   error
	block bool
	calls int
}

var _ auth.Service = (*fakeAuth)(nil)

func (f *fakeAuth) answer(ctx context.Context) (*models.User, error) {
	f.calls++
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.user, f.err
}

func (f *fakeAuth) Login(ctx context.Context, _ auth.Credentials) (*models.User, error) {
	return f.answer(ctx)
}

func (f *fakeAuth) SignUp(ctx context.Context, _ auth.Registration) (*models.User, error) {
	return f.answer(ctx)
}

func (f *fakeAuth) UpdateProfile(ctx context.Context, _ models.User, _ auth.ProfileUpdate) (*models.User, error) {
	return f.answer(ctx)
}

func (f *fakeAuth) ChangePassword(ctx context.Context, _ auth.PasswordChange) error {
	_, err := f.answer(ctx)
	return err
}
