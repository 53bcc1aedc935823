package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"notodo/internal/auth"
	"notodo/internal/models"
	"notodo/internal/store/sqlstore"
)

// stepClock advances a minute on every reading so creation order is observable.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Minute)
	return c.now
}

type fixture struct {
	svc   *Services
	clock *stepClock
	alice string
	bob   string
}

func setup(t *testing.T) *fixture {
	t.Helper()
	s, err := sqlstore.New("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	clock := &stepClock{now: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)}
	svc := New(s, Options{
		Clock:    clock.Now,
		Issuer:   auth.NewIssuer("test-secret", time.Hour).WithClock(clock.Now),
		HashCost: bcrypt.MinCost,
	})

	f := &fixture{svc: svc, clock: clock}
	f.alice = f.register(t, "Alice", "alice@example.com").ID
	f.bob = f.register(t, "Bob", "bob@example.com").ID
	return f
}

func (f *fixture) register(t *testing.T, name, email string) models.PublicUser {
	t.Helper()
	u, err := f.svc.Accounts.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: "secret123"})
	require.NoError(t, err)
	return u
}

func ptr[T any](v T) *T { return &v }

func TestErrorMatchesOnKind(t *testing.T) {
	err := storeError("op", "task", errors.New("boom"))
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "internal server error", Message(err))

	err = validationError("tasks.Create", "title is required")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "title is required", Message(err))
	assert.Equal(t, "tasks.Create: title is required", err.Error())

	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}
