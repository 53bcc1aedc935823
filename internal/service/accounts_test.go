package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	u, err := f.svc.Accounts.Register(ctx, RegisterInput{Name: " Carol ", Email: "  Carol@Example.COM ", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "Carol", u.Name)
	assert.Equal(t, "carol@example.com", u.Email)
	assert.NotEmpty(t, u.ID)

	sess, err := f.svc.Accounts.Authenticate(ctx, LoginInput{Email: "CAROL@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, u, sess.User)
	assert.NotEmpty(t, sess.Token)
	assert.False(t, sess.ExpiresAt.IsZero())

	_, err = f.svc.Accounts.Authenticate(ctx, LoginInput{Email: "carol@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrAuth)

	_, err = f.svc.Accounts.Authenticate(ctx, LoginInput{Email: "nobody@example.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrAuth)
	assert.Equal(t, "invalid credentials", Message(err))
}

func TestRegisterRejects(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Accounts.Register(ctx, RegisterInput{Name: "Dup", Email: "ALICE@example.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrConflict)

	cases := map[string]RegisterInput{
		"missing name":   {Email: "x@example.com", Password: "pw"},
		"blank name":     {Name: "   ", Email: "x@example.com", Password: "pw"},
		"missing email":  {Name: "X", Password: "pw"},
		"bad email":      {Name: "X", Email: "not-an-email", Password: "pw"},
		"missing secret": {Name: "X", Email: "x@example.com"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Accounts.Register(ctx, in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestGuestAndMe(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	sess, err := f.svc.Accounts.Guest(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sess.User.Name, "Guest "))
	assert.True(t, strings.HasPrefix(sess.User.Email, "guest_"))
	assert.True(t, strings.HasSuffix(sess.User.Email, "@notodo.com"))

	me, err := f.svc.Accounts.Me(ctx, sess.User.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.User, me)

	_, err = f.svc.Accounts.Me(ctx, "no-such-user")
	assert.ErrorIs(t, err, ErrAuth)
}
