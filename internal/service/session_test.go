package service

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"crm/internal/auth"
	"crm/internal/authz"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, env *testEnv, now *time.Time) (*Session, *auth.FileTokenStore) {
	t.Helper()
	manager, err := auth.NewManager("test-secret", "crm-test", time.Hour, auth.WithClock(func() time.Time { return *now }))
	require.NoError(t, err)
	store := auth.NewFileTokenStore(filepath.Join(t.TempDir(), "token.txt"))
	return NewSession(store, manager, env.repo), store
}

func TestSessionLoginThenActor(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	session, store := newTestSession(t, env, &now)

	_, err := session.Actor(env.ctx)
	assert.ErrorIs(t, err, authz.ErrAuthenticationRequired)

	user, expiresAt, err := session.Login(env.ctx, " COM@epic.test ", testPassword)
	require.NoError(t, err)
	assert.Equal(t, env.commercial.ID, user.ID)
	assert.WithinDuration(t, now.Add(time.Hour), expiresAt, time.Second)

	token, err := store.Load(env.ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// a fresh session resolves the actor from the stored token
	fresh, _ := newTestSession(t, env, &now)
	fresh.store = store
	actor, err := fresh.Actor(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, env.commercial.ID, actor.ID)
	assert.True(t, authz.HasPermission(actor, authz.CreateClient))
}

func TestSessionWrongCredentials(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	session, store := newTestSession(t, env, &now)

	_, _, err := session.Login(env.ctx, "com@epic.test", "wrong")
	assert.EqualError(t, err, "Wrong email or password")

	_, _, err = session.Login(env.ctx, "ghost@epic.test", testPassword)
	assert.EqualError(t, err, "Wrong email or password")

	_, err = store.Load(env.ctx)
	assert.ErrorIs(t, err, auth.ErrNoSession)
}

func TestSessionExpiry(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	session, store := newTestSession(t, env, &now)
	_, _, err := session.Login(env.ctx, "sup@epic.test", testPassword)
	require.NoError(t, err)

	now = now.Add(61 * time.Minute)
	expired, _ := newTestSession(t, env, &now)
	expired.store = store
	_, err = expired.Actor(env.ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, auth.ErrExpiredCredential))
	assert.True(t, errors.Is(err, authz.ErrAuthenticationRequired))
	assert.Contains(t, err.Error(), "Token has expired")
}

func TestSessionDeletedUser(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	session, store := newTestSession(t, env, &now)
	_, _, err := session.Login(env.ctx, "sup@epic.test", testPassword)
	require.NoError(t, err)
	require.NoError(t, env.repo.DeleteUser(env.ctx, env.support.ID))

	fresh, _ := newTestSession(t, env, &now)
	fresh.store = store
	_, err = fresh.Actor(env.ctx)
	assert.ErrorIs(t, err, authz.ErrAuthenticationRequired)
}
