package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/dmitrijs2005/storeconsole/internal/client/authctx"
	"github.com/dmitrijs2005/storeconsole/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	e := newTestEnv(t)
	e.app.provider.Init(context.Background())
	stubInputs(t, "admin", "secret")

	require.NoError(t, e.app.Login(context.Background()))

	assert.True(t, e.app.isLoggedIn())
	assert.Contains(t, e.out.String(), "Welcome, admin (admin)")
	assert.Equal(t, ModeOnline, e.app.mode())
	assert.Equal(t, "tok-admin", e.store.Token())
}

func TestLogin_WipesPassword(t *testing.T) {
	e := newTestEnv(t)
	e.app.provider.Init(context.Background())

	pw := []byte("secret")
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return "admin", nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return pw, nil }
	t.Cleanup(func() { getSimpleText, getPassword = origST, origGP })

	require.NoError(t, e.app.Login(context.Background()))
	assert.Equal(t, make([]byte, len(pw)), pw)
}

func TestLogin_BadCredentials(t *testing.T) {
	e := newTestEnv(t)
	e.app.provider.Init(context.Background())
	stubInputs(t, "admin", "nope")

	err := e.app.Login(context.Background())
	var ae *services.AuthenticationError
	require.ErrorAs(t, err, &ae)

	assert.False(t, e.app.isLoggedIn())
	assert.Contains(t, e.out.String(), "Login failed: "+services.MsgInvalidCredentials)
	assert.Equal(t, services.MsgInvalidCredentials, e.app.provider.Snapshot().Error)
}

func TestLogin_AlreadyLoggedIn(t *testing.T) {
	e := newTestEnv(t)
	e.login(t, "admin")

	require.NoError(t, e.app.Login(context.Background()))
	assert.Contains(t, e.out.String(), "Already logged in as admin")
	assert.Equal(t, 1, e.fc.loginCalls)
}

func TestLogin_InputError(t *testing.T) {
	e := newTestEnv(t)
	e.app.provider.Init(context.Background())

	origST := getSimpleText
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return "", io.EOF }
	t.Cleanup(func() { getSimpleText = origST })

	require.ErrorIs(t, e.app.Login(context.Background()), io.EOF)
	assert.Zero(t, e.fc.loginCalls)
}

func TestLogin_PasswordError(t *testing.T) {
	e := newTestEnv(t)
	e.app.provider.Init(context.Background())
	stubInputs(t, "admin", "secret")

	getPassword = func(_ io.Writer) ([]byte, error) { return nil, errors.New("no tty") }

	require.EqualError(t, e.app.Login(context.Background()), "no tty")
	assert.Zero(t, e.fc.loginCalls)
}

func TestLogout(t *testing.T) {
	e := newTestEnv(t)
	e.login(t, "admin")

	require.NoError(t, e.app.Logout(context.Background()))
	assert.False(t, e.app.isLoggedIn())
	assert.False(t, e.store.IsAuthenticated())
	assert.Equal(t, authctx.StateUnauthenticated, e.app.provider.Snapshot().State)
	assert.Contains(t, e.out.String(), "Logged out.")

	raw, err := e.persist.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestWhoAmI(t *testing.T) {
	e := newTestEnv(t)
	e.app.provider.Init(context.Background())

	require.NoError(t, e.app.WhoAmI(context.Background()))
	assert.Contains(t, e.out.String(), "Not logged in.")

	e.login(t, "manager")
	require.NoError(t, e.app.WhoAmI(context.Background()))
	assert.Contains(t, e.out.String(), "username: manager, role: manager")
	assert.Contains(t, e.out.String(), "Session expires in 1h0m0s")
}
