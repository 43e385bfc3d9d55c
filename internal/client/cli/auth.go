package cli

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/storeconsole/internal/client/authctx"
	"github.com/dmitrijs2005/storeconsole/internal/client/models"
	"github.com/dmitrijs2005/storeconsole/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and signs in through the auth provider.
//
// A failed attempt prints the provider's message and returns the error. The
// password is wiped before returning. When the user was sent here from a
// protected page, that page is mentioned after a successful login.
func (a *App) Login(ctx context.Context) error {
	if s := a.provider.Snapshot(); s.IsAuthenticated() {
		a.printf("Already logged in as %s. Use 'logout' first.\n", s.User.DisplayName())
		return nil
	}

	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.provider.Login(ctx, models.Credentials{Username: userName, Password: password})
	if errors.Is(err, authctx.ErrLoginInProgress) {
		a.println("A login is already in progress.")
		return err
	}
	if errors.Is(err, authctx.ErrLoginSuperseded) {
		a.println("Login discarded: you logged out while it was running.")
		return err
	}
	if err != nil {
		a.println("Login failed:", a.provider.Snapshot().Error)
		return err
	}

	a.mu.Lock()
	a.warned = false
	from := a.pendingPath
	a.pendingPath = ""
	a.mu.Unlock()

	u := a.provider.Snapshot().User
	a.printf("Welcome, %s (%s)\n", u.DisplayName(), u.Role)
	a.setMode(ModeOnline)
	if from != "" {
		a.printf("You were opening %s; type 'open %s' to continue.\n", from, from)
	}
	return nil
}

// Logout forgets the session. It never fails.
func (a *App) Logout(ctx context.Context) error {
	a.provider.Logout(ctx)
	a.println("Logged out.")
	return nil
}

// WhoAmI prints the signed-in user and how long the session has left.
func (a *App) WhoAmI(ctx context.Context) error {
	s := a.provider.Snapshot()
	if !s.IsAuthenticated() {
		a.println("Not logged in.")
		return nil
	}
	a.printf("%s (username: %s, role: %s)\n", s.User.DisplayName(), s.User.Username, s.User.Role)
	a.printf("Session expires in %s\n", a.authService.Store().Remaining().Round(time.Second))
	return nil
}
