// Package services contains the application services of the StoreConsole
// client. This file defines the authentication service: login against the
// backend, logout, and restoring a persisted session on start.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/storeconsole/internal/client/client"
	"github.com/dmitrijs2005/storeconsole/internal/client/models"
	"github.com/dmitrijs2005/storeconsole/internal/client/session"
	"github.com/dmitrijs2005/storeconsole/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionLifetime applies when neither the login response nor the
// token carries an expiry.
const DefaultSessionLifetime = 8 * time.Hour

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: exactly one remote call; on success the session is persisted.
//     Failures are *AuthenticationError and leave the stored session as is.
//   - Logout: forgets the session; never fails.
//   - Restore: loads a persisted session (see session.Store.Restore).
//   - Summary, Ping: authenticated and liveness calls to the backend.
//   - Close: release underlying client resources.
type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (*models.Session, error)
	Logout(ctx context.Context)
	Restore(ctx context.Context) (*models.Session, error)
	Store() *session.Store
	Summary(ctx context.Context) (*models.Summary, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client   client.Client
	store    *session.Store
	log      logging.Logger
	lifetime time.Duration
}

type Option func(*authService)

// WithDefaultLifetime overrides DefaultSessionLifetime.
func WithDefaultLifetime(d time.Duration) Option {
	return func(a *authService) {
		if d > 0 {
			a.lifetime = d
		}
	}
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store.
func NewAuthService(c client.Client, store *session.Store, log logging.Logger, opts ...Option) AuthService {
	a := &authService{
		client:   c,
		store:    store,
		log:      log.With("module", "auth"),
		lifetime: DefaultSessionLifetime,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *authService) Store() *session.Store { return a.store }

func (a *authService) Login(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	creds.Username = strings.TrimSpace(creds.Username)
	if creds.Username == "" || len(creds.Password) == 0 {
		return nil, &AuthenticationError{Message: MsgMissingCredentials}
	}

	res, err := a.client.Login(ctx, creds)
	if err != nil {
		a.log.Warn(ctx, "login rejected", "username", creds.Username, "error", err)
		return nil, &AuthenticationError{Message: loginMessage(err), Err: err}
	}

	sess := &models.Session{
		User:      res.User,
		Token:     res.Token,
		ExpiresAt: a.resolveExpiry(res),
	}
	if err := a.store.Save(ctx, sess); err != nil {
		a.log.Error(ctx, "saving session failed", "username", creds.Username, "error", err)
		return nil, &AuthenticationError{Message: MsgLoginFailed, Err: err}
	}

	a.log.Info(ctx, "login succeeded", "username", sess.User.Username, "role", sess.User.Role)
	return sess, nil
}

func loginMessage(err error) string {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return MsgInvalidCredentials
	case errors.Is(err, client.ErrUnavailable):
		return MsgServerUnavailable
	default:
		return MsgLoginFailed
	}
}

// resolveExpiry picks the server's explicit expiry, then the token's exp
// claim, then the default lifetime.
func (a *authService) resolveExpiry(res *models.LoginResult) time.Time {
	if !res.ExpiresAt.IsZero() {
		return res.ExpiresAt
	}
	if exp, ok := tokenExpiry(res.Token); ok {
		return exp
	}
	return a.store.Now().Add(a.lifetime)
}

// tokenExpiry reads the exp claim without verifying the signature; the
// client does not hold the signing key and only uses it as a hint.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (a *authService) Logout(ctx context.Context) {
	if err := a.store.Clear(ctx); err != nil {
		a.log.Error(ctx, "removing stored session failed", "error", err)
		return
	}
	a.log.Info(ctx, "logged out")
}

func (a *authService) Restore(ctx context.Context) (*models.Session, error) {
	return a.store.Restore(ctx)
}

func (a *authService) Summary(ctx context.Context) (*models.Summary, error) {
	if !a.store.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	return a.client.Summary(ctx)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
