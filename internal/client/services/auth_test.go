package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/storeconsole/internal/client/client"
	"github.com/dmitrijs2005/storeconsole/internal/client/models"
	"github.com/dmitrijs2005/storeconsole/internal/client/session"
	"github.com/dmitrijs2005/storeconsole/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fake client ----

type fakeClient struct {
	mu sync.Mutex

	LoginRet *models.LoginResult
	LoginErr error

	SummaryRet *models.Summary
	SummaryErr error

	PingErr  error
	CloseErr error

	LoginCalls   int
	SummaryCalls int
	LastLogin    models.Credentials
}

func (f *fakeClient) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	f.LastLogin = models.Credentials{Username: creds.Username, Password: append([]byte(nil), creds.Password...)}
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	r := *f.LoginRet
	return &r, nil
}

func (f *fakeClient) Summary(ctx context.Context) (*models.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SummaryCalls++
	return f.SummaryRet, f.SummaryErr
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }
func (f *fakeClient) Close() error                   { return f.CloseErr }

var _ client.Client = (*fakeClient)(nil)

// ---- helpers ----

var epoch = time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return epoch }

func adminResult(exp time.Time) *models.LoginResult {
	return &models.LoginResult{
		User:      models.User{ID: "1", Name: "Ada", Username: "admin", Role: models.RoleAdmin},
		Token:     "tok-admin",
		ExpiresAt: exp,
	}
}

func newService(t *testing.T, fc *fakeClient, p session.Persistence, opts ...Option) (AuthService, *session.Store) {
	t.Helper()
	if p == nil {
		p = session.NewMemoryPersistence()
	}
	st := session.NewStore(p, session.WithClock(fixedNow))
	return NewAuthService(fc, st, logging.Nop(), opts...), st
}

func creds(u, p string) models.Credentials {
	return models.Credentials{Username: u, Password: []byte(p)}
}

type brokenPersistence struct{ session.MemoryPersistence }

func (b *brokenPersistence) Store(context.Context, []byte) error { return errors.New("disk full") }
func (b *brokenPersistence) Remove(context.Context) error        { return errors.New("disk gone") }

// ---- TESTS ----

func TestLogin_Success(t *testing.T) {
	fc := &fakeClient{LoginRet: adminResult(epoch.Add(time.Hour))}
	svc, st := newService(t, fc, nil)

	sess, err := svc.Login(context.Background(), creds("  admin ", "secret"))
	require.NoError(t, err)
	require.Equal(t, 1, fc.LoginCalls)
	require.Equal(t, "admin", fc.LastLogin.Username)
	require.Equal(t, "secret", string(fc.LastLogin.Password))

	assert.Equal(t, "admin", sess.User.Username)
	assert.Equal(t, epoch.Add(time.Hour), sess.ExpiresAt)
	assert.True(t, st.IsAuthenticated())
	assert.Equal(t, "tok-admin", st.Token())
	assert.Equal(t, sess.User, *st.User())
}

func TestLogin_MissingCredentials_NoNetworkCall(t *testing.T) {
	fc := &fakeClient{LoginRet: adminResult(epoch.Add(time.Hour))}
	svc, _ := newService(t, fc, nil)

	for _, c := range []models.Credentials{creds("", "secret"), creds("admin", ""), creds("   ", "x")} {
		_, err := svc.Login(context.Background(), c)
		var ae *AuthenticationError
		require.ErrorAs(t, err, &ae)
		require.Equal(t, MsgMissingCredentials, ae.Message)
	}
	require.Zero(t, fc.LoginCalls)
}

func TestLogin_FailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"bad credentials", client.ErrUnauthorized, MsgInvalidCredentials},
		{"unavailable", client.ErrUnavailable, MsgServerUnavailable},
		{"wrapped unavailable", errors.Join(errors.New("dial"), client.ErrUnavailable), MsgServerUnavailable},
		{"other", client.ErrBadResponse, MsgLoginFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{LoginErr: tt.err}
			svc, st := newService(t, fc, nil)

			_, err := svc.Login(context.Background(), creds("admin", "wrong"))
			var ae *AuthenticationError
			require.ErrorAs(t, err, &ae)
			require.Equal(t, tt.want, ae.Message)
			require.ErrorIs(t, err, tt.err)
			require.Equal(t, 1, fc.LoginCalls)
			require.False(t, st.IsAuthenticated())
		})
	}
}

func TestLogin_FailureKeepsExistingSession(t *testing.T) {
	fc := &fakeClient{LoginRet: adminResult(epoch.Add(time.Hour))}
	svc, st := newService(t, fc, nil)
	ctx := context.Background()

	_, err := svc.Login(ctx, creds("admin", "secret"))
	require.NoError(t, err)

	fc.LoginErr = client.ErrUnauthorized
	_, err = svc.Login(ctx, creds("admin", "nope"))
	require.Error(t, err)

	require.True(t, st.IsAuthenticated())
	require.Equal(t, "tok-admin", st.Token())
}

func TestLogin_PersistenceFailure(t *testing.T) {
	fc := &fakeClient{LoginRet: adminResult(epoch.Add(time.Hour))}
	svc, st := newService(t, fc, &brokenPersistence{})

	_, err := svc.Login(context.Background(), creds("admin", "secret"))
	var ae *AuthenticationError
	require.ErrorAs(t, err, &ae)
	require.Equal(t, MsgLoginFailed, ae.Message)
	require.False(t, st.IsAuthenticated())
}

func TestLogin_ExpiryFromToken(t *testing.T) {
	exp := epoch.Add(90 * time.Minute)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
		"uid": "1",
	}).SignedString([]byte("any-key"))
	require.NoError(t, err)

	res := adminResult(time.Time{})
	res.Token = token
	svc, st := newService(t, &fakeClient{LoginRet: res}, nil)

	sess, err := svc.Login(context.Background(), creds("admin", "secret"))
	require.NoError(t, err)
	require.True(t, exp.Equal(sess.ExpiresAt), "got %v", sess.ExpiresAt)
	require.Equal(t, 90*time.Minute, st.Remaining())
}

func TestLogin_ExpiryDefaultLifetime(t *testing.T) {
	res := adminResult(time.Time{})
	res.Token = "opaque-token"

	svc, _ := newService(t, &fakeClient{LoginRet: res}, nil)
	sess, err := svc.Login(context.Background(), creds("admin", "secret"))
	require.NoError(t, err)
	require.Equal(t, epoch.Add(DefaultSessionLifetime), sess.ExpiresAt)

	svc, _ = newService(t, &fakeClient{LoginRet: res}, nil, WithDefaultLifetime(30*time.Minute))
	sess, err = svc.Login(context.Background(), creds("admin", "secret"))
	require.NoError(t, err)
	require.Equal(t, epoch.Add(30*time.Minute), sess.ExpiresAt)
}

func TestLogin_AlreadyExpiredResponse(t *testing.T) {
	fc := &fakeClient{LoginRet: adminResult(epoch.Add(-time.Minute))}
	svc, st := newService(t, fc, nil)

	_, err := svc.Login(context.Background(), creds("admin", "secret"))
	require.ErrorIs(t, err, session.ErrSessionExpired)
	require.False(t, st.IsAuthenticated())
}

func TestLogout(t *testing.T) {
	fc := &fakeClient{LoginRet: adminResult(epoch.Add(time.Hour))}
	p := session.NewMemoryPersistence()
	svc, st := newService(t, fc, p)
	ctx := context.Background()

	_, err := svc.Login(ctx, creds("admin", "secret"))
	require.NoError(t, err)

	svc.Logout(ctx)
	require.False(t, st.IsAuthenticated())
	require.Nil(t, st.User())

	raw, err := p.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, raw)

	// idempotent
	svc.Logout(ctx)
	require.False(t, st.IsAuthenticated())
}

func TestLogout_PersistenceFailureStillLogsOut(t *testing.T) {
	svc, st := newService(t, &fakeClient{}, &brokenPersistence{})
	svc.Logout(context.Background())
	require.False(t, st.IsAuthenticated())
}

func TestRestore(t *testing.T) {
	p := session.NewMemoryPersistence()
	fc := &fakeClient{LoginRet: adminResult(epoch.Add(time.Hour))}
	svc, _ := newService(t, fc, p)
	ctx := context.Background()

	_, err := svc.Login(ctx, creds("admin", "secret"))
	require.NoError(t, err)

	// a new process over the same backend
	svc2, st2 := newService(t, &fakeClient{}, p)
	sess, err := svc2.Restore(ctx)
	require.NoError(t, err)
	require.Equal(t, "admin", sess.User.Username)
	require.True(t, st2.IsAuthenticated())
	require.Same(t, st2, svc2.Store())
}

func TestSummary(t *testing.T) {
	fc := &fakeClient{
		LoginRet:   adminResult(epoch.Add(time.Hour)),
		SummaryRet: &models.Summary{SalesTotal: 100},
	}
	svc, _ := newService(t, fc, nil)
	ctx := context.Background()

	_, err := svc.Summary(ctx)
	require.ErrorIs(t, err, ErrNotAuthenticated)
	require.Zero(t, fc.SummaryCalls)

	_, err = svc.Login(ctx, creds("admin", "secret"))
	require.NoError(t, err)

	s, err := svc.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(100), s.SalesTotal)
}

func TestPingAndClose(t *testing.T) {
	fc := &fakeClient{PingErr: client.ErrUnavailable, CloseErr: errors.New("close")}
	svc, _ := newService(t, fc, nil)

	require.ErrorIs(t, svc.Ping(context.Background()), client.ErrUnavailable)
	require.EqualError(t, svc.Close(context.Background()), "close")
}

func TestAuthenticationError(t *testing.T) {
	e := &AuthenticationError{Message: MsgLoginFailed}
	require.Equal(t, MsgLoginFailed, e.Error())
	require.Nil(t, errors.Unwrap(e))

	e = &AuthenticationError{Message: MsgInvalidCredentials, Err: client.ErrUnauthorized}
	require.Contains(t, e.Error(), MsgInvalidCredentials)
	require.ErrorIs(t, e, client.ErrUnauthorized)
}
