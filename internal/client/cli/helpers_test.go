package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/storeconsole/internal/client/client"
	"github.com/dmitrijs2005/storeconsole/internal/client/config"
	"github.com/dmitrijs2005/storeconsole/internal/client/models"
	"github.com/dmitrijs2005/storeconsole/internal/client/services"
	"github.com/dmitrijs2005/storeconsole/internal/client/session"
	"github.com/dmitrijs2005/storeconsole/internal/logging"
)

// fakeClient accepts the users in passwords.
type fakeClient struct {
	mu sync.Mutex

	passwords map[string]string
	roles     map[string]models.Role
	lifetime  time.Duration
	now       func() time.Time

	loginCalls int
	summary    *models.Summary
	summaryErr error
	pingErr    error
	// pingBudget is the time left on the last Ping context
	pingBudget time.Duration
}

func newFakeClient(now func() time.Time) *fakeClient {
	return &fakeClient{
		passwords: map[string]string{"admin": "secret", "manager": "secret", "cashier": "secret"},
		roles: map[string]models.Role{
			"admin":   models.RoleAdmin,
			"manager": models.RoleManager,
			"cashier": models.RoleStaff,
		},
		lifetime: time.Hour,
		now:      now,
		summary:  &models.Summary{SalesTotal: 123456, TransactionCount: 12, AverageTicket: 10288, LowStockProducts: 3, Currency: "USD"},
	}
}

func (f *fakeClient) Login(ctx context.Context, c models.Credentials) (*models.LoginResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	if pw, ok := f.passwords[c.Username]; !ok || pw != string(c.Password) {
		return nil, client.ErrUnauthorized
	}
	return &models.LoginResult{
		User:      models.User{ID: "id-" + c.Username, Username: c.Username, Role: f.roles[c.Username]},
		Token:     "tok-" + c.Username,
		ExpiresAt: f.now().Add(f.lifetime),
	}, nil
}

func (f *fakeClient) Summary(ctx context.Context) (*models.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.summary, f.summaryErr
}

func (f *fakeClient) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := ctx.Deadline(); ok {
		f.pingBudget = time.Until(d)
	}
	return f.pingErr
}

func (f *fakeClient) Close() error { return nil }

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type testEnv struct {
	app     *App
	out     *bytes.Buffer
	fc      *fakeClient
	clock   *testClock
	store   *session.Store
	persist *session.MemoryPersistence
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	clock := &testClock{t: time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)}
	fc := newFakeClient(clock.Now)
	p := session.NewMemoryPersistence()
	store := session.NewStore(p, session.WithClock(clock.Now), session.WithWarnThreshold(5*time.Minute))
	svc := services.NewAuthService(fc, store, logging.Nop())

	cfg := &config.Config{}
	cfg.LoadDefaults()

	out := &bytes.Buffer{}
	app := newApp(cfg, svc, logging.Nop(), bufio.NewReader(strings.NewReader("")), out, nil)
	return &testEnv{app: app, out: out, fc: fc, clock: clock, store: store, persist: p}
}

// stubInputs makes the prompts answer with username and password.
func stubInputs(t *testing.T, username string, password string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return username, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func (e *testEnv) login(t *testing.T, user string) {
	t.Helper()
	stubInputs(t, user, "secret")
	e.app.provider.Init(context.Background())
	if err := e.app.Login(context.Background()); err != nil {
		t.Fatalf("login %s: %v", user, err)
	}
	e.out.Reset()
}
