package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/storeconsole/internal/client/authctx"
	"github.com/dmitrijs2005/storeconsole/internal/client/client"
	"github.com/dmitrijs2005/storeconsole/internal/client/config"
	"github.com/dmitrijs2005/storeconsole/internal/client/localdb"
	"github.com/dmitrijs2005/storeconsole/internal/client/services"
	"github.com/dmitrijs2005/storeconsole/internal/client/session"
	"github.com/dmitrijs2005/storeconsole/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	provider    *authctx.Provider
	log         logging.Logger
	reader      *bufio.Reader
	out         io.Writer
	db          *sql.DB

	mu sync.Mutex
	// Mode is the last observed server reachability.
	Mode Mode
	// warned is set once the expiry warning for the current session was shown.
	warned bool
	// pendingPath is the page the user was redirected away from.
	pendingPath string
}

// NewApp wires session storage, the API client and the auth services from c.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.NewTextLogger(os.Stderr, c.Verbose)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	persistence, db, err := openPersistence(ctx, c)
	if err != nil {
		log.Error(ctx, "error initializing session storage", "error", err)
		return nil, err
	}

	store := session.NewStore(persistence, session.WithWarnThreshold(c.ExpiryWarning))

	apiClient, err := newAPIClient(c, store.Token)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}

	as := services.NewAuthService(apiClient, store, log, services.WithDefaultLifetime(c.SessionLifetime))

	return newApp(c, as, log, bufio.NewReader(os.Stdin), os.Stdout, db), nil
}

func newApp(c *config.Config, as services.AuthService, log logging.Logger, r *bufio.Reader, w io.Writer, db *sql.DB) *App {
	return &App{
		config:      c,
		authService: as,
		provider:    authctx.NewProvider(as, log),
		log:         log.With("module", "cli"),
		reader:      r,
		out:         w,
		db:          db,
	}
}

func openPersistence(ctx context.Context, c *config.Config) (session.Persistence, *sql.DB, error) {
	switch c.SessionBackend {
	case config.BackendMemory:
		return session.NewMemoryPersistence(), nil, nil
	case config.BackendFile:
		return session.NewFilePersistence(c.SessionPath), nil, nil
	default:
		db, err := localdb.Open(ctx, c.SessionPath)
		if err != nil {
			return nil, nil, err
		}
		return session.NewSQLitePersistence(db), db, nil
	}
}

func newAPIClient(c *config.Config, token client.TokenSource) (client.Client, error) {
	opts := []client.Option{
		client.WithTimeout(c.RequestTimeout),
		client.WithTokenSource(token),
	}
	if c.Transport == config.TransportGRPC {
		return client.NewGRPCClient(c.ServerAddr, opts...)
	}
	return client.NewHTTPClient(c.ServerAddr, opts...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.Mode != mode
	a.Mode = mode
	a.mu.Unlock()

	if changed {
		a.printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)
	a.Root(ctx)
}

func (a *App) close(ctx context.Context) {
	if err := a.authService.Close(ctx); err != nil {
		a.log.Warn(ctx, "closing api client", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(ctx, "closing local database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.provider.Snapshot().IsAuthenticated()
}

// StartOnlineStatusWatcher runs watchTick every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.watchTick(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// watchTick probes the server, drops an expired session and warns once
// when the current one is about to run out.
func (a *App) watchTick(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	err := a.authService.Ping(pingCtx)
	cancel()

	if err != nil {
		a.log.Debug(ctx, "ping failed", "error", err)
		a.setMode(ModeOffline)
	} else {
		a.setMode(ModeOnline)
	}

	before := a.provider.Snapshot()
	after := a.provider.Revalidate(ctx)
	if before.IsAuthenticated() && !after.IsAuthenticated() {
		a.println("Your session has expired. Type 'login' to sign in again.")
		return
	}

	store := a.authService.Store()
	a.mu.Lock()
	warn := !a.warned && store.IsTokenExpiring()
	if warn {
		a.warned = true
	}
	a.mu.Unlock()

	if warn {
		a.printf("Your session expires in %s.\n", store.Remaining().Round(time.Second))
	}
}
