// Package server wires and runs the StoreConsole development backend: the
// user directory, the sales ledger, and the HTTP and gRPC endpoints that
// expose them.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/storeconsole/internal/logging"
	"github.com/dmitrijs2005/storeconsole/internal/server/config"
	"github.com/dmitrijs2005/storeconsole/internal/server/httpapi"
	"github.com/dmitrijs2005/storeconsole/internal/server/summary"
	"github.com/dmitrijs2005/storeconsole/internal/server/users"
	"golang.org/x/crypto/bcrypt"

	gs "github.com/dmitrijs2005/storeconsole/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	userService *users.Service
	ledger      *summary.Ledger
	db          *sql.DB
}

func NewApp(c *config.Config) (*App, error) {
	return newApp(c, logging.NewJSONLogger(os.Stdout))
}

func newApp(c *config.Config, logger logging.Logger) (*App, error) {
	ctx := context.Background()

	var (
		repo users.Repository = users.NewMemoryRepository()
		db   *sql.DB
	)
	if c.DatabaseDSN != "" {
		var err error
		db, err = users.OpenPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		repo = users.NewPostgresRepository(db)
	}

	if c.UsersFile != "" {
		if err := users.LoadFile(ctx, repo, c.UsersFile); err != nil {
			closeDB(db)
			return nil, fmt.Errorf("load users: %w", err)
		}
	} else {
		if err := users.Seed(ctx, repo, users.DefaultSeed, bcrypt.DefaultCost); err != nil {
			closeDB(db)
			return nil, fmt.Errorf("seed users: %w", err)
		}
		logger.Warn(ctx, "Using built-in development accounts")
	}

	us := users.NewService(repo, c)
	ledger := summary.NewSampleLedger(time.Now)

	return &App{config: c, logger: logger, userService: us, ledger: ledger, db: db}, nil
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

type runner interface {
	Run(ctx context.Context) error
}

func (app *App) start(ctx context.Context, cancelFunc context.CancelFunc, name string, s runner, err error) {
	if err == nil {
		err = s.Run(ctx)
	}
	if err != nil {
		app.logger.Error(ctx, "Server stopped with error", "server", name, "error", err)
		cancelFunc()
	}
}

func (app *App) servers() []func(ctx context.Context, cancelFunc context.CancelFunc) {
	return []func(context.Context, context.CancelFunc){
		func(ctx context.Context, cancelFunc context.CancelFunc) {
			s, err := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.ledger)
			app.start(ctx, cancelFunc, "http", s, err)
		},
		func(ctx context.Context, cancelFunc context.CancelFunc) {
			s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.ledger)
			app.start(ctx, cancelFunc, "grpc", s, err)
		},
	}
}

// Run blocks until a signal arrives, ctx is canceled, or a server fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	for _, run := range app.servers() {
		run := run
		wg.Add(1)
		go func() {
			defer wg.Done()
			run(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "Closing database failed", "error", err)
		}
	}

	app.logger.Info(ctx, "App stopped")
}
