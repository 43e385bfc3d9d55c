// Package httpapi serves the console JSON API over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/storeconsole/internal/logging"
	"github.com/dmitrijs2005/storeconsole/internal/server/summary"
	"github.com/dmitrijs2005/storeconsole/internal/server/users"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address string
	users   *users.Service
	ledger  *summary.Ledger
	logger  logging.Logger
}

func NewHTTPServer(a string, l logging.Logger, us *users.Service, ledger *summary.Ledger) (*HTTPServer, error) {
	return &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		ledger:  ledger,
	}, nil
}

func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve handles requests on lis until ctx is done, then shuts down gracefully.
func (s *HTTPServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(lis) }()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	var err error
	select {
	case <-ctx.Done():
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shErr := srv.Shutdown(shutdownCtx); shErr != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", shErr)
		}
		err = <-errCh
	case err = <-errCh:
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
