package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/storeconsole/internal/api"
	"github.com/dmitrijs2005/storeconsole/internal/logging"
	"github.com/dmitrijs2005/storeconsole/internal/server/summary"
	"github.com/dmitrijs2005/storeconsole/internal/server/users"
	"google.golang.org/grpc"
)

type GRPCServer struct {
	address string
	users   *users.Service
	ledger  *summary.Ledger
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us *users.Service, ledger *summary.Ledger) (*GRPCServer, error) {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		users:   us,
		ledger:  ledger,
	}, nil
}

// newServer creates the gRPC server with the console service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))
	api.RegisterConsoleServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
