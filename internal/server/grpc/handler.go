package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/storeconsole/internal/api"
	"github.com/dmitrijs2005/storeconsole/internal/common"
	"github.com/dmitrijs2005/storeconsole/internal/server/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func reply(v any) (*structpb.Struct, error) {
	out, err := api.ToStruct(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return out, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	var in api.LoginRequest
	if err := api.FromStruct(req, &in); err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed request")
	}
	if in.Username == "" || in.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "username and password are required")
	}

	sess, err := s.users.Login(ctx, in.Username, []byte(in.Password))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.logger.Info(ctx, "Login rejected", "username", in.Username)
			return nil, status.Error(codes.Unauthenticated, "invalid credentials")
		}
		s.logger.Error(ctx, "Login failed", "username", in.Username, "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	s.logger.Info(ctx, "Logged in", "username", sess.User.Username, "role", sess.User.Role)
	return reply(sess.LoginResponse())
}

func (s *GRPCServer) Summary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	claims, ok := auth.ClaimsFrom(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	s.logger.Debug(ctx, "Summary requested", "username", claims.Username)
	return reply(s.ledger.Summary())
}

func (s *GRPCServer) Ping(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	return reply(api.PingResponse{Status: api.StatusOK})

}
