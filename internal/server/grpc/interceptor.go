package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/storeconsole/internal/api"
	"github.com/dmitrijs2005/storeconsole/internal/common"
	"github.com/dmitrijs2005/storeconsole/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// protectedMethods need a valid access token.
var protectedMethods = map[string]bool{
	api.MethodSummary: true,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if protectedMethods[info.FullMethod] {

		var accessToken string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			values := md.Get(common.AuthorizationHeaderName)
			if len(values) > 0 {
				accessToken = common.BearerToken(values[0])
			}
		}
		if len(accessToken) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}

		claims, err := s.users.Authenticate(ctx, accessToken)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				return nil, status.Error(codes.Unauthenticated, "token expired")
			}
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		ctx = auth.WithClaims(ctx, claims)
	}

	return handler(ctx, req)
}
