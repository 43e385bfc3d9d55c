package client

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/storeconsole/internal/api"
	"github.com/dmitrijs2005/storeconsole/internal/client/models"
	"github.com/dmitrijs2005/storeconsole/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// GRPCClient talks to the gRPC mirror of the API.
type GRPCClient struct {
	cc     grpc.ClientConnInterface
	closer io.Closer
	opts   options
}

func NewGRPCClient(endpointAddr string, opts ...Option) (*GRPCClient, error) {
	c := &GRPCClient{opts: buildOptions(opts)}

	dial := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.tokenInterceptor),
	}, c.opts.dialOptions...)

	conn, err := grpc.NewClient(endpointAddr, dial...)
	if err != nil {
		return nil, fmt.Errorf("grpc client for %s: %w", endpointAddr, err)
	}
	c.cc = conn
	c.closer = conn
	return c, nil
}

// tokenInterceptor attaches the session token to every call but Login.
func (c *GRPCClient) tokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if method != api.MethodLogin {
		if token := c.opts.tokenSource(); token != "" {
			ctx = withToken(ctx, token)
		}
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func withToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	md.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (c *GRPCClient) invoke(ctx context.Context, method string, in any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.opts.timeout)
	defer cancel()

	req, err := api.ToStruct(in)
	if err != nil {
		return err
	}
	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, req, resp); err != nil {
		return c.mapError(err)
	}
	if err := api.FromStruct(resp, out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}

func (c *GRPCClient) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	var resp api.LoginResponse
	if err := c.invoke(ctx, api.MethodLogin, loginRequest(creds), &resp); err != nil {
		return nil, err
	}
	return loginResult(&resp)
}

func (c *GRPCClient) Summary(ctx context.Context) (*models.Summary, error) {
	var resp api.Summary
	if err := c.invoke(ctx, api.MethodSummary, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return summary(&resp), nil
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	var resp api.PingResponse
	if err := c.invoke(ctx, api.MethodPing, struct{}{}, &resp); err != nil {
		return err
	}
	if resp.Status != api.StatusOK {
		return ErrUnavailable
	}
	return nil
}

func (c *GRPCClient) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

func (c *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.Canceled:
		return context.Canceled
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
