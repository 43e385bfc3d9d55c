package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ConsoleServiceServer is the server side of the gRPC mirror of the HTTP
// API. Every method takes and returns a Struct holding the JSON payload
// defined in this package.
type ConsoleServiceServer interface {
	Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Summary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Ping(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// RegisterConsoleServiceServer attaches srv to a gRPC server.
func RegisterConsoleServiceServer(r grpc.ServiceRegistrar, srv ConsoleServiceServer) {
	r.RegisterService(&ConsoleServiceDesc, srv)
}

func unaryHandler(method string, call func(ConsoleServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ConsoleServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ConsoleServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ConsoleServiceDesc describes the service for grpc.Server.RegisterService.
var ConsoleServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ConsoleServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Login",
			Handler: unaryHandler(MethodLogin, func(s ConsoleServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.Login(ctx, in)
			}),
		},
		{
			MethodName: "Summary",
			Handler: unaryHandler(MethodSummary, func(s ConsoleServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.Summary(ctx, in)
			}),
		},
		{
			MethodName: "Ping",
			Handler: unaryHandler(MethodPing, func(s ConsoleServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.Ping(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storeconsole/v1/console.proto",
}
