// Package client is the StoreConsole backend client.
//
// # Overview
//
// Client is the transport-agnostic contract used by the services layer:
// Login, Summary, Ping and Close. Two implementations are provided:
//
//   - HTTPClient: JSON over HTTP (POST /auth/login, GET /point-of-sale/summary,
//     GET /ping). The session token goes out as "Authorization: Bearer <token>".
//   - GRPCClient: the same payloads as google.protobuf.Struct messages over
//     gRPC; the token is added by a unary interceptor as "authorization"
//     metadata on every call but Login.
//
// Neither implementation stores the token. It is read on each call from the
// TokenSource passed with WithTokenSource, normally the session store.
//
// # Error Handling
//
// Transport and status failures are mapped to sentinel errors that callers
// match with errors.Is: ErrUnauthorized, ErrUnavailable, ErrBadResponse.
// Every call is bounded by a timeout (DefaultTimeout unless WithTimeout is
// given) and honours context cancellation.
package client
