package client

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/storeconsole/internal/client/models"
	"google.golang.org/grpc"
)

// Client is the transport-agnostic contract of the StoreConsole backend.
type Client interface {
	// Login exchanges credentials for a session. It performs exactly one
	// remote call.
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error)
	// Summary fetches the point-of-sale overview using the current token.
	Summary(ctx context.Context) (*models.Summary, error)
	Ping(ctx context.Context) error
	Close() error
}

// TokenSource yields the token to attach to authenticated calls; "" means
// the call goes out without one.
type TokenSource func() string

// DefaultTimeout bounds every remote call unless WithTimeout says otherwise.
const DefaultTimeout = 10 * time.Second

type options struct {
	timeout     time.Duration
	tokenSource TokenSource
	httpClient  *http.Client
	dialOptions []grpc.DialOption
}

type Option func(*options)

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithTokenSource sets where authenticated calls read their token from.
func WithTokenSource(ts TokenSource) Option {
	return func(o *options) {
		if ts != nil {
			o.tokenSource = ts
		}
	}
}

// WithHTTPClient replaces the http.Client used by HTTPClient.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithDialOptions appends gRPC dial options used by GRPCClient.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(o *options) { o.dialOptions = append(o.dialOptions, opts...) }
}

func buildOptions(opts []Option) options {
	o := options{timeout: DefaultTimeout, tokenSource: func() string { return "" }}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tokenSource == nil {
		o.tokenSource = func() string { return "" }
	}
	return o
}
