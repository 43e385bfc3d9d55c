// Package common contains shared constants, sentinel errors and small helpers
// used by both the StoreConsole client and the development server.
package common

// AuthorizationHeaderName is the HTTP header / gRPC metadata key that carries
// the session token on outbound requests.
const AuthorizationHeaderName = "authorization"

// BearerPrefix precedes the token in the authorization value.
const BearerPrefix = "Bearer "
