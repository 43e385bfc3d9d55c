package services

import "errors"

// User-facing login failure messages.
const (
	MsgMissingCredentials = "username and password are required"
	MsgInvalidCredentials = "invalid username or password"
	MsgServerUnavailable  = "server is unavailable, please try again later"
	MsgLoginFailed        = "login failed"
)

// ErrNotAuthenticated is returned by calls that need a session when none is held.
var ErrNotAuthenticated = errors.New("not authenticated")

// AuthenticationError is a recoverable login failure. Message is safe to
// show to the user; Err keeps the underlying cause for logs and errors.Is.
type AuthenticationError struct {
	Message string
	Err     error
}

func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AuthenticationError) Unwrap() error { return e.Err }
