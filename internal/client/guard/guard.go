// Package guard decides whether a route may be shown for the current
// authentication state.
package guard

import (
	"github.com/dmitrijs2005/storeconsole/internal/client/authctx"
	"github.com/dmitrijs2005/storeconsole/internal/client/nav"
)

type Outcome int

const (
	// Wait: the session check has not finished yet.
	Wait Outcome = iota
	Allow
	// Redirect to Decision.To, remembering the requested path in From.
	Redirect
	// Forbid: signed in, but the role is too low.
	Forbid
)

func (o Outcome) String() string {
	switch o {
	case Wait:
		return "wait"
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	case Forbid:
		return "forbid"
	}
	return "unknown"
}

type Decision struct {
	Outcome Outcome
	To      string
	From    string
}

// Decide is pure; it looks only at its arguments.
func Decide(s authctx.Snapshot, r nav.Route) Decision {
	switch {
	case s.IsLoading:
		return Decision{Outcome: Wait}
	case r.IsPublic():
		return Decision{Outcome: Allow}
	case !s.IsAuthenticated():
		return Decision{Outcome: Redirect, To: nav.PathLogin, From: r.Path}
	case !r.VisibleTo(s.User.Role):
		return Decision{Outcome: Forbid}
	}
	return Decision{Outcome: Allow}
}
