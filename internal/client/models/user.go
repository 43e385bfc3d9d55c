// Package models defines the client-side data model of StoreConsole: the
// signed-in user, credentials, the session record and the point-of-sale
// summary shown on the overview screen.
package models

import (
	"strings"
	"time"
)

// Role names the access level of a user. Roles are ordered:
// staff < manager < admin.
type Role string

const (
	RoleStaff   Role = "staff"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

var roleRank = map[Role]int{
	RoleStaff:   1,
	RoleManager: 2,
	RoleAdmin:   3,
}

// ParseRole normalises a role name received from the server.
func ParseRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// IsAtLeast reports whether r grants at least the access of min.
// An unknown role never satisfies a requirement; an empty min is always met.
func (r Role) IsAtLeast(min Role) bool {
	if min == "" {
		return true
	}
	have, ok := roleRank[r]
	if !ok {
		return false
	}
	return have >= roleRank[min]
}

// User is the identity returned by the login endpoint.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// DisplayName prefers the full name and falls back to the username.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// Credentials are what the user types at the login prompt. They are never
// persisted; callers wipe Password once the login attempt completes.
type Credentials struct {
	Username string
	Password []byte
}

// LoginResult is the payload of a successful login call. ExpiresAt is zero
// when the server did not send an explicit expiry.
type LoginResult struct {
	User      User
	Token     string
	ExpiresAt time.Time
}
