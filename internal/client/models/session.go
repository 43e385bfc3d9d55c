package models

import "time"

// Session is the authenticated user's active credential record.
type Session struct {
	User      User
	Token     string
	ExpiresAt time.Time
}

// IsValidAt reports whether the session is usable at now.
func (s *Session) IsValidAt(now time.Time) bool {
	return s != nil && s.Token != "" && now.Before(s.ExpiresAt)
}

// RemainingAt is the lifetime left at now, never negative.
func (s *Session) RemainingAt(now time.Time) time.Duration {
	if s == nil {
		return 0
	}
	if d := s.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
