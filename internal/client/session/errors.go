package session

import (
	"errors"
	"fmt"
)

var (
	ErrSessionCorrupt = errors.New("stored session is corrupt")
	ErrSessionExpired = errors.New("session expired")
	ErrInvalidSession = errors.New("invalid session")
)

// CorruptError describes why a persisted record was rejected.
// errors.Is(err, ErrSessionCorrupt) holds for every CorruptError.
type CorruptError struct {
	Reason string
	Err    error
}

func (e *CorruptError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrSessionCorrupt, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrSessionCorrupt, e.Reason)
}

func (e *CorruptError) Unwrap() error { return e.Err }

func (e *CorruptError) Is(target error) bool { return target == ErrSessionCorrupt }
