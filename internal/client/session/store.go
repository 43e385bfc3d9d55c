package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/storeconsole/internal/client/models"
)

// DefaultWarnThreshold is how long before expiry IsTokenExpiring turns true
// when no threshold is configured.
const DefaultWarnThreshold = 5 * time.Minute

// Store is the session holder used by the rest of the client. Reads are
// served from the in-memory cache; Save and Clear write through to the
// Persistence backend. It is safe for concurrent use.
type Store struct {
	persistence   Persistence
	warnThreshold time.Duration
	now           func() time.Time

	mu      sync.RWMutex
	current *models.Session
}

type Option func(*Store)

// WithWarnThreshold sets the lead time used by IsTokenExpiring.
func WithWarnThreshold(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.warnThreshold = d
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStore(p Persistence, opts ...Option) *Store {
	s := &Store{
		persistence:   p,
		warnThreshold: DefaultWarnThreshold,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now is the store's clock.
func (s *Store) Now() time.Time { return s.now() }

// Restore loads the persisted session into the cache.
//
// It returns (nil, nil) when nothing is stored, a *CorruptError when the
// record is malformed and ErrSessionExpired when it has expired. The cache
// is left empty in every case but success; the persisted record is not
// touched, clearing it is the caller's decision.
func (s *Store) Restore(ctx context.Context) (*models.Session, error) {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	raw, err := s.persistence.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	sess, err := decode(raw)
	if err != nil {
		return nil, err
	}
	if !sess.IsValidAt(s.now()) {
		return nil, ErrSessionExpired
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	return copySession(sess), nil
}

// Save replaces any existing session. The cache changes only after the
// backend accepted the record.
func (s *Store) Save(ctx context.Context, sess *models.Session) error {
	if reason := problem(sess); reason != "" {
		return fmt.Errorf("%w: %s", ErrInvalidSession, reason)
	}
	if !sess.IsValidAt(s.now()) {
		return ErrSessionExpired
	}

	raw, err := encode(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.persistence.Store(ctx, raw); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.current = copySession(sess)
	s.mu.Unlock()
	return nil
}

// Clear forgets the session. The cache is dropped even if the backend fails,
// so the process never keeps acting on a session the user logged out of.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.persistence.Remove(ctx); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Current returns a copy of the cached session if it is still valid.
func (s *Store) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.current.IsValidAt(s.now()) {
		return nil
	}
	return copySession(s.current)
}

// User returns the signed-in user, or nil when there is no valid session.
func (s *Store) User() *models.User {
	sess := s.Current()
	if sess == nil {
		return nil
	}
	return &sess.User
}

// Token returns the session token, or "" when there is no valid session.
func (s *Store) Token() string {
	sess := s.Current()
	if sess == nil {
		return ""
	}
	return sess.Token
}

// IsAuthenticated reports whether a non-expired session is held.
func (s *Store) IsAuthenticated() bool {
	return s.Current() != nil
}

// Remaining is the lifetime left on the current session, zero if none.
func (s *Store) Remaining() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.RemainingAt(s.now())
}

// IsTokenExpiring reports whether a valid session has less than the warning
// threshold left.
func (s *Store) IsTokenExpiring() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.now()
	if !s.current.IsValidAt(now) {
		return false
	}
	return s.current.RemainingAt(now) < s.warnThreshold
}

// WarnThreshold is the configured expiry warning lead time.
func (s *Store) WarnThreshold() time.Duration { return s.warnThreshold }

func copySession(sess *models.Session) *models.Session {
	if sess == nil {
		return nil
	}
	c := *sess
	return &c
}
