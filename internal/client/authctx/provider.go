// Package authctx holds the client's authentication state machine.
//
// A Provider starts in StateUnknown until Init has looked at the stored
// session, then moves between StateAuthenticated and StateUnauthenticated as
// the user logs in and out or the session expires. Views never ask the
// session store directly; they read a Snapshot or subscribe to changes.
package authctx

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/dmitrijs2005/storeconsole/internal/client/models"
	"github.com/dmitrijs2005/storeconsole/internal/client/services"
	"github.com/dmitrijs2005/storeconsole/internal/client/session"
	"github.com/dmitrijs2005/storeconsole/internal/logging"
)

// ErrLoginInProgress is returned when Login is called while another login
// is still waiting for the server.
var ErrLoginInProgress = errors.New("login already in progress")

// ErrLoginSuperseded is returned by a Login whose result arrived after a
// Logout. The late session is discarded.
var ErrLoginSuperseded = errors.New("login superseded by logout")

// MsgSessionExpired is the error shown after an expired session is dropped.
const MsgSessionExpired = "session expired"

type State int

const (
	StateUnknown State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the provider. User is non-nil only in
// StateAuthenticated.
type Snapshot struct {
	State     State
	User      *models.User
	IsLoading bool
	Error     string
}

func (s Snapshot) IsAuthenticated() bool {
	return s.State == StateAuthenticated && s.User != nil
}

// Provider owns the authentication state. It is safe for concurrent use.
type Provider struct {
	svc services.AuthService
	log logging.Logger

	mu        sync.Mutex
	snap      Snapshot
	inFlight  bool
	gen       uint64 // bumped by every logout
	observers map[int]func(Snapshot)
	nextID    int

	// pending snapshots, delivered in order by whoever holds delivering
	queue      []Snapshot
	delivering bool
}

func NewProvider(svc services.AuthService, log logging.Logger) *Provider {
	return &Provider{
		svc:       svc,
		log:       log.With("module", "authctx"),
		snap:      Snapshot{State: StateUnknown, IsLoading: true},
		observers: make(map[int]func(Snapshot)),
	}
}

// Snapshot returns the current state.
func (p *Provider) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap
}

// Subscribe registers fn to be called after every state change. The returned
// function removes it.
func (p *Provider) Subscribe(fn func(Snapshot)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.observers[id] = fn
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.observers, id)
			p.mu.Unlock()
		})
	}
}

// Init inspects the stored session once. An expired or malformed session is
// cleared. Any other read failure leaves the stored record alone; the
// provider settles unauthenticated either way.
func (p *Provider) Init(ctx context.Context) Snapshot {
	sess, err := p.svc.Restore(ctx)
	switch {
	case err == nil && sess != nil:
		return p.set(Snapshot{State: StateAuthenticated, User: userCopy(sess.User)})
	case err == nil:
		return p.set(Snapshot{State: StateUnauthenticated})
	}

	if errors.Is(err, session.ErrSessionExpired) || errors.Is(err, session.ErrSessionCorrupt) {
		p.log.Info(ctx, "discarding stored session", "reason", err)
		p.logout(ctx)
	} else {
		p.log.Error(ctx, "restoring session failed", "error", err)
	}
	return p.set(Snapshot{State: StateUnauthenticated})
}

// Login authenticates with the backend. Only one login may run at a time;
// a concurrent call fails with ErrLoginInProgress without reaching the
// server. On failure the snapshot carries the user-facing message and the
// error is returned. A Logout that lands while the request is out wins.
func (p *Provider) Login(ctx context.Context, creds models.Credentials) error {
	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		return ErrLoginInProgress
	}
	p.inFlight = true
	gen := p.gen
	loading := p.snap
	loading.IsLoading = true
	p.commitLocked(loading)
	p.mu.Unlock()
	p.flush()

	sess, err := p.svc.Login(ctx, creds)

	next := Snapshot{State: StateAuthenticated}
	if err != nil {
		msg := services.MsgLoginFailed
		var ae *services.AuthenticationError
		if errors.As(err, &ae) {
			msg = ae.Message
		}
		next = Snapshot{State: StateUnauthenticated, Error: msg}
	} else {
		next.User = userCopy(sess.User)
	}

	p.mu.Lock()
	p.inFlight = false
	stale := p.gen != gen
	if !stale {
		p.commitLocked(next)
	}
	p.mu.Unlock()

	if stale {
		if err == nil {
			p.log.Info(ctx, "discarding login finished after logout", "username", sess.User.Username)
			p.svc.Logout(ctx)
		}
		return ErrLoginSuperseded
	}

	p.flush()
	return err
}

// Logout forgets the session. It always leaves the provider unauthenticated.
func (p *Provider) Logout(ctx context.Context) Snapshot {
	p.logout(ctx)
	return p.set(Snapshot{State: StateUnauthenticated})
}

func (p *Provider) logout(ctx context.Context) {
	p.mu.Lock()
	p.gen++
	p.mu.Unlock()
	p.svc.Logout(ctx)
}

// ClearError drops the last error message and leaves everything else as is.
func (p *Provider) ClearError() {
	p.mu.Lock()
	if p.snap.Error == "" {
		p.mu.Unlock()
		return
	}
	snap := p.snap
	snap.Error = ""
	p.commitLocked(snap)
	p.mu.Unlock()
	p.flush()
}

// Revalidate forces a logout when the provider believes it is authenticated
// but the stored session is no longer valid.
func (p *Provider) Revalidate(ctx context.Context) Snapshot {
	snap := p.Snapshot()
	if snap.State != StateAuthenticated || p.svc.Store().IsAuthenticated() {
		return snap
	}
	p.log.Info(ctx, "session expired", "username", snap.User.Username)
	p.logout(ctx)
	return p.set(Snapshot{State: StateUnauthenticated, Error: MsgSessionExpired})
}

func (p *Provider) set(s Snapshot) Snapshot {
	p.mu.Lock()
	p.commitLocked(s)
	p.mu.Unlock()
	p.flush()
	return s
}

// commitLocked makes s current and queues it for observers. p.mu must be held.
func (p *Provider) commitLocked(s Snapshot) {
	p.snap = s
	p.queue = append(p.queue, s)
}

// flush delivers queued snapshots in commit order, outside the lock. If
// another goroutine is already delivering, it picks up what was queued here.
// Transitions made from inside an observer are delivered after the current
// one.
func (p *Provider) flush() {
	p.mu.Lock()
	if p.delivering {
		p.mu.Unlock()
		return
	}
	p.delivering = true

	for len(p.queue) > 0 {
		s := p.queue[0]
		p.queue = p.queue[1:]
		fns := p.observerList()

		p.mu.Unlock()
		for _, fn := range fns {
			fn(s)
		}
		p.mu.Lock()
	}

	p.delivering = false
	p.mu.Unlock()
}

func (p *Provider) observerList() []func(Snapshot) {
	ids := make([]int, 0, len(p.observers))
	for id := range p.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(Snapshot), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, p.observers[id])
	}
	return fns
}

func userCopy(u models.User) *models.User { return &u }
