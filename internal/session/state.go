package session

import (
	"context"
	"sync"

	"admin/internal/domain/models"
)

// State is where a browser session sits in the login lifecycle.
type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Session is the per-request view of a browser session. It is created by the
// auth middleware and handed to handlers through the gin context.
type Session struct {
	mu    sync.RWMutex
	id    string
	state State
	user  models.AdminUser
	err   error
}

// NewAnonymous returns a session that is not logged in.
func NewAnonymous() *Session {
	return &Session{state: Anonymous}
}

func (s *Session) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) User() models.AdminUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Err is the reason of the last failed login, if any.
func (s *Session) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Session) IsAuthenticated() bool {
	return s.State() == Authenticated
}

func (s *Session) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Authenticating
	s.err = nil
}

func (s *Session) authenticate(id string, user models.AdminUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = id
	s.state = Authenticated
	s.user = user
	s.err = nil
}

func (s *Session) reset(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = ""
	s.state = Anonymous
	s.user = models.AdminUser{}
	s.err = err
}

type ctxKey struct{}

// WithSession attaches s to ctx so the API client can find its token.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}
