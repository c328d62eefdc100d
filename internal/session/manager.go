package session

import (
	"context"
	"errors"
	"time"

	"admin/internal/domain"
	"admin/internal/domain/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrAdminOnly is shown when a valid account without the admin role logs in.
const ErrAdminOnly = "Pristup odbijen. Samo administratori mogu pristupiti."

// Authenticator is the remote side of login and logout.
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)
	Logout(ctx context.Context) error
}

// Manager drives session state transitions and doubles as the API client's
// token source.
type Manager struct {
	store Store
	auth  Authenticator
	ttl   time.Duration
	log   zerolog.Logger
	now   func() time.Time
}

func NewManager(store Store, auth Authenticator, ttl time.Duration, log zerolog.Logger) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{store: store, auth: auth, ttl: ttl, log: log, now: time.Now}
}

// SetAuthenticator completes wiring when the authenticator itself depends on
// the manager (the API client uses it as token source).
func (m *Manager) SetAuthenticator(auth Authenticator) {
	m.auth = auth
}

// Login authenticates s. Only admins end up authenticated; any other role
// leaves s anonymous with nothing persisted.
func (m *Manager) Login(ctx context.Context, s *Session, creds models.Credentials) error {
	previous := s.ID()
	s.begin()

	resp, err := m.auth.Login(ctx, creds)
	if err != nil {
		m.discard(ctx, previous)
		s.reset(err)
		return err
	}
	if !resp.User.IsAdmin() {
		m.discard(ctx, previous)
		err := domain.ForbiddenError{Msg: ErrAdminOnly}
		s.reset(err)
		return err
	}

	now := m.now()
	if err := checkToken(resp.Session.AccessToken, now); err != nil {
		m.discard(ctx, previous)
		uerr := domain.UnauthorizedError{Msg: "Server je vratio neispravan pristupni token."}
		m.log.Warn().Err(err).Msg("login token rejected")
		s.reset(uerr)
		return uerr
	}
	rec := Record{
		ID:           uuid.NewString(),
		User:         resp.User,
		AccessToken:  resp.Session.AccessToken,
		RefreshToken: resp.Session.RefreshToken,
		CreatedAt:    now,
		ExpiresAt:    now.Add(m.ttl),
	}
	if exp, err := TokenExpiry(rec.AccessToken); err == nil && exp.Before(rec.ExpiresAt) {
		rec.ExpiresAt = exp
	}
	if err := m.store.Save(ctx, rec); err != nil {
		s.reset(err)
		return domain.InternalError{Msg: "session could not be saved", Err: err}
	}
	// A fresh id on every login; the pre-login id is never reused.
	m.discard(ctx, previous)
	s.authenticate(rec.ID, rec.User)
	return nil
}

// Logout revokes the token on the server when possible and always clears the
// local record.
func (m *Manager) Logout(ctx context.Context, s *Session) {
	id := s.ID()
	if s.IsAuthenticated() {
		if err := m.auth.Logout(WithSession(ctx, s)); err != nil {
			m.log.Warn().Err(err).Msg("remote logout failed")
		}
	}
	m.discard(ctx, id)
	s.reset(nil)
}

// Restore rebuilds the session for a cookie id. Records without a complete
// admin identity or with an unusable token are removed.
func (m *Manager) Restore(ctx context.Context, id string) *Session {
	s := NewAnonymous()
	if id == "" {
		return s
	}
	rec, err := m.store.Load(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			m.log.Error().Err(err).Msg("session lookup failed")
		}
		return s
	}
	now := m.now()
	if rec.Expired(now) || !rec.User.Valid() || checkToken(rec.AccessToken, now) != nil {
		m.discard(ctx, id)
		return s
	}
	s.authenticate(id, rec.User)
	return s
}

// Token returns the access token of the session bound to ctx.
func (m *Manager) Token(ctx context.Context) (string, bool) {
	s, ok := FromContext(ctx)
	if !ok || !s.IsAuthenticated() {
		return "", false
	}
	rec, err := m.store.Load(ctx, s.ID())
	if err != nil || rec.AccessToken == "" {
		return "", false
	}
	return rec.AccessToken, true
}

// Invalidate drops the session bound to ctx after the API refused its token.
func (m *Manager) Invalidate(ctx context.Context) {
	s, ok := FromContext(ctx)
	if !ok {
		return
	}
	m.discard(context.WithoutCancel(ctx), s.ID())
	s.reset(domain.UnauthorizedError{Msg: "Sesija je istekla. Prijavite se ponovo."})
}

// Purge removes expired records from the store.
func (m *Manager) Purge(ctx context.Context) (int64, error) {
	return m.store.Purge(ctx, m.now())
}

func (m *Manager) discard(ctx context.Context, id string) {
	if id == "" {
		return
	}
	if err := m.store.Delete(ctx, id); err != nil {
		m.log.Error().Err(err).Msg("session delete failed")
	}
}
