package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"admin/internal/domain"
	"admin/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

type fakeAuth struct {
	resp       models.AuthResponse
	err        error
	logoutErr  error
	logouts    int
	logoutSeen string
	tokens     *Manager
}

func (f *fakeAuth) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	return f.resp, f.err
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logouts++
	if f.tokens != nil {
		f.logoutSeen, _ = f.tokens.Token(ctx)
	}
	return f.logoutErr
}

func signClaims(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func signToken(t *testing.T, exp time.Time) string {
	return signClaims(t, jwt.MapClaims{"sub": "u1", "exp": exp.Unix()})
}

func adminResponse(t *testing.T, role string) models.AuthResponse {
	return models.AuthResponse{
		User:    models.AdminUser{ID: "u1", Email: "admin@viveo.rs", FullName: "Admin", Role: role},
		Session: models.AuthTokens{AccessToken: signToken(t, time.Now().Add(time.Hour)), RefreshToken: "r1"},
	}
}

func newManager(auth Authenticator) (*Manager, *MemoryStore) {
	store := NewMemoryStore()
	return NewManager(store, auth, 24*time.Hour, zerolog.Nop()), store
}

func TestLoginAdminPersistsRecord(t *testing.T) {
	auth := &fakeAuth{resp: adminResponse(t, models.RoleAdmin)}
	m, store := newManager(auth)
	s := NewAnonymous()

	if err := m.Login(context.Background(), s, models.Credentials{Email: "admin@viveo.rs", Password: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.State() != Authenticated || s.ID() == "" {
		t.Fatalf("expected authenticated session, got %v %q", s.State(), s.ID())
	}
	rec, err := store.Load(context.Background(), s.ID())
	if err != nil {
		t.Fatalf("record not stored: %v", err)
	}
	if rec.AccessToken != auth.resp.Session.AccessToken || rec.User.Email != "admin@viveo.rs" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if !rec.ExpiresAt.Before(time.Now().Add(2 * time.Hour)) {
		t.Fatalf("expected record expiry capped by token exp, got %v", rec.ExpiresAt)
	}
}

func TestLoginNonAdminStaysAnonymousWithStorageCleared(t *testing.T) {
	auth := &fakeAuth{resp: adminResponse(t, models.RoleFan)}
	m, store := newManager(auth)
	ctx := context.Background()

	// An earlier admin session on the same browser must be wiped as well.
	_ = store.Save(ctx, Record{ID: "old", User: models.AdminUser{ID: "u0", Email: "a@b", Role: models.RoleAdmin}})
	s := NewAnonymous()
	s.authenticate("old", models.AdminUser{ID: "u0", Email: "a@b", Role: models.RoleAdmin})

	err := m.Login(ctx, s, models.Credentials{Email: "fan@viveo.rs", Password: "x"})
	if !domain.IsForbidden(err) || err.Error() != ErrAdminOnly {
		t.Fatalf("expected admin-only error, got %v", err)
	}
	if s.State() != Anonymous || s.ID() != "" {
		t.Fatalf("expected anonymous session, got %v %q", s.State(), s.ID())
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d records", store.Len())
	}
	if s.Err() == nil || s.Err().Error() != ErrAdminOnly {
		t.Fatalf("expected failure reason on session, got %v", s.Err())
	}
}

func TestLoginFailureKeepsServerReason(t *testing.T) {
	auth := &fakeAuth{err: domain.UnauthorizedError{Msg: "Pogrešan email ili lozinka"}}
	m, store := newManager(auth)
	s := NewAnonymous()

	err := m.Login(context.Background(), s, models.Credentials{Email: "a@b", Password: "bad"})
	if err == nil || err.Error() != "Pogrešan email ili lozinka" {
		t.Fatalf("expected server reason, got %v", err)
	}
	if s.State() != Anonymous || store.Len() != 0 {
		t.Fatalf("expected anonymous session and empty store")
	}
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	admin := models.AdminUser{ID: "u1", Email: "admin@viveo.rs", Role: models.RoleAdmin}
	valid := signToken(t, time.Now().Add(time.Hour))

	cases := []struct {
		name string
		rec  Record
		want State
	}{
		{"valid", Record{ID: "s1", User: admin, AccessToken: valid}, Authenticated},
		{"expired token", Record{ID: "s1", User: admin, AccessToken: signToken(t, time.Now().Add(-time.Minute))}, Anonymous},
		{"malformed jwt", Record{ID: "s1", User: admin, AccessToken: "aaa.bbb.ccc"}, Anonymous},
		{"missing token", Record{ID: "s1", User: admin}, Anonymous},
		{"opaque token", Record{ID: "s1", User: admin, AccessToken: "sb-opaque-access-token"}, Authenticated},
		{"jwt without exp", Record{ID: "s1", User: admin, AccessToken: signClaims(t, jwt.MapClaims{"sub": "u1"})}, Authenticated},
		{"missing email", Record{ID: "s1", User: models.AdminUser{ID: "u1", Role: models.RoleAdmin}, AccessToken: valid}, Anonymous},
		{"non admin", Record{ID: "s1", User: models.AdminUser{ID: "u1", Email: "x@y", Role: models.RoleStar}, AccessToken: valid}, Anonymous},
		{"expired record", Record{ID: "s1", User: admin, AccessToken: valid, ExpiresAt: time.Now().Add(-time.Second)}, Anonymous},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, store := newManager(&fakeAuth{})
			_ = store.Save(ctx, tc.rec)

			s := m.Restore(ctx, "s1")
			if s.State() != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, s.State())
			}
			if tc.want == Anonymous && store.Len() != 0 {
				t.Fatalf("expected invalid record to be removed")
			}
		})
	}
}

// A session accepted at login must survive the next restore.
func TestLoginAndRestoreAgreeOnTokens(t *testing.T) {
	tokens := map[string]string{
		"opaque":       "sb-opaque-access-token",
		"jwt-no-exp":   signClaims(t, jwt.MapClaims{"sub": "u1"}),
		"jwt-with-exp": signToken(t, time.Now().Add(time.Hour)),
	}
	for name, tok := range tokens {
		t.Run(name, func(t *testing.T) {
			resp := adminResponse(t, models.RoleAdmin)
			resp.Session.AccessToken = tok
			m, store := newManager(&fakeAuth{resp: resp})
			s := NewAnonymous()
			if err := m.Login(context.Background(), s, models.Credentials{Email: "a", Password: "b"}); err != nil {
				t.Fatalf("login: %v", err)
			}
			if r := m.Restore(context.Background(), s.ID()); !r.IsAuthenticated() {
				t.Fatalf("expected restored session to stay authenticated")
			}
			if store.Len() != 1 {
				t.Fatalf("expected one stored record, got %d", store.Len())
			}
		})
	}
}

func TestLoginRejectsUnusableToken(t *testing.T) {
	tokens := map[string]string{
		"missing":   "",
		"expired":   signToken(t, time.Now().Add(-time.Minute)),
		"malformed": "aaa.bbb.ccc",
	}
	for name, tok := range tokens {
		t.Run(name, func(t *testing.T) {
			resp := adminResponse(t, models.RoleAdmin)
			resp.Session.AccessToken = tok
			m, store := newManager(&fakeAuth{resp: resp})
			s := NewAnonymous()
			err := m.Login(context.Background(), s, models.Credentials{Email: "a", Password: "b"})
			if !domain.IsUnauthorized(err) {
				t.Fatalf("expected unauthorized, got %v", err)
			}
			if s.IsAuthenticated() || store.Len() != 0 {
				t.Fatalf("expected anonymous session and empty store")
			}
		})
	}
}

func TestRestoreUnknownID(t *testing.T) {
	m, _ := newManager(&fakeAuth{})
	if s := m.Restore(context.Background(), "nope"); s.IsAuthenticated() {
		t.Fatalf("expected anonymous")
	}
}

func TestTokenAndInvalidate(t *testing.T) {
	auth := &fakeAuth{resp: adminResponse(t, models.RoleAdmin)}
	m, store := newManager(auth)
	s := NewAnonymous()
	if err := m.Login(context.Background(), s, models.Credentials{Email: "a", Password: "b"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	ctx := WithSession(context.Background(), s)

	tok, ok := m.Token(ctx)
	if !ok || tok != auth.resp.Session.AccessToken {
		t.Fatalf("expected stored token, got %q %v", tok, ok)
	}
	if _, ok := m.Token(context.Background()); ok {
		t.Fatalf("expected no token without a session in context")
	}

	m.Invalidate(ctx)
	if s.IsAuthenticated() || store.Len() != 0 {
		t.Fatalf("expected session dropped after invalidation")
	}
	if !domain.IsUnauthorized(s.Err()) {
		t.Fatalf("expected unauthorized reason, got %v", s.Err())
	}
	if _, ok := m.Token(ctx); ok {
		t.Fatalf("expected no token after invalidation")
	}
}

func TestLogoutIsBestEffort(t *testing.T) {
	auth := &fakeAuth{resp: adminResponse(t, models.RoleAdmin), logoutErr: errors.New("network down")}
	m, store := newManager(auth)
	auth.tokens = m
	s := NewAnonymous()
	if err := m.Login(context.Background(), s, models.Credentials{Email: "a", Password: "b"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	m.Logout(context.Background(), s)
	if auth.logouts != 1 {
		t.Fatalf("expected one remote logout, got %d", auth.logouts)
	}
	if auth.logoutSeen != auth.resp.Session.AccessToken {
		t.Fatalf("remote logout did not carry the session token")
	}
	if s.IsAuthenticated() || store.Len() != 0 {
		t.Fatalf("expected local session cleared even when remote logout fails")
	}
}

func TestPurgeRemovesExpired(t *testing.T) {
	m, store := newManager(&fakeAuth{})
	ctx := context.Background()
	_ = store.Save(ctx, Record{ID: "a", ExpiresAt: time.Now().Add(-time.Minute)})
	_ = store.Save(ctx, Record{ID: "b", ExpiresAt: time.Now().Add(time.Hour)})

	n, err := m.Purge(ctx)
	if err != nil || n != 1 {
		t.Fatalf("expected one purged record, got %d %v", n, err)
	}
	if _, err := store.Load(ctx, "b"); err != nil {
		t.Fatalf("live record removed: %v", err)
	}
}
