package session

import (
	"context"
	"testing"
	"time"

	"admin/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockStore(t *testing.T) (*MySQLStore, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	store, err := NewMySQLStore(conn, []byte("0123456789abcdef"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return store, mock
}

func TestNewMySQLStoreRejectsShortKey(t *testing.T) {
	if _, err := NewMySQLStore(nil, []byte("short")); err == nil {
		t.Fatalf("expected error for short key")
	}
}

func TestEnsureSchemaCreatesMissingTable(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("information_schema\\.tables").WithArgs("admin_sessions").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS admin_sessions").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureSchemaSkipsExistingTable(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("information_schema\\.tables").WithArgs("admin_sessions").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("admin_sessions"))

	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveStoresHashedID(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := Record{
		ID:          "raw-session-id",
		User:        models.AdminUser{ID: "u1", Email: "admin@viveo.rs", FullName: "Admin", Role: models.RoleAdmin},
		AccessToken: "tok",
		CreatedAt:   now,
		ExpiresAt:   now.Add(time.Hour),
	}
	mock.ExpectExec("INSERT INTO admin_sessions").
		WithArgs(store.hash("raw-session-id"), "u1", "admin@viveo.rs", "Admin", "admin", nil, "tok", nil, now, now.Add(time.Hour)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.Save(context.Background(), rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
	if store.hash("raw-session-id") == "raw-session-id" || len(store.hash("x")) != 64 {
		t.Fatalf("expected 64 hex char hash")
	}
}

func TestLoadMissingReturnsErrNoSession(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT user_id, email").WithArgs(store.hash("nope")).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	if _, err := store.Load(context.Background(), "nope"); err != ErrNoSession {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestLoadScansRecord(t *testing.T) {
	store, mock := newMockStore(t)
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	cols := []string{"user_id", "email", "full_name", "role", "avatar_url", "access_token", "refresh_token", "created_at", "expires_at"}
	mock.ExpectQuery("SELECT user_id, email").WithArgs(store.hash("s1")).
		WillReturnRows(sqlmock.NewRows(cols).AddRow("u1", "admin@viveo.rs", "Admin", "admin", "https://cdn/a.png", "tok", "ref", created, created.Add(time.Hour)))

	rec, err := store.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != "s1" || rec.User.AvatarURL == nil || *rec.User.AvatarURL != "https://cdn/a.png" || rec.RefreshToken != "ref" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestPurgeDeletesExpiredRows(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec("DELETE FROM admin_sessions WHERE expires_at").WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := store.Purge(context.Background(), now)
	if err != nil || n != 3 {
		t.Fatalf("expected 3 purged, got %d %v", n, err)
	}
}
