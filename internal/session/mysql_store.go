package session

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"admin/internal/db"

	"golang.org/x/crypto/blake2b"
)

const sessionTable = "admin_sessions"

const createSessionTable = `CREATE TABLE IF NOT EXISTS admin_sessions (
	id_hash CHAR(64) NOT NULL PRIMARY KEY,
	user_id VARCHAR(64) NOT NULL,
	email VARCHAR(255) NOT NULL,
	full_name VARCHAR(255) NOT NULL DEFAULT '',
	role VARCHAR(32) NOT NULL,
	avatar_url TEXT NULL,
	access_token TEXT NOT NULL,
	refresh_token TEXT NULL,
	created_at DATETIME NOT NULL,
	expires_at DATETIME NOT NULL,
	KEY idx_admin_sessions_expires (expires_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// MySQLStore keeps sessions in MySQL. Session ids are stored only as a keyed
// blake2b hash so a leaked table cannot be replayed as cookies.
type MySQLStore struct {
	db  *sql.DB
	key []byte
}

func NewMySQLStore(conn *sql.DB, hashKey []byte) (*MySQLStore, error) {
	if len(hashKey) < 16 || len(hashKey) > blake2b.Size {
		return nil, fmt.Errorf("session hash key must be 16..%d bytes, got %d", blake2b.Size, len(hashKey))
	}
	return &MySQLStore{db: conn, key: hashKey}, nil
}

// EnsureSchema creates the sessions table when it is missing.
func (s *MySQLStore) EnsureSchema(ctx context.Context) error {
	ok, err := db.HasTable(ctx, s.db, sessionTable)
	if err != nil {
		return fmt.Errorf("check %s: %w", sessionTable, err)
	}
	if ok {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, createSessionTable); err != nil {
		return fmt.Errorf("create %s: %w", sessionTable, err)
	}
	return nil
}

func (s *MySQLStore) hash(id string) string {
	h, _ := blake2b.New256(s.key)
	h.Write([]byte(id))
	return hex.EncodeToString(h.Sum(nil))
}

func (s *MySQLStore) Save(ctx context.Context, rec Record) error {
	refresh := rec.RefreshToken
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO admin_sessions
			(id_hash, user_id, email, full_name, role, avatar_url, access_token, refresh_token, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			user_id = VALUES(user_id), email = VALUES(email), full_name = VALUES(full_name),
			role = VALUES(role), avatar_url = VALUES(avatar_url), access_token = VALUES(access_token),
			refresh_token = VALUES(refresh_token), expires_at = VALUES(expires_at)
	`, s.hash(rec.ID), rec.User.ID, rec.User.Email, rec.User.FullName, rec.User.Role,
		db.NullIfEmpty(rec.User.AvatarURL), rec.AccessToken, db.NullIfEmpty(&refresh),
		rec.CreatedAt.UTC(), rec.ExpiresAt.UTC())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *MySQLStore) Load(ctx context.Context, id string) (Record, error) {
	rec := Record{ID: id}
	var avatar, refresh sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, email, full_name, role, avatar_url, access_token, refresh_token, created_at, expires_at
		FROM admin_sessions
		WHERE id_hash = ?
		LIMIT 1
	`, s.hash(id)).Scan(&rec.User.ID, &rec.User.Email, &rec.User.FullName, &rec.User.Role,
		&avatar, &rec.AccessToken, &refresh, &rec.CreatedAt, &rec.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNoSession
	}
	if err != nil {
		return Record{}, fmt.Errorf("load session: %w", err)
	}
	rec.User.AvatarURL = db.StringPtr(avatar)
	if refresh.Valid {
		rec.RefreshToken = refresh.String
	}
	return rec, nil
}

func (s *MySQLStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id_hash = ?`, s.hash(id)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *MySQLStore) Purge(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return res.RowsAffected()
}
