package session

import (
	"context"
	"errors"
	"time"

	"admin/internal/domain/models"
)

var ErrNoSession = errors.New("session not found")

// Record is the persisted half of a session: the identity and token pair.
// It is the only place the access token lives.
type Record struct {
	ID           string
	User         models.AdminUser
	AccessToken  string
	RefreshToken string
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

func (r Record) Expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && !now.Before(r.ExpiresAt)
}

// Store persists session records keyed by the opaque session id.
type Store interface {
	Save(ctx context.Context, rec Record) error
	// Load returns ErrNoSession when id is unknown.
	Load(ctx context.Context, id string) (Record, error)
	Delete(ctx context.Context, id string) error
	// Purge removes records that expired at or before now.
	Purge(ctx context.Context, now time.Time) (int64, error)
}
