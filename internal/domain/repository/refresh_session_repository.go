package repository

import (
	"context"
	"errors"
	"time"

	"identity/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRefreshSessionNotFound is returned when no session matches a token hash.
var ErrRefreshSessionNotFound = errors.New("refresh session not found")

// RefreshSessionRepository persists refresh sessions. Revocation is a soft, conditional update.
type RefreshSessionRepository interface {
	// Create persists a new session.
	Create(ctx context.Context, session *entity.RefreshSession) error

	// FindByTokenHash retrieves a session by the hash of its token.
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.RefreshSession, error)

	// FindByTokenHashForUpdate is FindByTokenHash with a row lock held until the
	// surrounding transaction ends.
	FindByTokenHashForUpdate(ctx context.Context, tokenHash string) (*entity.RefreshSession, error)

	// Revoke marks one session revoked if it is not already. It reports whether this call revoked it.
	Revoke(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)

	// RevokeByTokenHash is Revoke addressed by token hash. Unknown hashes report false.
	RevokeByTokenHash(ctx context.Context, tokenHash string, at time.Time) (bool, error)

	// RevokeAllByAccountID revokes every unrevoked session of an account and returns how many changed.
	RevokeAllByAccountID(ctx context.Context, accountID uuid.UUID, at time.Time) (int64, error)

	// Touch records the last time a session minted an access token.
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error

	// ListActiveByAccountID lists unrevoked, unexpired sessions, newest first.
	ListActiveByAccountID(ctx context.Context, accountID uuid.UUID, now time.Time) ([]*entity.RefreshSession, error)

	// DeleteExpiredBefore physically removes sessions that expired or were revoked before cutoff.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
