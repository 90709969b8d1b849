package usecase

import (
	"context"
	"time"

	"identity/internal/domain/entity"
	"identity/internal/domain/repository"

	"github.com/google/uuid"
)

// CredentialAuthenticator checks an email and password pair.
type CredentialAuthenticator interface {
	// Authenticate returns the account or domainerrors.ErrInvalidCredentials,
	// never revealing which of email or password was wrong.
	Authenticate(ctx context.Context, email, password string) (*entity.Account, error)
}

// RefreshTokenStore issues, verifies and revokes refresh sessions.
type RefreshTokenStore interface {
	// Create issues a new session. The plaintext token is only available on the returned value.
	Create(ctx context.Context, account *entity.Account, deviceInfo string) (*entity.RefreshSession, error)

	// CreateWithRepo is Create through a repository bound to the caller's transaction.
	CreateWithRepo(ctx context.Context, sessionRepo repository.RefreshSessionRepository, account *entity.Account, deviceInfo string) (*entity.RefreshSession, error)

	// VerifyAndConsume validates a refresh token and returns its account. Concurrent
	// calls on the same token are serialized by a row lock.
	VerifyAndConsume(ctx context.Context, token string) (*entity.Account, error)

	// Revoke revokes one session. Unknown or already revoked tokens are a no-op.
	Revoke(ctx context.Context, token string) error

	// RevokeAll revokes every live session of an account.
	RevokeAll(ctx context.Context, accountID uuid.UUID) (int64, error)

	ListActive(ctx context.Context, accountID uuid.UUID) ([]*entity.RefreshSession, error)

	// PurgeExpired deletes sessions that expired or were revoked before olderThan.
	PurgeExpired(ctx context.Context, olderThan time.Time) (int64, error)
}
