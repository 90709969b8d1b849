package impl

import (
	"context"
	"log/slog"
	"time"

	"identity/config"
	deliverycontext "identity/internal/delivery/context"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/errors"
	"identity/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const defaultRefreshTokenTTL = 7 * 24 * time.Hour

type refreshTokenStore struct {
	txManager   repository.TransactionManager
	sessionRepo repository.RefreshSessionRepository
	ttl         time.Duration
	now         func() time.Time
	logger      *slog.Logger
}

// RefreshTokenStoreParams holds dependencies for the refresh token store, injected by Fx.
type RefreshTokenStoreParams struct {
	fx.In

	TxManager   repository.TransactionManager
	SessionRepo repository.RefreshSessionRepository
	Config      *config.Config
	Logger      *slog.Logger
}

// NewRefreshTokenStore creates the refresh session store. Refresh tokens are not rotated:
// the same token stays valid until it expires or is revoked.
func NewRefreshTokenStore(params RefreshTokenStoreParams) usecase.RefreshTokenStore {
	ttl := defaultRefreshTokenTTL
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.RefreshTokenTTL > 0 {
		ttl = params.Config.Auth.RefreshTokenTTL
	}

	return &refreshTokenStore{
		txManager:   params.TxManager,
		sessionRepo: params.SessionRepo,
		ttl:         ttl,
		now:         time.Now,
		logger:      params.Logger,
	}
}

func (s *refreshTokenStore) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// Create implements usecase.RefreshTokenStore.
func (s *refreshTokenStore) Create(ctx context.Context, account *entity.Account, deviceInfo string) (*entity.RefreshSession, error) {
	return s.CreateWithRepo(ctx, s.sessionRepo, account, deviceInfo)
}

// CreateWithRepo implements usecase.RefreshTokenStore.
func (s *refreshTokenStore) CreateWithRepo(ctx context.Context, sessionRepo repository.RefreshSessionRepository, account *entity.Account, deviceInfo string) (*entity.RefreshSession, error) {
	token, hash, err := newOpaqueToken()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate refresh token")
	}

	now := s.now().UTC()
	session := &entity.RefreshSession{
		TokenHash:  hash,
		AccountID:  account.ID,
		DeviceInfo: deviceInfo,
		IssuedAt:   now,
		ExpiresAt:  now.Add(s.ttl),
	}
	if err := sessionRepo.Create(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to create refresh session")
	}
	session.Token = token

	s.log(ctx).Debug("Refresh session created", slog.Any("accountID", account.ID), slog.Any("sessionID", session.ID))

	return session, nil
}

// VerifyAndConsume implements usecase.RefreshTokenStore. The session row stays locked
// from lookup until the transaction ends so the checks and the updates cannot interleave.
func (s *refreshTokenStore) VerifyAndConsume(ctx context.Context, token string) (*entity.Account, error) {
	hash := hashOpaqueToken(token)
	now := s.now().UTC()

	var account *entity.Account
	var rejectErr error
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sessionRepo := repoFactory.RefreshSessionRepo()

		session, err := sessionRepo.FindByTokenHashForUpdate(ctx, hash)
		if err != nil {
			if errors.Is(err, repository.ErrRefreshSessionNotFound) {
				return errors.Wrap(domainerrors.ErrTokenNotFound, "refresh token not found")
			}

			return errors.Wrap(err, "failed to find refresh session")
		}

		if session.IsExpired(now) {
			// The revoke must commit, so the rejection is reported after the transaction.
			if _, err := sessionRepo.Revoke(ctx, session.ID, now); err != nil {
				return errors.Wrap(err, "failed to revoke expired refresh session")
			}
			rejectErr = errors.Wrap(domainerrors.ErrTokenExpired, "refresh token expired")

			return nil
		}

		if session.Revoked {
			return errors.Wrap(domainerrors.ErrTokenRevoked, "refresh token revoked")
		}

		account, err = repoFactory.AccountRepo().FindByID(ctx, session.AccountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return errors.Wrap(domainerrors.ErrTokenNotFound, "refresh token owner not found")
			}

			return errors.Wrap(err, "failed to load refresh token owner")
		}

		if err := sessionRepo.Touch(ctx, session.ID, now); err != nil {
			return errors.Wrap(err, "failed to touch refresh session")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to verify refresh token")
	}
	if rejectErr != nil {
		s.log(ctx).Debug("Refresh token rejected", slog.Any("error", rejectErr))

		return nil, rejectErr
	}

	return account, nil
}

// Revoke implements usecase.RefreshTokenStore.
func (s *refreshTokenStore) Revoke(ctx context.Context, token string) error {
	revoked, err := s.sessionRepo.RevokeByTokenHash(ctx, hashOpaqueToken(token), s.now().UTC())
	if err != nil {
		return errors.Wrap(err, "failed to revoke refresh token")
	}
	if !revoked {
		s.log(ctx).Debug("Revoke skipped: refresh token unknown or already revoked")
	}

	return nil
}

// RevokeAll implements usecase.RefreshTokenStore.
func (s *refreshTokenStore) RevokeAll(ctx context.Context, accountID uuid.UUID) (int64, error) {
	count, err := s.sessionRepo.RevokeAllByAccountID(ctx, accountID, s.now().UTC())
	if err != nil {
		return 0, errors.Wrap(err, "failed to revoke refresh sessions")
	}

	s.log(ctx).Info("Revoked refresh sessions", slog.Any("accountID", accountID), slog.Int64("count", count))

	return count, nil
}

// ListActive implements usecase.RefreshTokenStore.
func (s *refreshTokenStore) ListActive(ctx context.Context, accountID uuid.UUID) ([]*entity.RefreshSession, error) {
	sessions, err := s.sessionRepo.ListActiveByAccountID(ctx, accountID, s.now().UTC())
	if err != nil {
		return nil, errors.Wrap(err, "failed to list refresh sessions")
	}

	return sessions, nil
}

// PurgeExpired implements usecase.RefreshTokenStore.
func (s *refreshTokenStore) PurgeExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	count, err := s.sessionRepo.DeleteExpiredBefore(ctx, olderThan.UTC())
	if err != nil {
		return 0, errors.Wrap(err, "failed to purge refresh sessions")
	}

	return count, nil
}
