package postgres

import (
	"context"
	"time"

	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/errors"
	"identity/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// refreshSessionRepository implements repository.RefreshSessionRepository using GORM.
// Every revocation is a conditional update on revoked = false, so concurrent callers
// can tell from RowsAffected which one actually performed it.
type refreshSessionRepository struct {
	db *gorm.DB
}

// NewRefreshSessionRepository is the constructor for refreshSessionRepository.
func NewRefreshSessionRepository(db *gorm.DB) repository.RefreshSessionRepository {
	return &refreshSessionRepository{db: db}
}

// Create persists a new session.
func (repo *refreshSessionRepository) Create(ctx context.Context, session *entity.RefreshSession) error {
	if session.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate session id")
		}
		session.ID = id
	}

	if err := repo.db.WithContext(ctx).Create(fromSessionDomain(session)).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create refresh session")
	}

	return nil
}

// FindByTokenHash retrieves a session by the hash of its token.
func (repo *refreshSessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.RefreshSession, error) {
	return repo.findByTokenHash(repo.db.WithContext(ctx), tokenHash)
}

// FindByTokenHashForUpdate locks the row until the surrounding transaction ends.
// SQLite has no row locks; its dialector drops the clause and relies on the database lock.
func (repo *refreshSessionRepository) FindByTokenHashForUpdate(ctx context.Context, tokenHash string) (*entity.RefreshSession, error) {
	return repo.findByTokenHash(repo.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), tokenHash)
}

func (repo *refreshSessionRepository) findByTokenHash(db *gorm.DB, tokenHash string) (*entity.RefreshSession, error) {
	var sessionM model.RefreshSessionModel
	if err := db.Where("token_hash = ?", tokenHash).First(&sessionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRefreshSessionNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find refresh session")
	}

	return toSessionDomain(&sessionM), nil
}

// Revoke marks one session revoked if it is not already.
func (repo *refreshSessionRepository) Revoke(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	result := repo.db.WithContext(ctx).Model(&model.RefreshSessionModel{}).
		Where("id = ? AND revoked = ?", id, false).
		Updates(revokedColumns(at))
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to revoke refresh session")
	}

	return result.RowsAffected == 1, nil
}

// RevokeByTokenHash is Revoke addressed by token hash.
func (repo *refreshSessionRepository) RevokeByTokenHash(ctx context.Context, tokenHash string, at time.Time) (bool, error) {
	result := repo.db.WithContext(ctx).Model(&model.RefreshSessionModel{}).
		Where("token_hash = ? AND revoked = ?", tokenHash, false).
		Updates(revokedColumns(at))
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to revoke refresh session")
	}

	return result.RowsAffected == 1, nil
}

// RevokeAllByAccountID revokes every unrevoked session of an account.
func (repo *refreshSessionRepository) RevokeAllByAccountID(ctx context.Context, accountID uuid.UUID, at time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).Model(&model.RefreshSessionModel{}).
		Where("account_id = ? AND revoked = ?", accountID, false).
		Updates(revokedColumns(at))
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to revoke refresh sessions")
	}

	return result.RowsAffected, nil
}

// Touch records the last time a session minted an access token.
func (repo *refreshSessionRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	err := repo.db.WithContext(ctx).Model(&model.RefreshSessionModel{}).
		Where("id = ?", id).
		Update("last_used_at", at.UTC()).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to touch refresh session")
	}

	return nil
}

// ListActiveByAccountID lists unrevoked, unexpired sessions, newest first.
func (repo *refreshSessionRepository) ListActiveByAccountID(ctx context.Context, accountID uuid.UUID, now time.Time) ([]*entity.RefreshSession, error) {
	var sessionMs []model.RefreshSessionModel
	err := repo.db.WithContext(ctx).
		Where("account_id = ? AND revoked = ? AND expires_at > ?", accountID, false, now.UTC()).
		Order("issued_at DESC").
		Find(&sessionMs).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list refresh sessions")
	}

	sessions := make([]*entity.RefreshSession, 0, len(sessionMs))
	for i := range sessionMs {
		sessions = append(sessions, toSessionDomain(&sessionMs[i]))
	}

	return sessions, nil
}

// DeleteExpiredBefore purges sessions that expired, or were revoked, before cutoff.
func (repo *refreshSessionRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	cutoff = cutoff.UTC()
	result := repo.db.WithContext(ctx).
		Where("expires_at < ? OR (revoked = ? AND revoked_at < ?)", cutoff, true, cutoff).
		Delete(&model.RefreshSessionModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to purge refresh sessions")
	}

	return result.RowsAffected, nil
}

func revokedColumns(at time.Time) map[string]any {
	return map[string]any{
		"revoked":    true,
		"revoked_at": at.UTC(),
	}
}

func fromSessionDomain(session *entity.RefreshSession) *model.RefreshSessionModel {
	return &model.RefreshSessionModel{
		ID:         session.ID,
		AccountID:  session.AccountID,
		TokenHash:  session.TokenHash,
		DeviceInfo: session.DeviceInfo,
		IssuedAt:   session.IssuedAt.UTC(),
		ExpiresAt:  session.ExpiresAt.UTC(),
		LastUsedAt: utcPtr(session.LastUsedAt),
		Revoked:    session.Revoked,
		RevokedAt:  utcPtr(session.RevokedAt),
	}
}

func toSessionDomain(sessionM *model.RefreshSessionModel) *entity.RefreshSession {
	return &entity.RefreshSession{
		ID:         sessionM.ID,
		TokenHash:  sessionM.TokenHash,
		AccountID:  sessionM.AccountID,
		DeviceInfo: sessionM.DeviceInfo,
		IssuedAt:   sessionM.IssuedAt,
		ExpiresAt:  sessionM.ExpiresAt,
		LastUsedAt: sessionM.LastUsedAt,
		Revoked:    sessionM.Revoked,
		RevokedAt:  sessionM.RevokedAt,
	}
}
