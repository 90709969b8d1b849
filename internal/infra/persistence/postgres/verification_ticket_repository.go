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
)

// verificationTicketRepository implements repository.VerificationTicketRepository using GORM.
type verificationTicketRepository struct {
	db *gorm.DB
}

// NewVerificationTicketRepository is the constructor for verificationTicketRepository.
func NewVerificationTicketRepository(db *gorm.DB) repository.VerificationTicketRepository {
	return &verificationTicketRepository{db: db}
}

func (repo *verificationTicketRepository) Create(ctx context.Context, ticket *entity.EmailVerificationTicket) error {
	if ticket.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate ticket id")
		}
		ticket.ID = id
	}

	ticketM := &model.VerificationTicketModel{
		ID:         ticket.ID,
		AccountID:  ticket.AccountID,
		TokenHash:  ticket.TokenHash,
		ExpiresAt:  ticket.ExpiresAt.UTC(),
		VerifiedAt: utcPtr(ticket.VerifiedAt),
		CreatedAt:  ticket.CreatedAt.UTC(),
	}
	if err := repo.db.WithContext(ctx).Create(ticketM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create verification ticket")
	}

	return nil
}

func (repo *verificationTicketRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.EmailVerificationTicket, error) {
	var ticketM model.VerificationTicketModel
	if err := repo.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&ticketM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVerificationTicketNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find verification ticket")
	}

	return &entity.EmailVerificationTicket{
		ID:         ticketM.ID,
		TokenHash:  ticketM.TokenHash,
		AccountID:  ticketM.AccountID,
		ExpiresAt:  ticketM.ExpiresAt,
		VerifiedAt: ticketM.VerifiedAt,
		CreatedAt:  ticketM.CreatedAt,
	}, nil
}

func (repo *verificationTicketRepository) DeleteUnverifiedByAccountID(ctx context.Context, accountID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("account_id = ? AND verified_at IS NULL", accountID).
		Delete(&model.VerificationTicketModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete verification tickets")
	}

	return result.RowsAffected, nil
}

func (repo *verificationTicketRepository) MarkVerified(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	result := repo.db.WithContext(ctx).Model(&model.VerificationTicketModel{}).
		Where("id = ? AND verified_at IS NULL", id).
		Update("verified_at", at.UTC())
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to mark ticket verified")
	}

	return result.RowsAffected == 1, nil
}

func (repo *verificationTicketRepository) HasPendingByAccountID(ctx context.Context, accountID uuid.UUID, now time.Time) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.VerificationTicketModel{}).
		Where("account_id = ? AND verified_at IS NULL AND expires_at > ?", accountID, now.UTC()).
		Count(&count).Error
	if err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to count verification tickets")
	}

	return count > 0, nil
}

func (repo *verificationTicketRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("expires_at < ?", now.UTC()).
		Delete(&model.VerificationTicketModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to purge verification tickets")
	}

	return result.RowsAffected, nil
}

func (repo *verificationTicketRepository) DeleteByAccountID(ctx context.Context, accountID uuid.UUID) error {
	err := repo.db.WithContext(ctx).Where("account_id = ?", accountID).Delete(&model.VerificationTicketModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete verification tickets")
	}

	return nil
}
