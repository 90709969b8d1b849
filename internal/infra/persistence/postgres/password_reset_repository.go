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

// passwordResetRepository implements repository.PasswordResetRepository using GORM.
type passwordResetRepository struct {
	db *gorm.DB
}

// NewPasswordResetRepository is the constructor for passwordResetRepository.
func NewPasswordResetRepository(db *gorm.DB) repository.PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (repo *passwordResetRepository) Create(ctx context.Context, ticket *entity.PasswordResetTicket) error {
	if ticket.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate ticket id")
		}
		ticket.ID = id
	}

	ticketM := &model.PasswordResetTicketModel{
		ID:        ticket.ID,
		AccountID: ticket.AccountID,
		TokenHash: ticket.TokenHash,
		ExpiresAt: ticket.ExpiresAt.UTC(),
		UsedAt:    utcPtr(ticket.UsedAt),
		CreatedAt: ticket.CreatedAt.UTC(),
	}
	if err := repo.db.WithContext(ctx).Create(ticketM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create password reset ticket")
	}

	return nil
}

func (repo *passwordResetRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.PasswordResetTicket, error) {
	var ticketM model.PasswordResetTicketModel
	if err := repo.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&ticketM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPasswordResetTicketNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find password reset ticket")
	}

	return &entity.PasswordResetTicket{
		ID:        ticketM.ID,
		TokenHash: ticketM.TokenHash,
		AccountID: ticketM.AccountID,
		ExpiresAt: ticketM.ExpiresAt,
		UsedAt:    ticketM.UsedAt,
		CreatedAt: ticketM.CreatedAt,
	}, nil
}

func (repo *passwordResetRepository) DeleteUnusedByAccountID(ctx context.Context, accountID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("account_id = ? AND used_at IS NULL", accountID).
		Delete(&model.PasswordResetTicketModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete password reset tickets")
	}

	return result.RowsAffected, nil
}

func (repo *passwordResetRepository) MarkUsed(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	result := repo.db.WithContext(ctx).Model(&model.PasswordResetTicketModel{}).
		Where("id = ? AND used_at IS NULL", id).
		Update("used_at", at.UTC())
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to mark reset ticket used")
	}

	return result.RowsAffected == 1, nil
}

func (repo *passwordResetRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("expires_at < ?", now.UTC()).
		Delete(&model.PasswordResetTicketModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to purge password reset tickets")
	}

	return result.RowsAffected, nil
}

func (repo *passwordResetRepository) DeleteByAccountID(ctx context.Context, accountID uuid.UUID) error {
	err := repo.db.WithContext(ctx).Where("account_id = ?", accountID).Delete(&model.PasswordResetTicketModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete password reset tickets")
	}

	return nil
}
