package repository

import (
	"context"
	"errors"
	"time"

	"identity/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrPasswordResetTicketNotFound is returned when no reset ticket matches a token hash.
var ErrPasswordResetTicketNotFound = errors.New("password reset ticket not found")

// PasswordResetRepository persists password reset tickets.
type PasswordResetRepository interface {
	Create(ctx context.Context, ticket *entity.PasswordResetTicket) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.PasswordResetTicket, error)
	DeleteUnusedByAccountID(ctx context.Context, accountID uuid.UUID) (int64, error)

	// MarkUsed sets used_at if it is still unset and reports whether this call set it.
	MarkUsed(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)

	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	DeleteByAccountID(ctx context.Context, accountID uuid.UUID) error
}
