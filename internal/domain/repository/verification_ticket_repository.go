package repository

import (
	"context"
	"errors"
	"time"

	"identity/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrVerificationTicketNotFound is returned when no verification ticket matches a token hash.
var ErrVerificationTicketNotFound = errors.New("verification ticket not found")

// VerificationTicketRepository persists email verification tickets.
type VerificationTicketRepository interface {
	// Create persists a new ticket.
	Create(ctx context.Context, ticket *entity.EmailVerificationTicket) error

	// FindByTokenHash retrieves a ticket by the hash of its token.
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.EmailVerificationTicket, error)

	// DeleteUnverifiedByAccountID removes all unconsumed tickets of an account.
	DeleteUnverifiedByAccountID(ctx context.Context, accountID uuid.UUID) (int64, error)

	// MarkVerified sets verified_at if it is still unset and reports whether this call set it.
	MarkVerified(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)

	// HasPendingByAccountID reports whether an unverified ticket expiring after now exists.
	HasPendingByAccountID(ctx context.Context, accountID uuid.UUID, now time.Time) (bool, error)

	// DeleteExpired removes every ticket whose expiry is before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)

	// DeleteByAccountID removes every ticket of an account.
	DeleteByAccountID(ctx context.Context, accountID uuid.UUID) error
}
