package usecase

import (
	"context"
	"time"

	"identity/internal/domain/entity"
	"identity/internal/domain/repository"

	"github.com/google/uuid"
)

// IssueResult reports the outcome of issuing a verification ticket.
type IssueResult struct {
	Ticket          *entity.EmailVerificationTicket // Nil when AlreadyVerified.
	AlreadyVerified bool
}

// ConsumeResult reports the outcome of redeeming a verification token.
type ConsumeResult struct {
	AccountID       uuid.UUID
	Email           string
	AlreadyVerified bool
}

// VerificationStatus is a read-only view of an account's verification state.
type VerificationStatus struct {
	Email            string
	EmailVerified    bool
	HasPendingTicket bool
}

// EmailVerificationManager owns email ownership tickets.
type EmailVerificationManager interface {
	// Issue replaces any unverified ticket with a fresh one and emails the link.
	Issue(ctx context.Context, account *entity.Account) (*IssueResult, error)

	// IssueWithRepo replaces the ticket inside the caller's transaction and sends nothing.
	// Once the transaction commits, pass the result to SendVerificationEmail.
	IssueWithRepo(ctx context.Context, repoFactory repository.RepositoryFactory, account *entity.Account) (*IssueResult, error)

	// SendVerificationEmail queues the link for a freshly issued ticket.
	SendVerificationEmail(ctx context.Context, account *entity.Account, result *IssueResult)

	// Resend is Issue addressed by email.
	Resend(ctx context.Context, email string) (*IssueResult, error)

	// Consume redeems a token. Redeeming a token of an already verified ticket succeeds
	// with AlreadyVerified set.
	Consume(ctx context.Context, token string) (*ConsumeResult, error)

	Status(ctx context.Context, email string) (*VerificationStatus, error)

	// SweepExpired deletes tickets whose expiry has passed.
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}
