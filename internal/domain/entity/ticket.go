package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailVerificationTicket is a single-use proof of email ownership.
// At most one unverified, unexpired ticket exists per account.
type EmailVerificationTicket struct {
	ID         uuid.UUID
	Token      string // Plaintext; only set on the issued value.
	TokenHash  string
	AccountID  uuid.UUID
	ExpiresAt  time.Time
	VerifiedAt *time.Time
	CreatedAt  time.Time
}

// IsVerified reports whether the ticket has been consumed.
func (t *EmailVerificationTicket) IsVerified() bool {
	return t.VerifiedAt != nil
}

// IsExpired reports whether the ticket is past its expiry.
func (t *EmailVerificationTicket) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// IsPending reports whether the ticket can still be consumed.
func (t *EmailVerificationTicket) IsPending(now time.Time) bool {
	return !t.IsVerified() && !t.IsExpired(now)
}

// PasswordResetTicket authorizes one password change for an account that lost its credentials.
type PasswordResetTicket struct {
	ID        uuid.UUID
	Token     string
	TokenHash string
	AccountID uuid.UUID
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// IsUsed reports whether the ticket has already been redeemed.
func (t *PasswordResetTicket) IsUsed() bool {
	return t.UsedAt != nil
}

// IsExpired reports whether the ticket is past its expiry.
func (t *PasswordResetTicket) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
