package model

import (
	"time"

	"github.com/google/uuid"
)

// VerificationTicketModel mirrors the 'email_verification_tickets' table.
// The partial unique index allows one unverified ticket per account.
type VerificationTicketModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_verification_tickets_pending,where:verified_at IS NULL"`
	TokenHash  string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	ExpiresAt  time.Time `gorm:"not null;index"`
	VerifiedAt *time.Time
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (VerificationTicketModel) TableName() string {
	return "email_verification_tickets"
}

// PasswordResetTicketModel mirrors the 'password_reset_tickets' table.
// The partial unique index allows one unused ticket per account.
type PasswordResetTicketModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_password_reset_tickets_unused,where:used_at IS NULL"`
	TokenHash string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	UsedAt    *time.Time
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PasswordResetTicketModel) TableName() string {
	return "password_reset_tickets"
}

// All lists every model for auto-migration.
func All() []any {
	return []any{
		&AccountModel{},
		&RefreshSessionModel{},
		&VerificationTicketModel{},
		&PasswordResetTicketModel{},
	}
}
