package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. IDs are generated by the application (UUIDv7)
// so the same schema works on PostgreSQL and SQLite.
type AccountModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email               string    `gorm:"type:varchar(255);uniqueIndex:idx_accounts_email;not null"`
	PasswordHash        string    `gorm:"type:varchar(255)"`
	Role                string    `gorm:"type:varchar(20);not null;default:USER"`
	EmailVerified       bool      `gorm:"not null;default:false"`
	Provider            string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_accounts_provider_external_id"`
	ProviderID          *string   `gorm:"type:varchar(255);uniqueIndex:idx_accounts_provider_external_id"`
	FirstName           string    `gorm:"type:varchar(100)"`
	LastName            string    `gorm:"type:varchar(100)"`
	AvatarURL           string    `gorm:"type:text"`
	Phone               string    `gorm:"type:varchar(50)"`
	PasswordLastChanged *time.Time
	EmailLastChanged    *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
