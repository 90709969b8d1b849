// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"identity/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
// Emails passed in are expected to be normalized with entity.NormalizeEmail.
type AccountRepository interface {
	// Create persists a new account. A duplicate email yields domainerrors.ErrEmailAlreadyInUse,
	// a provider identity already linked elsewhere domainerrors.ErrSocialIdentityInUse.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// LockByID retrieves an account and holds a row lock on it until the surrounding
	// transaction ends. Outside a transaction it behaves like FindByID.
	LockByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Update saves the mutable profile and provider fields of an existing account.
	Update(ctx context.Context, account *entity.Account) error

	// UpdatePassword replaces the password hash and stamps the change time.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, changedAt time.Time) error

	// UpdateRole changes the role of an account.
	UpdateRole(ctx context.Context, id uuid.UUID, role entity.Role) error

	// MarkEmailVerified flips the email-verified flag on.
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error

	// Delete removes an account permanently.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns a page of accounts ordered by creation time and the total count.
	List(ctx context.Context, offset, limit int) ([]*entity.Account, int64, error)
}
