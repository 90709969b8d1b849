// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"identity/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a password account.
type RegisterInput struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Phone      string
	DeviceInfo string
}

// LoginInput defines the data required for a password login.
type LoginInput struct {
	Email      string
	Password   string
	DeviceInfo string
}

// SocialLoginInput carries a provider tag and the opaque token the client obtained from it.
type SocialLoginInput struct {
	Provider    string
	AccessToken string
	DeviceInfo  string
}

// ChangePasswordInput defines a self-service password change.
type ChangePasswordInput struct {
	AccountID       uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// --- Output DTOs ---

// AuthResult is returned by every flow that authenticates a client.
type AuthResult struct {
	AccessToken   string
	RefreshToken  string
	TokenType     string
	ExpiresIn     int64 // Access token lifetime in seconds.
	AccountID     uuid.UUID
	Email         string
	Role          entity.Role
	EmailVerified bool
	IsNewAccount  bool
}

// AccountPage is one page of accounts for administrators.
type AccountPage struct {
	Accounts []*entity.Account
	Total    int64
	Page     int
	Size     int
}

// IdentityAuthority composes credential, token, verification and social flows.
// This is the contract the delivery layer depends on.
type IdentityAuthority interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input *LoginInput) (*AuthResult, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
	LogoutAll(ctx context.Context, accountID uuid.UUID) error
	SocialLogin(ctx context.Context, input *SocialLoginInput) (*AuthResult, error)

	// ResetPassword sets a new password on behalf of an administrator.
	ResetPassword(ctx context.Context, accountID uuid.UUID, newPassword string) error
	ChangePassword(ctx context.Context, input *ChangePasswordInput) error
	UpdateRole(ctx context.Context, accountID uuid.UUID, role entity.Role) error
	DeleteAccount(ctx context.Context, accountID uuid.UUID) error

	GetAccount(ctx context.Context, accountID uuid.UUID) (*entity.Account, error)
	ListAccounts(ctx context.Context, page, size int) (*AccountPage, error)
	ListSessions(ctx context.Context, accountID uuid.UUID) ([]*entity.RefreshSession, error)

	// RequestPasswordReset never reveals whether the email is registered.
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
	SweepExpiredPasswordResets(ctx context.Context, now time.Time) (int64, error)
}
