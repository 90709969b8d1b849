// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProviderType identifies where an account's identity originates.
type ProviderType string

const (
	// ProviderTypeLocal marks a password account created through registration.
	ProviderTypeLocal ProviderType = "LOCAL"
	// ProviderTypeGoogle marks an account created or linked through Google sign-in.
	ProviderTypeGoogle ProviderType = "GOOGLE"
	// ProviderTypeFacebook marks an account created or linked through Facebook login.
	ProviderTypeFacebook ProviderType = "FACEBOOK"
)

// String returns the string representation of the ProviderType.
func (p ProviderType) String() string {
	return string(p)
}

// IsSocial reports whether the provider is a third-party identity provider.
func (p ProviderType) IsSocial() bool {
	return p != ProviderTypeLocal && p != ""
}

// ParseProviderType normalizes a client supplied provider tag ("google", "Google", ...).
// Unknown tags are returned upper-cased so callers can report them.
func ParseProviderType(s string) ProviderType {
	return ProviderType(strings.ToUpper(strings.TrimSpace(s)))
}

// Account is the root identity entity. Sessions and tickets belong to exactly one account.
type Account struct {
	ID                  uuid.UUID    // Immutable identifier.
	Email               string       // Unique, stored normalized (see NormalizeEmail).
	PasswordHash        string       // Empty for social-only accounts.
	Role                Role         // Always set; defaults to RoleUser.
	EmailVerified       bool         // True once an email ownership proof succeeded.
	Provider            ProviderType // Origin of the identity.
	ProviderID          string       // Provider-assigned external id; empty for LOCAL.
	FirstName           string
	LastName            string
	AvatarURL           string
	Phone               string
	PasswordLastChanged *time.Time
	EmailLastChanged    *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HasPassword reports whether the account can authenticate with a password.
func (a *Account) HasPassword() bool {
	return a.PasswordHash != ""
}

// DisplayName returns the best available human name for greetings.
func (a *Account) DisplayName() string {
	name := strings.TrimSpace(a.FirstName + " " + a.LastName)
	if name != "" {
		return name
	}

	return a.Email
}

// NormalizeEmail trims and lower-cases an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
