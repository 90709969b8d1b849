package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshSession is one issued refresh credential. Sessions are revoked, never deleted,
// until the sweeper purges them after their retention window.
type RefreshSession struct {
	ID         uuid.UUID
	Token      string // Plaintext token; only populated on the value returned from creation.
	TokenHash  string // SHA-256 of Token; the only form persisted.
	AccountID  uuid.UUID
	DeviceInfo string // Free-text client descriptor, informational only.
	IssuedAt   time.Time
	ExpiresAt  time.Time
	LastUsedAt *time.Time
	Revoked    bool
	RevokedAt  *time.Time
}

// IsExpired reports whether the session is past its expiry at the given instant.
func (s *RefreshSession) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// IsActive reports whether the session can still mint access tokens.
func (s *RefreshSession) IsActive(now time.Time) bool {
	return !s.Revoked && !s.IsExpired(now)
}
