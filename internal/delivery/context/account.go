package context

import (
	"identity/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// KeyAccountID is the key for the authenticated account id in echo.Context.
	KeyAccountID ContextKey = "account_id"

	// KeyAccountEmail is the key for the authenticated account email in echo.Context.
	KeyAccountEmail ContextKey = "account_email"

	// KeyRole is the key for the authenticated account role in echo.Context.
	KeyRole ContextKey = "role"
)

// SetAccount stores the authenticated principal in echo.Context.
func SetAccount(c echo.Context, accountID uuid.UUID, email string, role entity.Role) {
	c.Set(string(KeyAccountID), accountID)
	c.Set(string(KeyAccountEmail), email)
	c.Set(string(KeyRole), role)
}

// GetAccountID returns the authenticated account id, if any.
func GetAccountID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(string(KeyAccountID)).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}

	return id, true
}

// GetAccountEmail returns the email claim of the authenticated account.
func GetAccountEmail(c echo.Context) string {
	email, _ := c.Get(string(KeyAccountEmail)).(string)

	return email
}

// GetRole returns the role claim of the authenticated account.
func GetRole(c echo.Context) (entity.Role, bool) {
	role, ok := c.Get(string(KeyRole)).(entity.Role)

	return role, ok
}
