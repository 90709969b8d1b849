// Package handler contains the HTTP handlers of the API.
package handler

import (
	"time"

	"identity/internal/domain/entity"
	"identity/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthResponse is returned by every endpoint that signs a client in.
type AuthResponse struct {
	AccessToken   string      `json:"accessToken"`
	RefreshToken  string      `json:"refreshToken"`
	TokenType     string      `json:"tokenType"`
	ExpiresIn     int64       `json:"expiresIn"`
	UserID        uuid.UUID   `json:"userId"`
	Email         string      `json:"email"`
	Role          entity.Role `json:"role"`
	EmailVerified bool        `json:"emailVerified"`
	IsNewUser     bool        `json:"isNewUser,omitempty"`
}

// AccountResponse is the public view of an account.
type AccountResponse struct {
	ID                  uuid.UUID           `json:"id"`
	Email               string              `json:"email"`
	Role                entity.Role         `json:"role"`
	EmailVerified       bool                `json:"emailVerified"`
	Provider            entity.ProviderType `json:"provider"`
	FirstName           string              `json:"firstName,omitempty"`
	LastName            string              `json:"lastName,omitempty"`
	AvatarURL           string              `json:"avatarUrl,omitempty"`
	Phone               string              `json:"phone,omitempty"`
	HasPassword         bool                `json:"hasPassword"`
	PasswordLastChanged *time.Time          `json:"passwordLastChanged,omitempty"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

// SessionResponse describes an active refresh session without its token.
type SessionResponse struct {
	ID         uuid.UUID  `json:"id"`
	DeviceInfo string     `json:"deviceInfo"`
	IssuedAt   time.Time  `json:"issuedAt"`
	ExpiresAt  time.Time  `json:"expiresAt"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
}

// AccountPageResponse is one page of accounts.
type AccountPageResponse struct {
	Users []AccountResponse `json:"users"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Size  int               `json:"size"`
}

// MessageResponse acknowledges an operation without returning a resource.
type MessageResponse struct {
	Message string `json:"message"`
}

func newAuthResponse(result *usecase.AuthResult) AuthResponse {
	return AuthResponse{
		AccessToken:   result.AccessToken,
		RefreshToken:  result.RefreshToken,
		TokenType:     result.TokenType,
		ExpiresIn:     result.ExpiresIn,
		UserID:        result.AccountID,
		Email:         result.Email,
		Role:          result.Role,
		EmailVerified: result.EmailVerified,
		IsNewUser:     result.IsNewAccount,
	}
}

func newAccountResponse(account *entity.Account) AccountResponse {
	return AccountResponse{
		ID:                  account.ID,
		Email:               account.Email,
		Role:                account.Role,
		EmailVerified:       account.EmailVerified,
		Provider:            account.Provider,
		FirstName:           account.FirstName,
		LastName:            account.LastName,
		AvatarURL:           account.AvatarURL,
		Phone:               account.Phone,
		HasPassword:         account.HasPassword(),
		PasswordLastChanged: account.PasswordLastChanged,
		CreatedAt:           account.CreatedAt,
		UpdatedAt:           account.UpdatedAt,
	}
}

func newSessionResponses(sessions []*entity.RefreshSession) []SessionResponse {
	out := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, SessionResponse{
			ID:         session.ID,
			DeviceInfo: session.DeviceInfo,
			IssuedAt:   session.IssuedAt,
			ExpiresAt:  session.ExpiresAt,
			LastUsedAt: session.LastUsedAt,
		})
	}

	return out
}

// deviceInfo prefers the client supplied descriptor and falls back to user agent and address.
func deviceInfo(c echo.Context, supplied string) string {
	if supplied != "" {
		return supplied
	}

	userAgent := c.Request().UserAgent()
	if userAgent == "" {
		userAgent = "Unknown"
	}

	return userAgent + " - " + c.RealIP()
}
