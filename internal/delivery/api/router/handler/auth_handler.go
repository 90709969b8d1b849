package handler

import (
	"log/slog"
	"net/http"

	"identity/internal/delivery/api/middleware"
	"identity/internal/delivery/api/response"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/service"
	"identity/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	Authority usecase.IdentityAuthority
	Logger    *slog.Logger
}

// AuthHandler serves registration, login and token endpoints.
type AuthHandler struct {
	authority usecase.IdentityAuthority
	logger    *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authority: params.Authority,
		logger:    params.Logger,
	}
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email,max=254"`
	Password   string `json:"password" validate:"required"`
	FirstName  string `json:"firstName" validate:"max=100"`
	LastName   string `json:"lastName" validate:"max=100"`
	Phone      string `json:"phone" validate:"omitempty,max=32"`
	DeviceInfo string `json:"deviceInfo" validate:"max=255"`
}

// LoginRequest represents the request body for a password login
type LoginRequest struct {
	Email      string `json:"email" validate:"required"`
	Password   string `json:"password" validate:"required"`
	DeviceInfo string `json:"deviceInfo" validate:"max=255"`
}

// RefreshTokenRequest carries a refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// SocialLoginRequest represents the request body for a social login
type SocialLoginRequest struct {
	Provider    string `json:"provider" validate:"required"`
	AccessToken string `json:"accessToken" validate:"required"`
	DeviceInfo  string `json:"deviceInfo" validate:"max=255"`
}

// PasswordResetRequest starts the emailed password reset flow
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetConfirmRequest completes the emailed password reset flow
type PasswordResetConfirmRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// PublicKeyResponse exposes the access token verification key
type PublicKeyResponse struct {
	PublicKey string `json:"publicKey"`
	Algorithm string `json:"algorithm"`
	KeyType   string `json:"keyType"`
}

// Register handles password account registration
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	result, err := h.authority.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		DeviceInfo: deviceInfo(c, req.DeviceInfo),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newAuthResponse(result))
}

// Login handles password login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	result, err := h.authority.Login(c.Request().Context(), &usecase.LoginInput{
		Email:      req.Email,
		Password:   req.Password,
		DeviceInfo: deviceInfo(c, req.DeviceInfo),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAuthResponse(result))
}

// Refresh mints a new access token for a refresh token
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid refresh input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	result, err := h.authority.RefreshAccessToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAuthResponse(result))
}

// Logout revokes one refresh token
func (h *AuthHandler) Logout(c echo.Context) error {
	var req RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid logout input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	if err := h.authority.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, MessageResponse{Message: "Logged out"})
}

// LogoutAll revokes every refresh token of the authenticated account
func (h *AuthHandler) LogoutAll(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return response.Unauthorized(c, domainerrors.ErrUnauthorized.ErrorCode(), "Invalid user ID in token")
	}

	if err := h.authority.LogoutAll(c.Request().Context(), accountID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, MessageResponse{Message: "Logged out from all devices"})
}

// SocialLogin signs in with a token obtained from a social provider
func (h *AuthHandler) SocialLogin(c echo.Context) error {
	var req SocialLoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid social login input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	result, err := h.authority.SocialLogin(c.Request().Context(), &usecase.SocialLoginInput{
		Provider:    req.Provider,
		AccessToken: req.AccessToken,
		DeviceInfo:  req.DeviceInfo,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	status := http.StatusOK
	if result.IsNewAccount {
		status = http.StatusCreated
	}

	return response.Success(c, status, newAuthResponse(result))
}

// RequestPasswordReset always acknowledges so callers cannot probe for accounts
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var req PasswordResetRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid password reset input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	if err := h.authority.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusAccepted, MessageResponse{
		Message: "If the email is registered, a password reset link has been sent",
	})
}

// ConfirmPasswordReset sets a new password with an emailed reset token
func (h *AuthHandler) ConfirmPasswordReset(c echo.Context) error {
	var req PasswordResetConfirmRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid password reset input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	if err := h.authority.ConfirmPasswordReset(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, MessageResponse{Message: "Password has been reset"})
}

// KeyHandler publishes the access token verification key.
type KeyHandler struct {
	tokens service.TokenIssuer
}

// NewKeyHandler is the constructor for KeyHandler
func NewKeyHandler(tokens service.TokenIssuer) *KeyHandler {
	return &KeyHandler{tokens: tokens}
}

// PublicKey returns the PEM encoded public key
func (h *KeyHandler) PublicKey(c echo.Context) error {
	return response.Success(c, http.StatusOK, PublicKeyResponse{
		PublicKey: h.tokens.PublicKeyPEM(),
		Algorithm: h.tokens.Algorithm(),
		KeyType:   "RSA",
	})
}

// JWKS serves the raw JWK set; verifiers expect the bare document, not the envelope.
func (h *KeyHandler) JWKS(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "public, max-age=300")

	return c.JSON(http.StatusOK, h.tokens.JWKS())
}

// HealthCheck reports liveness
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
