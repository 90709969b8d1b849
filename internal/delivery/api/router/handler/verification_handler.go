package handler

import (
	"log/slog"
	"net/http"

	"identity/internal/delivery/api/response"
	"identity/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// VerificationHandlerParams holds dependencies for VerificationHandler, injected by Fx.
type VerificationHandlerParams struct {
	fx.In

	Verification usecase.EmailVerificationManager
	Logger       *slog.Logger
}

// VerificationHandler serves the email ownership endpoints.
type VerificationHandler struct {
	verification usecase.EmailVerificationManager
	logger       *slog.Logger
}

// NewVerificationHandler is the constructor for VerificationHandler
func NewVerificationHandler(params VerificationHandlerParams) *VerificationHandler {
	return &VerificationHandler{
		verification: params.Verification,
		logger:       params.Logger,
	}
}

// ResendVerificationRequest addresses an account by email
type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerificationResponse reports the outcome of a verification operation
type VerificationResponse struct {
	Message       string `json:"message"`
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
}

// VerificationStatusResponse is the verification state of an account
type VerificationStatusResponse struct {
	Email            string `json:"email"`
	EmailVerified    bool   `json:"emailVerified"`
	HasPendingTicket bool   `json:"hasPendingVerification"`
}

// VerifyEmail redeems the token from an emailed link
func (h *VerificationHandler) VerifyEmail(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return response.BindingError(c, "Verification token is required")
	}

	result, err := h.verification.Consume(c.Request().Context(), token)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	message := "Email verified successfully"
	if result.AlreadyVerified {
		message = "Email is already verified"
	}

	return response.Success(c, http.StatusOK, VerificationResponse{
		Message:       message,
		Email:         result.Email,
		EmailVerified: true,
	})
}

// ResendVerification issues a fresh ticket for an unverified account
func (h *VerificationHandler) ResendVerification(c echo.Context) error {
	var req ResendVerificationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid resend input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	result, err := h.verification.Resend(c.Request().Context(), req.Email)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if result.AlreadyVerified {
		return response.Success(c, http.StatusOK, VerificationResponse{
			Message:       "Email is already verified",
			EmailVerified: true,
		})
	}

	return response.Success(c, http.StatusOK, VerificationResponse{
		Message: "Verification email sent",
	})
}

// VerificationStatus reports whether an email is verified
func (h *VerificationHandler) VerificationStatus(c echo.Context) error {
	email := c.Param("email")
	if email == "" {
		return response.BindingError(c, "Email is required")
	}

	status, err := h.verification.Status(c.Request().Context(), email)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, VerificationStatusResponse{
		Email:            status.Email,
		EmailVerified:    status.EmailVerified,
		HasPendingTicket: status.HasPendingTicket,
	})
}
