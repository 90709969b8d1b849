package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"identity/internal/delivery/api/response"
	"identity/internal/domain/entity"
	"identity/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	Authority usecase.IdentityAuthority
	Logger    *slog.Logger
}

// AdminHandler serves account administration.
type AdminHandler struct {
	authority usecase.IdentityAuthority
	logger    *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		authority: params.Authority,
		logger:    params.Logger,
	}
}

// UpdateRoleRequest represents the request body for a role change
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// AdminResetPasswordRequest represents the request body for an administrative password reset
type AdminResetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required"`
}

// ListUsers returns one page of accounts
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, err := queryInt(c, "page")
	if err != nil {
		return response.BindingError(c, "page must be a number")
	}
	size, err := queryInt(c, "size")
	if err != nil {
		return response.BindingError(c, "size must be a number")
	}

	result, err := h.authority.ListAccounts(c.Request().Context(), page, size)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	users := make([]AccountResponse, 0, len(result.Accounts))
	for _, account := range result.Accounts {
		users = append(users, newAccountResponse(account))
	}

	return response.Success(c, http.StatusOK, AccountPageResponse{
		Users: users,
		Total: result.Total,
		Page:  result.Page,
		Size:  result.Size,
	})
}

// GetUser returns one account
func (h *AdminHandler) GetUser(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "Invalid user ID")
	}

	account, err := h.authority.GetAccount(c.Request().Context(), accountID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAccountResponse(account))
}

// UpdateRole changes the role of an account and signs it out everywhere
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "Invalid user ID")
	}

	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid role input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	// Unknown roles are rejected by the authority.
	role, _ := entity.ParseRole(req.Role)

	if err := h.authority.UpdateRole(c.Request().Context(), accountID, role); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, MessageResponse{Message: "Role updated"})
}

// ResetPassword sets a new password on behalf of the account owner
func (h *AdminHandler) ResetPassword(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "Invalid user ID")
	}

	var req AdminResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid password input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	if err := h.authority.ResetPassword(c.Request().Context(), accountID, req.NewPassword); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, MessageResponse{Message: "Password reset successfully"})
}

// DeleteUser removes an account with its sessions and tickets
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "Invalid user ID")
	}

	if err := h.authority.DeleteAccount(c.Request().Context(), accountID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}

	return strconv.Atoi(raw)
}
