// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"identity/internal/delivery/api/middleware"
	"identity/internal/delivery/api/router/handler"
	"identity/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	KeyHandler          *handler.KeyHandler
	VerificationHandler *handler.VerificationHandler
	UserHandler         *handler.UserHandler
	AdminHandler        *handler.AdminHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler         *handler.AuthHandler
	keyHandler          *handler.KeyHandler
	verificationHandler *handler.VerificationHandler
	userHandler         *handler.UserHandler
	adminHandler        *handler.AdminHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:         params.AuthHandler,
		keyHandler:          params.KeyHandler,
		verificationHandler: params.VerificationHandler,
		userHandler:         params.UserHandler,
		adminHandler:        params.AdminHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/.well-known/jwks.json", r.keyHandler.JWKS)

	// Credential and token routes
	initialGroup := e.Group("/api/auth/initial")
	{
		initialGroup.POST("/register", r.authHandler.Register)
		initialGroup.POST("/login", r.authHandler.Login)
		initialGroup.POST("/refresh", r.authHandler.Refresh)
		initialGroup.POST("/logout", r.authHandler.Logout)
		initialGroup.POST("/logout-all", r.authHandler.LogoutAll, r.authMiddleware.Authenticate)
		initialGroup.GET("/public-key", r.keyHandler.PublicKey)
		initialGroup.POST("/social/login", r.authHandler.SocialLogin)
		initialGroup.POST("/password-reset/request", r.authHandler.RequestPasswordReset)
		initialGroup.POST("/password-reset/confirm", r.authHandler.ConfirmPasswordReset)
	}

	// Email verification routes
	verificationGroup := e.Group("/api/auth")
	{
		verificationGroup.GET("/verify-email", r.verificationHandler.VerifyEmail)
		verificationGroup.POST("/resend-verification", r.verificationHandler.ResendVerification)
		verificationGroup.GET("/verification-status/:email", r.verificationHandler.VerificationStatus)
	}

	// Routes of the authenticated account
	userGroup := e.Group("/api/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/me", r.userHandler.Me)
		userGroup.GET("/sessions", r.userHandler.Sessions)
		userGroup.POST("/change-password", r.userHandler.ChangePassword)
	}

	// Administration requires the ADMIN role
	adminGroup := e.Group("/api/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/users", r.adminHandler.ListUsers)
		adminGroup.GET("/users/:id", r.adminHandler.GetUser)
		adminGroup.PUT("/users/:id/role", r.adminHandler.UpdateRole)
		adminGroup.POST("/users/:id/reset-password", r.adminHandler.ResetPassword)
		adminGroup.DELETE("/users/:id", r.adminHandler.DeleteUser)
	}
}
