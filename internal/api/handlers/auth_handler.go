package handlers

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/inboxzero/internal/api/response"
	apperrors "github.com/welldanyogia/inboxzero/internal/errors"
	"github.com/welldanyogia/inboxzero/internal/logger"
	"github.com/welldanyogia/inboxzero/internal/services"
)

// AuthHandler handles signup and login HTTP requests
type AuthHandler struct {
	auth     services.AuthService
	security *logger.SecurityLogger
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler. security may be nil.
func NewAuthHandler(auth services.AuthService, security *logger.SecurityLogger, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		auth:     auth,
		security: security,
		logger:   logger,
	}
}

// SignupRequest represents the request body for creating an account
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	result, err := h.auth.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if h.security != nil && apperrors.GetErrorCode(err) == apperrors.CodeDuplicateEmail {
			h.security.SecurityEvent("duplicate_signup", c.RealIP(), map[string]string{
				"path": c.Path(),
			})
		}
		return respondError(c, h.logger, err)
	}

	return response.Created(c, result)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if h.security != nil && apperrors.GetErrorCode(err) == apperrors.CodeInvalidCredentials {
			h.security.LoginFailure(c.RealIP(), "invalid credentials")
		}
		return respondError(c, h.logger, err)
	}

	return response.OK(c, result)
}
