// Package middleware provides HTTP middleware for the Inbox Zero API.
package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/inboxzero/internal/api/response"
	"github.com/welldanyogia/inboxzero/internal/logger"
	"github.com/welldanyogia/inboxzero/internal/models"
	"github.com/welldanyogia/inboxzero/internal/repository"
)

const userIDKey = "userID"

// TokenParser verifies a bearer token and returns the user id it was issued for
type TokenParser interface {
	Parse(token string) (uint, error)
}

// UserLookup resolves the user a token was issued for
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// JWTAuthConfig configures JWTAuth
type JWTAuthConfig struct {
	Tokens TokenParser
	// Users rejects tokens whose user no longer exists; nil skips the lookup
	Users    UserLookup
	Security *logger.SecurityLogger
	// AllowQueryToken also accepts ?token=, for clients that cannot set headers (browser websockets)
	AllowQueryToken bool
}

// JWTAuth rejects requests without a valid bearer token and stores the user id in the context
func JWTAuth(cfg JWTAuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, reason := extractToken(c, cfg.AllowQueryToken)
			if token == "" {
				cfg.logFailure(c, reason)
				return response.Unauthorized(c, reason)
			}

			userID, err := cfg.Tokens.Parse(token)
			if err != nil {
				cfg.logFailure(c, "invalid token")
				return response.Unauthorized(c, "invalid or expired token")
			}

			if cfg.Users != nil {
				if _, err := cfg.Users.GetByID(c.Request().Context(), userID); err != nil {
					if errors.Is(err, repository.ErrNotFound) {
						cfg.logFailure(c, "unknown user")
						return response.Unauthorized(c, "invalid or expired token")
					}
					return response.Error(c, err)
				}
			}

			SetUserID(c, userID)
			return next(c)
		}
	}
}

func (cfg JWTAuthConfig) logFailure(c echo.Context, reason string) {
	if cfg.Security != nil {
		cfg.Security.AuthFailure(c.RealIP(), c.Path(), reason)
	}
}

func extractToken(c echo.Context, allowQuery bool) (string, string) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		if allowQuery {
			if token := strings.TrimSpace(c.QueryParam("token")); token != "" {
				return token, ""
			}
		}
		return "", "missing authorization header"
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", "authorization header must use the Bearer scheme"
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", "missing bearer token"
	}
	return token, ""
}

// UserIDFromContext returns the authenticated user id set by JWTAuth
func UserIDFromContext(c echo.Context) (uint, bool) {
	userID, ok := c.Get(userIDKey).(uint)
	return userID, ok && userID != 0
}

// SetUserID stores the authenticated user id in the request context
func SetUserID(c echo.Context, userID uint) {
	c.Set(userIDKey, userID)
}
