package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// DefaultDevOrigin is allowed when no origins are configured
const DefaultDevOrigin = "http://localhost:3000"

// ParseOrigins splits a comma-separated origin list. Wildcards are dropped in production.
func ParseOrigins(allowedOrigins string, production bool) []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(allowedOrigins, ",") {
		origin = strings.TrimSpace(origin)
		if origin == "" || (production && origin == "*") {
			continue
		}
		origins = append(origins, origin)
	}
	if len(origins) == 0 {
		origins = []string{DefaultDevOrigin}
	}
	return origins
}

// SecureCORS returns CORS middleware for the configured origins.
// Does NOT allow wildcard (*) origin in production.
func SecureCORS(allowedOrigins string, production bool) echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     ParseOrigins(allowedOrigins, production),
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderXRequestID},
		ExposeHeaders:    []string{echo.HeaderXRequestID, echo.HeaderWWWAuthenticate},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
