package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
	apperrors "github.com/welldanyogia/inboxzero/internal/errors"
)

// ErrorResponse represents an error API response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// OK returns a 200 response with data as the body
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// Created returns a 201 Created response with data as the body
func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

// Error returns an error response with appropriate status code.
// The body carries the client-safe message only.
func Error(c echo.Context, err error) error {
	code := apperrors.GetErrorCode(err)
	status := StatusFor(code)

	return c.JSON(status, ErrorResponse{
		Success: false,
		Error:   apperrors.PublicMessage(err),
		Code:    code,
	})
}

// BadRequest returns a 400 Bad Request response
func BadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Success: false,
		Error:   message,
		Code:    apperrors.CodeInvalidInput,
	})
}

// Unauthorized returns a 401 response with a bearer challenge
func Unauthorized(c echo.Context, message string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Bearer error="invalid_token"`)
	return c.JSON(http.StatusUnauthorized, ErrorResponse{
		Success: false,
		Error:   message,
		Code:    apperrors.CodeUnauthorized,
	})
}

// TooManyRequests returns a 429 response
func TooManyRequests(c echo.Context, message string) error {
	return c.JSON(http.StatusTooManyRequests, ErrorResponse{
		Success: false,
		Error:   message,
		Code:    apperrors.CodeRateLimited,
	})
}

// StatusFor maps error codes to HTTP status codes
func StatusFor(code string) int {
	switch code {
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeInvalidInput, apperrors.CodeDuplicateEmail, apperrors.CodeInvalidCredentials:
		return http.StatusBadRequest
	case apperrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.CodeForbidden:
		return http.StatusForbidden
	case apperrors.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
