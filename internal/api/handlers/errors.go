package handlers

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/inboxzero/internal/api/response"
	apperrors "github.com/welldanyogia/inboxzero/internal/errors"
)

// respondError writes the client-safe error body and logs internal failures with their detail
func respondError(c echo.Context, logger *slog.Logger, err error) error {
	if apperrors.GetErrorCode(err) == apperrors.CodeInternalError {
		logger.Error("request failed",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Path()),
			slog.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			slog.Any("error", err))
	}
	return response.Error(c, err)
}
