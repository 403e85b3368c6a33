package handlers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/inboxzero/internal/api/middleware"
	"github.com/welldanyogia/inboxzero/internal/api/response"
	"github.com/welldanyogia/inboxzero/internal/inbox"
	"github.com/welldanyogia/inboxzero/internal/models"
	"github.com/welldanyogia/inboxzero/internal/services"
	"github.com/welldanyogia/inboxzero/internal/validator"
)

// EmailHandler handles the authenticated user's email HTTP requests
type EmailHandler struct {
	emails services.EmailService
	logger *slog.Logger
}

// NewEmailHandler creates a new EmailHandler
func NewEmailHandler(emails services.EmailService, logger *slog.Logger) *EmailHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmailHandler{
		emails: emails,
		logger: logger,
	}
}

// List handles GET /api/emails.
// Without view, status or q the full list is returned newest first.
func (h *EmailHandler) List(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "unauthorized")
	}

	filter, filtered, err := parseFilter(c)
	if err != nil {
		return response.Error(c, err)
	}

	emails, err := h.emails.ListEmails(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	if filtered {
		emails = filter.Apply(emails)
	}
	return response.OK(c, emails)
}

// MarkRead handles PUT /api/emails/:id/read
func (h *EmailHandler) MarkRead(c echo.Context) error {
	return h.update(c, h.emails.MarkRead)
}

// Archive handles PUT /api/emails/:id/archive
func (h *EmailHandler) Archive(c echo.Context) error {
	return h.update(c, h.emails.Archive)
}

// Progress handles GET /api/emails/progress
func (h *EmailHandler) Progress(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "unauthorized")
	}

	progress, err := h.emails.Progress(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return response.OK(c, progress)
}

type transitionFunc func(ctx context.Context, userID, emailID uint) (*models.Email, error)

func (h *EmailHandler) update(c echo.Context, fn transitionFunc) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "unauthorized")
	}

	emailID, err := validator.ParseID(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "invalid email id")
	}

	email, err := fn(c.Request().Context(), userID, emailID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return response.OK(c, email)
}

// parseFilter reads the optional view, status and q query parameters.
// filtered is false when none of them has a value; a bare ?q= counts as absent.
func parseFilter(c echo.Context) (inbox.Filter, bool, error) {
	if c.QueryParam("view") == "" && c.QueryParam("status") == "" && strings.TrimSpace(c.QueryParam("q")) == "" {
		return inbox.Filter{}, false, nil
	}

	view, err := inbox.ParseView(c.QueryParam("view"))
	if err != nil {
		return inbox.Filter{}, false, err
	}
	status, err := inbox.ParseStatus(c.QueryParam("status"))
	if err != nil {
		return inbox.Filter{}, false, err
	}

	return inbox.Filter{
		View:   view,
		Status: status,
		Query:  strings.TrimSpace(c.QueryParam("q")),
	}, true, nil
}
