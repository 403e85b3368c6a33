// Package logger builds the process logger and records security events.
package logger

import (
	"log/slog"
	"time"
)

// SecurityLogger provides methods for logging security-related events.
// It ensures sensitive data is never logged.
type SecurityLogger struct {
	logger *slog.Logger
}

// NewSecurityLoggerFrom wraps an existing logger.
func NewSecurityLoggerFrom(logger *slog.Logger) *SecurityLogger {
	return &SecurityLogger{logger: logger}
}

// AuthFailure logs a failed authentication attempt.
// Never logs the actual credentials.
func (s *SecurityLogger) AuthFailure(ip, path, reason string) {
	s.logger.Warn("authentication_failure",
		slog.String("event_type", "auth_failure"),
		slog.String("ip", ip),
		slog.String("path", path),
		slog.String("reason", reason),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// RateLimitExceeded logs when a client exceeds rate limits.
func (s *SecurityLogger) RateLimitExceeded(ip, path string) {
	s.logger.Warn("rate_limit_exceeded",
		slog.String("event_type", "rate_limit"),
		slog.String("ip", ip),
		slog.String("path", path),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// LoginFailure logs a rejected login or signup. Never logs the submitted credentials.
func (s *SecurityLogger) LoginFailure(ip, reason string) {
	s.logger.Warn("login_failure",
		slog.String("event_type", "login_failure"),
		slog.String("ip", ip),
		slog.String("reason", reason),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// InvalidOrigin logs a rejected WebSocket connection due to invalid origin.
func (s *SecurityLogger) InvalidOrigin(ip, origin string) {
	s.logger.Warn("invalid_origin",
		slog.String("event_type", "invalid_origin"),
		slog.String("ip", ip),
		slog.String("origin", origin),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// RecipientRejected logs an SMTP recipient that does not belong to a registered user.
func (s *SecurityLogger) RecipientRejected(ip, recipient string) {
	s.logger.Warn("recipient_rejected",
		slog.String("event_type", "recipient_rejected"),
		slog.String("ip", ip),
		slog.String("recipient", recipient),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// SecurityEvent logs a named security event. Sensitive detail keys are dropped.
func (s *SecurityLogger) SecurityEvent(eventType, ip string, details map[string]string) {
	attrs := []any{
		slog.String("event_type", eventType),
		slog.String("ip", ip),
		slog.Time("timestamp", time.Now().UTC()),
	}

	for k, v := range details {
		// Filter out sensitive keys
		if isSensitiveKey(k) {
			continue
		}
		attrs = append(attrs, slog.String(k, v))
	}

	s.logger.Warn("security_event", attrs...)
}

// isSensitiveKey checks if a key might contain sensitive data.
func isSensitiveKey(key string) bool {
	sensitiveKeys := map[string]bool{
		"password":      true,
		"password_hash": true,
		"jwt":           true,
		"api_key":       true,
		"apikey":        true,
		"token":         true,
		"secret":        true,
		"authorization": true,
		"auth":          true,
		"credential":    true,
		"credentials":   true,
		"session":       true,
		"cookie":        true,
	}
	return sensitiveKeys[key]
}
