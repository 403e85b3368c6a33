// Package validator provides input validation and sanitization functions
// for signup, login and request parameters.
package validator

import (
	"errors"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Validation errors
var (
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrInvalidDomain    = errors.New("invalid domain format")
	ErrInputTooLong     = errors.New("input exceeds maximum length")
	ErrEmptyInput       = errors.New("input cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong  = errors.New("password must be at most 72 bytes")
	ErrInvalidID        = errors.New("id must be a positive integer")
)

// Length limits
const (
	MinPasswordRunes = 8
	// MaxPasswordBytes is the bcrypt input limit
	MaxPasswordBytes = 72
	MaxNameLength    = 255
)

// Domain regex: allows lowercase alphanumeric, hyphens, and dots
// Must start and end with alphanumeric, labels max 63 chars
var domainRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?(\.[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?)*$`)

// NormalizeEmail trims and lower-cases an email address
func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// ValidateEmail validates email address format according to RFC 5322.
// Display-name forms such as "Ada <ada@example.com>" are rejected.
func ValidateEmail(email string) error {
	email = NormalizeEmail(email)

	if email == "" {
		return ErrEmptyInput
	}

	// RFC 5321 specifies max email length of 254 characters
	if utf8.RuneCountInString(email) > 254 {
		return ErrInputTooLong
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}

	return nil
}

// ValidateDomain validates domain name format against DNS standards.
func ValidateDomain(domain string) error {
	domain = strings.TrimSpace(strings.ToLower(domain))

	if domain == "" {
		return ErrEmptyInput
	}

	// RFC 1035 specifies max domain length of 253 characters
	if len(domain) > 253 {
		return ErrInputTooLong
	}

	if !domainRegex.MatchString(domain) {
		return ErrInvalidDomain
	}

	return nil
}

// ValidateName checks a display name after sanitization
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyInput
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrInputTooLong
	}
	return nil
}

// ValidatePassword enforces the minimum length in characters and the bcrypt byte limit
func ValidatePassword(password string) error {
	if password == "" {
		return ErrEmptyInput
	}
	if utf8.RuneCountInString(password) < MinPasswordRunes {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

// ParseID parses a path identifier that must be a positive integer
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}
	return uint(id), nil
}

// SanitizeString removes potentially dangerous characters and enforces length limits.
// Removes control characters and trims whitespace.
func SanitizeString(input string, maxLength int) string {
	// Remove control characters (ASCII 0-31 and 127)
	input = strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, input)

	// Trim whitespace
	input = strings.TrimSpace(input)

	// Enforce maximum length if specified
	if maxLength > 0 && utf8.RuneCountInString(input) > maxLength {
		runes := []rune(input)
		input = string(runes[:maxLength])
	}

	return input
}
