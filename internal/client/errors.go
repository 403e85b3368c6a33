package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthenticated means there is no usable session. The caller should ask the user to log in.
var ErrUnauthenticated = errors.New("not logged in")

// APIError is a non-2xx response from the server
type APIError struct {
	Status  int
	Code    string
	Message string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d %s", e.Status, http.StatusText(e.Status))
	}
	return e.Message
}

// IsNotFound reports whether err is a 404 from the server
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// errorBody mirrors the server's error envelope
type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}
