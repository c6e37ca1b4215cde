package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// InvalidTokenMessage is the backend's message for a rejected token.
const InvalidTokenMessage = "Invalid or expired token"

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, msg)
}

// newAPIError builds an APIError from a response body. The message comes
// from the "error" field, then "message". It stays empty when the body
// carries neither.
func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		msg = payload.Error
		if msg == "" {
			msg = payload.Message
		}
	}
	return &APIError{StatusCode: status, Message: msg}
}

// ErrorMessage returns the backend's message for err, or "" when err is not
// an APIError or the backend sent none.
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// IsAuthFailure reports whether err means the stored credentials are no
// longer accepted: a 401, or a 403 rejecting the token itself. A 403 for
// acting on someone else's post is not an auth failure.
func IsAuthFailure(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.StatusCode {
	case http.StatusUnauthorized:
		return true
	case http.StatusForbidden:
		return apiErr.Message == InvalidTokenMessage
	}
	return false
}

// IsNotFound reports whether err is a 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
