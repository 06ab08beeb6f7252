package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUserIDRequired is returned before any network call when a user id is empty.
	ErrUserIDRequired = errors.New("user id is required")
)

// UpstreamError is a non-OK response from the directory backend. Body holds
// the raw error text the backend sent, when any.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("directory responded %d", e.StatusCode)
	}
	return fmt.Sprintf("directory responded %d: %s", e.StatusCode, e.Body)
}

// NewUpstreamError creates an UpstreamError from a response status and body text.
func NewUpstreamError(statusCode int, body string) *UpstreamError {
	return &UpstreamError{StatusCode: statusCode, Body: body}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps proxy-layer errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var upstream *UpstreamError
	switch {
	case errors.Is(err, ErrUserIDRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USER_ID_REQUIRED")
	case errors.As(err, &upstream):
		if upstream.StatusCode == http.StatusNotFound {
			return NewHTTPError(http.StatusNotFound, upstream.Error(), "NOT_FOUND")
		}
		return NewHTTPError(http.StatusBadGateway, upstream.Error(), "UPSTREAM_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "something went wrong", "INTERNAL_ERROR")
	}
}
