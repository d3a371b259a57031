package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingParams      = errors.New("missing required query parameters")
	ErrMissingID          = errors.New("item id is missing")
	ErrNotFound           = errors.New("not found")
	ErrInvalidPreference  = errors.New("invalid preference value")
	ErrUnexpectedResponse = errors.New("unexpected response body")
)

type APIErrorCode string

const (
	TimeoutError    APIErrorCode = "timeout_error"
	ConnectionError APIErrorCode = "connection_error"
	ServiceError    APIErrorCode = "service_error"
)

// APIError is a transport level failure talking to the remote service.
type APIError struct {
	Code    APIErrorCode `json:"code"`
	Message string       `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewTimeoutError(msg string) *APIError {
	return &APIError{
		Code:    TimeoutError,
		Message: msg,
	}
}

func NewConnectionError(msg string) *APIError {
	return &APIError{
		Code:    ConnectionError,
		Message: msg,
	}
}

func NewServiceError(msg string) *APIError {
	return &APIError{
		Code:    ServiceError,
		Message: msg,
	}
}

// ValidationError is raised before any network call is made.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingParams.Error(), strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrMissingParams
}

func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}
