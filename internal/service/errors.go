package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yildizm/ingredient-copilot/internal/common"
)

// ErrorType represents the type of service-related error
type ErrorType string

const (
	// ErrTypeNetwork indicates the request never produced a response
	ErrTypeNetwork ErrorType = "network"

	// ErrTypeTimeout indicates the request deadline expired
	ErrTypeTimeout ErrorType = "timeout"

	// ErrTypeCanceled indicates the request was aborted by the caller
	ErrTypeCanceled ErrorType = "canceled"

	// ErrTypeStatus indicates a response arrived with a non-success status
	ErrTypeStatus ErrorType = "status"

	// ErrTypeDecode indicates the response body could not be decoded
	ErrTypeDecode ErrorType = "decode"

	// ErrTypeValidation indicates invalid caller input
	ErrTypeValidation ErrorType = "validation"

	// ErrTypeConfiguration indicates invalid client configuration
	ErrTypeConfiguration ErrorType = "configuration"

	// ErrTypeInternal indicates internal client errors
	ErrTypeInternal ErrorType = "internal"
)

// ServiceError represents a failed call to the analysis service
type ServiceError struct {
	// Type categorizes the error
	Type ErrorType `json:"type"`

	// Message provides human-readable error description
	Message string `json:"message"`

	// Endpoint is the service path that was called
	Endpoint string `json:"endpoint,omitempty"`

	// StatusCode for responses with a non-success status
	StatusCode int `json:"status_code,omitempty"`

	// Underlying error that caused this error
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	var parts []string

	if e.Endpoint != "" {
		parts = append(parts, fmt.Sprintf("endpoint=%s", e.Endpoint))
	}

	parts = append(parts, fmt.Sprintf("type=%s", e.Type))

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error type
func (e *ServiceError) Is(target error) bool {
	if se, ok := target.(*ServiceError); ok {
		return e.Type == se.Type
	}
	return false
}

// ConfigurationError represents invalid client configuration
type ConfigurationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for field '%s': %s", e.Field, e.Message)
}

// NewServiceError creates a new service error
func NewServiceError(errType ErrorType, message, endpoint string) *ServiceError {
	return &ServiceError{
		Type:     errType,
		Message:  message,
		Endpoint: endpoint,
	}
}

// NewServiceErrorWithCause creates a service error with an underlying cause
func NewServiceErrorWithCause(errType ErrorType, message, endpoint string, cause error) *ServiceError {
	return &ServiceError{
		Type:     errType,
		Message:  message,
		Endpoint: endpoint,
		Cause:    cause,
	}
}

// NewStatusError creates an error for a non-success response
func NewStatusError(endpoint string, statusCode int) *ServiceError {
	return &ServiceError{
		Type:       ErrTypeStatus,
		Message:    fmt.Sprintf("request failed with status %d", statusCode),
		Endpoint:   endpoint,
		StatusCode: statusCode,
	}
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(field, message string) *ConfigurationError {
	return &ConfigurationError{
		Field:   field,
		Message: message,
	}
}

// transportError classifies an error returned by http.Client.Do
func transportError(ctx context.Context, endpoint string, err error) *ServiceError {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return NewServiceErrorWithCause(ErrTypeTimeout, "request timed out", endpoint, err)
	case errors.Is(ctx.Err(), context.Canceled), errors.Is(err, context.Canceled):
		return NewServiceErrorWithCause(ErrTypeCanceled, "request canceled", endpoint, err)
	default:
		return NewServiceErrorWithCause(ErrTypeNetwork, "request failed", endpoint, err)
	}
}

// errorType extracts the ErrorType of err, or "" when err is not a ServiceError
func errorType(err error) ErrorType {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Type
	}
	return ""
}

// IsStatusError reports whether a response was received with a non-success status
func IsStatusError(err error) bool {
	return errorType(err) == ErrTypeStatus
}

// IsTimeoutError reports whether the request deadline expired
func IsTimeoutError(err error) bool {
	return errorType(err) == ErrTypeTimeout
}

// IsCanceledError reports whether the request was aborted by the caller
func IsCanceledError(err error) bool {
	return errorType(err) == ErrTypeCanceled
}

// IsConfigurationError reports whether err is a configuration error
func IsConfigurationError(err error) bool {
	if errorType(err) == ErrTypeConfiguration {
		return true
	}
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// UserMessage maps an analysis failure to one of the two fixed user-facing strings.
// A received non-success status yields MsgBackendFailed; every other failure,
// including transport and decode errors, yields MsgUnreachable.
func UserMessage(err error) string {
	if IsStatusError(err) {
		return common.MsgBackendFailed
	}
	return common.MsgUnreachable
}
