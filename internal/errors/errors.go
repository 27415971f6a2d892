package errors

import (
	"errors"
	"fmt"
)

// Exit codes for vdev
const (
	ExitSuccess             = 0
	ExitGeneralError        = 1
	ExitIntegrationNotFound = 2
	ExitParseError          = 3
	ExitStateReadError      = 4
	ExitEnvironmentNotFound = 5
	ExitStateWriteError     = 6
	ExitConfigError         = 7
)

// VdevError is the base error type for vdev
type VdevError struct {
	Code    int
	Message string
	Cause   error
}

func (e *VdevError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *VdevError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *VdevError) ExitCode() int {
	return e.Code
}

// New creates a new VdevError
func New(code int, message string) *VdevError {
	return &VdevError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a VdevError
func Wrap(code int, message string, cause error) *VdevError {
	return &VdevError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IntegrationNotFound returns an error for an integration without a configuration source
func IntegrationNotFound(name string) *VdevError {
	return New(ExitIntegrationNotFound, fmt.Sprintf("integration not found: %s", name))
}

// ParseError returns an error for a malformed integration configuration.
func ParseError(name string, cause error) *VdevError {
	return Wrap(ExitParseError, fmt.Sprintf("invalid configuration for integration %s", name), cause)
}

// StateReadError returns an error for an unreadable active-environment record
func StateReadError(name string, cause error) *VdevError {
	return Wrap(ExitStateReadError, fmt.Sprintf("failed to read active environment of %s", name), cause)
}

// StateWriteError returns an error for a failed active-environment update
func StateWriteError(name string, cause error) *VdevError {
	return Wrap(ExitStateWriteError, fmt.Sprintf("failed to record active environment of %s", name), cause)
}

// EnvironmentNotFound returns an error for an environment the integration does not declare
func EnvironmentNotFound(integration, environment string) *VdevError {
	return New(ExitEnvironmentNotFound, fmt.Sprintf("integration %s has no environment %q", integration, environment))
}

// ConfigError returns an error for settings issues
func ConfigError(message string, cause error) *VdevError {
	return Wrap(ExitConfigError, message, cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *VdevError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var vdevErr *VdevError
	if errors.As(err, &vdevErr) {
		return vdevErr.ExitCode()
	}
	return ExitGeneralError
}

// HasCode reports whether err's chain contains a VdevError with the given code.
func HasCode(err error, code int) bool {
	var vdevErr *VdevError
	return errors.As(err, &vdevErr) && vdevErr.Code == code
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
