// Package derrors provides custom error types for rlcomplete.
// Each type carries a stable code so the shim, the helper and the CLI can
// decide how loudly to fail.
package derrors

import (
	"fmt"
)

// Error is the base interface for all rlcomplete errors
type Error interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all rlcomplete errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// SymbolError is raised when the next definition of an overridden
// symbol cannot be found in the already-loaded libraries
type SymbolError struct {
	baseError
	Symbol string
}

// NewSymbolError creates a new symbol resolution error
func NewSymbolError(symbol string, message string, cause error) *SymbolError {
	return &SymbolError{
		baseError: baseError{
			code:    "SYMBOL_ERROR",
			message: message,
			cause:   cause,
		},
		Symbol: symbol,
	}
}

// EncodingError represents text that cannot cross the helper protocol
type EncodingError struct {
	baseError
	Input []byte
}

// NewEncodingError creates a new encoding error
func NewEncodingError(input []byte, message string) *EncodingError {
	return &EncodingError{
		baseError: baseError{
			code:    "ENCODING_ERROR",
			message: message,
			cause:   nil,
		},
		Input: input,
	}
}

// ProtocolError represents a helper that exited successfully but produced
// output that cannot be read back as candidates
type ProtocolError struct {
	baseError
	Program string
	Line    int
}

// NewProtocolError creates a new protocol error
func NewProtocolError(program string, line int, message string, cause error) *ProtocolError {
	return &ProtocolError{
		baseError: baseError{
			code:    "PROTOCOL_ERROR",
			message: message,
			cause:   cause,
		},
		Program: program,
		Line:    line,
	}
}

// ConfigurationError represents errors in configuration files
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// ExecutionError represents errors while running a rule command
type ExecutionError struct {
	baseError
	Command string
}

// NewExecutionError creates a new execution error
func NewExecutionError(command string, message string, cause error) *ExecutionError {
	return &ExecutionError{
		baseError: baseError{
			code:    "EXEC_ERROR",
			message: message,
			cause:   cause,
		},
		Command: command,
	}
}

// ValidationError represents errors during validation
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new validation error
func NewValidationError(field string, message string, cause error) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			code:    "VALIDATION_ERROR",
			message: message,
			cause:   cause,
		},
		Field: field,
	}
}

// NotFoundError represents errors when a resource is not found
type NotFoundError struct {
	baseError
	Resource string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, message string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			code:    "NOT_FOUND",
			message: message,
			cause:   nil,
		},
		Resource: resource,
	}
}

// AlreadyExistsError represents errors when a resource already exists
type AlreadyExistsError struct {
	baseError
	Resource string
}

// NewAlreadyExistsError creates a new already exists error
func NewAlreadyExistsError(resource string, message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		baseError: baseError{
			code:    "ALREADY_EXISTS",
			message: message,
		},
		Resource: resource,
	}
}
