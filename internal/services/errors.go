package services

import (
	"errors"
	"fmt"

	"shoe-assistant-api/internal/repositories"
)

// ErrorKind classifies service failures. Handlers map each kind to one response shape.
type ErrorKind int

const (
	// KindValidation is missing required input
	KindValidation ErrorKind = iota + 1
	// KindInvalidOperation is input that is present but cannot be acted on
	KindInvalidOperation
	// KindNotFound is an unknown customer or shoe
	KindNotFound
	// KindInfrastructure is a database, mail or agent failure
	KindInfrastructure
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInvalidOperation:
		return "invalid_operation"
	case KindNotFound:
		return "not_found"
	case KindInfrastructure:
		return "infrastructure"
	default:
		return "unknown"
	}
}

// Error is a classified service error. Message is safe to show to the caller;
// Err carries the internal detail and is only logged.
type Error struct {
	Kind    ErrorKind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ValidationError creates a validation error
func ValidationError(op, message string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: message}
}

// InvalidOperationError creates an invalid-operation error
func InvalidOperationError(op, message string) *Error {
	return &Error{Kind: KindInvalidOperation, Op: op, Message: message}
}

// NotFoundError creates a not-found error
func NotFoundError(op, message string, err error) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: message, Err: err}
}

// InfraError creates an infrastructure error
func InfraError(op string, err error) *Error {
	return &Error{Kind: KindInfrastructure, Op: op, Message: "internal error", Err: err}
}

// KindOf returns the kind of err. Unclassified errors are infrastructure errors.
func KindOf(err error) ErrorKind {
	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Kind
	}
	return KindInfrastructure
}

// MessageOf returns the caller-facing message of err
func MessageOf(err error) string {
	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Message
	}
	return "internal error"
}

// repositoryError classifies a repository failure, using notFound as the message
// when the row does not exist
func repositoryError(op string, err error, notFound string) *Error {
	if repositories.IsNotFound(err) {
		return NotFoundError(op, notFound, err)
	}
	return InfraError(op, err)
}
