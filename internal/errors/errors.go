// Package errors defines the error taxonomy shared by the dashboard components.
package errors

import (
	stderrors "errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// ErrorType classifies a dashboard error
type ErrorType string

const (
	// ErrTypeValidation marks missing or invalid input detected locally
	ErrTypeValidation ErrorType = "VALIDATION"
	// ErrTypeRemote marks a non-2xx answer or a transport failure from the agent API
	ErrTypeRemote ErrorType = "REMOTE"
)

// ErrSubmitInProgress is returned when a credential submission is already in flight
var ErrSubmitInProgress = ValidationError("a credential submission is already in progress")

// DomainError carries the type of a failure, the message shown to the user and the cause.
type DomainError struct {
	Type ErrorType
	// Op names the remote operation for REMOTE errors (e.g. "ListJobs")
	Op string
	// StatusCode is the HTTP status of a REMOTE error, 0 for transport failures
	StatusCode int
	Message    string
	Err        error
	Stack      []byte
}

func (e *DomainError) Error() string {
	prefix := string(e.Type)
	if e.Op != "" {
		prefix = fmt.Sprintf("%s %s", e.Type, e.Op)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// StackTrace returns the stack captured when the error was built
func (e *DomainError) StackTrace() []byte {
	return e.Stack
}

func newError(errType ErrorType, message string, err error) *DomainError {
	var stack []byte
	if err != nil {
		if stackErr, ok := err.(*goerrors.Error); ok {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 3).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

// ValidationError builds an error for input that never reached the network
func ValidationError(message string) *DomainError {
	return newError(ErrTypeValidation, message, nil)
}

// RemoteError builds an error for a failed agent API operation
func RemoteError(op string, statusCode int, message string, err error) *DomainError {
	e := newError(ErrTypeRemote, message, err)
	e.Op = op
	e.StatusCode = statusCode
	return e
}

// IsValidation reports whether err is (or wraps) a validation error
func IsValidation(err error) bool {
	return isType(err, ErrTypeValidation)
}

// IsRemote reports whether err is (or wraps) a remote error
func IsRemote(err error) bool {
	return isType(err, ErrTypeRemote)
}

// UserMessage returns the text to show a user for err.
func UserMessage(err error) string {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

func isType(err error, t ErrorType) bool {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Type == t
	}
	return false
}
