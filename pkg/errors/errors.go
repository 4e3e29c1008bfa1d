package errors

import (
	"errors"
	"fmt"
)

// New returns an error with the given message.
func New(msg string) error {
	return errors.New(msg)
}

// WithContext annotates `err` with additional context. The context is
// prepended to the error's message, and the original error can be recovered
// with RootCause.
func WithContext(err error, context string) error {
	return ContextError{Context: context, Err: err}
}

// ContextError wraps an error with a message describing what the caller was
// doing when the error occurred.
type ContextError struct {
	Context string
	Err     error
}

func (err ContextError) Error() string {
	return fmt.Sprintf("%s: %s", err.Context, err.Err)
}

// Unwrap returns the wrapped error so that ContextErrors compose with the
// standard library's errors.Is and errors.As.
func (err ContextError) Unwrap() error {
	return err.Err
}

// RootCause strips any context added by WithContext and returns the
// original error.
func RootCause(err error) error {
	for {
		contextErr, ok := err.(ContextError)
		if !ok {
			return err
		}
		err = contextErr.Err
	}
}

// A FriendlyError's message is meant to be shown directly to the user, so
// it's printed without the wrapping context chain.
type FriendlyError interface {
	FriendlyMessage() string
}

type friendlyError struct {
	message string
}

// NewFriendlyError creates an error whose message is printed to the user
// verbatim.
func NewFriendlyError(format string, args ...interface{}) error {
	return friendlyError{fmt.Sprintf(format, args...)}
}

func (err friendlyError) Error() string {
	return err.message
}

func (err friendlyError) FriendlyMessage() string {
	return err.message
}

// GetPrintableMessage returns the message that should be shown to the user
// for `err`.
func GetPrintableMessage(err error) string {
	if friendly, ok := RootCause(err).(FriendlyError); ok {
		return friendly.FriendlyMessage()
	}
	return err.Error()
}
