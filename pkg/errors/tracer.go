package errors

import "github.com/pkg/errors"

// StackTracer is implemented by errors carrying a recorded stack trace.
type StackTracer interface {
	StackTrace() errors.StackTrace
}

// ErrorTracer pairs a contextual message with an underlying error. The stack
// trace is recorded once, at the first wrap, so sentinel errors deeper in the
// chain stay comparable with Is.
type ErrorTracer struct {
	Message string
	Err     error
}

// NewTracer creates an ErrorTracer with the given message and no cause yet.
func NewTracer(message string) *ErrorTracer {
	return &ErrorTracer{
		Message: message,
	}
}

// TracerFromError wraps an existing error, reusing its message.
func TracerFromError(err error) *ErrorTracer {
	return NewTracer(err.Error()).Wrap(err)
}

// Wrap sets the underlying error, attaching a stack trace unless one is
// already recorded further down the chain.
func (e *ErrorTracer) Wrap(err error) *ErrorTracer {
	if _, ok := err.(StackTracer); ok {
		e.Err = err
		return e
	}
	e.Err = errors.WithStack(err)
	return e
}

func (e *ErrorTracer) Error() string {
	return e.Message
}

func (e *ErrorTracer) Unwrap() error {
	return e.Err
}

// StackTrace returns the stack trace recorded by the underlying error, or nil
// before any wrap.
func (e *ErrorTracer) StackTrace() errors.StackTrace {
	if err, ok := e.Err.(StackTracer); ok {
		return err.StackTrace()
	}
	return nil
}
