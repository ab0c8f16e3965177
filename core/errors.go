package core

import "github.com/pkg/errors"

// FieldError pins a validation failure to one instance or submission field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries per-field failures in a form the API error
// handler can serialize as a field -> message map.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, fields ...FieldError) error {
	return &ValidationError{Err: err, Fields: fields}
}

func (err *ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown marks a dependency as unrecoverable for this process, such as
// a lost database connection. The server should stop taking submissions
// instead of failing every one of them.
type shutdown struct {
	message string
}

// NewShutdownError returns an error the HTTP error handler turns into a
// graceful stop request.
func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s *shutdown) Error() string { return s.message }

// IsShutdown reports whether err, however wrapped, requests a stop.
func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
