package apperrors

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrUnsupportedDatasource = errors.New("unsupported datasource type")
	ErrInvalidFormat         = errors.New("invalid export format")
	ErrNotReadOnly           = errors.New("only read-only SELECT statements are allowed")
	ErrEmptyQuestion         = errors.New("question is empty")
)

// ExecutionError is returned when the store rejects a query or cannot be reached.
// Message carries the store's error text verbatim and is safe to show to users.
type ExecutionError struct {
	Message string
	Query   string
	Cause   error
}

// NewExecutionError wraps a store error. The store's message becomes the user-visible message.
func NewExecutionError(query string, cause error) *ExecutionError {
	msg := "query execution failed"
	if cause != nil {
		msg = cause.Error()
	}
	return &ExecutionError{Message: msg, Query: query, Cause: cause}
}

func (e *ExecutionError) Error() string {
	return e.Message
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// AsExecutionError extracts an *ExecutionError from an error chain.
func AsExecutionError(err error) (*ExecutionError, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr, true
	}
	return nil, false
}
