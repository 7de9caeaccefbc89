package llm

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrorType indicates which part of the LLM configuration caused the error.
type ErrorType string

const (
	ErrorTypeNone     ErrorType = ""
	ErrorTypeEndpoint ErrorType = "endpoint"
	ErrorTypeAuth     ErrorType = "auth"
	ErrorTypeModel    ErrorType = "model"
	ErrorTypeResponse ErrorType = "response" // reply did not match the expected shape
	ErrorTypeUnknown  ErrorType = "unknown"
)

// Error represents a structured LLM error with classification.
type Error struct {
	Type       ErrorType
	Message    string
	Retryable  bool
	Cause      error
	StatusCode int    // HTTP status code if applicable
	Model      string // Model name if known
	Endpoint   string // Endpoint URL if known
}

// Error implements the error interface. The endpoint is reduced to its host.
func (e *Error) Error() string {
	parts := []string{string(e.Type)}

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("HTTP %d", e.StatusCode))
	}
	if e.Model != "" {
		parts = append(parts, "model="+e.Model)
	}
	if host := endpointHost(e.Endpoint); host != "" {
		parts = append(parts, "endpoint="+host)
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", strings.Join(parts, " "), e.Cause)
	}
	return strings.Join(parts, " ")
}

func endpointHost(endpoint string) string {
	if endpoint == "" {
		return ""
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Host
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsRetryable implements the retry.RetryableError interface.
func (e *Error) IsRetryable() bool {
	return e.Retryable
}

// NewError creates a new structured LLM error.
func NewError(errType ErrorType, message string, retryable bool, cause error) *Error {
	return &Error{
		Type:      errType,
		Message:   message,
		Retryable: retryable,
		Cause:     cause,
	}
}

// NewErrorWithContext creates a new structured LLM error with model and endpoint context.
func NewErrorWithContext(errType ErrorType, message string, retryable bool, cause error, model, endpoint string, statusCode int) *Error {
	return &Error{
		Type:       errType,
		Message:    message,
		Retryable:  retryable,
		Cause:      cause,
		Model:      model,
		Endpoint:   endpoint,
		StatusCode: statusCode,
	}
}

// classification is one row of the ClassifyError table.
type classification struct {
	matches   func(raw, lower string) bool
	errType   ErrorType
	message   string
	retryable bool
}

var classifications = []classification{
	{
		matches: func(raw, lower string) bool {
			return strings.Contains(raw, "401") || strings.Contains(lower, "unauthorized") || strings.Contains(lower, "invalid api key") || strings.Contains(lower, "authentication_error")
		},
		errType: ErrorTypeAuth, message: "authentication failed",
	},
	{
		matches: func(raw, lower string) bool {
			return strings.Contains(lower, "model") && (strings.Contains(lower, "not found") || strings.Contains(lower, "does not exist") || strings.Contains(lower, "not_found_error"))
		},
		errType: ErrorTypeModel, message: "model not found",
	},
	{
		matches: func(raw, lower string) bool { return strings.Contains(raw, "404") },
		errType: ErrorTypeEndpoint, message: "endpoint not found",
	},
	{
		matches: func(raw, lower string) bool {
			return strings.Contains(lower, "connection refused") || strings.Contains(lower, "no such host")
		},
		errType: ErrorTypeEndpoint, message: "connection failed", retryable: true,
	},
	{
		matches: func(raw, lower string) bool {
			return strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline exceeded")
		},
		errType: ErrorTypeEndpoint, message: "request timeout", retryable: true,
	},
	{
		matches: func(raw, lower string) bool {
			return strings.Contains(raw, "429") || strings.Contains(lower, "rate limit") || strings.Contains(lower, "overloaded")
		},
		errType: ErrorTypeUnknown, message: "rate limited", retryable: true,
	},
	{
		matches: func(raw, lower string) bool {
			return strings.Contains(raw, "500") || strings.Contains(raw, "502") || strings.Contains(raw, "503") || strings.Contains(raw, "504") ||
				strings.Contains(lower, "api_error")
		},
		errType: ErrorTypeEndpoint, message: "server error", retryable: true,
	},
}

// ClassifyError categorizes an error and returns a structured Error.
// Errors that are already *Error are returned unchanged.
func ClassifyError(err error) *Error {
	return ClassifyErrorWithContext(err, "", "")
}

// ClassifyErrorWithContext is ClassifyError with model and endpoint recorded on the result.
func ClassifyErrorWithContext(err error, model, endpoint string) *Error {
	if err == nil {
		return nil
	}

	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr
	}

	raw := err.Error()
	lower := strings.ToLower(raw)

	statusCode := 0
	for _, code := range []int{400, 401, 403, 404, 429, 500, 502, 503, 504} {
		if strings.Contains(raw, fmt.Sprintf("%d", code)) {
			statusCode = code
			break
		}
	}

	for _, c := range classifications {
		if c.matches(raw, lower) {
			return NewErrorWithContext(c.errType, c.message, c.retryable, err, model, endpoint, statusCode)
		}
	}

	return NewErrorWithContext(ErrorTypeUnknown, "llm error", false, err, model, endpoint, statusCode)
}

// IsRetryable returns true if the error is retryable.
func IsRetryable(err error) bool {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Retryable
	}
	return false
}

// GetErrorType extracts the ErrorType from an error.
func GetErrorType(err error) ErrorType {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Type
	}
	return ErrorTypeUnknown
}
