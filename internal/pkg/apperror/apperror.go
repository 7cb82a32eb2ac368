package apperror

import "net/http"

// AppError is a custom error type that includes an HTTP status code and an optional underlying cause.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Unauthorized builds a 401 error for callers whose identity is missing or unknown.
func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message)
}

// InvalidArgument builds a 400 error for malformed ids, malformed dates, or
// otherwise invalid input.
func InvalidArgument(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

// NotFound builds a 404 error for operations that targeted a missing record.
func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message)
}

// Internal builds a 500 error. The wrapped cause is logged by the response
// layer and never shown to the caller; only message goes out.
func Internal(err error, message string) *AppError {
	return Wrap(err, http.StatusInternalServerError, message)
}
