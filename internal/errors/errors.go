package errors

import "fmt"

// AppError is an application-specific error type
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// wraps an error with a code and message
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code string) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}

// Error code constants
const (
	CodeInternal   = "INTERNAL_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeInvalidArg = "INVALID_ARGUMENT"
	CodeConflict   = "CONFLICT" // Resource already exists (UNIQUE violation)

	CodeProviderUnavailable = "PROVIDER_UNAVAILABLE" // Directory API unreachable or broken
	CodeOutOfRange          = "OUT_OF_RANGE"         // Page navigation outside valid bounds
	CodeIndexOutOfBounds    = "INDEX_OUT_OF_BOUNDS"  // Station number outside the result set
	CodeUnrecognizedCommand = "UNRECOGNIZED_COMMAND" // Browser command token not understood
	CodeStorageUnavailable  = "STORAGE_UNAVAILABLE"  // Database file missing, locked or corrupt
)
