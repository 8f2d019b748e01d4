package common

import "errors"

// Failure codes for the order pricing taxonomy.
const (
	CodeInvalidRecord     = "invalid_record"
	CodeInvalidQuantity   = "invalid_quantity"
	CodeInvalidPrice      = "invalid_price"
	CodeNegativeQuantity  = "negative_quantity"
	CodeConfigUnavailable = "config_unavailable"
)

// AppError represents an error with an attached machine-readable code.
type AppError struct {
	Code    string
	Message string
	Err     error
	Details any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(code, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// IsAppError checks whether the error is an AppError.
func IsAppError(err error) bool {
	var target *AppError
	return errors.As(err, &target)
}

// CodeOf extracts the failure code from an error, falling back to "internal".
func CodeOf(err error) string {
	var target *AppError
	if errors.As(err, &target) && target.Code != "" {
		return target.Code
	}
	return "internal"
}
