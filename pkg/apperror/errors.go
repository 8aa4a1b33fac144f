package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AppError is an error the HTTP layer can render as is: a status code, a
// message for the cashier and, for validation failures, one entry per rule.
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError is one violated rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Message
	}
	return e.Message + ": " + strings.Join(msgs, ", ")
}

// Is matches any aggregated validation failure against ErrValidation. Other
// sentinels match by identity only.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t == ErrValidation && e.Code == ErrValidation.Code && e.Message == ErrValidation.Message
}

var (
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid username or PIN"}
	ErrValidation         = &AppError{Code: http.StatusUnprocessableEntity, Message: "Validation failed"}
)

// Checkout errors
var (
	ErrNoMethodSelected = &AppError{Code: http.StatusConflict, Message: "No payment method selected"}
	ErrInvalidAmount    = &AppError{Code: http.StatusBadRequest, Message: "Amount must be greater than 0"}
	ErrOverAllocation   = &AppError{Code: http.StatusConflict, Message: "Amount exceeds the remaining balance"}
	ErrLineNotFound     = &AppError{Code: http.StatusNotFound, Message: "Line not found"}

	ErrIdempotencyKeyReused   = &AppError{Code: http.StatusUnprocessableEntity, Message: "Idempotency-Key was already used for another request"}
	ErrIdempotencyKeyInFlight = &AppError{Code: http.StatusConflict, Message: "A request with this Idempotency-Key is still being processed"}
)

// FieldErrors collects rule violations so that all of them are reported at once.
type FieldErrors []FieldError

// Add records a violation of field.
func (fe *FieldErrors) Add(field, message string) {
	*fe = append(*fe, FieldError{Field: field, Message: message})
}

// Err returns a validation error holding every violation, or nil.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return NewValidationError(fe)
}

// NewValidationError creates a validation error.
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    ErrValidation.Code,
		Message: ErrValidation.Message,
		Errors:  fieldErrors,
	}
}

// NewBadRequestError creates a 400 with a custom message.
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// UnsupportedKey rejects a keyboard key the calculator does not map.
func UnsupportedKey(key string) *AppError {
	return NewBadRequestError(fmt.Sprintf("Unsupported key %q", key))
}

// UnknownShare rejects a convenience allocator that does not exist.
func UnknownShare(share string) *AppError {
	return NewBadRequestError(fmt.Sprintf("Unknown share %q", share))
}

// As finds the AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
