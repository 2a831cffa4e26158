package services

import (
	"errors"
	"fmt"

	"wedding-site-backend/internal/repository"
)

// Sentinel errors mapped to HTTP status codes by the handlers
var (
	// ErrNotFound means the addressed record does not exist
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized means credentials are missing or invalid
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the caller is authenticated but does not own the record
	ErrForbidden = errors.New("forbidden")
)

// ValidationError describes a rejected request field
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validationf builds a ValidationError from a message
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// AsValidation reports whether err is a validation error and returns it
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// mapStoreErr translates repository sentinels into service sentinels
func mapStoreErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
