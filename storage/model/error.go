package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// NotFoundError is an error signaling that something was not found in the
// database
type NotFoundError string

// Error implements the error interface
func (e NotFoundError) Error() string {
	return string(e)
}

// NotFoundErrorFmt returns a NotFoundError from the passed format string and parameters
func NotFoundErrorFmt(format string, params ...any) NotFoundError {
	return NotFoundError(fmt.Sprintf(format, params...))
}

// AlreadyExistsError is an error signaling that a unique value is already
// taken in the database
type AlreadyExistsError string

// Error implements the error interface
func (e AlreadyExistsError) Error() string {
	return string(e)
}

// AlreadyExistsErrorFmt returns an AlreadyExistsError from the passed format string and parameters
func AlreadyExistsErrorFmt(format string, params ...any) AlreadyExistsError {
	return AlreadyExistsError(fmt.Sprintf(format, params...))
}

// ValidationError is an error signaling that input data was rejected before
// it reached the database
type ValidationError string

// Error implements the error interface
func (e ValidationError) Error() string {
	return string(e)
}

// ValidationErrorFmt returns a ValidationError from the passed format string and parameters
func ValidationErrorFmt(format string, params ...any) ValidationError {
	return ValidationError(fmt.Sprintf(format, params...))
}

// ErrInvalidPassword is returned by UsersStore.Authenticate if the password
// does not match
var ErrInvalidPassword = errors.New("invalid password")
