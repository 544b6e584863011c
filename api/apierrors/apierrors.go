// Package apierrors translates storage errors into HTTP errors
package apierrors

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/pa11y/sidekick/storage/model"
)

// Translate maps the typed errors of the storage layer to *fiber.Error
// values: NotFoundError to 404, AlreadyExistsError to 409 and
// ValidationError to 400. All other errors are returned unchanged.
func Translate(err error) error {
	var notFound model.NotFoundError
	if errors.As(err, &notFound) {
		return fiber.NewError(fiber.StatusNotFound, notFound.Error())
	}
	var exists model.AlreadyExistsError
	if errors.As(err, &exists) {
		return fiber.NewError(fiber.StatusConflict, exists.Error())
	}
	var invalid model.ValidationError
	if errors.As(err, &invalid) {
		return fiber.NewError(fiber.StatusBadRequest, invalid.Error())
	}
	return err
}

// Status returns the HTTP status code and the client facing message of err.
// Errors that are not *fiber.Error are internal and their message is not
// exposed; internal reports whether that was the case.
func Status(err error) (code int, message string, internal bool) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message, false
	}
	return fiber.StatusInternalServerError, "Internal Server Error", true
}
