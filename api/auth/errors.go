package auth

import (
	"github.com/gofiber/fiber/v2"
)

var (
	// ErrInvalidCredentials is returned for unknown sessions, keys and
	// secret mismatches alike
	ErrInvalidCredentials = fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	// ErrNotAuthorised is returned when a request lacks a required permission
	ErrNotAuthorised = fiber.NewError(fiber.StatusForbidden, "You are not authorised to perform this action")
	// ErrDeleteCurrentKey is returned when a request tries to delete the key it
	// is authenticated with
	ErrDeleteCurrentKey = fiber.NewError(
		fiber.StatusForbidden, "You are not authorised to delete the key currently being used to authenticate",
	)
)
