package restapi

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/pa11y/sidekick/api/apierrors"
	"github.com/pa11y/sidekick/api/auth"
	"github.com/pa11y/sidekick/internal/settings"
	"github.com/pa11y/sidekick/storage/model"
)

// Options controls optional features of the REST API registration.
type Options struct {
	// UsersEnabled controls whether the user management routes are mounted.
	// A nil *Options in Register enables them.
	UsersEnabled bool
}

// Register mounts all REST API routes under the provided router. Every
// request is authenticated with the X-Api-Key and X-Api-Secret headers.
func Register(
	r fiber.Router, storages model.Backends, authenticator *auth.Authenticator, settingsCache *settings.Cache,
	opts *Options,
) {
	r.Use(auth.KeyMiddleware(authenticator))

	registerSites(r, storages.Sites, storages.URLs, storages.Results)
	registerURLs(r, storages.URLs)
	registerResults(r, storages.URLs, storages.Results)
	registerMe(r, storages.Users, storages.Keys)
	if opts == nil || opts.UsersEnabled {
		registerUsers(r, storages.Users, storages.Keys)
	}
	registerSettings(r, settingsCache)

	// unmatched API paths end here and never reach other handlers
	r.Use(notFound)
}

func notFound(*fiber.Ctx) error {
	return fiber.ErrNotFound
}

// Error is the JSON body of every failed REST API request
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ErrorHandler renders err as an Error. Errors that are not *fiber.Error
// are logged and reported as an internal server error without details.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code, message, internal := apierrors.Status(err)
	if internal {
		log.WithError(err).WithField("path", c.Path()).Error("restapi: request failed")
	}
	return c.Status(code).JSON(
		Error{
			Status:  code,
			Message: message,
		},
	)
}

// idParam returns the positive integer route parameter name. Anything else
// is reported as not found.
func idParam(c *fiber.Ctx, name, what string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusNotFound, what+" not found: "+c.Params(name))
	}
	return uint(id), nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	return nil
}
