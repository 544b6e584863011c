package frontend

import (
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/session"
	log "github.com/sirupsen/logrus"

	"github.com/pa11y/sidekick/api/apierrors"
	"github.com/pa11y/sidekick/api/auth"
	"github.com/pa11y/sidekick/internal/settings"
	"github.com/pa11y/sidekick/storage/model"
)

// Options controls optional features of the front end registration.
type Options struct {
	// LoginLimit is the number of login attempts allowed per client and
	// LoginWindow; 0 disables the limit
	LoginLimit  int
	LoginWindow time.Duration
	// LimiterStorage holds the login limiter state; nil keeps it in memory
	LimiterStorage fiber.Storage
}

// Register mounts the front end routes under the provided router. Login,
// logout and setup are reachable without a session; all other routes are
// authenticated with the session cookie.
func Register(
	r fiber.Router, storages model.Backends, sessions *session.Store, authenticator *auth.Authenticator,
	settingsCache *settings.Cache, opts *Options,
) {
	var loginLimit fiber.Handler
	if opts != nil && opts.LoginLimit > 0 {
		loginLimit = limiter.New(
			limiter.Config{
				Max:        opts.LoginLimit,
				Expiration: opts.LoginWindow,
				Storage:    opts.LimiterStorage,
				LimitReached: func(*fiber.Ctx) error {
					return fiber.NewError(
						fiber.StatusTooManyRequests, "Too many login attempts, please try again later",
					)
				},
			},
		)
	}
	registerSession(r, storages.Users, sessions, loginLimit)

	r.Use(auth.SessionMiddleware(sessions, authenticator))
	registerPages(r, storages)
	registerAdmin(r, storages.Users, settingsCache)
}

// page renders the view model of a page. Every page carries the signed-in
// user and the permissions of the request.
func page(c *fiber.Ctx, name string, data fiber.Map) error {
	ac := auth.FromCtx(c)
	if data == nil {
		data = fiber.Map{}
	}
	data["page"] = name
	data["user"] = ac.User
	data["permissions"] = ac.Permissions
	return c.JSON(data)
}

var errorPage = template.Must(
	template.New("error").Parse(
		`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Error {{.Status}} | Sidekick</title></head>
<body>
<h1>Error {{.Status}}</h1>
<p>{{.Message}}</p>
</body>
</html>
`,
	),
)

// ErrorHandler renders err as an HTML error page. Errors that are not
// *fiber.Error are logged and shown without details.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code, message, internal := apierrors.Status(err)
	if internal {
		log.WithError(err).WithField("path", c.Path()).Error("frontend: request failed")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	c.Status(code)
	return errorPage.Execute(
		c, struct {
			Status  int
			Message string
		}{
			Status:  code,
			Message: message,
		},
	)
}
