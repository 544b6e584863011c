package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Header names of the API credentials
const (
	HeaderAPIKey    = "X-Api-Key"
	HeaderAPISecret = "X-Api-Secret"
)

// SessionKeyUserID is the session key holding the id of the signed-in user
const SessionKeyUserID = "userID"

// SessionUserID returns the user id stored in a session
func SessionUserID(sess *session.Session) (uint, bool) {
	switch id := sess.Get(SessionKeyUserID).(type) {
	case uint:
		return id, true
	case uint64:
		return uint(id), true
	case int:
		if id > 0 {
			return uint(id), true
		}
	}
	return 0, false
}

// SessionMiddleware authenticates front end requests with the session
// cookie. A session whose user no longer exists is destroyed and the request
// fails with ErrInvalidCredentials.
func SessionMiddleware(store *session.Store, a *Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return errors.WithMessage(err, "auth: could not load session")
		}
		userID, present := SessionUserID(sess)
		ac, err := a.FromSession(userID, present)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				if e := sess.Destroy(); e != nil {
					log.WithError(e).Error("auth: could not destroy invalid session")
				}
			}
			return err
		}
		attach(c, ac)
		return c.Next()
	}
}

// KeyMiddleware authenticates REST API requests with the X-Api-Key and
// X-Api-Secret headers. Requests that send only one of the headers are
// treated as anonymous.
func KeyMiddleware(a *Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac, err := a.FromKey(c.Get(HeaderAPIKey), c.Get(HeaderAPISecret))
		if err != nil {
			return err
		}
		attach(c, ac)
		return c.Next()
	}
}

// Require returns a handler that only lets requests pass whose permissions
// include level
func Require(level Level) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !FromCtx(c).Allows(level) {
			return ErrNotAuthorised
		}
		return c.Next()
	}
}

// RequireUser returns a handler that only lets requests pass for which an
// identity resolved
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !FromCtx(c).Authenticated() {
			return ErrNotAuthorised
		}
		return c.Next()
	}
}
