package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pa11y/sidekick/storage/model"
)

const localsKey = "sidekick.auth"

// Context is the authentication state of a single request
type Context struct {
	// User is the resolved identity; nil for anonymous requests
	User *model.User
	// Key is the API key used to authenticate; nil unless the request was
	// authenticated with an API key
	Key *model.Key
	// Permissions is always set, also for anonymous requests
	Permissions model.Permissions
}

// Authenticated reports whether an identity resolved for the request
func (ac *Context) Authenticated() bool {
	return ac != nil && ac.User != nil
}

// Allows reports whether the context holds the passed permission level
func (ac *Context) Allows(level Level) bool {
	return ac != nil && level.grantedBy(ac.Permissions)
}

// FromCtx returns the Context attached to the request. If no resolver ran
// for the request, an anonymous Context without any permission is returned.
func FromCtx(c *fiber.Ctx) *Context {
	if ac, ok := c.Locals(localsKey).(*Context); ok && ac != nil {
		return ac
	}
	return &Context{}
}

func attach(c *fiber.Ctx, ac *Context) {
	c.Locals(localsKey, ac)
}
