package sidekick

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pa11y/sidekick/api/frontend"
	"github.com/pa11y/sidekick/api/restapi"
)

func isAPIRequest(c *fiber.Ctx) bool {
	p := c.Path()
	return p == "/api" || strings.HasPrefix(p, "/api/")
}

// handleError renders errors of REST API requests as JSON and all other
// errors as an HTML error page
func handleError(c *fiber.Ctx, err error) error {
	if isAPIRequest(c) {
		return restapi.ErrorHandler(c, err)
	}
	return frontend.ErrorHandler(c, err)
}
