package restapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pa11y/sidekick/api/apierrors"
	"github.com/pa11y/sidekick/api/auth"
	"github.com/pa11y/sidekick/internal/settings"
)

func registerSettings(r fiber.Router, cache *settings.Cache) {
	g := r.Group("/settings", auth.Require(auth.LevelAdmin))

	g.Get(
		"/", func(c *fiber.Ctx) error {
			v, err := cache.View()
			if err != nil {
				return err
			}
			return c.JSON(v)
		},
	)

	g.Patch(
		"/", func(c *fiber.Ctx) error {
			update, err := settings.ParseView(c.Body())
			if err != nil {
				return apierrors.Translate(err)
			}
			if err = cache.Apply(update); err != nil {
				return err
			}
			v, err := cache.View()
			if err != nil {
				return err
			}
			return c.JSON(v)
		},
	)
}
