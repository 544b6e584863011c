package frontend

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pa11y/sidekick/api/apierrors"
	"github.com/pa11y/sidekick/api/auth"
	"github.com/pa11y/sidekick/internal/settings"
	"github.com/pa11y/sidekick/storage/model"
)

// checkbox reports whether an HTML checkbox value is checked
func checkbox(value string) bool {
	switch value {
	case "on", "true", "1":
		return true
	}
	return false
}

func registerAdmin(r fiber.Router, users model.UsersStore, cache *settings.Cache) {
	g := r.Group("/admin", auth.Require(auth.LevelAdmin))

	g.Get(
		"/users", func(c *fiber.Ctx) error {
			list, err := users.List()
			if err != nil {
				return err
			}
			return page(c, "admin-users", fiber.Map{"users": list})
		},
	)

	g.Get(
		"/settings", func(c *fiber.Ctx) error {
			v, err := cache.View()
			if err != nil {
				return err
			}
			return page(c, "admin-settings", fiber.Map{"settings": v})
		},
	)

	g.Post(
		"/settings", func(c *fiber.Ctx) error {
			var update settings.View
			if c.Is("json") {
				var err error
				if update, err = settings.ParseView(c.Body()); err != nil {
					return apierrors.Translate(err)
				}
			} else {
				// unchecked checkboxes are not submitted
				publicRead := checkbox(c.FormValue("publicReadAccess"))
				update.PublicReadAccess = &publicRead
			}
			if err := cache.Apply(update); err != nil {
				return err
			}
			return c.Redirect("/admin/settings", fiber.StatusSeeOther)
		},
	)
}
