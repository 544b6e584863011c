package restapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pa11y/sidekick/api/apierrors"
	"github.com/pa11y/sidekick/api/auth"
	"github.com/pa11y/sidekick/storage/model"
)

func registerURLs(r fiber.Router, urls model.URLsStore) {
	g := r.Group("/sites/:siteId/urls")

	g.Get(
		"/", auth.Require(auth.LevelRead), func(c *fiber.Ctx) error {
			siteID, err := idParam(c, "siteId", "site")
			if err != nil {
				return err
			}
			list, err := urls.List(siteID)
			if err != nil {
				return apierrors.Translate(err)
			}
			return c.JSON(list)
		},
	)

	g.Post(
		"/", auth.Require(auth.LevelWrite), func(c *fiber.Ctx) error {
			siteID, err := idParam(c, "siteId", "site")
			if err != nil {
				return err
			}
			var req model.AddURL
			if err = parseBody(c, &req); err != nil {
				return err
			}
			u, err := urls.Create(siteID, req)
			if err != nil {
				return apierrors.Translate(err)
			}
			return c.Status(fiber.StatusCreated).JSON(u)
		},
	)

	g.Get(
		"/:urlId", auth.Require(auth.LevelRead), func(c *fiber.Ctx) error {
			siteID, urlID, err := urlParams(c)
			if err != nil {
				return err
			}
			u, err := urls.Get(siteID, urlID)
			if err != nil {
				return apierrors.Translate(err)
			}
			return c.JSON(u)
		},
	)

	g.Patch(
		"/:urlId", auth.Require(auth.LevelWrite), func(c *fiber.Ctx) error {
			siteID, urlID, err := urlParams(c)
			if err != nil {
				return err
			}
			var req model.AddURL
			if err = parseBody(c, &req); err != nil {
				return err
			}
			u, err := urls.Update(siteID, urlID, req)
			if err != nil {
				return apierrors.Translate(err)
			}
			return c.JSON(u)
		},
	)

	g.Delete(
		"/:urlId", auth.Require(auth.LevelDelete), func(c *fiber.Ctx) error {
			siteID, urlID, err := urlParams(c)
			if err != nil {
				return err
			}
			if err = urls.Delete(siteID, urlID); err != nil {
				return apierrors.Translate(err)
			}
			return c.SendStatus(fiber.StatusNoContent)
		},
	)
}

func urlParams(c *fiber.Ctx) (siteID, urlID uint, err error) {
	siteID, err = idParam(c, "siteId", "site")
	if err != nil {
		return
	}
	urlID, err = idParam(c, "urlId", "url")
	return
}
