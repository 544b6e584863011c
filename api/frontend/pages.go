package frontend

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pa11y/sidekick/api/apierrors"
	"github.com/pa11y/sidekick/api/auth"
	"github.com/pa11y/sidekick/storage/model"
)

func idParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fiber.ErrNotFound
	}
	return uint(id), nil
}

func registerPages(r fiber.Router, storages model.Backends) {
	r.Get(
		"/", auth.Require(auth.LevelRead), func(c *fiber.Ctx) error {
			sites, err := storages.Sites.List()
			if err != nil {
				return err
			}
			return page(c, "home", fiber.Map{"sites": sites})
		},
	)

	r.Get(
		"/sites/:siteId", auth.Require(auth.LevelRead), func(c *fiber.Ctx) error {
			siteID, err := idParam(c, "siteId")
			if err != nil {
				return err
			}
			site, err := storages.Sites.Get(siteID)
			if err != nil {
				return apierrors.Translate(err)
			}
			urls, err := storages.URLs.List(siteID)
			if err != nil {
				return apierrors.Translate(err)
			}
			results, err := storages.Results.ListForSite(siteID, nil)
			if err != nil {
				return apierrors.Translate(err)
			}
			return page(
				c, "site", fiber.Map{
					"site":    site,
					"urls":    urls,
					"results": results,
				},
			)
		},
	)

	r.Get(
		"/sites/:siteId/urls/:urlId", auth.Require(auth.LevelRead), func(c *fiber.Ctx) error {
			siteID, err := idParam(c, "siteId")
			if err != nil {
				return err
			}
			urlID, err := idParam(c, "urlId")
			if err != nil {
				return err
			}
			site, err := storages.Sites.Get(siteID)
			if err != nil {
				return apierrors.Translate(err)
			}
			url, err := storages.URLs.Get(siteID, urlID)
			if err != nil {
				return apierrors.Translate(err)
			}
			results, err := storages.Results.ListForURL(siteID, urlID)
			if err != nil {
				return apierrors.Translate(err)
			}
			return page(
				c, "url", fiber.Map{
					"site":    site,
					"url":     url,
					"results": results,
				},
			)
		},
	)

	r.Get(
		"/profile", auth.RequireUser(), func(c *fiber.Ctx) error {
			keys, err := storages.Keys.ListForUser(auth.FromCtx(c).User.ID)
			if err != nil {
				return err
			}
			return page(c, "profile", fiber.Map{"keys": keys})
		},
	)
}
