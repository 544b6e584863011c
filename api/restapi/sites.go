package restapi

import (
	arrays "github.com/adam-hanna/arrayOperations"
	"github.com/gofiber/fiber/v2"

	"github.com/pa11y/sidekick/api/apierrors"
	"github.com/pa11y/sidekick/api/auth"
	"github.com/pa11y/sidekick/internal/utils"
	"github.com/pa11y/sidekick/storage/model"
)

func registerSites(r fiber.Router, sites model.SitesStore, urls model.URLsStore, results model.ResultsStore) {
	g := r.Group("/sites")

	g.Get(
		"/", auth.Require(auth.LevelRead), func(c *fiber.Ctx) error {
			list, err := sites.List()
			if err != nil {
				return apierrors.Translate(err)
			}
			return c.JSON(list)
		},
	)

	g.Post(
		"/", auth.Require(auth.LevelWrite), func(c *fiber.Ctx) error {
			var req model.AddSite
			if err := parseBody(c, &req); err != nil {
				return err
			}
			site, err := sites.Create(req)
			if err != nil {
				return apierrors.Translate(err)
			}
			return c.Status(fiber.StatusCreated).JSON(site)
		},
	)

	g.Get(
		"/:siteId", auth.Require(auth.LevelRead), func(c *fiber.Ctx) error {
			id, err := idParam(c, "siteId", "site")
			if err != nil {
				return err
			}
			site, err := sites.Get(id)
			if err != nil {
				return apierrors.Translate(err)
			}
			return c.JSON(site)
		},
	)

	g.Patch(
		"/:siteId", auth.Require(auth.LevelWrite), func(c *fiber.Ctx) error {
			id, err := idParam(c, "siteId", "site")
			if err != nil {
				return err
			}
			var req model.AddSite
			if err = parseBody(c, &req); err != nil {
				return err
			}
			site, err := sites.Update(id, req)
			if err != nil {
				return apierrors.Translate(err)
			}
			return c.JSON(site)
		},
	)

	g.Delete(
		"/:siteId", auth.Require(auth.LevelDelete), func(c *fiber.Ctx) error {
			id, err := idParam(c, "siteId", "site")
			if err != nil {
				return err
			}
			if err = sites.Delete(id); err != nil {
				return apierrors.Translate(err)
			}
			return c.SendStatus(fiber.StatusNoContent)
		},
	)

	// Results of all urls of a site, optionally restricted to ?urls=1,2
	g.Get(
		"/:siteId/results", auth.Require(auth.LevelRead), func(c *fiber.Ctx) error {
			id, err := idParam(c, "siteId", "site")
			if err != nil {
				return err
			}
			if _, err = sites.Get(id); err != nil {
				return apierrors.Translate(err)
			}
			var filter []uint
			if q := c.Query("urls"); q != "" {
				requested, err := utils.ParseIDList(q)
				if err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "parameter 'urls': "+err.Error())
				}
				siteURLs, err := urls.List(id)
				if err != nil {
					return apierrors.Translate(err)
				}
				known := make([]uint, len(siteURLs))
				for i, u := range siteURLs {
					known[i] = u.ID
				}
				filter = arrays.Intersect(requested, known)
				if len(filter) == 0 {
					return c.JSON([]model.Result{})
				}
			}
			list, err := results.ListForSite(id, filter)
			if err != nil {
				return apierrors.Translate(err)
			}
			return c.JSON(list)
		},
	)
}
