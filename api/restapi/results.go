package restapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pa11y/sidekick/api/apierrors"
	"github.com/pa11y/sidekick/api/auth"
	"github.com/pa11y/sidekick/storage/model"
)

func registerResults(r fiber.Router, urls model.URLsStore, results model.ResultsStore) {
	g := r.Group("/sites/:siteId/urls/:urlId/results")

	g.Get(
		"/", auth.Require(auth.LevelRead), func(c *fiber.Ctx) error {
			siteID, urlID, err := urlParams(c)
			if err != nil {
				return err
			}
			if _, err = urls.Get(siteID, urlID); err != nil {
				return apierrors.Translate(err)
			}
			list, err := results.ListForURL(siteID, urlID)
			if err != nil {
				return apierrors.Translate(err)
			}
			return c.JSON(list)
		},
	)

	g.Post(
		"/", auth.Require(auth.LevelWrite), func(c *fiber.Ctx) error {
			siteID, urlID, err := urlParams(c)
			if err != nil {
				return err
			}
			var req model.AddResult
			if err = parseBody(c, &req); err != nil {
				return err
			}
			res, err := results.Create(siteID, urlID, req)
			if err != nil {
				return apierrors.Translate(err)
			}
			return c.Status(fiber.StatusCreated).JSON(res)
		},
	)

	g.Get(
		"/:resultId", auth.Require(auth.LevelRead), func(c *fiber.Ctx) error {
			siteID, urlID, err := urlParams(c)
			if err != nil {
				return err
			}
			id, err := idParam(c, "resultId", "result")
			if err != nil {
				return err
			}
			res, err := results.Get(siteID, urlID, id)
			if err != nil {
				return apierrors.Translate(err)
			}
			return c.JSON(res)
		},
	)

	g.Delete(
		"/:resultId", auth.Require(auth.LevelDelete), func(c *fiber.Ctx) error {
			siteID, urlID, err := urlParams(c)
			if err != nil {
				return err
			}
			id, err := idParam(c, "resultId", "result")
			if err != nil {
				return err
			}
			if err = results.Delete(siteID, urlID, id); err != nil {
				return apierrors.Translate(err)
			}
			return c.SendStatus(fiber.StatusNoContent)
		},
	)
}
