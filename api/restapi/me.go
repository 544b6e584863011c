package restapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pa11y/sidekick/api/apierrors"
	"github.com/pa11y/sidekick/api/auth"
	"github.com/pa11y/sidekick/storage/model"
)

type meResponse struct {
	User *model.User `json:"user"`
	Key  *model.Key  `json:"key,omitempty"`
}

type updateMeReq struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// registerMe wires the handlers with which an authenticated user manages
// their own profile and keys
func registerMe(r fiber.Router, users model.UsersStore, keys model.KeysStore) {
	g := r.Group("/me", auth.RequireUser())

	g.Get(
		"/", func(c *fiber.Ctx) error {
			ac := auth.FromCtx(c)
			return c.JSON(
				meResponse{
					User: ac.User,
					Key:  ac.Key,
				},
			)
		},
	)

	g.Patch(
		"/", func(c *fiber.Ctx) error {
			var req updateMeReq
			if err := parseBody(c, &req); err != nil {
				return err
			}
			u, err := users.Update(
				auth.FromCtx(c).User.ID, model.UpdateUser{
					Email:    req.Email,
					Password: req.Password,
				},
			)
			if err != nil {
				return apierrors.Translate(err)
			}
			return c.JSON(u)
		},
	)

	g.Get(
		"/keys", func(c *fiber.Ctx) error {
			list, err := keys.ListForUser(auth.FromCtx(c).User.ID)
			if err != nil {
				return apierrors.Translate(err)
			}
			return c.JSON(list)
		},
	)

	g.Post(
		"/keys", func(c *fiber.Ctx) error {
			return createKey(c, keys, auth.FromCtx(c).User.ID)
		},
	)

	g.Delete(
		"/keys/:keyId", func(c *fiber.Ctx) error {
			return deleteKey(c, keys, auth.FromCtx(c).User.ID)
		},
	)
}
