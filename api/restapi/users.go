package restapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pa11y/sidekick/api/apierrors"
	"github.com/pa11y/sidekick/api/auth"
	"github.com/pa11y/sidekick/storage/model"
)

// registerUsers wires the admin user and key management handlers
func registerUsers(r fiber.Router, users model.UsersStore, keys model.KeysStore) {
	g := r.Group("/users", auth.Require(auth.LevelAdmin))

	// managedUser loads the user of the route and checks that the request may
	// change it
	managedUser := func(c *fiber.Ctx) (*model.User, error) {
		id, err := idParam(c, "userId", "user")
		if err != nil {
			return nil, err
		}
		target, err := users.Get(id)
		if err != nil {
			return nil, apierrors.Translate(err)
		}
		if err = auth.FromCtx(c).CanManageUser(target); err != nil {
			return nil, err
		}
		return target, nil
	}

	g.Get(
		"/", func(c *fiber.Ctx) error {
			list, err := users.List()
			if err != nil {
				return apierrors.Translate(err)
			}
			return c.JSON(list)
		},
	)

	g.Post(
		"/", func(c *fiber.Ctx) error {
			var req model.AddUser
			if err := parseBody(c, &req); err != nil {
				return err
			}
			if req.Email == "" || req.Password == "" {
				return fiber.NewError(fiber.StatusBadRequest, "email and password are required")
			}
			u, err := users.Create(req)
			if err != nil {
				return apierrors.Translate(err)
			}
			return c.Status(fiber.StatusCreated).JSON(u)
		},
	)

	g.Get(
		"/:userId", func(c *fiber.Ctx) error {
			id, err := idParam(c, "userId", "user")
			if err != nil {
				return err
			}
			u, err := users.Get(id)
			if err != nil {
				return apierrors.Translate(err)
			}
			return c.JSON(u)
		},
	)

	g.Patch(
		"/:userId", func(c *fiber.Ctx) error {
			target, err := managedUser(c)
			if err != nil {
				return err
			}
			var req model.UpdateUser
			if err = parseBody(c, &req); err != nil {
				return err
			}
			u, err := users.Update(target.ID, req)
			if err != nil {
				return apierrors.Translate(err)
			}
			return c.JSON(u)
		},
	)

	g.Delete(
		"/:userId", func(c *fiber.Ctx) error {
			target, err := managedUser(c)
			if err != nil {
				return err
			}
			if err = users.Delete(target.ID); err != nil {
				return apierrors.Translate(err)
			}
			return c.SendStatus(fiber.StatusNoContent)
		},
	)

	g.Get(
		"/:userId/keys", func(c *fiber.Ctx) error {
			id, err := idParam(c, "userId", "user")
			if err != nil {
				return err
			}
			if _, err = users.Get(id); err != nil {
				return apierrors.Translate(err)
			}
			list, err := keys.ListForUser(id)
			if err != nil {
				return apierrors.Translate(err)
			}
			return c.JSON(list)
		},
	)

	g.Post(
		"/:userId/keys", func(c *fiber.Ctx) error {
			target, err := managedUser(c)
			if err != nil {
				return err
			}
			return createKey(c, keys, target.ID)
		},
	)

	g.Delete(
		"/:userId/keys/:keyId", func(c *fiber.Ctx) error {
			target, err := managedUser(c)
			if err != nil {
				return err
			}
			return deleteKey(c, keys, target.ID)
		},
	)
}

func createKey(c *fiber.Ctx, keys model.KeysStore, userID uint) error {
	var req model.AddKey
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return err
		}
	}
	k, err := keys.Create(userID, req)
	if err != nil {
		return apierrors.Translate(err)
	}
	return c.Status(fiber.StatusCreated).JSON(k)
}

// deleteKey deletes the key of the route if it belongs to userID and is not
// the key authenticating the request
func deleteKey(c *fiber.Ctx, keys model.KeysStore, userID uint) error {
	keyID := c.Params("keyId")
	k, err := keys.Get(keyID)
	if err != nil {
		return apierrors.Translate(err)
	}
	if k.UserID != userID {
		return fiber.NewError(fiber.StatusNotFound, "key not found: "+keyID)
	}
	if err = auth.FromCtx(c).CanDeleteKey(k.ID); err != nil {
		return err
	}
	if err = keys.Delete(k.ID); err != nil {
		return apierrors.Translate(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
