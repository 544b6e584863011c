package frontend

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/pa11y/sidekick/api/apierrors"
	"github.com/pa11y/sidekick/api/auth"
	"github.com/pa11y/sidekick/storage/model"
)

type credentialsForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func registerSession(r fiber.Router, users model.UsersStore, sessions *session.Store, loginLimit fiber.Handler) {
	signIn := func(c *fiber.Ctx, u *model.User) error {
		sess, err := sessions.Get(c)
		if err != nil {
			return errors.WithMessage(err, "frontend: could not load session")
		}
		if err = sess.Regenerate(); err != nil {
			return errors.WithMessage(err, "frontend: could not regenerate session")
		}
		sess.Set(auth.SessionKeyUserID, u.ID)
		if err = sess.Save(); err != nil {
			return errors.WithMessage(err, "frontend: could not save session")
		}
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	r.Get(
		"/login", func(c *fiber.Ctx) error {
			count, err := users.Count()
			if err != nil {
				return err
			}
			if count == 0 {
				return c.Redirect("/setup", fiber.StatusSeeOther)
			}
			return c.JSON(fiber.Map{"page": "login"})
		},
	)

	login := []fiber.Handler{
		func(c *fiber.Ctx) error {
			var req credentialsForm
			if err := c.BodyParser(&req); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid body")
			}
			u, err := users.Authenticate(req.Email, req.Password)
			if err != nil {
				var notFound model.NotFoundError
				if errors.As(err, &notFound) || errors.Is(err, model.ErrInvalidPassword) {
					log.WithField("email", req.Email).Debug("frontend: failed login")
					return auth.ErrInvalidCredentials
				}
				return err
			}
			log.WithField("user_id", u.ID).Debug("frontend: signed in")
			return signIn(c, u)
		},
	}
	if loginLimit != nil {
		login = append([]fiber.Handler{loginLimit}, login...)
	}
	r.Post("/login", login...)

	r.Post(
		"/logout", func(c *fiber.Ctx) error {
			sess, err := sessions.Get(c)
			if err != nil {
				return errors.WithMessage(err, "frontend: could not load session")
			}
			if err = sess.Destroy(); err != nil {
				return errors.WithMessage(err, "frontend: could not destroy session")
			}
			return c.Redirect("/login", fiber.StatusSeeOther)
		},
	)

	// setup creates the owner and is only available while there are no users
	r.Get(
		"/setup", func(c *fiber.Ctx) error {
			count, err := users.Count()
			if err != nil {
				return err
			}
			if count > 0 {
				return c.Redirect("/login", fiber.StatusSeeOther)
			}
			return c.JSON(fiber.Map{"page": "setup"})
		},
	)

	r.Post(
		"/setup", func(c *fiber.Ctx) error {
			count, err := users.Count()
			if err != nil {
				return err
			}
			if count > 0 {
				return auth.ErrNotAuthorised
			}
			var req credentialsForm
			if err = c.BodyParser(&req); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid body")
			}
			if req.Email == "" || req.Password == "" {
				return fiber.NewError(fiber.StatusBadRequest, "email and password are required")
			}
			owner, err := users.Create(
				model.AddUser{
					Email:    req.Email,
					Password: req.Password,
					IsOwner:  true,
				},
			)
			if err != nil {
				return apierrors.Translate(err)
			}
			log.WithField("user_id", owner.ID).Info("frontend: owner created")
			return signIn(c, owner)
		},
	)
}
