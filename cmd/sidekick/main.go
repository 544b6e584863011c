package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	log "github.com/sirupsen/logrus"

	"github.com/pa11y/sidekick"
	"github.com/pa11y/sidekick/api/frontend"
	"github.com/pa11y/sidekick/api/restapi"
	"github.com/pa11y/sidekick/cmd/sidekick/config"
	"github.com/pa11y/sidekick/internal/logger"
	"github.com/pa11y/sidekick/internal/sessionstore"
	"github.com/pa11y/sidekick/internal/version"
)

func main() {
	var configFile string
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}
	config.Load(configFile)
	logger.Init()
	log.WithField("version", version.VERSION).Info("Loaded Config")
	c := config.Get()

	backs, err := config.LoadStorageBackends(c.Storage, c.API)
	if err != nil {
		log.WithError(err).Fatal("could not load storage backends")
	}

	sessionStorage, limiterStorage, err := loadSessionStorage(c)
	if err != nil {
		log.WithError(err).Fatal("could not init session storage")
	}
	log.WithField("storage", c.Session.Storage).Info("Loaded Session Storage")

	sessions := session.New(
		session.Config{
			Storage:        sessionStorage,
			Expiration:     c.Session.Lifetime.Duration(),
			KeyLookup:      "cookie:" + c.Session.CookieName,
			CookieHTTPOnly: true,
			CookieSecure:   c.Session.Secure,
			CookieSameSite: "Lax",
		},
	)

	sk := sidekick.NewSidekick(
		c.Server, backs, sidekick.Options{
			Sessions:  sessions,
			AccessLog: logger.AccessLogWriter(),
			REST: &restapi.Options{
				UsersEnabled: c.API.UsersEnabled,
			},
			Frontend: &frontend.Options{
				LoginLimit:     c.Session.LoginLimit,
				LoginWindow:    c.Session.LoginWindow.Duration(),
				LimiterStorage: limiterStorage,
			},
		},
	)
	log.Info("Initialized Sidekick")

	sk.Start()
}

// loadSessionStorage returns the fiber.Storage for sessions and for the login
// limiter. Both are nil for in-memory storage.
func loadSessionStorage(c config.Config) (sessions, limiter fiber.Storage, err error) {
	switch c.Session.Storage {
	case config.SessionStorageRedis:
		sessions, err = sessionstore.NewRedisStorage(c.Caching.RedisOptions(), "sidekick:session:")
		if err != nil {
			return nil, nil, err
		}
		limiter, err = sessionstore.NewRedisStorage(c.Caching.RedisOptions(), "sidekick:limiter:")
		if err != nil {
			return nil, nil, err
		}
		return sessions, limiter, nil
	case config.SessionStorageBadger:
		// session ids and limiter keys do not collide, so a single database
		// serves both
		store, err := sessionstore.NewBadgerStorage(c.Session.BadgerDir)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, nil
	}
}
