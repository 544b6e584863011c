package sidekick

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	log "github.com/sirupsen/logrus"

	"github.com/pa11y/sidekick/api/auth"
	"github.com/pa11y/sidekick/api/frontend"
	"github.com/pa11y/sidekick/api/restapi"
	"github.com/pa11y/sidekick/internal/settings"
	"github.com/pa11y/sidekick/internal/version"
	"github.com/pa11y/sidekick/storage/model"
)

// FiberServerConfig is the fiber.Config that is used to init the http fiber.App
var FiberServerConfig = fiber.Config{
	ReadTimeout:    3 * time.Second,
	WriteTimeout:   20 * time.Second,
	IdleTimeout:    150 * time.Second,
	ReadBufferSize: 8192,
	ErrorHandler:   handleError,
	Network:        "tcp",
}

// Options holds the optional parts of a Sidekick
type Options struct {
	// Sessions is the session store of the front end; if nil an in-memory
	// store is used
	Sessions *session.Store
	// AccessLog receives the http access log; nil disables it
	AccessLog io.Writer
	// REST configures the REST API
	REST *restapi.Options
	// Frontend configures the front end
	Frontend *frontend.Options
}

// Sidekick is the web application: the front end at / and the REST API at
// /api/v1, both sharing one Authenticator and one settings cache.
type Sidekick struct {
	server        *fiber.App
	serverConf    ServerConf
	authenticator *auth.Authenticator
	settings      *settings.Cache
}

// NewSidekick creates a new Sidekick
func NewSidekick(serverConf ServerConf, storages model.Backends, opts Options) *Sidekick {
	fiberConf := FiberServerConfig
	if tps := serverConf.TrustedProxies; len(tps) > 0 {
		fiberConf.TrustedProxies = tps
		fiberConf.EnableTrustedProxyCheck = true
	}
	fiberConf.ProxyHeader = serverConf.ForwardedIPHeader
	server := fiber.New(fiberConf)
	server.Use(recover.New())
	server.Use(compress.New())
	if opts.AccessLog != nil {
		server.Use(logger.New(logger.Config{Output: opts.AccessLog}))
	}
	server.Use(requestid.New())
	server.Use(
		func(c *fiber.Ctx) error {
			c.Set("X-Sidekick-Version", version.VERSION)
			return c.Next()
		},
	)

	settingsCache := settings.New(storages.Settings)
	authenticator := auth.NewAuthenticator(storages.Users, storages.Keys, settingsCache)
	sessions := opts.Sessions
	if sessions == nil {
		sessions = session.New(session.Config{KeyLookup: "cookie:" + DefaultSessionCookieName})
	}

	restapi.Register(server.Group("/api/v1"), storages, authenticator, settingsCache, opts.REST)
	// other API versions are not served; they must not reach the session
	// middleware of the front end
	server.Use(
		"/api", func(*fiber.Ctx) error {
			return fiber.ErrNotFound
		},
	)
	frontend.Register(server, storages, sessions, authenticator, settingsCache, opts.Frontend)

	return &Sidekick{
		server:        server,
		serverConf:    serverConf,
		authenticator: authenticator,
		settings:      settingsCache,
	}
}

// DefaultSessionCookieName is the name of the session cookie if not
// configured otherwise
const DefaultSessionCookieName = "sidekick.sid"

// Settings returns the settings cache of the Sidekick
func (s *Sidekick) Settings() *settings.Cache {
	return s.settings
}

// App returns the underlying fiber.App
func (s *Sidekick) App() *fiber.App {
	return s.server
}

// HttpHandlerFunc returns an http.HandlerFunc for serving all the necessary endpoints
func (s *Sidekick) HttpHandlerFunc() http.HandlerFunc {
	return adaptor.FiberApp(s.server)
}

// Listen starts an http server at the specific address
func (s *Sidekick) Listen(addr string) error {
	return s.server.Listen(addr)
}

// Shutdown gracefully shuts down the server
func (s *Sidekick) Shutdown() error {
	return s.server.Shutdown()
}

func (s *Sidekick) addr(port int) string {
	return net.JoinHostPort(s.serverConf.IPListen, strconv.Itoa(port))
}

// Start starts the server as configured in the ServerConf. It blocks until
// the server fails.
func (s *Sidekick) Start() {
	conf := s.serverConf
	if !conf.TLS.Enabled {
		log.WithField("port", conf.Port).Info("TLS is disabled starting http server")
		log.WithError(s.server.Listen(s.addr(conf.Port))).Fatal()
	}
	// TLS enabled
	if conf.TLS.RedirectHTTP {
		httpServer := fiber.New(FiberServerConfig)
		httpServer.All(
			"*", func(ctx *fiber.Ctx) error {
				//goland:noinspection HttpUrlsUsage
				return ctx.Redirect(
					strings.Replace(ctx.Request().URI().String(), "http://", "https://", 1),
					fiber.StatusPermanentRedirect,
				)
			},
		)
		log.Info("TLS and http redirect enabled, starting redirect server on port 80")
		go func() {
			log.WithError(httpServer.Listen(s.addr(80))).Fatal()
		}()
	}
	time.Sleep(time.Millisecond) // This is just for a more pretty output with the tls header printed after the http one
	port := conf.Port
	if port == 0 {
		port = 443
	}
	log.Info(fmt.Sprintf("TLS enabled, starting https server on port %d", port))
	log.WithError(s.server.ListenTLS(s.addr(port), conf.TLS.Cert, conf.TLS.Key)).Fatal()
}
