package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pa11y/sidekick/internal/settings"
	"github.com/pa11y/sidekick/internal/testutil/memstore"
	"github.com/pa11y/sidekick/storage/model"
)

type fixture struct {
	users    *memstore.Users
	keys     *memstore.Keys
	settings *memstore.Settings
	cache    *settings.Cache
	auth     *Authenticator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := memstore.NewUsers()
	keys := memstore.NewKeys(users)
	store := memstore.NewSettings()
	cache := settings.New(store)
	return &fixture{
		users:    users,
		keys:     keys,
		settings: store,
		cache:    cache,
		auth:     NewAuthenticator(users, keys, cache),
	}
}

func (f *fixture) user(t *testing.T, email string, p model.Permissions) *model.User {
	t.Helper()
	u, err := f.users.Create(model.AddUser{Email: email, Password: "pw", Permissions: p})
	require.NoError(t, err)
	return u
}

func (f *fixture) publicRead(t *testing.T, enabled bool) {
	t.Helper()
	require.NoError(t, f.cache.Set(model.SettingPublicReadAccess, enabled))
}

type echoed struct {
	User        *model.User       `json:"user"`
	KeyID       string            `json:"key_id"`
	Permissions model.Permissions `json:"permissions"`
}

func echo(c *fiber.Ctx) error {
	ac := FromCtx(c)
	out := echoed{User: ac.User, Permissions: ac.Permissions}
	if ac.Key != nil {
		out.KeyID = ac.Key.ID
	}
	return c.JSON(out)
}

func (f *fixture) apiApp() *fiber.App {
	app := fiber.New()
	app.Use(KeyMiddleware(f.auth))
	app.Get("/whoami", echo)
	app.Get("/read", Require(LevelRead), echo)
	app.Get("/admin", Require(LevelAdmin), echo)
	app.Get("/me", RequireUser(), echo)
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func decode(t *testing.T, body string) echoed {
	t.Helper()
	var out echoed
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	return out
}

func apiRequest(path, key, secret string) *http.Request {
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if key != "" {
		req.Header.Set(HeaderAPIKey, key)
	}
	if secret != "" {
		req.Header.Set(HeaderAPISecret, secret)
	}
	return req
}

func TestKeyMiddlewareValidCredentials(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "writer@example.com", model.Permissions{Read: true, Write: true})
	f.keys.Put("k1", u.ID, "s1")

	status, body := do(t, f.apiApp(), apiRequest("/whoami", "k1", "s1"))
	require.Equal(t, fiber.StatusOK, status)
	out := decode(t, body)
	require.NotNil(t, out.User)
	assert.Equal(t, u.ID, out.User.ID)
	assert.Equal(t, "k1", out.KeyID)
	assert.Equal(t, model.Permissions{Read: true, Write: true}, out.Permissions)
	assert.NotContains(t, body, "s1")
}

func TestKeyMiddlewareInvalidCredentials(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "reader@example.com", model.Permissions{Read: true})
	f.keys.Put("k1", u.ID, "s1")
	f.publicRead(t, true)

	wrongSecretStatus, wrongSecretBody := do(t, f.apiApp(), apiRequest("/whoami", "k1", "wrong"))
	unknownKeyStatus, unknownKeyBody := do(t, f.apiApp(), apiRequest("/whoami", "nope", "s1"))

	assert.Equal(t, fiber.StatusUnauthorized, wrongSecretStatus)
	assert.Equal(t, "Invalid credentials", wrongSecretBody)
	assert.Equal(t, wrongSecretStatus, unknownKeyStatus)
	assert.Equal(t, wrongSecretBody, unknownKeyBody)
	assert.Equal(t, 2, f.keys.SecretChecks, "the secret is checked for unknown keys too")
}

func TestKeyMiddlewareDeletedOwner(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "gone@example.com", model.Permissions{Read: true})
	f.keys.Put("k1", u.ID, "s1")
	require.NoError(t, f.users.Delete(u.ID))

	status, body := do(t, f.apiApp(), apiRequest("/whoami", "k1", "s1"))
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", body)
}

func TestKeyMiddlewarePartialCredentialsAreAnonymous(t *testing.T) {
	f := newFixture(t)
	f.publicRead(t, true)
	for _, req := range []*http.Request{
		apiRequest("/whoami", "k1", ""),
		apiRequest("/whoami", "", "s1"),
		apiRequest("/whoami", "", ""),
	} {
		status, body := do(t, f.apiApp(), req)
		require.Equal(t, fiber.StatusOK, status)
		out := decode(t, body)
		assert.Nil(t, out.User)
		assert.Equal(t, model.Permissions{Read: true}, out.Permissions)
	}
	assert.Zero(t, f.keys.SecretChecks)
}

func TestKeyMiddlewareStorageErrorPropagates(t *testing.T) {
	f := newFixture(t)
	f.keys.Err = errors.New("database is gone")

	status, _ := do(t, f.apiApp(), apiRequest("/whoami", "k1", "s1"))
	assert.Equal(t, fiber.StatusInternalServerError, status)
}

func TestAnonymousPermissions(t *testing.T) {
	f := newFixture(t)

	out := f.auth.Anonymous()
	assert.Equal(t, model.Permissions{}, out.Permissions, "missing setting grants nothing")

	f.publicRead(t, true)
	assert.Equal(t, model.Permissions{Read: true}, f.auth.Anonymous().Permissions)

	f.publicRead(t, false)
	assert.Equal(t, model.Permissions{}, f.auth.Anonymous().Permissions)

	f.settings.Err = errors.New("database is gone")
	f.cache.ClearCache()
	ac := f.auth.Anonymous()
	require.NotNil(t, ac)
	assert.Equal(t, model.Permissions{}, ac.Permissions)
	assert.Nil(t, ac.User)
}

func TestAnonymousWithoutSettings(t *testing.T) {
	a := NewAuthenticator(memstore.NewUsers(), nil, nil)
	assert.Equal(t, model.Permissions{}, a.Anonymous().Permissions)
}

func TestAnonymousReadGatedRoute(t *testing.T) {
	f := newFixture(t)

	f.publicRead(t, true)
	status, _ := do(t, f.apiApp(), apiRequest("/read", "", ""))
	assert.Equal(t, fiber.StatusOK, status)

	f.publicRead(t, false)
	status, body := do(t, f.apiApp(), apiRequest("/read", "", ""))
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "You are not authorised to perform this action", body)
}

func TestRequireLevels(t *testing.T) {
	f := newFixture(t)
	cases := []model.Permissions{
		{},
		{Read: true},
		{Write: true},
		{Delete: true},
		{Admin: true},
		model.AllPermissions,
	}
	levels := []Level{LevelRead, LevelWrite, LevelDelete, LevelAdmin}
	for i, p := range cases {
		u := f.user(t, string(rune('a'+i))+"@example.com", p)
		keyID := "key-" + u.Email
		f.keys.Put(keyID, u.ID, "secret")
		for _, level := range levels {
			app := fiber.New()
			app.Use(KeyMiddleware(f.auth))
			app.Get("/", Require(level), echo)
			status, _ := do(t, app, apiRequest("/", keyID, "secret"))
			if level.grantedBy(p) {
				assert.Equal(t, fiber.StatusOK, status, "%+v %s", p, level)
			} else {
				assert.Equal(t, fiber.StatusForbidden, status, "%+v %s", p, level)
			}
		}
	}
}

func TestRequireUnknownLevel(t *testing.T) {
	ac := &Context{Permissions: model.AllPermissions}
	assert.False(t, ac.Allows(Level("superuser")))
	var nilCtx *Context
	assert.False(t, nilCtx.Allows(LevelRead))
}

func TestRequireWithoutResolver(t *testing.T) {
	app := fiber.New()
	app.Get("/", Require(LevelRead), echo)
	status, _ := do(t, app, httptest.NewRequest(fiber.MethodGet, "/", nil))
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestRequireUser(t *testing.T) {
	f := newFixture(t)
	f.publicRead(t, true)
	u := f.user(t, "someone@example.com", model.Permissions{})
	f.keys.Put("k1", u.ID, "s1")

	status, _ := do(t, f.apiApp(), apiRequest("/me", "", ""))
	assert.Equal(t, fiber.StatusForbidden, status)
	status, _ = do(t, f.apiApp(), apiRequest("/me", "k1", "s1"))
	assert.Equal(t, fiber.StatusOK, status)
}

func (f *fixture) sessionApp(store *session.Store) *fiber.App {
	app := fiber.New()
	app.Get(
		"/login/:id", func(c *fiber.Ctx) error {
			sess, err := store.Get(c)
			if err != nil {
				return err
			}
			id, err := c.ParamsInt("id")
			if err != nil {
				return err
			}
			sess.Set(SessionKeyUserID, uint(id))
			return sess.Save()
		},
	)
	g := app.Group("/app", SessionMiddleware(store, f.auth))
	g.Get("/whoami", echo)
	g.Get("/read", Require(LevelRead), echo)
	return app
}

func login(t *testing.T, app *fiber.App, id uint) *http.Cookie {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/login/"+strconv.FormatUint(uint64(id), 10), nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == "sidekick.sid" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func withCookie(path string, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func newSessionStore() *session.Store {
	return session.New(session.Config{KeyLookup: "cookie:sidekick.sid"})
}

func TestSessionMiddlewareValidSession(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "admin@example.com", model.Permissions{Read: true, Admin: true})
	app := f.sessionApp(newSessionStore())
	cookie := login(t, app, u.ID)

	status, body := do(t, app, withCookie("/app/whoami", cookie))
	require.Equal(t, fiber.StatusOK, status)
	out := decode(t, body)
	require.NotNil(t, out.User)
	assert.Equal(t, u.ID, out.User.ID)
	assert.Empty(t, out.KeyID)
	assert.Equal(t, model.Permissions{Read: true, Admin: true}, out.Permissions)
}

func TestSessionMiddlewareStaleSession(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "leaving@example.com", model.Permissions{Read: true})
	store := newSessionStore()
	app := f.sessionApp(store)
	cookie := login(t, app, u.ID)
	require.NoError(t, f.users.Delete(u.ID))
	f.publicRead(t, true)

	status, body := do(t, app, withCookie("/app/whoami", cookie))
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", body)

	// the session is gone, so the same cookie is now anonymous
	status, body = do(t, app, withCookie("/app/whoami", cookie))
	require.Equal(t, fiber.StatusOK, status)
	out := decode(t, body)
	assert.Nil(t, out.User)
	assert.Equal(t, model.Permissions{Read: true}, out.Permissions)
}

func TestSessionMiddlewareNoSession(t *testing.T) {
	f := newFixture(t)
	app := f.sessionApp(newSessionStore())

	f.publicRead(t, true)
	status, _ := do(t, app, withCookie("/app/read", nil))
	assert.Equal(t, fiber.StatusOK, status)

	f.publicRead(t, false)
	status, _ = do(t, app, withCookie("/app/read", nil))
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestSessionMiddlewareStorageErrorPropagates(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "x@example.com", model.Permissions{Read: true})
	app := f.sessionApp(newSessionStore())
	cookie := login(t, app, u.ID)
	f.users.Err = errors.New("database is gone")

	status, _ := do(t, app, withCookie("/app/whoami", cookie))
	assert.Equal(t, fiber.StatusInternalServerError, status)
}

func TestGuards(t *testing.T) {
	owner := &model.User{ID: 1, IsOwner: true}
	self := &model.User{ID: 2}
	other := &model.User{ID: 3}
	ac := &Context{User: self, Key: &model.Key{ID: "current"}}

	assert.Equal(t, ErrNotAuthorised, ac.CanManageUser(owner))
	assert.Equal(t, ErrNotAuthorised, ac.CanManageUser(self))
	assert.Equal(t, ErrNotAuthorised, ac.CanManageUser(nil))
	assert.NoError(t, ac.CanManageUser(other))

	assert.Equal(t, ErrDeleteCurrentKey, ac.CanDeleteKey("current"))
	assert.NoError(t, ac.CanDeleteKey("another"))
	assert.NoError(t, (&Context{User: self}).CanDeleteKey("current"))
}

func TestSessionUserID(t *testing.T) {
	store := newSessionStore()
	cases := []struct {
		name    string
		value   any
		id      uint
		present bool
	}{
		{"uint", uint(7), 7, true},
		{"uint64", uint64(8), 8, true},
		{"int", 9, 9, true},
		{"zero int", 0, 0, false},
		{"negative int", -1, 0, false},
		{"string", "7", 0, false},
		{"missing", nil, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				sess, err := store.Get(c)
				if err != nil {
					return err
				}
				if tc.value != nil {
					sess.Set(SessionKeyUserID, tc.value)
				}
				id, present := SessionUserID(sess)
				assert.Equal(t, tc.id, id)
				assert.Equal(t, tc.present, present)
				return c.SendStatus(fiber.StatusNoContent)
			})
			status, _ := do(t, app, httptest.NewRequest(fiber.MethodGet, "/", nil))
			assert.Equal(t, fiber.StatusNoContent, status)
		})
	}
}
