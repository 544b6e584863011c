package auth

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/pa11y/sidekick/storage/model"
)

// PublicReadSource provides the installation-wide default read permission
// for anonymous requests. *settings.Cache implements it.
type PublicReadSource interface {
	PublicReadAccess() (bool, error)
}

// Authenticator resolves the Context of a request from its credentials
type Authenticator struct {
	users    model.UsersStore
	keys     model.KeysStore
	settings PublicReadSource
}

// NewAuthenticator creates a new Authenticator
func NewAuthenticator(users model.UsersStore, keys model.KeysStore, settings PublicReadSource) *Authenticator {
	return &Authenticator{
		users:    users,
		keys:     keys,
		settings: settings,
	}
}

func isNotFound(err error) bool {
	var notFound model.NotFoundError
	return errors.As(err, &notFound)
}

func userContext(user *model.User, key *model.Key) *Context {
	user.PasswordHash = ""
	if key != nil {
		key.SecretHash = ""
	}
	return &Context{
		User:        user,
		Key:         key,
		Permissions: user.Permissions(),
	}
}

// FromSession resolves the user id stored in a session. If present is false,
// the anonymous Context is returned. A user id that no longer resolves gives
// ErrInvalidCredentials.
func (a *Authenticator) FromSession(userID uint, present bool) (*Context, error) {
	if !present {
		return a.Anonymous(), nil
	}
	user, err := a.users.Get(userID)
	if err != nil {
		if isNotFound(err) {
			log.WithField("user_id", userID).Debug("auth: session refers to unknown user")
			return nil, ErrInvalidCredentials
		}
		return nil, errors.WithMessage(err, "auth: session user lookup failed")
	}
	return userContext(user, nil), nil
}

// FromKey resolves an API key and secret. If either is empty, the anonymous
// Context is returned. An unknown key, a wrong secret and a key whose user
// no longer exists all give ErrInvalidCredentials.
func (a *Authenticator) FromKey(keyID, secret string) (*Context, error) {
	if keyID == "" || secret == "" {
		return a.Anonymous(), nil
	}
	key, err := a.keys.Get(keyID)
	if err != nil && !isNotFound(err) {
		return nil, errors.WithMessage(err, "auth: key lookup failed")
	}
	var hash string
	if key != nil && err == nil {
		hash = key.SecretHash
	}
	// the secret is always checked, also for unknown keys
	if !a.keys.CheckSecret(secret, hash) || hash == "" {
		log.WithField("key_id", keyID).Debug("auth: invalid api credentials")
		return nil, ErrInvalidCredentials
	}
	user, err := a.users.Get(key.UserID)
	if err != nil {
		if isNotFound(err) {
			log.WithField("key_id", keyID).Debug("auth: api key owner no longer exists")
			return nil, ErrInvalidCredentials
		}
		return nil, errors.WithMessage(err, "auth: key owner lookup failed")
	}
	return userContext(user, key), nil
}

// Anonymous returns the Context for a request without an identity. It holds
// read permission if publicReadAccess is enabled. A failing settings lookup
// results in no permissions at all.
func (a *Authenticator) Anonymous() *Context {
	ac := &Context{}
	if a.settings == nil {
		return ac
	}
	read, err := a.settings.PublicReadAccess()
	if err != nil {
		log.WithError(err).Debug("auth: could not read publicReadAccess setting")
		return ac
	}
	ac.Permissions.Read = read
	return ac
}
