package auth

import (
	"github.com/pa11y/sidekick/storage/model"
)

// CanManageUser checks that the request may change target through the admin
// surface. Nobody may change the owner, and users may not change themselves
// there.
func (ac *Context) CanManageUser(target *model.User) error {
	if target == nil || target.IsOwner {
		return ErrNotAuthorised
	}
	if ac.Authenticated() && ac.User.ID == target.ID {
		return ErrNotAuthorised
	}
	return nil
}

// CanDeleteKey checks that keyID is not the key authenticating the request
func (ac *Context) CanDeleteKey(keyID string) error {
	if ac != nil && ac.Key != nil && ac.Key.ID == keyID {
		return ErrDeleteCurrentKey
	}
	return nil
}
