package model

import (
	"time"
)

// Key is an API credential owned by exactly one user. Only a hash of the
// secret is stored.
type Key struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	SecretHash  string    `json:"-"`
	Description string    `gorm:"type:text" json:"description"`
}

// KeyWithSecret is returned once on key creation; it is the only time the
// plain secret is available
type KeyWithSecret struct {
	Key
	Secret string `json:"secret"`
}

// AddKey holds the data for creating a key
type AddKey struct {
	Description string `json:"description"`
}

// KeysStore abstracts storage of API keys
type KeysStore interface {
	// Get returns a key by id or a NotFoundError
	Get(id string) (*Key, error)
	// ListForUser returns all keys owned by a user
	ListForUser(userID uint) ([]Key, error)
	// Create generates a new key and secret for a user
	Create(userID uint, key AddKey) (*KeyWithSecret, error)
	// Delete deletes a key
	Delete(id string) error
	// CheckSecret verifies a plain secret against a stored hash.
	// An empty hash is checked against a placeholder so that the work done
	// does not depend on whether a key was found.
	CheckSecret(secret, hash string) bool
}
