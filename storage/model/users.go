package model

import (
	"encoding/json"
	"time"
)

// User represents an identity that can sign in to the front end or own API
// keys. Exactly one user per installation is the owner; the owner always
// holds every permission and cannot be changed or deleted by other admins.
type User struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Email is the unique login name
	Email string `gorm:"uniqueIndex;size:255"`
	// PasswordHash stores a PHC-formatted argon2id hash of the user's password
	PasswordHash string
	IsOwner      bool

	AllowRead   bool
	AllowWrite  bool
	AllowDelete bool
	AllowAdmin  bool
}

// Permissions returns the capability flags of the user
func (u User) Permissions() Permissions {
	return Permissions{
		Read:   u.AllowRead,
		Write:  u.AllowWrite,
		Delete: u.AllowDelete,
		Admin:  u.AllowAdmin,
	}
}

// SetPermissions sets the capability flags of the user
func (u *User) SetPermissions(p Permissions) {
	u.AllowRead = p.Read
	u.AllowWrite = p.Write
	u.AllowDelete = p.Delete
	u.AllowAdmin = p.Admin
}

type userJSON struct {
	ID          uint        `json:"id"`
	Email       string      `json:"email"`
	IsOwner     bool        `json:"is_owner"`
	Permissions Permissions `json:"permissions"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// MarshalJSON implements the json.Marshaler interface.
// The password hash is never part of the output.
func (u User) MarshalJSON() ([]byte, error) {
	return json.Marshal(
		userJSON{
			ID:          u.ID,
			Email:       u.Email,
			IsOwner:     u.IsOwner,
			Permissions: u.Permissions(),
			CreatedAt:   u.CreatedAt,
			UpdatedAt:   u.UpdatedAt,
		},
	)
}

// AddUser holds the data for creating a user
type AddUser struct {
	Email       string      `json:"email"`
	Password    string      `json:"password"`
	Permissions Permissions `json:"permissions"`
	IsOwner     bool        `json:"-"`
}

// UpdateUser holds optional changes to a user
type UpdateUser struct {
	Email       *string            `json:"email"`
	Password    *string            `json:"password"`
	Permissions *PermissionsUpdate `json:"permissions"`
}

// UsersStore abstracts CRUD and authentication helpers for users.
type UsersStore interface {
	// Count returns the number of users present in the store
	Count() (int64, error)
	// List returns all users
	List() ([]User, error)
	// Get returns a user by id or a NotFoundError
	Get(id uint) (*User, error)
	// Create creates a user; the implementation must hash the password
	Create(user AddUser) (*User, error)
	// Update applies the set fields of update to the user
	Update(id uint, update UpdateUser) (*User, error)
	// Delete deletes a user and its keys
	Delete(id uint) error
	// Authenticate checks an email/password combo and returns the user
	Authenticate(email, password string) (*User, error)
}
