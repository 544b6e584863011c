// Package memstore provides in-memory implementations of the store
// interfaces for tests.
package memstore

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/datatypes"

	"github.com/pa11y/sidekick/storage/model"
)

// Backends returns a model.Backends built from fresh in-memory stores
func Backends() (model.Backends, *Users, *Keys, *Settings) {
	users := NewUsers()
	keys := NewKeys(users)
	settings := NewSettings()
	sites := NewSites()
	urls := NewURLs(sites)
	return model.Backends{
		Users:    users,
		Keys:     keys,
		Settings: settings,
		Sites:    sites,
		URLs:     urls,
		Results:  NewResults(urls),
	}, users, keys, settings
}

// Users is an in-memory model.UsersStore. Passwords are stored in plain text.
type Users struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]model.User
	// Err, if set, is returned by every operation
	Err error
}

// NewUsers creates an empty Users store
func NewUsers() *Users {
	return &Users{users: map[uint]model.User{}}
}

func (s *Users) Count() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.users)), nil
}

func (s *Users) List() ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		u.PasswordHash = ""
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Users) Get(id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, model.NotFoundErrorFmt("user not found: %d", id)
	}
	u.PasswordHash = ""
	return &u, nil
}

func (s *Users) Create(add model.AddUser) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if add.Email == "" || add.Password == "" {
		return nil, model.ValidationError("email and password are required")
	}
	for _, u := range s.users {
		if u.Email == add.Email {
			return nil, model.AlreadyExistsErrorFmt("user already exists: %s", add.Email)
		}
		if add.IsOwner && u.IsOwner {
			return nil, model.AlreadyExistsError("an owner already exists")
		}
	}
	s.nextID++
	u := model.User{
		ID:           s.nextID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
		Email:        add.Email,
		PasswordHash: add.Password,
		IsOwner:      add.IsOwner,
	}
	u.SetPermissions(add.Permissions)
	if add.IsOwner {
		u.SetPermissions(model.AllPermissions)
	}
	s.users[u.ID] = u
	u.PasswordHash = ""
	return &u, nil
}

func (s *Users) Update(id uint, update model.UpdateUser) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, model.NotFoundErrorFmt("user not found: %d", id)
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Password != nil {
		u.PasswordHash = *update.Password
	}
	if update.Permissions != nil && !u.IsOwner {
		u.SetPermissions(update.Permissions.Apply(u.Permissions()))
	}
	u.UpdatedAt = time.Now()
	s.users[id] = u
	u.PasswordHash = ""
	return &u, nil
}

func (s *Users) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.users[id]; !ok {
		return model.NotFoundErrorFmt("user not found: %d", id)
	}
	delete(s.users, id)
	return nil
}

func (s *Users) Authenticate(email, password string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Email == email {
			if u.PasswordHash != password {
				return nil, model.ErrInvalidPassword
			}
			u.PasswordHash = ""
			return &u, nil
		}
	}
	return nil, model.NotFoundErrorFmt("user not found: %s", email)
}

// Keys is an in-memory model.KeysStore. Secrets are stored in plain text.
type Keys struct {
	mu     sync.Mutex
	users  *Users
	nextID int
	keys   map[string]model.Key
	// SecretChecks counts CheckSecret calls
	SecretChecks int
	// Err, if set, is returned by every operation
	Err error
}

// NewKeys creates an empty Keys store; users is used to check key owners
func NewKeys(users *Users) *Keys {
	return &Keys{users: users, keys: map[string]model.Key{}}
}

// Put stores a key with a known id and secret
func (s *Keys) Put(id string, userID uint, secret string) model.Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := model.Key{
		ID:         id,
		UserID:     userID,
		SecretHash: secret,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	s.keys[id] = k
	return k
}

func (s *Keys) Get(id string) (*model.Key, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	k, ok := s.keys[id]
	if !ok {
		return nil, model.NotFoundErrorFmt("key not found: %s", id)
	}
	return &k, nil
}

func (s *Keys) ListForUser(userID uint) ([]model.Key, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []model.Key{}
	for _, k := range s.keys {
		if k.UserID == userID {
			k.SecretHash = ""
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Keys) Create(userID uint, add model.AddKey) (*model.KeyWithSecret, error) {
	if _, err := s.users.Get(userID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.nextID++
	secret := fmt.Sprintf("secret-%d", s.nextID)
	k := model.Key{
		ID:          fmt.Sprintf("key-%d", s.nextID),
		UserID:      userID,
		SecretHash:  secret,
		Description: add.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	s.keys[k.ID] = k
	k.SecretHash = ""
	return &model.KeyWithSecret{Key: k, Secret: secret}, nil
}

func (s *Keys) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.keys[id]; !ok {
		return model.NotFoundErrorFmt("key not found: %s", id)
	}
	delete(s.keys, id)
	return nil
}

func (s *Keys) CheckSecret(secret, hash string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SecretChecks++
	return hash != "" && secret == hash
}

// Settings is an in-memory model.SettingsStore
type Settings struct {
	mu     sync.Mutex
	values map[string]datatypes.JSON
	// AllCalls counts All calls
	AllCalls int
	// Err, if set, is returned by every operation
	Err error
}

// NewSettings creates an empty Settings store
func NewSettings() *Settings {
	return &Settings{values: map[string]datatypes.JSON{}}
}

func (s *Settings) All() (map[string]datatypes.JSON, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AllCalls++
	if s.Err != nil {
		return nil, s.Err
	}
	out := make(map[string]datatypes.JSON, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out, nil
}

func (s *Settings) Get(id string) (datatypes.JSON, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.values[id], nil
}

func (s *Settings) Set(id string, value datatypes.JSON) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.values[id] = value
	return nil
}
