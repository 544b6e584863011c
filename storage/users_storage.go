package storage

import (
	"net/mail"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/pa11y/sidekick/storage/model"
)

// UsersStorage returns a UsersStorage
func (s *Storage) UsersStorage() *UsersStorage {
	return &UsersStorage{
		db:          s.db,
		params:      s.hashParams,
		placeholder: s.placeholderHash,
	}
}

// UsersStorage implements model.UsersStore using GORM
type UsersStorage struct {
	db          *gorm.DB
	params      Argon2idParams
	placeholder string
}

// Count returns the number of users present in the store
func (s *UsersStorage) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "users: count failed")
	}
	return count, nil
}

// List returns all users ordered by email
func (s *UsersStorage) List() ([]model.User, error) {
	var users []model.User
	if err := s.db.Order("email").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "users: list failed")
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *UsersStorage) find(id uint) (*model.User, error) {
	var u model.User
	if err := s.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NotFoundErrorFmt("user not found: %d", id)
		}
		return nil, errors.Wrap(err, "users: get failed")
	}
	return &u, nil
}

// Get returns a user by id
func (s *UsersStorage) Get(id uint) (*model.User, error) {
	u, err := s.find(id)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", model.ValidationError("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", model.ValidationErrorFmt("invalid email address: %s", email)
	}
	return email, nil
}

// Create creates a user with an Argon2id-hashed password
func (s *UsersStorage) Create(add model.AddUser) (*model.User, error) {
	email, err := normalizeEmail(add.Email)
	if err != nil {
		return nil, err
	}
	if add.Password == "" {
		return nil, model.ValidationError("password is required")
	}
	hash, err := hashArgon2id(add.Password, s.params)
	if err != nil {
		return nil, err
	}
	u := model.User{
		Email:        email,
		PasswordHash: hash,
		IsOwner:      add.IsOwner,
	}
	u.SetPermissions(add.Permissions)
	if add.IsOwner {
		u.SetPermissions(model.AllPermissions)
	}
	err = s.db.Transaction(
		func(tx *gorm.DB) error {
			if add.IsOwner {
				var owners int64
				if err := tx.Model(&model.User{}).Where("is_owner = ?", true).Count(&owners).Error; err != nil {
					return err
				}
				if owners > 0 {
					return model.AlreadyExistsError("an owner already exists")
				}
			}
			if err := tx.Create(&u).Error; err != nil {
				if isUniqueConstraintError(err) {
					return model.AlreadyExistsErrorFmt("user already exists: %s", email)
				}
				return errors.Wrap(err, "users: create failed")
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return &u, nil
}

// Update updates email / password / permissions. The owner always keeps all
// permissions.
func (s *UsersStorage) Update(id uint, update model.UpdateUser) (*model.User, error) {
	u, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if update.Email != nil {
		email, err := normalizeEmail(*update.Email)
		if err != nil {
			return nil, err
		}
		u.Email = email
	}
	if update.Password != nil {
		if len(*update.Password) == 0 {
			return nil, model.ValidationError("password cannot be empty")
		}
		hash, err := hashArgon2id(*update.Password, s.params)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if update.Permissions != nil && !u.IsOwner {
		u.SetPermissions(update.Permissions.Apply(u.Permissions()))
	}
	if err = s.db.Save(u).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, model.AlreadyExistsErrorFmt("user already exists: %s", u.Email)
		}
		return nil, errors.Wrap(err, "users: update failed")
	}
	u.PasswordHash = ""
	return u, nil
}

// Delete deletes a user by id together with all its keys
func (s *UsersStorage) Delete(id uint) error {
	return s.db.Transaction(
		func(tx *gorm.DB) error {
			if err := tx.Where("user_id = ?", id).Delete(&model.Key{}).Error; err != nil {
				return errors.Wrap(err, "users: deleting keys failed")
			}
			res := tx.Delete(&model.User{}, id)
			if res.Error != nil {
				return errors.Wrap(res.Error, "users: delete failed")
			}
			if res.RowsAffected == 0 {
				return model.NotFoundErrorFmt("user not found: %d", id)
			}
			return nil
		},
	)
}

// Authenticate validates email/password and auto-upgrades hash if params
// changed. An unknown email is checked against the placeholder hash, so it
// takes as long as a wrong password.
func (s *UsersStorage) Authenticate(email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_, _ = verifyHash(s.placeholder, password)
			return nil, model.NotFoundErrorFmt("user not found: %s", email)
		}
		return nil, errors.Wrap(err, "users: authenticate failed")
	}
	ok, err := verifyHash(u.PasswordHash, password)
	if err != nil || !ok {
		return nil, model.ErrInvalidPassword
	}
	if stored, err := extractArgon2idParams(u.PasswordHash); err == nil && !argon2idParamsEqual(stored, s.params) {
		if newHash, err := hashArgon2id(password, s.params); err == nil {
			_ = s.db.Model(&model.User{}).Where("id = ?", u.ID).Update("password_hash", newHash).Error
		}
	}
	u.PasswordHash = ""
	return &u, nil
}
