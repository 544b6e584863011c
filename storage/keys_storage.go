package storage

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/pa11y/sidekick/storage/model"
)

const secretBytes = 32

// KeysStorage returns a KeysStorage
func (s *Storage) KeysStorage() *KeysStorage {
	return &KeysStorage{
		db:          s.db,
		params:      s.hashParams,
		placeholder: s.placeholderHash,
	}
}

// KeysStorage implements model.KeysStore using GORM
type KeysStorage struct {
	db          *gorm.DB
	params      Argon2idParams
	placeholder string
}

// Get returns a key by id
func (s *KeysStorage) Get(id string) (*model.Key, error) {
	var k model.Key
	if err := s.db.Where("id = ?", id).First(&k).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NotFoundErrorFmt("key not found: %s", id)
		}
		return nil, errors.Wrap(err, "keys: get failed")
	}
	return &k, nil
}

// ListForUser returns all keys of a user
func (s *KeysStorage) ListForUser(userID uint) ([]model.Key, error) {
	var keys []model.Key
	if err := s.db.Where("user_id = ?", userID).Order("created_at").Find(&keys).Error; err != nil {
		return nil, errors.Wrap(err, "keys: list failed")
	}
	return keys, nil
}

// Create creates a key for a user; the returned value holds the plain
// secret, which cannot be recovered afterwards
func (s *KeysStorage) Create(userID uint, add model.AddKey) (*model.KeyWithSecret, error) {
	raw := make([]byte, secretBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, errors.WithStack(err)
	}
	secret := hex.EncodeToString(raw)
	hash, err := hashArgon2id(secret, s.params)
	if err != nil {
		return nil, err
	}
	k := model.Key{
		ID:          uuid.NewString(),
		UserID:      userID,
		SecretHash:  hash,
		Description: add.Description,
	}
	err = s.db.Transaction(
		func(tx *gorm.DB) error {
			var owners int64
			if err := tx.Model(&model.User{}).Where("id = ?", userID).Count(&owners).Error; err != nil {
				return errors.Wrap(err, "keys: user lookup failed")
			}
			if owners == 0 {
				return model.NotFoundErrorFmt("user not found: %d", userID)
			}
			return errors.Wrap(tx.Create(&k).Error, "keys: create failed")
		},
	)
	if err != nil {
		return nil, err
	}
	return &model.KeyWithSecret{
		Key:    k,
		Secret: secret,
	}, nil
}

// Delete deletes a key by id
func (s *KeysStorage) Delete(id string) error {
	res := s.db.Where("id = ?", id).Delete(&model.Key{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "keys: delete failed")
	}
	if res.RowsAffected == 0 {
		return model.NotFoundErrorFmt("key not found: %s", id)
	}
	return nil
}

// CheckSecret verifies secret against hash. If hash is empty the
// placeholder hash is used, which never matches.
func (s *KeysStorage) CheckSecret(secret, hash string) bool {
	if hash == "" {
		_, _ = verifyHash(s.placeholder, secret)
		return false
	}
	ok, err := verifyHash(hash, secret)
	return err == nil && ok
}
