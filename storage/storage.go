package storage

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pa11y/sidekick/storage/model"
)

// Storage is a GORM-based storage implementation
type Storage struct {
	db              *gorm.DB
	hashParams      Argon2idParams
	placeholderHash string
}

var models = []any{
	&model.User{},
	&model.Key{},
	&model.Setting{},
	&model.Site{},
	&model.URL{},
	&model.Result{},
}

// NewStorage creates a new GORM-based storage
func NewStorage(config Config) (*Storage, error) {
	db, err := Connect(config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto migrate the schemas
	if err = db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Fill hash params with defaults if zero values
	params := config.Hashing
	if params.Time == 0 {
		params = defaultArgon2idParams()
	}
	// Secrets of unknown keys are checked against the placeholder; it must
	// use the live params.
	placeholder, err := hashArgon2id("", params)
	if err != nil {
		return nil, fmt.Errorf("failed to create placeholder hash: %w", err)
	}

	return &Storage{
		db:              db,
		hashParams:      params,
		placeholderHash: placeholder,
	}, nil
}

// DB returns the underlying gorm.DB
func (s *Storage) DB() *gorm.DB {
	return s.db
}
