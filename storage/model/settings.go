package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	// SettingPublicReadAccess grants read permission to anonymous requests
	SettingPublicReadAccess = "publicReadAccess"
)

// Setting stores an installation-wide setting.
//
// Values are serialized using GORM's datatypes.JSON, which uses the database
// JSON type when available (e.g., PostgreSQL, MySQL), and falls back to TEXT
// in others (e.g., SQLite).
type Setting struct {
	ID        string         `gorm:"primaryKey;size:128" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Value     datatypes.JSON `json:"value"`
}

// SettingsStore defines the operations for persisted settings
type SettingsStore interface {
	// All returns every stored setting keyed by id
	All() (map[string]datatypes.JSON, error)
	// Get returns the value of a setting. Returns (nil, nil) if not found.
	Get(id string) (datatypes.JSON, error)
	// Set inserts or updates the value of a setting
	Set(id string, value datatypes.JSON) error
}
