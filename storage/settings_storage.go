package storage

import (
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pa11y/sidekick/storage/model"
)

// SettingsStorage implements model.SettingsStore using GORM.
type SettingsStorage struct {
	db *gorm.DB
}

// SettingsStorage returns a SettingsStorage
func (s *Storage) SettingsStorage() *SettingsStorage {
	return &SettingsStorage{db: s.db}
}

// All returns all stored settings
func (s *SettingsStorage) All() (map[string]datatypes.JSON, error) {
	var rows []model.Setting
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "settings: list failed")
	}
	all := make(map[string]datatypes.JSON, len(rows))
	for _, row := range rows {
		all[row.ID] = row.Value
	}
	return all, nil
}

// Get returns the JSON value of a setting. If not found, returns nil, nil.
func (s *SettingsStorage) Get(id string) (datatypes.JSON, error) {
	var row model.Setting
	if err := s.db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "settings: get failed")
	}
	return row.Value, nil
}

// Set upserts the JSON value of a setting.
func (s *SettingsStorage) Set(id string, value datatypes.JSON) error {
	row := model.Setting{
		ID:    id,
		Value: value,
	}
	return errors.Wrap(
		s.db.Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns(
					[]string{
						"value",
						"updated_at",
					},
				),
			},
		).Create(&row).Error, "settings: set failed",
	)
}
