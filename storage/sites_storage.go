package storage

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/pa11y/sidekick/storage/model"
)

// SitesStorage provides CRUD access to Site records.
type SitesStorage struct {
	db *gorm.DB
}

// SitesStorage returns a SitesStorage
func (s *Storage) SitesStorage() *SitesStorage {
	return &SitesStorage{db: s.db}
}

func (s *SitesStorage) List() ([]model.Site, error) {
	var items []model.Site
	if err := s.db.Order("name").Find(&items).Error; err != nil {
		return nil, errors.Wrap(err, "sites: list failed")
	}
	return items, nil
}

func applySite(item *model.Site, add model.AddSite) error {
	if name := strings.TrimSpace(add.Name); name != "" {
		item.Name = name
	}
	if item.Name == "" {
		return model.ValidationError("name is required")
	}
	if add.IsRunnable != nil {
		item.IsRunnable = *add.IsRunnable
	}
	if add.IsScheduled != nil {
		item.IsScheduled = *add.IsScheduled
	}
	if add.Schedule != nil {
		item.Schedule = strings.TrimSpace(*add.Schedule)
	}
	if item.IsScheduled && item.Schedule == "" {
		return model.ValidationError("schedule is required for scheduled sites")
	}
	return nil
}

func (s *SitesStorage) Create(add model.AddSite) (*model.Site, error) {
	item := &model.Site{IsRunnable: true}
	if err := applySite(item, add); err != nil {
		return nil, err
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, errors.Wrap(err, "sites: create failed")
	}
	return item, nil
}

func (s *SitesStorage) Get(id uint) (*model.Site, error) {
	var item model.Site
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NotFoundError("site not found")
		}
		return nil, errors.Wrap(err, "sites: get failed")
	}
	return &item, nil
}

func (s *SitesStorage) Update(id uint, update model.AddSite) (*model.Site, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err = applySite(item, update); err != nil {
		return nil, err
	}
	if err = s.db.Save(item).Error; err != nil {
		return nil, errors.Wrap(err, "sites: update failed")
	}
	return item, nil
}

// Delete removes a site together with its urls and results
func (s *SitesStorage) Delete(id uint) error {
	return s.db.Transaction(
		func(tx *gorm.DB) error {
			if err := tx.Where("site_id = ?", id).Delete(&model.Result{}).Error; err != nil {
				return errors.Wrap(err, "sites: deleting results failed")
			}
			if err := tx.Where("site_id = ?", id).Delete(&model.URL{}).Error; err != nil {
				return errors.Wrap(err, "sites: deleting urls failed")
			}
			res := tx.Delete(&model.Site{}, id)
			if res.Error != nil {
				return errors.Wrap(res.Error, "sites: delete failed")
			}
			if res.RowsAffected == 0 {
				return model.NotFoundError("site not found")
			}
			return nil
		},
	)
}
