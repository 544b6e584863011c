package storage

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"tideland.dev/go/slices"

	"github.com/pa11y/sidekick/storage/model"
)

// URLsStorage provides CRUD access to URL records of a site.
type URLsStorage struct {
	db *gorm.DB
}

// URLsStorage returns a URLsStorage
func (s *Storage) URLsStorage() *URLsStorage {
	return &URLsStorage{db: s.db}
}

func (s *URLsStorage) siteExists(siteID uint) error {
	var count int64
	if err := s.db.Model(&model.Site{}).Where("id = ?", siteID).Count(&count).Error; err != nil {
		return errors.Wrap(err, "urls: site lookup failed")
	}
	if count == 0 {
		return model.NotFoundError("site not found")
	}
	return nil
}

func (s *URLsStorage) List(siteID uint) ([]model.URL, error) {
	if err := s.siteExists(siteID); err != nil {
		return nil, err
	}
	var items []model.URL
	if err := s.db.Where("site_id = ?", siteID).Order("name").Find(&items).Error; err != nil {
		return nil, errors.Wrap(err, "urls: list failed")
	}
	return items, nil
}

func applyURL(item *model.URL, add model.AddURL) error {
	if add.Name != nil {
		item.Name = strings.TrimSpace(*add.Name)
	}
	if add.Address != nil {
		item.Address = strings.TrimSpace(*add.Address)
	}
	if item.Address == "" {
		return model.ValidationError("address is required")
	}
	u, err := url.Parse(item.Address)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return model.ValidationErrorFmt("invalid address: %s", item.Address)
	}
	if item.Name == "" {
		item.Name = item.Address
	}
	if add.Standard != nil {
		item.Standard = *add.Standard
	}
	if item.Standard == "" {
		item.Standard = model.StandardWCAG2AA
	}
	if !slices.Contains(model.Standards, item.Standard) {
		return model.ValidationErrorFmt("unsupported standard: %s", item.Standard)
	}
	if add.Ignore != nil {
		item.Ignore = slices.Unique(*add.Ignore)
	}
	if add.Timeout != nil {
		if *add.Timeout < 0 {
			return model.ValidationError("timeout must not be negative")
		}
		item.Timeout = *add.Timeout
	}
	if add.Wait != nil {
		if *add.Wait < 0 {
			return model.ValidationError("wait must not be negative")
		}
		item.Wait = *add.Wait
	}
	return nil
}

func (s *URLsStorage) Create(siteID uint, add model.AddURL) (*model.URL, error) {
	if err := s.siteExists(siteID); err != nil {
		return nil, err
	}
	item := &model.URL{SiteID: siteID}
	if err := applyURL(item, add); err != nil {
		return nil, err
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, errors.Wrap(err, "urls: create failed")
	}
	return item, nil
}

func (s *URLsStorage) Get(siteID, id uint) (*model.URL, error) {
	var item model.URL
	if err := s.db.Where("site_id = ?", siteID).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NotFoundError("url not found")
		}
		return nil, errors.Wrap(err, "urls: get failed")
	}
	return &item, nil
}

func (s *URLsStorage) Update(siteID, id uint, update model.AddURL) (*model.URL, error) {
	item, err := s.Get(siteID, id)
	if err != nil {
		return nil, err
	}
	if err = applyURL(item, update); err != nil {
		return nil, err
	}
	if err = s.db.Save(item).Error; err != nil {
		return nil, errors.Wrap(err, "urls: update failed")
	}
	return item, nil
}

// Delete removes a url and its results
func (s *URLsStorage) Delete(siteID, id uint) error {
	return s.db.Transaction(
		func(tx *gorm.DB) error {
			res := tx.Where("site_id = ?", siteID).Delete(&model.URL{}, id)
			if res.Error != nil {
				return errors.Wrap(res.Error, "urls: delete failed")
			}
			if res.RowsAffected == 0 {
				return model.NotFoundError("url not found")
			}
			return errors.Wrap(
				tx.Where("url_id = ?", id).Delete(&model.Result{}).Error,
				"urls: deleting results failed",
			)
		},
	)
}
