package storage

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/pa11y/sidekick/storage/model"
)

// ResultsStorage provides access to the Result records of a URL.
type ResultsStorage struct {
	db *gorm.DB
}

// ResultsStorage returns a ResultsStorage
func (s *Storage) ResultsStorage() *ResultsStorage {
	return &ResultsStorage{db: s.db}
}

func (s *ResultsStorage) urlExists(siteID, urlID uint) error {
	var count int64
	if err := s.db.Model(&model.URL{}).Where("id = ? AND site_id = ?", urlID, siteID).Count(&count).Error; err != nil {
		return errors.Wrap(err, "results: url lookup failed")
	}
	if count == 0 {
		return model.NotFoundError("url not found")
	}
	return nil
}

func (s *ResultsStorage) ListForURL(siteID, urlID uint) ([]model.Result, error) {
	if err := s.urlExists(siteID, urlID); err != nil {
		return nil, err
	}
	var items []model.Result
	if err := s.db.Where("url_id = ?", urlID).Order("created_at desc, id desc").Find(&items).Error; err != nil {
		return nil, errors.Wrap(err, "results: list failed")
	}
	return items, nil
}

func (s *ResultsStorage) ListForSite(siteID uint, urlIDs []uint) ([]model.Result, error) {
	query := s.db.Where("site_id = ?", siteID)
	if len(urlIDs) > 0 {
		query = query.Where("url_id IN ?", urlIDs)
	}
	var items []model.Result
	if err := query.Order("created_at desc, id desc").Find(&items).Error; err != nil {
		return nil, errors.Wrap(err, "results: list failed")
	}
	return items, nil
}

func (s *ResultsStorage) Create(siteID, urlID uint, add model.AddResult) (*model.Result, error) {
	if err := s.urlExists(siteID, urlID); err != nil {
		return nil, err
	}
	if add.Status == "" {
		add.Status = model.ResultStatusComplete
	}
	if !add.Status.Valid() {
		return nil, model.ValidationErrorFmt("invalid status: %s", add.Status)
	}
	if add.Count.Errors < 0 || add.Count.Warnings < 0 || add.Count.Notices < 0 {
		return nil, model.ValidationError("counts must not be negative")
	}
	item := &model.Result{
		SiteID: siteID,
		URLID:  urlID,
		Status: add.Status,
		Count:  add.Count,
		Issues: add.Issues,
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, errors.Wrap(err, "results: create failed")
	}
	return item, nil
}

func (s *ResultsStorage) Get(siteID, urlID, id uint) (*model.Result, error) {
	var item model.Result
	err := s.db.Where("site_id = ? AND url_id = ?", siteID, urlID).First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NotFoundError("result not found")
		}
		return nil, errors.Wrap(err, "results: get failed")
	}
	return &item, nil
}

func (s *ResultsStorage) Delete(siteID, urlID, id uint) error {
	res := s.db.Where("site_id = ? AND url_id = ?", siteID, urlID).Delete(&model.Result{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "results: delete failed")
	}
	if res.RowsAffected == 0 {
		return model.NotFoundError("result not found")
	}
	return nil
}
