package model

import (
	"time"

	"gorm.io/datatypes"
)

// ResultStatus is the state of a test run
type ResultStatus string

// Possible ResultStatus values
const (
	ResultStatusPending  ResultStatus = "pending"
	ResultStatusRunning  ResultStatus = "running"
	ResultStatusComplete ResultStatus = "complete"
	ResultStatusFailed   ResultStatus = "failed"
)

// Valid reports whether s is a known status
func (s ResultStatus) Valid() bool {
	switch s {
	case ResultStatusPending, ResultStatusRunning, ResultStatusComplete, ResultStatusFailed:
		return true
	}
	return false
}

// ResultCount holds the number of issues per type
type ResultCount struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Notices  int `json:"notices"`
}

// Result is the outcome of one Pa11y run against a URL
type Result struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	SiteID    uint           `gorm:"index;not null" json:"site_id"`
	URLID     uint           `gorm:"index;not null" json:"url_id"`
	URL       *URL           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Status    ResultStatus   `gorm:"size:16" json:"status"`
	Count     ResultCount    `gorm:"embedded;embeddedPrefix:count_" json:"count"`
	Issues    datatypes.JSON `json:"issues,omitempty"`
}

// AddResult holds the data of a finished or started run
type AddResult struct {
	Status ResultStatus   `json:"status"`
	Count  ResultCount    `json:"count"`
	Issues datatypes.JSON `json:"issues"`
}

// ResultsStore is the abstraction used by handlers.
type ResultsStore interface {
	// ListForURL returns the results of a URL, newest first
	ListForURL(siteID, urlID uint) ([]Result, error)
	// ListForSite returns the results of a site, newest first; if urlIDs is
	// not empty only results of those urls are returned
	ListForSite(siteID uint, urlIDs []uint) ([]Result, error)
	Create(siteID, urlID uint, result AddResult) (*Result, error)
	Get(siteID, urlID, id uint) (*Result, error)
	Delete(siteID, urlID, id uint) error
}
