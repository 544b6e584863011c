package model

import (
	"time"
)

// Site groups the URLs that are tested together
type Site struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	IsRunnable  bool      `json:"is_runnable"`
	IsScheduled bool      `json:"is_scheduled"`
	Schedule    string    `gorm:"size:255" json:"schedule,omitempty"`
}

// AddSite holds the data for creating or replacing a site
type AddSite struct {
	Name        string  `json:"name"`
	IsRunnable  *bool   `json:"is_runnable"`
	IsScheduled *bool   `json:"is_scheduled"`
	Schedule    *string `json:"schedule"`
}

// SitesStore is the abstraction used by handlers.
type SitesStore interface {
	List() ([]Site, error)
	Create(site AddSite) (*Site, error)
	Get(id uint) (*Site, error)
	Update(id uint, update AddSite) (*Site, error)
	Delete(id uint) error
}
