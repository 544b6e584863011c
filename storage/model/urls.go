package model

import (
	"time"

	"gorm.io/datatypes"
)

// Accessibility standards a URL can be tested against
const (
	StandardWCAG2A     = "WCAG2A"
	StandardWCAG2AA    = "WCAG2AA"
	StandardWCAG2AAA   = "WCAG2AAA"
	StandardSection508 = "Section508"
)

// Standards lists all supported standards
var Standards = []string{
	StandardWCAG2A,
	StandardWCAG2AA,
	StandardWCAG2AAA,
	StandardSection508,
}

// URL is a single page of a Site that is tested
type URL struct {
	ID        uint                        `gorm:"primarykey" json:"id"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
	SiteID    uint                        `gorm:"index;not null" json:"site_id"`
	Site      *Site                       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name      string                      `gorm:"size:255" json:"name"`
	Address   string                      `gorm:"type:text;not null" json:"address"`
	Standard  string                      `gorm:"size:32" json:"standard"`
	Ignore    datatypes.JSONSlice[string] `json:"ignore"`
	Timeout   int                         `json:"timeout"`
	Wait      int                         `json:"wait"`
}

// AddURL holds the data for creating or updating a URL
type AddURL struct {
	Name     *string   `json:"name"`
	Address  *string   `json:"address"`
	Standard *string   `json:"standard"`
	Ignore   *[]string `json:"ignore"`
	Timeout  *int      `json:"timeout"`
	Wait     *int      `json:"wait"`
}

// URLsStore is the abstraction used by handlers. All operations are scoped
// to a site; a URL of another site is reported as not found.
type URLsStore interface {
	List(siteID uint) ([]URL, error)
	Create(siteID uint, url AddURL) (*URL, error)
	Get(siteID, id uint) (*URL, error)
	Update(siteID, id uint, update AddURL) (*URL, error)
	Delete(siteID, id uint) error
}
