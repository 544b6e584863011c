package memstore

import (
	"sort"
	"sync"
	"time"

	"github.com/pa11y/sidekick/storage/model"
)

// Sites is an in-memory model.SitesStore
type Sites struct {
	mu     sync.Mutex
	nextID uint
	sites  map[uint]model.Site
}

// NewSites creates an empty Sites store
func NewSites() *Sites {
	return &Sites{sites: map[uint]model.Site{}}
}

func (s *Sites) List() ([]model.Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Site, 0, len(s.sites))
	for _, site := range s.sites {
		out = append(out, site)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Sites) Create(add model.AddSite) (*model.Site, error) {
	if add.Name == "" {
		return nil, model.ValidationError("name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	site := model.Site{ID: s.nextID, Name: add.Name, IsRunnable: true, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if add.IsRunnable != nil {
		site.IsRunnable = *add.IsRunnable
	}
	s.sites[site.ID] = site
	return &site, nil
}

func (s *Sites) Get(id uint) (*model.Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	site, ok := s.sites[id]
	if !ok {
		return nil, model.NotFoundError("site not found")
	}
	return &site, nil
}

func (s *Sites) Update(id uint, update model.AddSite) (*model.Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	site, ok := s.sites[id]
	if !ok {
		return nil, model.NotFoundError("site not found")
	}
	if update.Name != "" {
		site.Name = update.Name
	}
	if update.IsRunnable != nil {
		site.IsRunnable = *update.IsRunnable
	}
	s.sites[id] = site
	return &site, nil
}

func (s *Sites) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sites[id]; !ok {
		return model.NotFoundError("site not found")
	}
	delete(s.sites, id)
	return nil
}

// URLs is an in-memory model.URLsStore
type URLs struct {
	mu     sync.Mutex
	sites  *Sites
	nextID uint
	urls   map[uint]model.URL
}

// NewURLs creates an empty URLs store
func NewURLs(sites *Sites) *URLs {
	return &URLs{sites: sites, urls: map[uint]model.URL{}}
}

func (s *URLs) List(siteID uint) ([]model.URL, error) {
	if _, err := s.sites.Get(siteID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.URL{}
	for _, u := range s.urls {
		if u.SiteID == siteID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *URLs) Create(siteID uint, add model.AddURL) (*model.URL, error) {
	if _, err := s.sites.Get(siteID); err != nil {
		return nil, err
	}
	if add.Address == nil || *add.Address == "" {
		return nil, model.ValidationError("address is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	u := model.URL{ID: s.nextID, SiteID: siteID, Address: *add.Address, Name: *add.Address, Standard: model.StandardWCAG2AA}
	s.urls[u.ID] = u
	return &u, nil
}

func (s *URLs) Get(siteID, id uint) (*model.URL, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.urls[id]
	if !ok || u.SiteID != siteID {
		return nil, model.NotFoundError("url not found")
	}
	return &u, nil
}

func (s *URLs) Update(siteID, id uint, update model.AddURL) (*model.URL, error) {
	u, err := s.Get(siteID, id)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Address != nil {
		u.Address = *update.Address
	}
	s.mu.Lock()
	s.urls[id] = *u
	s.mu.Unlock()
	return u, nil
}

func (s *URLs) Delete(siteID, id uint) error {
	if _, err := s.Get(siteID, id); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.urls, id)
	s.mu.Unlock()
	return nil
}

// Results is an in-memory model.ResultsStore
type Results struct {
	mu      sync.Mutex
	urls    *URLs
	nextID  uint
	results map[uint]model.Result
}

// NewResults creates an empty Results store
func NewResults(urls *URLs) *Results {
	return &Results{urls: urls, results: map[uint]model.Result{}}
}

func (s *Results) filter(keep func(model.Result) bool) []model.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Result{}
	for _, r := range s.results {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (s *Results) ListForURL(siteID, urlID uint) ([]model.Result, error) {
	if _, err := s.urls.Get(siteID, urlID); err != nil {
		return nil, err
	}
	return s.filter(func(r model.Result) bool { return r.URLID == urlID }), nil
}

func (s *Results) ListForSite(siteID uint, urlIDs []uint) ([]model.Result, error) {
	return s.filter(
		func(r model.Result) bool {
			if r.SiteID != siteID {
				return false
			}
			if len(urlIDs) == 0 {
				return true
			}
			for _, id := range urlIDs {
				if r.URLID == id {
					return true
				}
			}
			return false
		},
	), nil
}

func (s *Results) Create(siteID, urlID uint, add model.AddResult) (*model.Result, error) {
	if _, err := s.urls.Get(siteID, urlID); err != nil {
		return nil, err
	}
	if add.Status == "" {
		add.Status = model.ResultStatusComplete
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	r := model.Result{ID: s.nextID, SiteID: siteID, URLID: urlID, Status: add.Status, Count: add.Count, Issues: add.Issues}
	s.results[r.ID] = r
	return &r, nil
}

func (s *Results) Get(siteID, urlID, id uint) (*model.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.results[id]
	if !ok || r.SiteID != siteID || r.URLID != urlID {
		return nil, model.NotFoundError("result not found")
	}
	return &r, nil
}

func (s *Results) Delete(siteID, urlID, id uint) error {
	if _, err := s.Get(siteID, urlID, id); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.results, id)
	s.mu.Unlock()
	return nil
}
