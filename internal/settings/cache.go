// Package settings provides the process-wide cache of installation settings.
package settings

import (
	"encoding/json"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"

	"github.com/pa11y/sidekick/storage/model"
)

// Cache is a lazily populated in-memory copy of all settings. The whole
// cache is loaded on the first read and dropped on every write.
type Cache struct {
	store model.SettingsStore

	mu         sync.RWMutex
	values     map[string]json.RawMessage
	generation uint64
	loads      singleflight.Group
}

// New creates a Cache backed by store
func New(store model.SettingsStore) *Cache {
	return &Cache{store: store}
}

// Get returns the raw JSON value of a setting and whether it exists
func (c *Cache) Get(id string) (json.RawMessage, bool, error) {
	values, err := c.load()
	if err != nil {
		return nil, false, err
	}
	v, ok := values[id]
	return v, ok, nil
}

// GetAs unmarshals the value of a setting into out. Returns (false, nil) if
// the setting does not exist.
func (c *Cache) GetAs(id string, out any) (bool, error) {
	raw, ok, err := c.Get(id)
	if err != nil || !ok {
		return false, err
	}
	if err = json.Unmarshal(raw, out); err != nil {
		return false, errors.Wrapf(err, "settings: invalid value for '%s'", id)
	}
	return true, nil
}

// PublicReadAccess returns the publicReadAccess setting; a missing setting
// is false
func (c *Cache) PublicReadAccess() (bool, error) {
	var enabled bool
	_, err := c.GetAs(model.SettingPublicReadAccess, &enabled)
	return enabled, err
}

// Set persists a setting and clears the cache
func (c *Cache) Set(id string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.WithStack(err)
	}
	if err = c.store.Set(id, datatypes.JSON(data)); err != nil {
		return err
	}
	c.ClearCache()
	return nil
}

// ClearCache drops all cached values; the next read loads from storage
func (c *Cache) ClearCache() {
	c.mu.Lock()
	c.values = nil
	c.generation++
	c.mu.Unlock()
}

func (c *Cache) load() (map[string]json.RawMessage, error) {
	c.mu.RLock()
	values, generation := c.values, c.generation
	c.mu.RUnlock()
	if values != nil {
		return values, nil
	}

	// loads are keyed by generation, so a read after a clear never joins a
	// load that started before it
	v, err, _ := c.loads.Do(
		strconv.FormatUint(generation, 10), func() (any, error) {
			all, err := c.store.All()
			if err != nil {
				return nil, err
			}
			loaded := make(map[string]json.RawMessage, len(all))
			for id, value := range all {
				loaded[id] = json.RawMessage(value)
			}
			c.mu.Lock()
			if c.generation == generation && c.values == nil {
				c.values = loaded
			}
			c.mu.Unlock()
			return loaded, nil
		},
	)
	if err != nil {
		return nil, err
	}
	return v.(map[string]json.RawMessage), nil
}
