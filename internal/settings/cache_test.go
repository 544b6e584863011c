package settings

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/pa11y/sidekick/storage/model"
)

type countingStore struct {
	mu       sync.Mutex
	values   map[string]datatypes.JSON
	allCalls int
	err      error
}

func newCountingStore() *countingStore {
	return &countingStore{values: map[string]datatypes.JSON{}}
}

func (s *countingStore) All() (map[string]datatypes.JSON, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allCalls++
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string]datatypes.JSON, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out, nil
}

func (s *countingStore) Get(id string) (datatypes.JSON, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[id], s.err
}

func (s *countingStore) Set(id string, value datatypes.JSON) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.values[id] = value
	return nil
}

func (s *countingStore) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allCalls
}

func TestCacheGetMissing(t *testing.T) {
	store := newCountingStore()
	c := New(store)

	v, ok, err := c.Get("nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)

	enabled, err := c.PublicReadAccess()
	require.NoError(t, err)
	assert.False(t, enabled)
	assert.Equal(t, 1, store.calls())
}

func TestCacheSetRoundTrip(t *testing.T) {
	store := newCountingStore()
	c := New(store)

	require.NoError(t, c.Set(model.SettingPublicReadAccess, true))
	enabled, err := c.PublicReadAccess()
	require.NoError(t, err)
	assert.True(t, enabled)
	assert.JSONEq(t, "true", string(store.values[model.SettingPublicReadAccess]))
}

func TestCacheRepeatedGetDoesNotHitStorage(t *testing.T) {
	store := newCountingStore()
	store.values[model.SettingPublicReadAccess] = datatypes.JSON("true")
	c := New(store)

	for i := 0; i < 5; i++ {
		enabled, err := c.PublicReadAccess()
		require.NoError(t, err)
		assert.True(t, enabled)
	}
	assert.Equal(t, 1, store.calls())
}

func TestCacheSetInvalidates(t *testing.T) {
	store := newCountingStore()
	c := New(store)

	_, err := c.PublicReadAccess()
	require.NoError(t, err)
	require.NoError(t, c.Set(model.SettingPublicReadAccess, true))

	enabled, err := c.PublicReadAccess()
	require.NoError(t, err)
	assert.True(t, enabled)
	assert.Equal(t, 2, store.calls())
}

func TestCacheClearCache(t *testing.T) {
	store := newCountingStore()
	c := New(store)

	_, _, err := c.Get(model.SettingPublicReadAccess)
	require.NoError(t, err)
	store.values[model.SettingPublicReadAccess] = datatypes.JSON("true")

	enabled, err := c.PublicReadAccess()
	require.NoError(t, err)
	assert.False(t, enabled, "value is served from the cache until it is cleared")

	c.ClearCache()
	enabled, err = c.PublicReadAccess()
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestCacheStorageErrors(t *testing.T) {
	store := newCountingStore()
	store.err = errors.New("database is gone")
	c := New(store)

	_, err := c.PublicReadAccess()
	require.Error(t, err)
	require.Error(t, c.Set(model.SettingPublicReadAccess, true))

	store.err = nil
	_, err = c.PublicReadAccess()
	require.NoError(t, err, "failed loads are not cached")
}

func TestCacheInvalidValue(t *testing.T) {
	store := newCountingStore()
	store.values[model.SettingPublicReadAccess] = datatypes.JSON(`"yes"`)
	c := New(store)

	_, err := c.PublicReadAccess()
	require.Error(t, err)
}

func TestCacheConcurrentReaders(t *testing.T) {
	store := newCountingStore()
	store.values[model.SettingPublicReadAccess] = datatypes.JSON("true")
	c := New(store)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			enabled, err := c.PublicReadAccess()
			assert.NoError(t, err)
			assert.True(t, enabled)
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, store.calls(), 50)
	assert.GreaterOrEqual(t, store.calls(), 1)
}
