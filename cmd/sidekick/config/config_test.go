package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pa11y/sidekick/storage"
)

func TestParseDefaults(t *testing.T) {
	dir := t.TempDir()
	c, err := Parse([]byte("storage:\n  data_dir: " + dir + "\n"))
	require.NoError(t, err)

	assert.Equal(t, 7070, c.Server.Port)
	assert.Equal(t, storage.DriverSQLite, c.Storage.Driver)
	assert.Equal(t, "sidekick.sid", c.Session.CookieName)
	assert.Equal(t, 24*time.Hour, c.Session.Lifetime.Duration())
	assert.Equal(t, SessionStorageMemory, c.Session.Storage)
	assert.True(t, c.API.UsersEnabled)
	assert.EqualValues(t, 64*1024, c.API.Argon2idParams.MemoryKiB)
	assert.Equal(t, "INFO", c.Logging.Internal.Level)
	assert.Nil(t, c.Caching.RedisOptions())
}

func TestParsePostgresDSN(t *testing.T) {
	c, err := Parse(
		[]byte(`
storage:
  driver: postgres
  password: secret
  host: db
`),
	)
	require.NoError(t, err)
	assert.Equal(t, "host=db user=sidekick password=secret dbname=sidekick port=5432", c.Storage.DSN)
}

func TestParseRedisSessions(t *testing.T) {
	c, err := Parse(
		[]byte(`
storage:
  data_dir: /tmp
caching:
  redis_addr: localhost:6379
  redis_db: 2
session:
  storage: redis
`),
	)
	require.NoError(t, err)
	opts := c.Caching.RedisOptions()
	require.NotNil(t, opts)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
}

func TestParseInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown driver":        "storage:\n  driver: oracle\n",
		"sqlite without dir":    "storage:\n  driver: sqlite\n",
		"redis without addr":    "storage:\n  data_dir: /tmp\nsession:\n  storage: redis\n",
		"badger without dir":    "storage:\n  data_dir: /tmp\nsession:\n  storage: badger\n",
		"badger missing dir":    "storage:\n  data_dir: /tmp\nsession:\n  storage: badger\n  badger_dir: /does/not/exist\n",
		"unknown session store": "storage:\n  data_dir: /tmp\nsession:\n  storage: etcd\n",
		"missing log dir":       "storage:\n  data_dir: /tmp\nlogging:\n  access:\n    dir: /does/not/exist\n",
		"tls without cert":      "storage:\n  data_dir: /tmp\nserver:\n  tls:\n    enabled: true\n",
		"zero hashing time":     "storage:\n  data_dir: /tmp\napi:\n  password_hashing:\n    time: 0\n",
		"not yaml":              "storage: [",
		"smart logging no dir":  "storage:\n  data_dir: /tmp\nlogging:\n  internal:\n    smart:\n      enabled: true\n",
		"empty session cookie":  "storage:\n  data_dir: /tmp\nsession:\n  cookie_name: \"\"\n",
		"negative login limit":  "storage:\n  data_dir: /tmp\nsession:\n  login_limit: -1\n",
		"negative pool size":   "storage:\n  data_dir: /tmp\n  pool:\n    max_open_conns: -1\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestGetWithoutLoad(t *testing.T) {
	assert.Equal(t, defaultConfig(), Get())
}
