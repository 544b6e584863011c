package config

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/zachmann/go-utils/duration"
	"tideland.dev/go/slices"

	"github.com/pa11y/sidekick/storage"
	"github.com/pa11y/sidekick/storage/model"
)

type storageConf struct {
	storage.DSNConf `yaml:",inline"`

	Driver  storage.DriverType `yaml:"driver"`
	DataDir string             `yaml:"data_dir"`
	DSN     string             `yaml:"dsn"`
	Debug   bool               `yaml:"debug"`
	Pool    poolConf           `yaml:"pool"`
}

// poolConf limits the connections to a mysql or postgres database
type poolConf struct {
	MaxOpenConns    int                     `yaml:"max_open_conns"`
	MaxIdleConns    int                     `yaml:"max_idle_conns"`
	ConnMaxLifetime duration.DurationOption `yaml:"conn_max_lifetime"`
}

func (c *storageConf) validate() error {
	if !slices.Contains(storage.SupportedDrivers, c.Driver) {
		return errors.Errorf("error in storage conf: unsupported driver '%s'", c.Driver)
	}
	if c.Pool.MaxOpenConns < 0 || c.Pool.MaxIdleConns < 0 {
		return errors.New("error in storage conf: pool sizes must not be negative")
	}
	if c.Driver == storage.DriverSQLite {
		if c.DataDir == "" && c.DSN == "" {
			return errors.New("error in storage conf: data_dir must be specified")
		}
		return nil
	}
	var err error
	if c.DSN == "" {
		c.DSN, err = storage.DSN(c.Driver, c.DSNConf)
	}
	return err
}

var defaultStorageConf = storageConf{
	Driver: storage.DriverSQLite,
	DSNConf: storage.DSNConf{
		User: "sidekick",
		Host: "localhost",
		DB:   "sidekick",
	},
}

// LoadStorageBackends loads and returns the storage backends for the passed
// storage and api config
func LoadStorageBackends(c storageConf, api apiConf) (model.Backends, error) {
	cfg := storage.Config{
		Driver:  c.Driver,
		DSN:     c.DSN,
		DataDir: c.DataDir,
		Debug:   c.Debug,
		Pool: storage.PoolConf{
			MaxOpenConns:    c.Pool.MaxOpenConns,
			MaxIdleConns:    c.Pool.MaxIdleConns,
			ConnMaxLifetime: c.Pool.ConnMaxLifetime.Duration(),
		},
		Hashing: api.Argon2idParams,
	}
	backs, err := storage.LoadStorageBackends(cfg)
	if err != nil {
		return model.Backends{}, err
	}
	log.WithField("driver", c.Driver).Info("Loaded storage backend")
	return backs, nil
}
