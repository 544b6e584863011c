package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pa11y/sidekick/storage/model"
)

// DriverType represents the type of database driver
type DriverType string

const (
	// DriverSQLite is the SQLite driver
	DriverSQLite DriverType = "sqlite"
	// DriverMySQL is the MySQL driver
	DriverMySQL DriverType = "mysql"
	// DriverPostgres is the PostgreSQL driver
	DriverPostgres DriverType = "postgres"
)

// SupportedDrivers lists all DriverType values
var SupportedDrivers = []DriverType{
	DriverSQLite,
	DriverMySQL,
	DriverPostgres,
}

// DSN creates and returns a dsn connection string for the passed DriverType and DSNConf
func DSN(driver DriverType, conf DSNConf) (string, error) {
	switch driver {
	case DriverSQLite:
		return "", errors.Errorf("driver %s does not use dsn", driver)
	case DriverMySQL:
		if conf.Port == 0 {
			conf.Port = 3306
		}
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True", conf.User, conf.Password, conf.Host, conf.Port,
			conf.DB,
		), nil
	case DriverPostgres:
		if conf.Port == 0 {
			conf.Port = 5432
		}
		return fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%d",
			conf.Host, conf.User, conf.Password, conf.DB, conf.Port,
		), nil
	default:
		return "", errors.Errorf("unsupported driver '%s'", driver)
	}
}

// DSNConf holds the parts of a mysql or postgres connection string
type DSNConf struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	DB       string `yaml:"db"`
}

// PoolConf limits the connection pool of mysql and postgres databases.
// Zero values keep the database/sql defaults.
type PoolConf struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Config represents the database configuration
type Config struct {
	Driver DriverType
	// DSN is the connection string; for sqlite the path of the database
	// file. If empty, sqlite uses sidekick.db in DataDir.
	DSN     string
	DataDir string
	Debug   bool
	Pool    PoolConf
	// Hashing defines parameters for hashing user passwords and key secrets
	Hashing Argon2idParams
}

// sqliteDSN enables foreign keys, which sqlite turns off per connection
func sqliteDSN(cfg Config) string {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = filepath.Join(cfg.DataDir, "sidekick.db")
	}
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

// Connect establishes a connection to the database based on the configuration
func Connect(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite:
		dialector = sqlite.Open(sqliteDSN(cfg))
	case DriverMySQL:
		dialector = mysql.Open(cfg.DSN)
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, errors.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	logMode := logger.Silent
	if cfg.Debug {
		logMode = logger.Info
	}
	db, err := gorm.Open(
		dialector, &gorm.Config{
			Logger: logger.Default.LogMode(logMode),
		},
	)
	if err != nil {
		return nil, err
	}
	if cfg.Driver != DriverSQLite {
		if err = applyPool(db, cfg.Pool); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func applyPool(db *gorm.DB, pool PoolConf) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.WithStack(err)
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	return nil
}

// LoadStorageBackends connects to the database and returns all stores
func LoadStorageBackends(cfg Config) (model.Backends, error) {
	s, err := NewStorage(cfg)
	if err != nil {
		return model.Backends{}, err
	}
	return s.Backends(), nil
}

// Backends returns all stores backed by this Storage
func (s *Storage) Backends() model.Backends {
	return model.Backends{
		Users:    s.UsersStorage(),
		Keys:     s.KeysStorage(),
		Settings: s.SettingsStorage(),
		Sites:    s.SitesStorage(),
		URLs:     s.URLsStorage(),
		Results:  s.ResultsStorage(),
	}
}
