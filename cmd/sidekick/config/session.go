package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/zachmann/go-utils/duration"
	"github.com/zachmann/go-utils/fileutils"
)

// SessionStorageType selects where front end sessions are kept
type SessionStorageType string

// Supported SessionStorageType values
const (
	SessionStorageMemory SessionStorageType = "memory"
	SessionStorageRedis  SessionStorageType = "redis"
	SessionStorageBadger SessionStorageType = "badger"
)

// sessionConf holds the configuration of the front end sessions.
//
// YAML example:
//
//	session:
//	  cookie_name: sidekick.sid
//	  lifetime: 24h
//	  secure: true
//	  storage: badger
//	  badger_dir: /var/lib/sidekick/sessions
//	  login_limit: 10
//	  login_window: 1m
type sessionConf struct {
	CookieName  string                  `yaml:"cookie_name"`
	Lifetime    duration.DurationOption `yaml:"lifetime"`
	Secure      bool                    `yaml:"secure"`
	Storage     SessionStorageType      `yaml:"storage"`
	BadgerDir   string                  `yaml:"badger_dir"`
	LoginLimit  int                     `yaml:"login_limit"`
	LoginWindow duration.DurationOption `yaml:"login_window"`
}

func (c *sessionConf) validate(caching cachingConf) error {
	if c.CookieName == "" {
		return errors.New("error in session conf: cookie_name must not be empty")
	}
	if c.Lifetime.Duration() <= 0 {
		return errors.New("error in session conf: lifetime must be positive")
	}
	switch c.Storage {
	case SessionStorageMemory:
	case SessionStorageRedis:
		if caching.RedisAddr == "" {
			return errors.New("error in session conf: redis storage requires caching.redis_addr")
		}
	case SessionStorageBadger:
		if c.BadgerDir == "" {
			return errors.New("error in session conf: badger storage requires badger_dir")
		}
		if !fileutils.FileExists(c.BadgerDir) {
			return errors.Errorf("error in session conf: badger_dir '%s' does not exist", c.BadgerDir)
		}
	default:
		return errors.Errorf("error in session conf: unknown storage '%s'", c.Storage)
	}
	if c.LoginLimit < 0 {
		return errors.New("error in session conf: login_limit must not be negative")
	}
	return nil
}

var defaultSessionConf = sessionConf{
	CookieName:  "sidekick.sid",
	Lifetime:    duration.DurationOption(24 * time.Hour),
	Storage:     SessionStorageMemory,
	LoginLimit:  10,
	LoginWindow: duration.DurationOption(time.Minute),
}
