package config

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/zachmann/go-utils/fileutils"
	"gopkg.in/yaml.v3"

	"github.com/pa11y/sidekick"
)

// Config holds the server configuration
type Config struct {
	Server  sidekick.ServerConf `yaml:"server"`
	Storage storageConf         `yaml:"storage"`
	Logging loggingConf         `yaml:"logging"`
	Session sessionConf         `yaml:"session"`
	Caching cachingConf         `yaml:"caching"`
	API     apiConf             `yaml:"api"`
}

var conf *Config

var possibleConfigLocations = []string{
	"config.yaml",
	"/config/config.yaml",
	"/etc/sidekick/config.yaml",
}

func defaultConfig() Config {
	return Config{
		Server: sidekick.ServerConf{
			Port: 7070,
		},
		Storage: defaultStorageConf,
		Logging: defaultLoggingConf,
		Session: defaultSessionConf,
		API:     defaultAPIConf,
	}
}

// Get returns the loaded Config
func Get() Config {
	if conf == nil {
		c := defaultConfig()
		return c
	}
	return *conf
}

// Load loads the config from filename, or if filename is empty from the
// first existing default location. It exits on an invalid config.
func Load(filename string) {
	if filename == "" {
		for _, l := range possibleConfigLocations {
			if fileutils.FileExists(l) {
				filename = l
				break
			}
		}
	}
	if filename == "" {
		log.Fatal("could not find config file in any of the possible locations")
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		log.WithError(err).Fatal("could not read config file")
	}
	c, err := Parse(data)
	if err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	conf = c
}

// Parse parses and validates a yaml config. Unset values keep their
// defaults.
func Parse(data []byte) (*Config, error) {
	c := defaultConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "could not parse config")
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.Server.TLS.Enabled && (c.Server.TLS.Cert == "" || c.Server.TLS.Key == "") {
		return errors.New("error in server conf: tls requires cert and key")
	}
	if err := c.Storage.validate(); err != nil {
		return err
	}
	if err := c.Logging.validate(); err != nil {
		return err
	}
	if err := c.Session.validate(c.Caching); err != nil {
		return err
	}
	return c.API.validate()
}
