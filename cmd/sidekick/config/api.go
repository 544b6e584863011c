package config

import (
	"github.com/pkg/errors"

	"github.com/pa11y/sidekick/storage"
)

// apiConf holds API-related configuration
type apiConf struct {
	UsersEnabled   bool                   `yaml:"users_enabled"`
	Argon2idParams storage.Argon2idParams `yaml:"password_hashing"`
}

func (c *apiConf) validate() error {
	p := c.Argon2idParams
	if p.Time == 0 || p.MemoryKiB == 0 || p.Parallelism == 0 || p.KeyLen == 0 || p.SaltLen == 0 {
		return errors.New("error in api conf: all password_hashing parameters must be positive")
	}
	return nil
}

var defaultAPIConf = apiConf{
	UsersEnabled: true,
	Argon2idParams: storage.Argon2idParams{
		Time:        1,
		MemoryKiB:   64 * 1024,
		Parallelism: 4,
		KeyLen:      32,
		SaltLen:     16,
	},
}
