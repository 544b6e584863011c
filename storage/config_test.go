package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn, err := DSN(
		DriverMySQL, DSNConf{
			User:     "sidekick",
			Password: "pw",
			Host:     "db",
			DB:       "sidekick",
		},
	)
	require.NoError(t, err)
	assert.Equal(t, "sidekick:pw@tcp(db:3306)/sidekick?charset=utf8mb4&parseTime=True", dsn)

	dsn, err = DSN(
		DriverPostgres, DSNConf{
			User: "sidekick",
			Host: "db",
			Port: 6543,
			DB:   "sidekick",
		},
	)
	require.NoError(t, err)
	assert.Equal(t, "host=db user=sidekick password= dbname=sidekick port=6543", dsn)

	_, err = DSN(DriverSQLite, DSNConf{})
	assert.Error(t, err)
	_, err = DSN("oracle", DSNConf{})
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "data dir",
			cfg:  Config{DataDir: "/var/lib/sidekick"},
			want: "/var/lib/sidekick/sidekick.db?_foreign_keys=on",
		},
		{
			name: "dsn with query",
			cfg:  Config{DSN: "/tmp/db.sqlite?cache=shared"},
			want: "/tmp/db.sqlite?cache=shared&_foreign_keys=on",
		},
		{
			name: "foreign keys already set",
			cfg:  Config{DSN: "/tmp/db.sqlite?_fk=0"},
			want: "/tmp/db.sqlite?_fk=0",
		},
	}
	for _, test := range tests {
		t.Run(
			test.name, func(t *testing.T) {
				assert.Equal(t, test.want, sqliteDSN(test.cfg))
			},
		)
	}
}
