// Package dbtest spins up a throwaway postgres container for store
// tests.
package dbtest

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/ventrolabs/ventro/config"
	"github.com/ventrolabs/ventro/database"
)

// New returns a migrated database backed by a docker container. Tests
// are skipped when docker is not reachable.
func New(t *testing.T) *sqlx.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	pool.MaxWait = 2 * time.Minute

	res, err := pool.Run("postgres", "15-alpine", []string{
		"POSTGRES_PASSWORD=postgres",
		"POSTGRES_DB=ventro",
	})
	if err != nil {
		t.Skipf("could not start postgres container: %v", err)
	}

	var db *sqlx.DB
	err = pool.Retry(func() error {
		db, err = database.Open(config.DB{
			User:       "postgres",
			Password:   "postgres",
			Host:       res.GetHostPort("5432/tcp"),
			Name:       "ventro",
			DisableTLS: true,
		})
		if err != nil {
			return err
		}
		return db.Ping()
	})
	if err != nil {
		pool.Purge(res)
		t.Fatalf("could not connect to postgres container: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
		if err := pool.Purge(res); err != nil {
			t.Logf("could not purge postgres container: %v", err)
		}
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrating the schema: %v", err)
	}

	return db
}
