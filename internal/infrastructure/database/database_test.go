package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/lifeflow/core/internal/infrastructure/config"
)

func testConfig(t *testing.T) config.StoreConfig {
	return config.StoreConfig{
		Path:         filepath.Join(t.TempDir(), "nested", "lifeflow.db"),
		BusyTimeout:  time.Second,
		MaxOpenConns: 1,
	}
}

func TestMigrateCreatesMetaTable(t *testing.T) {
	is := is.New(t)
	db, err := Migrate(testConfig(t))
	is.NoErr(err)
	defer db.Close()

	var n int
	is.NoErr(db.DB.Get(&n, `SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = 'app_meta'`))
	is.Equal(n, 1)

	mg, err := NewMigrator(db)
	is.NoErr(err)
	version, dirty, err := mg.Version()
	is.NoErr(err)
	is.Equal(version, uint(1))
	is.True(!dirty)

	ran, err := mg.Up()
	is.NoErr(err)
	is.True(!ran) // already applied
}

func TestVersionBeforeMigrate(t *testing.T) {
	is := is.New(t)
	db, err := New(testConfig(t))
	is.NoErr(err)
	defer db.Close()

	mg, err := NewMigrator(db)
	is.NoErr(err)
	version, _, err := mg.Version()
	is.NoErr(err)
	is.Equal(version, uint(0))
}

func TestHealthCheck(t *testing.T) {
	is := is.New(t)
	db, err := New(testConfig(t))
	is.NoErr(err)
	defer db.Close()

	is.NoErr(db.HealthCheck(context.Background()))
	is.Equal(db.GetConnectionInfo()["max_open_connections"], 1)
}
