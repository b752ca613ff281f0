package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestLoadDefaults(t *testing.T) {
	is := is.New(t)
	chdir(t, t.TempDir())

	cfg, err := Load("")
	is.NoErr(err)
	is.Equal(cfg.App.Name, "LifeFlow")
	is.Equal(cfg.Server.Port, 8080)
	is.Equal(cfg.Store.MaxOpenConns, 1)
	is.Equal(cfg.Store.BusyTimeout, 5*time.Second)
	is.True(cfg.App.IsDevelopment())
}

func TestLoadEnvOverrides(t *testing.T) {
	is := is.New(t)
	chdir(t, t.TempDir())
	t.Setenv("LIFEFLOW_STORE_PATH", "/tmp/elsewhere.db")
	t.Setenv("SERVER_PORT", "9191")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	is.NoErr(err)
	is.Equal(cfg.Store.Path, "/tmp/elsewhere.db")
	is.Equal(cfg.Server.Port, 9191)
	is.Equal(cfg.Logger.Level, "debug")
}

func TestLoadConfigFile(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	chdir(t, dir)

	file := filepath.Join(dir, "lifeflow.yaml")
	is.NoErr(os.WriteFile(file, []byte("store:\n  memory: true\n  path: \"\"\nserver:\n  port: 7070\n"), 0o600))

	cfg, err := Load(file)
	is.NoErr(err)
	is.True(cfg.Store.Memory)
	is.Equal(cfg.Server.Port, 7070)
}

func TestLoadRejectsBadPort(t *testing.T) {
	is := is.New(t)
	chdir(t, t.TempDir())
	t.Setenv("SERVER_PORT", "70000")

	_, err := Load("")
	is.True(err != nil)
}

func TestStoreDSN(t *testing.T) {
	is := is.New(t)
	cfg := StoreConfig{Path: "data/app.db", BusyTimeout: 2 * time.Second}
	is.Equal(cfg.DSN(), "file:data/app.db?mode=rwc&_txlock=immediate&_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
