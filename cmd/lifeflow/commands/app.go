package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/lifeflow/core/internal/adapters/memory"
	"github.com/lifeflow/core/internal/adapters/sqlite"
	"github.com/lifeflow/core/internal/application/hook"
	"github.com/lifeflow/core/internal/application/services"
	"github.com/lifeflow/core/internal/application/version"
	"github.com/lifeflow/core/internal/infrastructure/config"
	"github.com/lifeflow/core/internal/infrastructure/database"
	"github.com/lifeflow/core/internal/infrastructure/logger"
	"github.com/lifeflow/core/internal/infrastructure/metrics"
	"github.com/lifeflow/core/internal/ports"
)

// app is the wired application shared by every command.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *database.DB
	gw       ports.Gateway
	meta     ports.MetaStore
	metrics  *metrics.Metrics
	hooks    *hook.Registry
	services *services.Services

	// versionChanged is true on the first run of this build against the store.
	versionChanged bool
}

// loadApp reads the configuration and brings the store up. CLI commands
// other than serve log to stderr so their stdout stays machine-readable.
func loadApp(ctx context.Context, opts *rootOptions, serve bool) (*app, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if !serve && cfg.Logger.Output == "stdout" {
		cfg.Logger.Output = "stderr"
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a := &app{cfg: cfg, log: log, metrics: metrics.New()}
	if err := a.connectStore(); err != nil {
		_ = log.Close()
		return nil, err
	}

	if a.versionChanged, err = prepareStore(ctx, a.gw, a.meta, log); err != nil {
		a.close()
		return nil, err
	}
	log.Infow("Store opened", "memory", cfg.Store.Memory, "path", cfg.Store.Path)

	a.hooks = hook.NewRegistry(ctx, a.gw, log)
	if err := a.hooks.Wait(ctx); err != nil {
		a.close()
		return nil, err
	}
	a.services = services.New(a.hooks, a.gw, services.Options{Logger: log})
	return a, nil
}

// connectStore builds the gateway and the meta store. For SQLite it applies
// the metadata migrations; the collections are created later by Open.
func (a *app) connectStore() error {
	var raw ports.Gateway
	if a.cfg.Store.Memory {
		a.log.Warn("Using in-memory store, nothing will be persisted")
		raw = memory.NewGateway()
		a.meta = memory.NewMetaStore()
	} else {
		db, err := database.Migrate(a.cfg.Store)
		if err != nil {
			return err
		}
		gw, err := sqlite.NewGateway(db.DB)
		if err != nil {
			_ = db.Close()
			return err
		}
		meta, err := sqlite.NewMetaStore(db.DB)
		if err != nil {
			_ = db.Close()
			return err
		}
		a.db, raw, a.meta = db, gw, meta
	}

	a.gw = metrics.Instrument(raw, a.metrics, a.log)
	return nil
}

// prepareStore checks the version marker and then opens the collections.
// The marker is recorded even when Open fails.
func prepareStore(ctx context.Context, gw ports.Gateway, meta ports.MetaStore, log *logger.Logger) (bool, error) {
	marker := version.NewMarker(meta, version.Current)
	prev, _, err := marker.Previous(ctx)
	if err != nil {
		return false, err
	}
	changed, err := marker.Check(ctx)
	if err != nil {
		return false, err
	}
	if changed {
		log.Infow("Application version changed", "previous", prev, "current", version.Current)
	}

	if err := gw.Open(ctx); err != nil {
		return changed, fmt.Errorf("failed to open store: %w", err)
	}
	return changed, nil
}

func (a *app) close() {
	var errs []error
	if a.gw != nil {
		errs = append(errs, a.gw.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	if err := errors.Join(errs...); err != nil {
		a.log.Errorw("Failed to close store", "error", err)
	}
	_ = a.log.Close()
}
