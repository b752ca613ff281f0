package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lifeflow/core/internal/application/version"
	"github.com/lifeflow/core/internal/domain/entities"
	"github.com/lifeflow/core/internal/domain/schema"
	"github.com/lifeflow/core/internal/infrastructure/config"
	"github.com/lifeflow/core/internal/infrastructure/database"
	"github.com/lifeflow/core/internal/infrastructure/server"
)

type rootOptions struct {
	configFile string
}

// NewRootCommand creates the lifeflow command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "lifeflow",
		Short:         "LifeFlow local productivity store",
		Long:          `LifeFlow keeps tasks, notes, habits, events, checklists and focus sessions in a local embedded store and serves them to the view layer.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file (yaml, json or toml)")

	rootCmd.AddCommand(NewServeCommand(opts))
	rootCmd.AddCommand(NewMigrateCommand(opts))
	rootCmd.AddCommand(NewCheckCommand(opts))
	rootCmd.AddCommand(NewDashboardCommand(opts))
	rootCmd.AddCommand(NewExportCommand(opts))
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// NewServeCommand creates the serve command
func NewServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the local API server",
		Long:  "Open the store, activate every collection and serve the API until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, opts)
		},
	}
}

func runServer(ctx context.Context, opts *rootOptions) error {
	a, err := loadApp(ctx, opts, true)
	if err != nil {
		return err
	}
	defer a.close()

	srv, err := server.New(a.cfg, server.Deps{
		Services: a.services,
		Hooks:    a.hooks,
		Reader:   a.gw,
		DB:       a.db,
		Metrics:  a.metrics,
		Logger:   a.log,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	a.log.Infow("Starting LifeFlow API server",
		"address", a.cfg.Server.Addr(),
		"environment", a.cfg.App.Environment,
		"version", version.Current,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(a.cfg.Server.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand(opts *rootOptions) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Store metadata migrations",
		Long:  "Manage the migrations of the store metadata tables (up, down, version). Collections are created by the store itself.",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd.OutOrStdout(), opts, "up")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd.OutOrStdout(), opts, "down")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd.OutOrStdout(), opts, "version")
		},
	})

	return migrateCmd
}

func runMigration(out io.Writer, opts *rootOptions, direction string) error {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Store.Memory {
		return errors.New("the in-memory store has no migrations")
	}

	db, err := database.New(cfg.Store)
	if err != nil {
		return err
	}
	defer db.Close()

	mg, err := database.NewMigrator(db)
	if err != nil {
		return err
	}

	var ran bool
	switch direction {
	case "up":
		ran, err = mg.Up()
	case "down":
		ran, err = mg.Down()
	case "version":
		v, dirty, err := mg.Version()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Migration version: %d (dirty: %t)\n", v, dirty)
		return nil
	}
	if err != nil {
		return err
	}

	if ran {
		fmt.Fprintf(out, "Migration %s completed successfully\n", direction)
	} else {
		fmt.Fprintln(out, "No migrations to run")
	}
	return nil
}

// NewCheckCommand opens the store, brings it up to the schema and reports
// whether this build runs against it for the first time.
func NewCheckCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Open the store and check the application version",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), opts, false)
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Store: %s\n", storeName(a.cfg))
			fmt.Fprintf(out, "Schema version: %d\n", schema.Version)
			fmt.Fprintf(out, "Application version: %s (changed: %t)\n", version.Current, a.versionChanged)
			for _, name := range schema.Names() {
				fmt.Fprintf(out, "  %-10s %d records\n", name, len(a.hooks.MustHook(name).Data()))
			}
			return nil
		},
	}
}

// NewDashboardCommand prints today's overview as JSON
func NewDashboardCommand(opts *rootOptions) *cobra.Command {
	var insights bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print today's dashboard as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), opts, false)
			if err != nil {
				return err
			}
			defer a.close()

			var v any
			if insights {
				v, err = a.services.Dashboard.Insights(cmd.Context())
			} else {
				v, err = a.services.Dashboard.Dashboard(cmd.Context())
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), v)
		},
	}
	cmd.Flags().BoolVar(&insights, "insights", false, "print the productivity summary instead")
	return cmd
}

// NewExportCommand dumps every collection as one JSON document
func NewExportCommand(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every collection as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), opts, false)
			if err != nil {
				return err
			}
			defer a.close()

			dump := make(map[string][]entities.Record, len(schema.Names()))
			for _, name := range schema.Names() {
				records, err := a.gw.GetAll(cmd.Context(), name)
				if err != nil {
					return err
				}
				if records == nil {
					records = []entities.Record{}
				}
				dump[name] = records
			}

			out := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create export file: %w", err)
				}
				defer f.Close()
				out = f
			}
			return writeJSON(out, dump)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print LifeFlow version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "LifeFlow v%s\n", version.Current)
			fmt.Fprintf(cmd.OutOrStdout(), "Schema version: %d\n", schema.Version)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func storeName(cfg *config.Config) string {
	if cfg.Store.Memory {
		return "memory"
	}
	return cfg.Store.Path
}
