// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-natours/internal/config"
	"github.com/MKhiriev/go-natours/internal/logger"
	"github.com/MKhiriev/go-natours/internal/store"
	"github.com/spf13/cobra"
)

// options are the flags shared by every command.
type options struct {
	dsn      string
	logLevel string
	logger   *logger.Logger
}

// NewRootCommand builds the natoursctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{logger: logger.NewConsoleLogger("natoursctl")}

	root := &cobra.Command{
		Use:           "natoursctl",
		Short:         "Administration tool of the natours API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return logger.SetLevel(opts.logLevel)
		},
	}

	root.PersistentFlags().StringVar(&opts.dsn, "dsn", "", "PostgreSQL connection string, overrides STORAGE_DB_DATABASE_URI")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newMigrateCommand(opts),
		newSeedCommand(opts),
		newPurgeCommand(opts),
	)

	return root
}

// loadConfig reads the configuration and applies the --dsn override.
func (o *options) loadConfig() (*config.StructuredConfig, error) {
	cfg, err := config.GetCLIConfig()
	if err != nil {
		return nil, fmt.Errorf("error getting configs: %w", err)
	}
	if o.dsn != "" {
		cfg.Storage.DB.DSN = o.dsn
	}
	return cfg, nil
}

func (o *options) connect(ctx context.Context, cfg *config.StructuredConfig) (*store.DB, error) {
	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, o.logger)
	if err != nil {
		return nil, err
	}
	return db, nil
}
