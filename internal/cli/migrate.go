// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"context"
	"database/sql"

	"github.com/MKhiriev/go-natours/migrations"
	"github.com/spf13/cobra"
)

func newMigrateCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		migrateSubcommand(opts, "up", "Apply all pending migrations", migrations.Migrate),
		migrateSubcommand(opts, "down", "Roll back the most recent migration", migrations.Rollback),
		migrateSubcommand(opts, "status", "Print the state of every migration", migrations.Status),
	)

	return cmd
}

func migrateSubcommand(opts *options, use, short string, run func(context.Context, *sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			db, err := opts.connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err = run(cmd.Context(), db.DB.DB); err != nil {
				return err
			}

			opts.logger.Info().Str("command", "migrate "+use).Msg("done")
			return nil
		},
	}
}
