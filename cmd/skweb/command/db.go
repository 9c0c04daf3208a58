// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/slotkeeper/pkg/adapter/config"
	"github.com/momeni/slotkeeper/pkg/adapter/db/postgres"
	"github.com/momeni/slotkeeper/pkg/adapter/db/postgres/schemarp"
	"github.com/momeni/slotkeeper/pkg/core/repo"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For a fresh installation, the init may be used in order to create
the tables of the database schema which is specified in the config
file.`,
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database tables if they are missing",
	Long: `Create the parking areas, slots, users, and vehicles tables
(and their indices) if they are missing, all in one transaction.
The database connection information are read from the config file.
Existing tables are kept intact, so running it again is harmless.`,
	RunE: initDB,
	Args: cobra.NoArgs,
}

func initDB(cmd *cobra.Command, _ []string) error {
	return withPool(cmd.Context(), func(
		ctx context.Context, _ *config.Config, p *postgres.Pool,
	) error {
		err := p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
			return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
				return schemarp.New().Tx(tx).CreateTablesIfMissing(ctx)
			})
		})
		if err != nil {
			return fmt.Errorf("creating tables: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(),
			"schema v%s is ready\n", schemarp.Version.String(),
		)
		return nil
	})
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbInitCmd)
}
