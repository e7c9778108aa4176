package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/catalog/config"
	"github.com/shashiranjanraj/catalog/database/seeders"
	"github.com/shashiranjanraj/catalog/pkg/database"
	"github.com/shashiranjanraj/catalog/pkg/migration"
)

// openPool loads config and opens the database pool.
func openPool() (*database.Pool, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	return database.Open(database.ConfigFromEnv())
}

// catalog migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := openPool()
		if err != nil {
			return err
		}
		defer pool.Close()

		fmt.Fprintln(cmd.OutOrStdout(), "Running migrations…")
		return migration.New(pool.DB(), cmd.OutOrStdout()).Run()
	},
}

// catalog migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := openPool()
		if err != nil {
			return err
		}
		defer pool.Close()

		fmt.Fprintln(cmd.OutOrStdout(), "Rolling back last batch…")
		return migration.New(pool.DB(), cmd.OutOrStdout()).Rollback()
	},
}

// catalog migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := openPool()
		if err != nil {
			return err
		}
		defer pool.Close()

		return migration.New(pool.DB(), cmd.OutOrStdout()).Status()
	},
}

// catalog seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample category, admin user and products",
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := openPool()
		if err != nil {
			return err
		}
		defer pool.Close()

		fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
		return seeders.RunAll(cmd.Context(), pool.DB(), cmd.OutOrStdout())
	},
}
