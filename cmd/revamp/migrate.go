package main

import (
	"github.com/spf13/cobra"

	"revamp/internal/infrastructure/database"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or revert database migrations",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{database.MigrateUp, database.MigrateDown},
	RunE: func(cmd *cobra.Command, args []string) error {
		direction := database.MigrateUp
		if len(args) == 1 {
			direction = args[0]
		}
		return database.Migrate(cfg.DatabaseURL, direction, logger)
	},
}
