package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stayhub/internal/infrastructure/storage/postgres"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateVersionCmd)

	migrateDownCmd.Flags().Int("steps", 1, "Number of migrations to roll back")
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := postgres.RunMigrations(cmd.Context(), cfg.Postgres.DSN); err != nil {
			return err
		}
		log.Info("migrations applied")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		if steps < 1 {
			return fmt.Errorf("--steps must be at least 1")
		}
		if err := postgres.RollbackMigrations(cmd.Context(), cfg.Postgres.DSN, steps); err != nil {
			return err
		}
		log.Infow("migrations rolled back", "steps", steps)
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := postgres.MigrationVersion(cmd.Context(), cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		if handled, err := formatOutput(map[string]int64{"version": version}); handled {
			return err
		}
		fmt.Println(version)
		return nil
	},
}
