package main

import (
	"fmt"

	"github.com/fekuna/omnipos-inventory-service/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var downSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		log := newLogger(cfg)
		defer log.Sync()

		db, err := openDB(cfg, log)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := migrations.Up(db.DB); err != nil {
			return err
		}
		log.Info("Schema is up to date")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if downSteps <= 0 {
			return fmt.Errorf("--steps must be positive, got %d", downSteps)
		}
		cfg := loadConfig()
		log := newLogger(cfg)
		defer log.Sync()

		db, err := openDB(cfg, log)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := migrations.Down(db.DB, downSteps); err != nil {
			return err
		}
		log.Info("Rolled back migrations", zap.Int("steps", downSteps))
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applied schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		log := newLogger(cfg)
		defer log.Sync()

		db, err := openDB(cfg, log)
		if err != nil {
			return err
		}
		defer db.Close()

		v, dirty, err := migrations.Version(db.DB)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", v, dirty)
		return nil
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&downSteps, "steps", 1, "number of migrations to roll back")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}
