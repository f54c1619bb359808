package main

import (
	alertRepoPkg "github.com/fekuna/omnipos-inventory-service/internal/alert/repository"
	alertUCPkg "github.com/fekuna/omnipos-inventory-service/internal/alert/usecase"
	invRepoPkg "github.com/fekuna/omnipos-inventory-service/internal/inventory/repository"
	"github.com/fekuna/omnipos-inventory-service/pkg/clock"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Raise LowStock alerts for every row below its minimum without an open alert",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		log := newLogger(cfg)
		defer log.Sync()

		db, err := openDB(cfg, log)
		if err != nil {
			return err
		}
		defer db.Close()

		uc := alertUCPkg.NewAlertUseCase(alertRepoPkg.NewPGRepository(db), invRepoPkg.NewPGRepository(db), clock.Real{}, log)
		raised, err := uc.Reconcile(cmd.Context())
		if err != nil {
			return err
		}
		log.Info("Reconcile finished", zap.Int("raised", raised))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}
