package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/andrewpaige1/promptdec-api/config"
	"github.com/andrewpaige1/promptdec-api/repository"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables and seed default templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.Connect(cfg, log)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		if err := config.Migrate(db); err != nil {
			return err
		}
		added, err := repository.New(db).SeedDefaultTemplates(cmd.Context())
		if err != nil {
			return err
		}
		log.Info("migration complete", zap.Int("templates_seeded", added))
		return nil
	},
}
