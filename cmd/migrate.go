package cmd

import (
	"edu_analytics_backend/pkg/database"
	"edu_analytics_backend/pkg/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the badge and preference tables, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		log := logger.NewConsole(cfg.Server.Mode == "debug")
		defer log.Sync()

		db, err := database.InitDB(&cfg.Database, log)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		return nil
	},
}
