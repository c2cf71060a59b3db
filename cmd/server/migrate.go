package main

import (
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/config"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return database.Init(cfg)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
