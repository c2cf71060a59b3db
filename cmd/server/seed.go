package main

import (
	"fmt"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/config"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/database"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/seed"

	"github.com/spf13/cobra"
)

var seedOpts seed.Options

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo branches, users, stock, sales and expenses",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := database.Init(cfg); err != nil {
			return err
		}
		res, err := seed.Run(database.DB.WithContext(cmd.Context()), seedOpts)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "seeded %d branches, %d staff, %d items, %d sales, %d expenses\n",
			res.Branches, res.Staff, res.Items, res.Sales, res.Expenses)
		fmt.Fprintln(out, "Admin: admin@example.com")
		for i := 1; i <= res.Managers; i++ {
			fmt.Fprintf(out, "Manager %d: manager%d@example.com\n", i, i)
		}
		fmt.Fprintf(out, "Password: %s\n", seedOpts.Password)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedOpts.Reset, "reset", false, "delete existing data before seeding")
	seedCmd.Flags().StringVar(&seedOpts.Password, "password", seed.DefaultPassword, "password for every demo user")
	seedCmd.Flags().Uint64Var(&seedOpts.Seed, "rand-seed", 1, "random seed for generated quantities and dates")
	rootCmd.AddCommand(seedCmd)
}
