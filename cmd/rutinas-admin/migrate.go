package main

import (
	"fmt"

	"github.com/2beens/rutinas/internal/db"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema (safe to run more than once)",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPool, err := openPool(cmd.Context())
		if err != nil {
			return err
		}
		defer dbPool.Close()

		if err := db.Migrate(cmd.Context(), dbPool); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
