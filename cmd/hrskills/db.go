package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jingkaihe/hrskills/pkg/db"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management commands",
}

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database migration status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		dbPath := getStoreFlags(cmd.Flags()).config().DBPath
		if dbPath == "" {
			var err error
			if dbPath, err = db.DefaultDBPath(); err != nil {
				return err
			}
		}

		conn, err := db.Open(ctx, dbPath)
		if err != nil {
			return err
		}
		defer conn.Close()

		applied, err := db.NewMigrationRunner(conn).AppliedVersions(ctx)
		if err != nil {
			return fmt.Errorf("failed to get migration status: %w", err)
		}
		appliedMap := make(map[int64]bool, len(applied))
		for _, v := range applied {
			appliedMap[v] = true
		}

		all := db.Migrations()
		fmt.Println("Database Migration Status")
		fmt.Println("=========================")
		fmt.Printf("Database: %s\n\n", dbPath)

		appliedCount := 0
		for _, m := range all {
			status := "[ ]"
			if appliedMap[m.Version] {
				status = "[x]"
				appliedCount++
			}
			fmt.Printf("%s %d - %s\n", status, m.Version, m.Description)
		}
		fmt.Printf("\nApplied: %d/%d migrations\n", appliedCount, len(all))
		return nil
	},
}

func init() {
	addStoreFlags(dbStatusCmd.Flags())
	dbCmd.AddCommand(dbStatusCmd)
}
