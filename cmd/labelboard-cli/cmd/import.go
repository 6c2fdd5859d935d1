package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"labelboard/internal/application/commands"
	"labelboard/internal/ports"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Upload a CSV file of tickets",
	Long: `Upload a CSV file to the store, then reload everything and print the
new distribution summary.

Examples:
  labelboard-cli import tickets.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var snapshots ports.SnapshotStore
		if db, err := openSnapshots(); err != nil {
			logger.Warn("snapshots disabled", "err", err)
		} else {
			defer db.Close()
			snapshots = db
		}

		refresh := commands.NewRefreshCommand(store, engine, snapshots, cfg.StoreURL)
		result, err := commands.NewImportCommand(store, refresh, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		fmt.Println(result.Refresh.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
