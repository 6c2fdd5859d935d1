package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statsOffline bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the label distribution",
	Long: `Show total, labeled and unlabeled counts and one line per label bucket
with its count, share and color.

Examples:
  labelboard-cli stats
  labelboard-cli stats --offline   # last saved snapshot, no network`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if statsOffline {
			snap, err := loadOffline(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("snapshot of %s taken %s\n", snap.StoreURL, humanize.RelTime(snap.TakenAt, time.Now(), "ago", "from now"))
		} else if err := load(ctx); err != nil {
			return err
		}

		d := engine.Aggregate()
		fmt.Printf("total %d  labeled %d  unlabeled %d\n", d.Total, d.Labeled(), d.Unlabeled())
		for _, e := range engine.Legend() {
			fmt.Printf("%-20s %5d  %5.1f%%  %s\n", e.Name, e.Count, e.Percent, e.Color)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsOffline, "offline", false, "read the last saved snapshot instead of the store")
	rootCmd.AddCommand(statsCmd)
}
