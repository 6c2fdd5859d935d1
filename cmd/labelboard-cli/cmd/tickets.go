package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"labelboard/internal/application"
)

var ticketsLabel string

var ticketsCmd = &cobra.Command{
	Use:   "tickets",
	Short: "List tickets",
	Long: `List tickets with their labels, in store order.

Examples:
  labelboard-cli tickets
  labelboard-cli tickets --label billing
  labelboard-cli tickets --label unlabeled`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := load(cmd.Context()); err != nil {
			return err
		}

		for _, t := range engine.Tickets() {
			label := application.DisplayLabel(t.Label)
			if ticketsLabel != "" && label != ticketsLabel {
				continue
			}
			fmt.Printf("#%-5d %-12s %s\n", t.ID, label, t.Title)
		}
		return nil
	},
}

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List known labels with their colors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := load(cmd.Context()); err != nil {
			return err
		}

		for _, name := range engine.Labels() {
			fmt.Printf("%s %s\n", engine.LabelColor(name), name)
		}
		return nil
	},
}

func init() {
	ticketsCmd.Flags().StringVarP(&ticketsLabel, "label", "l", "", "only tickets with this label")
	rootCmd.AddCommand(ticketsCmd)
	rootCmd.AddCommand(labelsCmd)
}
