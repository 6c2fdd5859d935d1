package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"labelboard/internal/application/commands"
)

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Set ticket labels and create labels",
}

var labelSetCmd = &cobra.Command{
	Use:   "set <ticket-id> [label]",
	Short: "Set or clear a ticket's label",
	Long: `Set a ticket's label. Omit the label to clear it. Labels that do not
exist yet are created by the store.

Examples:
  labelboard-cli label set 12 billing
  labelboard-cli label set 12          # clear`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ticket id %q", args[0])
		}
		label := ""
		if len(args) == 2 {
			label = args[1]
		}

		ctx := cmd.Context()
		if err := load(ctx); err != nil {
			return err
		}

		result, err := commands.NewAssignLabelCommand(store, engine, id, label).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var labelCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Add a label to the taxonomy",
	Long: `Add a label. Creating a label that already exists changes nothing.

Examples:
  labelboard-cli label create outage`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := load(ctx); err != nil {
			return err
		}

		result, err := commands.NewCreateLabelCommand(store, engine, args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", result.Message, result.Color)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(labelCmd)
	labelCmd.AddCommand(labelSetCmd)
	labelCmd.AddCommand(labelCreateCmd)
}
