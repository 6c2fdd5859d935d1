package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"labelboard/internal/application/commands"
)

var (
	ticketTitle   string
	ticketContent string
	ticketLabel   string
)

var ticketCmd = &cobra.Command{
	Use:   "ticket",
	Short: "Manage tickets",
}

var ticketCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a ticket",
	Long: `Create a ticket. The store assigns the id.

Examples:
  labelboard-cli ticket create --title "Printer jam" --content "Tray 2" --label hardware`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := load(ctx); err != nil {
			return err
		}

		result, err := commands.NewCreateTicketCommand(store, engine, ticketTitle, ticketContent, ticketLabel).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var nextIDCmd = &cobra.Command{
	Use:   "next-id",
	Short: "Print the id the next ticket will get",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := commands.NewNextIDCommand(store).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the store answers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewProbeCommand(store).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if result.Degraded {
			return fmt.Errorf("cannot reach store at %s: %w", cfg.StoreURL, result.Err)
		}
		fmt.Printf("%s is up, next ticket id %d\n", cfg.StoreURL, result.NextID)
		return nil
	},
}

func init() {
	ticketCreateCmd.Flags().StringVarP(&ticketTitle, "title", "t", "", "ticket title")
	ticketCreateCmd.Flags().StringVarP(&ticketContent, "content", "b", "", "ticket body")
	ticketCreateCmd.Flags().StringVarP(&ticketLabel, "label", "l", "", "optional label")
	ticketCreateCmd.MarkFlagRequired("title")
	ticketCreateCmd.MarkFlagRequired("content")

	rootCmd.AddCommand(ticketCmd)
	ticketCmd.AddCommand(ticketCreateCmd)
	rootCmd.AddCommand(nextIDCmd)
	rootCmd.AddCommand(pingCmd)
}
