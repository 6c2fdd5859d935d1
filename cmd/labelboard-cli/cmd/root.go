package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"labelboard/internal/adapters/httpstore"
	"labelboard/internal/adapters/sqlite"
	"labelboard/internal/application"
	"labelboard/internal/application/commands"
	"labelboard/internal/config"
	"labelboard/internal/logging"
	"labelboard/internal/ports"
)

var (
	configPath string
	storeURL   string
	verbose    bool

	cfg    *config.Config
	logger *log.Logger
	store  ports.TicketStore
	engine *application.Engine
)

var rootCmd = &cobra.Command{
	Use:   "labelboard-cli",
	Short: "CLI for the label board",
	Long: `labelboard-cli talks to a ticket store and reports how tickets are
spread across labels.

It can list tickets, set and create labels, create tickets, import CSV
files and export the label distribution as a pie chart.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if storeURL != "" {
			cfg.StoreURL = storeURL
		}

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger = logging.New(os.Stderr, level)
		store = httpstore.New(cfg.StoreURL, cfg.Timeout, logger)
		engine = application.NewEngine(logger)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the config file")
	rootCmd.PersistentFlags().StringVarP(&storeURL, "store", "s", "", "base URL of the ticket store (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log store calls")
}

// openSnapshots opens the snapshot database for the configured store
func openSnapshots() (*sqlite.SnapshotStore, error) {
	path := cfg.SnapshotPath
	if path == "" {
		path = sqlite.DefaultPath(cfg.StoreURL)
	}
	return sqlite.Open(path)
}

// load fills the engine from the store, saving a snapshot on the way
func load(ctx context.Context) error {
	var snapshots ports.SnapshotStore
	if db, err := openSnapshots(); err != nil {
		logger.Warn("snapshots disabled", "err", err)
	} else {
		defer db.Close()
		snapshots = db
	}

	result, err := commands.NewRefreshCommand(store, engine, snapshots, cfg.StoreURL).Execute(ctx)
	if err != nil {
		return err
	}
	if result.SnapshotErr != nil {
		logger.Warn("snapshot not saved", "err", result.SnapshotErr)
	}
	logger.Debug(result.Message)
	return nil
}

// loadOffline fills the engine from the last snapshot
func loadOffline(ctx context.Context) (*ports.Snapshot, error) {
	db, err := openSnapshots()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	result, err := commands.NewLoadSnapshotCommand(db, engine).Execute(ctx)
	if err != nil {
		return nil, err
	}
	return result.Snapshot, nil
}
