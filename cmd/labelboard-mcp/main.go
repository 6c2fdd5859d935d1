package main

import (
	"context"
	"flag"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"labelboard/internal/adapters/chart"
	"labelboard/internal/adapters/httpstore"
	mcpadapter "labelboard/internal/adapters/mcp"
	"labelboard/internal/adapters/sqlite"
	"labelboard/internal/config"
	"labelboard/internal/logging"
	"labelboard/internal/ports"
)

func main() {
	configPath := flag.String("config", "", "path to the config file")
	storeFlag := flag.String("store", "", "base URL of the ticket store (overrides config)")
	flag.Parse()

	// stdout carries the protocol, so logs go to stderr
	logger := logging.New(os.Stderr, config.DefaultLogLevel)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}
	if *storeFlag != "" {
		cfg.StoreURL = *storeFlag
	}
	logger = logging.New(os.Stderr, cfg.LogLevel)

	opts := mcpadapter.BoardOptions{
		Store: httpstore.New(cfg.StoreURL, cfg.Timeout, logger),
		Charts: map[string]ports.ChartRenderer{
			"svg":  chart.NewSVG(cfg.Chart.Width, cfg.Chart.Height),
			"html": chart.NewHTML(cfg.Chart.Width, cfg.Chart.Height),
		},
		StoreURL: cfg.StoreURL,
		Logger:   logger,
	}

	snapshotPath := cfg.SnapshotPath
	if snapshotPath == "" {
		snapshotPath = sqlite.DefaultPath(cfg.StoreURL)
	}
	if snapshots, err := sqlite.Open(snapshotPath); err != nil {
		logger.Warn("snapshots disabled", "path", snapshotPath, "err", err)
	} else {
		defer snapshots.Close()
		opts.Snapshots = snapshots
	}

	board := mcpadapter.NewBoard(opts)

	mcpServer := server.NewMCPServer(
		"labelboard-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, board)
	mcpadapter.RegisterWriteTools(mcpServer, board)

	logger.Info("serving", "store", cfg.StoreURL)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal("labelboard-mcp", "err", err)
	}
}
