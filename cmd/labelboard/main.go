package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"labelboard/internal/adapters/chart"
	"labelboard/internal/adapters/editor"
	"labelboard/internal/adapters/httpstore"
	"labelboard/internal/adapters/sqlite"
	"labelboard/internal/adapters/tui"
	"labelboard/internal/adapters/tui/views"
	"labelboard/internal/application"
	"labelboard/internal/config"
	"labelboard/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// stdout belongs to the terminal, so logs go to a file
	logFile, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := logging.New(logFile, cfg.LogLevel)

	session := &views.Session{
		Engine:   application.NewEngine(logger),
		Store:    httpstore.New(cfg.StoreURL, cfg.Timeout, logger),
		Charts:   chart.NewSVG(cfg.Chart.Width, cfg.Chart.Height),
		StoreURL: cfg.StoreURL,
		Timeout:  cfg.Timeout,
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
		session.Snapshots = snapshots
	}

	if ed := editor.NewOpener(); ed != nil {
		session.Editor = ed
	}

	logger.Info("starting", "store", cfg.StoreURL)
	app := tui.NewApp(session, tui.Options{PollInterval: cfg.PollInterval})

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		logger.Error("tui exited", "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
