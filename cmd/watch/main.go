package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hersh/tetrigo/internal/config"
	"github.com/hersh/tetrigo/internal/netclient"
	"github.com/hersh/tetrigo/internal/tui"
)

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:], ".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logFile, err := tea.LogToFile(cfg.LogFile, "watch")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.LogLevel}))

	client, err := netclient.New(cfg.WatchURL, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to %s: %v\n", cfg.WatchURL, err)
		fmt.Fprintf(os.Stderr, "Make sure a game is running with -spectate\n")
		os.Exit(1)
	}
	defer client.Close()

	p := tea.NewProgram(
		tui.NewWatchModel(client),
		tea.WithAltScreen(),
	)

	// Wire the program into the client so readPump can send tea.Msgs
	client.SetProgram(p)
	client.Start()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
