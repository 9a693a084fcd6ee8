package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hersh/tetrigo/internal/config"
	"github.com/hersh/tetrigo/internal/game"
	"github.com/hersh/tetrigo/internal/session"
	"github.com/hersh/tetrigo/internal/spectate"
	"github.com/hersh/tetrigo/internal/tui"
)

// This is the player entry point. To follow a game from another terminal,
// start it with -spectate :8080 and run:
//   go run ./cmd/watch -url ws://localhost:8080/ws

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[0], os.Args[1:], ".env")
	if err != nil {
		return err
	}

	logFile, err := tea.LogToFile(cfg.LogFile, "tetrigo")
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.LogLevel}))

	seed := cfg.SeedOrClock()
	logger.Info("starting", slog.Int64("seed", seed))

	// The first game uses the configured seed so runs can be replayed;
	// restarts draw a fresh one.
	games := 0
	newGame := func() *game.Game {
		games++
		if games == 1 {
			return game.NewGame(seed)
		}
		return game.NewSeededGame()
	}
	sess := session.New(newGame, session.NewKeyboard(), logger)

	var spectator session.Renderer
	if cfg.SpectateAddr != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		hub := spectate.NewHub(spectate.DefaultInterval, logger)
		go hub.Run(ctx)

		srv := &http.Server{Addr: cfg.SpectateAddr, Handler: hub.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("spectator server", slog.Any("error", err))
			}
		}()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			srv.Shutdown(shutdownCtx)
		}()

		logger.Info("spectator stream", slog.String("addr", cfg.SpectateAddr))
		spectator = hub
	}

	p := tea.NewProgram(
		tui.NewModel(sess, spectator, logger),
		tea.WithAltScreen(),
	)
	_, err = p.Run()
	return err
}
