// Package config collects runtime settings from a .env file, the
// environment and command-line flags, in increasing priority.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvSeed         = "TETRIS_SEED"
	EnvSpectateAddr = "TETRIS_SPECTATE_ADDR"
	EnvLogFile      = "TETRIS_LOG_FILE"
	EnvLogLevel     = "TETRIS_LOG_LEVEL"
	EnvWatchURL     = "TETRIS_WATCH_URL"

	DefaultLogFile  = "tetrigo.log"
	DefaultWatchURL = "ws://localhost:8080/ws"
)

var ErrInvalidLogLevel = errors.New("invalid log level")

type Config struct {
	// Seed for the piece generator. Zero picks one from the clock.
	Seed int64

	// SpectateAddr is the listen address of the spectator stream. Empty
	// disables it.
	SpectateAddr string

	LogFile  string
	LogLevel slog.Level

	// WatchURL is the stream the watch command connects to.
	WatchURL string
}

// Load builds a Config for the program name and its arguments. Values from
// envFile (when it exists) do not override variables already set in the
// environment.
func Load(name string, args []string, envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		SpectateAddr: os.Getenv(EnvSpectateAddr),
		LogFile:      envOr(EnvLogFile, DefaultLogFile),
		WatchURL:     envOr(EnvWatchURL, DefaultWatchURL),
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}
	level := envOr(EnvLogLevel, "info")

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "piece generator seed (0 = from clock)")
	fs.StringVar(&cfg.SpectateAddr, "spectate", cfg.SpectateAddr, "serve the spectator stream on this address, e.g. :8080")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file")
	fs.StringVar(&level, "log-level", level, "debug, info, warn or error")
	fs.StringVar(&cfg.WatchURL, "url", cfg.WatchURL, "spectator stream to watch")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	lvl, err := ParseLevel(level)
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = lvl
	return cfg, nil
}

// SeedOrClock returns the configured seed, or a clock based one when unset.
func (c Config) SeedOrClock() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
