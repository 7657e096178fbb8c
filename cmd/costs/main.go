package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/mmynk/costs/internal/account"
	"github.com/mmynk/costs/internal/auth"
	"github.com/mmynk/costs/internal/cli"
	"github.com/mmynk/costs/internal/config"
	"github.com/mmynk/costs/internal/project"
	"github.com/mmynk/costs/internal/session"
	"github.com/mmynk/costs/internal/storage/sqlite"
	"github.com/mmynk/costs/pkg/logging"
)

func main() {
	configPath := flag.String("config", os.Getenv("COSTS_CONFIG"), "path to a YAML config file")
	dbPath := flag.String("db", "", "profile database (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath, ".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}

	// Quiet unless LOG_LEVEL asks for more.
	level := slog.LevelWarn
	if os.Getenv("LOG_LEVEL") != "" {
		level, _ = logging.ParseLevel(cfg.Log.Level)
	}
	logger := logging.New(os.Stderr, level)
	slog.SetDefault(logger)

	store, err := sqlite.New(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	sessions := session.NewStore(store)
	accounts := account.NewStore(store, sessions, auth.NewBcryptHasher(cfg.Auth.BcryptCost), account.WithLogger(logger))
	projects := project.NewStore(store, project.WithLogger(logger))

	app := cli.NewApp(accounts, projects, os.Stdin, os.Stdout)
	err = app.Run(ctx, flag.Args())

	stop()
	store.Close()

	if err != nil {
		if !errors.Is(err, cli.ErrUsage) || flag.NArg() > 0 {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
