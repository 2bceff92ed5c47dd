package main

import (
	"ESBot/internal/adapters/telegram"
	"ESBot/internal/shared/config"
	"ESBot/internal/shared/logger"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
)

func main() {
	// 1. Parse flags
	flagSet := pflag.NewFlagSet("esbot", pflag.ContinueOnError)
	configPath := flagSet.StringP("config", "c", "config.yaml", "path to the YAML config file (optional)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			os.Exit(0)
		}
		fmt.Printf("FATAL: %v\n", err)
		os.Exit(2)
	}

	// 2. Load Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 3. Initialize Logger
	baseLogger := logger.New(cfg.App.IsDev(), cfg.App.LogLevel)
	baseLogger.Info().
		Str("app_env", cfg.App.Env).
		Str("mode", cfg.Bot.Connection.Mode).
		Int("cat_workers", cfg.Workers.Cat.Size).
		Int("roster_workers", cfg.Workers.Roster.Size).
		Msg("Configuration loaded")

	// 4. Stop on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Run the bot until shutdown
	orchestrator := telegram.NewOrchestrator(cfg, &baseLogger)
	if err := orchestrator.Start(ctx); err != nil {
		baseLogger.Error().Err(err).Msg("Bot stopped with error")
		stop()
		os.Exit(1)
	}

	baseLogger.Info().Msg("Bot stopped")
}
