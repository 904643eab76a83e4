package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	configloader "github.com/ratelab/greencast/external/config"
	greenapiimpl "github.com/ratelab/greencast/external/greenapi"
	repositoryimpl "github.com/ratelab/greencast/external/repository"
	sheetimpl "github.com/ratelab/greencast/external/sheet"
	telegramimpl "github.com/ratelab/greencast/external/telegram"
	"github.com/ratelab/greencast/internal/bot"
	"github.com/ratelab/greencast/internal/chat"
	"github.com/ratelab/greencast/internal/config"
	"github.com/samber/do/v2"
)

// restartDelay is how long to wait before re-entering the update loop
// after it fails.
const restartDelay = 3 * time.Second

func main() {
	slog.Info("startup: loading configuration")
	cfg := mustLoadConfig()
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env)

	slog.Info("startup: building dependency graph")
	injector := setupDI(cfg)

	slog.Info("startup: launching telegram bot")
	runBot(injector)
}

func mustLoadConfig() *config.Config {
	cfg, err := configloader.Load()
	if err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	repositoryimpl.RegisterDI(injector)
	sheetimpl.RegisterDI(injector)
	greenapiimpl.RegisterDI(injector)
	telegramimpl.RegisterDI(injector)
	bot.RegisterDI(injector)

	return injector
}

// runBot drives the update loop until a shutdown signal arrives. A loop
// failure (network hiccup, Telegram outage) is logged and the loop is
// restarted, never fatal.
func runBot(injector do.Injector) {
	transport, err := do.Invoke[chat.Transport](injector)
	if err != nil {
		slog.Error("failed to resolve chat transport", "error", err)
		os.Exit(1)
	}
	manager, err := do.Invoke[*bot.Manager](injector)
	if err != nil {
		slog.Error("failed to resolve dialog manager", "error", err)
		os.Exit(1)
	}

	transport.SetHandler(manager.HandleEvent)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		slog.Info("startup: entering telegram update loop")
		err := transport.Run(ctx)
		if err == nil || errors.Is(err, context.Canceled) {
			slog.Info("shutting down")
			return
		}
		slog.Error("telegram update loop failed; restarting", "error", err, "delay", restartDelay)

		select {
		case <-ctx.Done():
			slog.Info("shutting down")
			return
		case <-time.After(restartDelay):
		}
	}
}
