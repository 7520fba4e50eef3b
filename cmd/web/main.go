// Package main is the entrypoint for the words web client. It serves the
// single words page and talks to the API on the browser's behalf.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/wordledger/wordledger/internal/apiclient"
	"github.com/wordledger/wordledger/internal/app"
	"github.com/wordledger/wordledger/internal/config"
	"github.com/wordledger/wordledger/internal/handler"
	"github.com/wordledger/wordledger/internal/server"
	"github.com/wordledger/wordledger/internal/view"
	"github.com/wordledger/wordledger/internal/webui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadWeb()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg.LogLevel, cfg.LogFormat)

	client, err := apiclient.New(cfg.APIBaseURL,
		apiclient.WithHTTPClient(apiclient.NewHTTPClient(cfg.APIRequestTimeout)),
		apiclient.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to create API client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	renderer, err := view.New("")
	if err != nil {
		logger.Error("failed to parse templates", slog.String("error", err.Error()))
		os.Exit(1)
	}

	controller := app.New(client, logger)
	go func() {
		if err := controller.Start(ctx); err != nil {
			logger.Warn("page bootstrap incomplete", slog.String("error", err.Error()))
			return
		}
		logger.Info("page bootstrap complete")
	}()

	r := webui.NewRouter(
		webui.NewHandler(controller, renderer, logger),
		handler.NewHealthHandler(handler.Check{Name: "api", Checker: client}),
		webui.RouterConfig{
			Logger:        logger,
			IsDevelopment: cfg.IsDevelopment(),
		},
	)

	srv := server.New(
		r,
		cfg.WebPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	srv.OnShutdown("page controller", func(context.Context) error {
		controller.Close()
		return nil
	})

	logger.Info("starting web client",
		"port", cfg.WebPort,
		"api_base_url", client.BaseURL(),
		"env", cfg.AppEnv,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger from the configured level and format.
func initLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if format != "json" {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}
