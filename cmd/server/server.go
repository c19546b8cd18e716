package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"thumbforge/internal/config"
	domain "thumbforge/internal/domain/thumbnail"
	"thumbforge/internal/infrastructure/inference"
	"thumbforge/internal/infrastructure/ledger"
	"thumbforge/internal/infrastructure/logger"
	"thumbforge/internal/interfaces/httpserver"
)

type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := ledger.Open(cfg.LedgerPath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open ledger")
	}

	var generator domain.Generator
	if cfg.IsGeminiBackend() {
		generator = inference.NewGeminiService(cfg, log)
	} else {
		generator = inference.NewGroqService(cfg, log)
	}
	log.Info().Str("backend", generator.Name()).Msg("generation backend selected")

	service := domain.NewService(cfg, store, generator, log)

	httpServer := httpserver.New(cfg, log, service)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
