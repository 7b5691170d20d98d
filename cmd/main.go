package main

import (
	"CulinaShare-Backend/cmd/config"
	migration "CulinaShare-Backend/cmd/database/migrate"
	"CulinaShare-Backend/internal/logging"
	"CulinaShare-Backend/internal/utils"
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	if err := utils.LoadConfig(); err != nil {
		logging.Fatal().Err(err).Msg("failed to load config")
	}
	cfg := utils.GetAppConfig()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect database")
	}
	if err := migration.Migrate(db); err != nil {
		logging.Fatal().Err(err).Msg("failed to migrate database")
	}

	app, err := config.NewApp(ctx, db, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to build app")
	}

	go func() {
		<-ctx.Done()
		logging.Info().Msg("shutting down")
		if err := app.Shutdown(); err != nil {
			logging.Error().Err(err).Msg("shutdown failed")
		}
	}()

	logging.Info().Str("port", cfg.Port).Msg("starting server")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logging.Fatal().Err(err).Msg("server stopped")
	}
}
